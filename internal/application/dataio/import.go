package dataio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/dataset"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

// Formatos de entrada aceptados.
const (
	InputCSV  = "csv"
	InputJSON = "json"
)

// ValidationError importación rechazada: todos los errores por fila, en orden.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("importación inválida: %d errores", len(e.Errors))
}

// ImportUseCase importación de productos, clientes y proveedores desde CSV o JSON.
type ImportUseCase struct {
	tx  ImportTxRunner
	now func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx ImportTxRunner) *ImportUseCase {
	return &ImportUseCase{tx: tx, now: time.Now}
}

// DetectFormat decide CSV o JSON por Content-Type; si no es concluyente, por el contenido.
func DetectFormat(contentType string, body []byte) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return InputJSON
	case strings.Contains(ct, "csv"):
		return InputCSV
	}
	mt := mimetype.Detect(body)
	if mt.Is("application/json") {
		return InputJSON
	}
	if mt.Is("text/csv") {
		return InputCSV
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return InputJSON
	}
	return InputCSV
}

// ParseRows convierte el cuerpo en filas según el formato. JSON malformado es ErrInvalidInput.
func ParseRows(format string, body []byte) ([]*dataset.Row, error) {
	if format == InputJSON {
		values, err := dataset.ParseJSONStrict(string(body))
		if err != nil {
			return nil, fmt.Errorf("JSON inválido: %w", domain.ErrInvalidInput)
		}
		return dataset.RowsFromJSON(values), nil
	}
	return dataset.ParseCSV(string(body)), nil
}

// Import valida todas las filas y, si no hay errores, las guarda en una transacción.
// Con errores devuelve *ValidationError y no escribe nada.
func (uc *ImportUseCase) Import(ctx context.Context, userID, entityName, contentType string, body []byte) (*dto.ImportResponse, error) {
	switch entityName {
	case dataset.EntityProducts, dataset.EntityCustomers, dataset.EntitySuppliers:
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedDataset, entityName)
	}
	rows, err := ParseRows(DetectFormat(contentType, body), body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("archivo sin filas: %w", domain.ErrInvalidInput)
	}
	res, err := dataset.Validate(entityName, rows)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		importRowsTotal.WithLabelValues(entityName, "rejected").Add(float64(len(rows)))
		return nil, &ValidationError{Errors: res.Errors}
	}

	now := uc.now()
	err = uc.tx.RunImport(ctx, func(products repository.ProductRepository, customers repository.CustomerRepository, suppliers repository.SupplierRepository) error {
		for i, row := range rows {
			var err error
			switch entityName {
			case dataset.EntityProducts:
				err = products.Create(ctx, productFromRow(row, userID, now))
			case dataset.EntityCustomers:
				err = customers.Create(ctx, customerFromRow(row, userID, now))
			case dataset.EntitySuppliers:
				err = suppliers.Create(ctx, supplierFromRow(row, userID, now))
			}
			if err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	importRowsTotal.WithLabelValues(entityName, "imported").Add(float64(len(rows)))
	return &dto.ImportResponse{Entity: entityName, Imported: len(rows)}, nil
}

// firstText primer valor no vacío entre alias de columna (ej. tax_rate / taxRate).
func firstText(row *dataset.Row, fields ...string) string {
	for _, f := range fields {
		if v := dataset.Text(row, f); v != "" {
			return v
		}
	}
	return ""
}

func number(row *dataset.Row, fields ...string) decimal.Decimal {
	for _, f := range fields {
		if v, ok := row.Get(f); ok {
			if d, ok := dataset.Number(v); ok {
				return d
			}
		}
	}
	return decimal.Zero
}

func productFromRow(row *dataset.Row, userID string, now time.Time) *entity.Product {
	return &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		SKU:         firstText(row, "sku"),
		Name:        firstText(row, "name"),
		Description: firstText(row, "description"),
		Category:    firstText(row, "category"),
		Price:       number(row, "price"),
		Cost:        number(row, "cost"),
		Stock:       number(row, "stock"),
		TaxRate:     number(row, "tax_rate", "taxRate"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func customerFromRow(row *dataset.Row, userID string, now time.Time) *entity.Customer {
	return &entity.Customer{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      firstText(row, "name"),
		Email:     firstText(row, "email"),
		Phone:     firstText(row, "phone"),
		Address:   firstText(row, "address"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func supplierFromRow(row *dataset.Row, userID string, now time.Time) *entity.Supplier {
	return &entity.Supplier{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          firstText(row, "name"),
		ContactPerson: firstText(row, "contactPerson", "contact_person"),
		Email:         firstText(row, "email"),
		Phone:         firstText(row, "phone"),
		Address:       firstText(row, "address"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
