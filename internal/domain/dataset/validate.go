package dataset

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// Entidades importables.
const (
	EntityProducts  = "products"
	EntityCustomers = "customers"
	EntitySuppliers = "suppliers"
)

// ValidationResult resultado de validar un lote de filas importadas.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

const tagSimpleEmail = "simple_email"

var simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(tagSimpleEmail, func(fl validator.FieldLevel) bool {
		return simpleEmail.MatchString(fl.Field().String())
	})
	return v
}

// Validate despacha al validador de la entidad.
func Validate(name string, rows []*Row) (ValidationResult, error) {
	switch name {
	case EntityProducts:
		return ValidateProducts(rows), nil
	case EntityCustomers:
		return ValidateCustomers(rows), nil
	case EntitySuppliers:
		return ValidateSuppliers(rows), nil
	default:
		return ValidationResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedDataset, name)
	}
}

// ValidateProducts exige name no vacío y price/stock numéricos no negativos.
// cost, si viene, tampoco puede ser negativo; tax_rate (o taxRate), si viene, debe ser 0, 5 o 19.
func ValidateProducts(rows []*Row) ValidationResult {
	var errs []string
	for i, row := range rows {
		n := i + 1
		errs = requireText(errs, n, row, "name")
		errs = requireNonNegative(errs, n, row, "price")
		errs = requireNonNegative(errs, n, row, "stock")
		errs = optionalNonNegative(errs, n, row, "cost")
		errs = optionalTaxRate(errs, n, row, "tax_rate", "taxRate")
	}
	return result(errs)
}

// ValidateCustomers exige name no vacío; email, si viene, con forma local@dominio.tld.
func ValidateCustomers(rows []*Row) ValidationResult {
	var errs []string
	for i, row := range rows {
		n := i + 1
		errs = requireText(errs, n, row, "name")
		if email := Text(row, "email"); email != "" {
			if err := validate.Var(email, tagSimpleEmail); err != nil {
				errs = append(errs, fmt.Sprintf("Fila %d: el email %q no es válido", n, email))
			}
		}
	}
	return result(errs)
}

// ValidateSuppliers exige name y contactPerson no vacíos.
func ValidateSuppliers(rows []*Row) ValidationResult {
	var errs []string
	for i, row := range rows {
		n := i + 1
		errs = requireText(errs, n, row, "name")
		errs = requireText(errs, n, row, "contactPerson")
	}
	return result(errs)
}

func result(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func requireText(errs []string, n int, row *Row, field string) []string {
	if err := validate.Var(Text(row, field), "required"); err != nil {
		return append(errs, fmt.Sprintf("Fila %d: el campo %s es obligatorio", n, field))
	}
	return errs
}

func requireNumber(errs []string, n int, row *Row, field string) []string {
	v, ok := row.Get(field)
	if !ok || v == nil {
		return append(errs, fmt.Sprintf("Fila %d: el campo %s es obligatorio", n, field))
	}
	if _, ok := Number(v); !ok {
		return append(errs, fmt.Sprintf("Fila %d: el campo %s debe ser numérico", n, field))
	}
	return errs
}

func requireNonNegative(errs []string, n int, row *Row, field string) []string {
	before := len(errs)
	errs = requireNumber(errs, n, row, field)
	if len(errs) > before {
		return errs
	}
	return checkNonNegative(errs, n, row, field)
}

func optionalNonNegative(errs []string, n int, row *Row, field string) []string {
	v, ok := row.Get(field)
	if !ok || v == nil || Text(row, field) == "" {
		return errs
	}
	if _, ok := Number(v); !ok {
		return append(errs, fmt.Sprintf("Fila %d: el campo %s debe ser numérico", n, field))
	}
	return checkNonNegative(errs, n, row, field)
}

func checkNonNegative(errs []string, n int, row *Row, field string) []string {
	v, _ := row.Get(field)
	if d, _ := Number(v); d.IsNegative() {
		return append(errs, fmt.Sprintf("Fila %d: el campo %s no puede ser negativo", n, field))
	}
	return errs
}

// optionalTaxRate revisa el primer alias presente con valor.
func optionalTaxRate(errs []string, n int, row *Row, fields ...string) []string {
	for _, field := range fields {
		v, ok := row.Get(field)
		if !ok || v == nil || Text(row, field) == "" {
			continue
		}
		d, ok := Number(v)
		if !ok {
			return append(errs, fmt.Sprintf("Fila %d: el campo %s debe ser numérico", n, field))
		}
		if !entity.ValidTaxRate(d) {
			return append(errs, fmt.Sprintf("Fila %d: el campo %s debe ser 0, 5 o 19", n, field))
		}
		return errs
	}
	return errs
}

// Text devuelve el valor de la columna como texto recortado ("" si falta).
func Text(row *Row, field string) string {
	v, ok := row.Get(field)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(formatValue(v))
}

// Number convierte un valor escalar a decimal.
func Number(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case decimal.Decimal:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
