package dataio

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/dataset"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

type memRepos struct {
	products  []*entity.Product
	customers []*entity.Customer
	suppliers []*entity.Supplier
	failAt    int
}

func (m *memRepos) RunImport(_ context.Context, fn func(repository.ProductRepository, repository.CustomerRepository, repository.SupplierRepository) error) error {
	tx := &memRepos{failAt: m.failAt}
	if err := fn(productRepo{tx}, customerRepo{tx}, supplierRepo{tx}); err != nil {
		return err
	}
	m.products = append(m.products, tx.products...)
	m.customers = append(m.customers, tx.customers...)
	m.suppliers = append(m.suppliers, tx.suppliers...)
	return nil
}

func (m *memRepos) count() int { return len(m.products) + len(m.customers) + len(m.suppliers) }

var errDuplicate = errors.New("duplicado")

type productRepo struct{ m *memRepos }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	if r.m.failAt > 0 && r.m.count()+1 == r.m.failAt {
		return errDuplicate
	}
	r.m.products = append(r.m.products, p)
	return nil
}
func (productRepo) GetByID(context.Context, string, string) (*entity.Product, error) { return nil, nil }
func (productRepo) GetForUpdate(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}
func (productRepo) ListByUser(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (productRepo) DecrementStock(context.Context, string, decimal.Decimal) error { return nil }

type customerRepo struct{ m *memRepos }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.m.customers = append(r.m.customers, c)
	return nil
}
func (customerRepo) GetByID(context.Context, string, string) (*entity.Customer, error) {
	return nil, nil
}
func (customerRepo) ListByUser(context.Context, string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}

type supplierRepo struct{ m *memRepos }

func (r supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.m.suppliers = append(r.m.suppliers, s)
	return nil
}
func (supplierRepo) GetByID(context.Context, string, string) (*entity.Supplier, error) {
	return nil, nil
}
func (supplierRepo) ListByUser(context.Context, string, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, InputJSON, DetectFormat("application/json; charset=utf-8", []byte("name\nx")))
	assert.Equal(t, InputCSV, DetectFormat("text/csv", []byte(`[{"a":1}]`)))
	assert.Equal(t, InputJSON, DetectFormat("application/octet-stream", []byte(`[{"name":"Café","price":1}]`)))
	assert.Equal(t, InputCSV, DetectFormat("", []byte("name,price,stock\nCafé,2500,10\nPan,1000,3\n")))
	assert.Equal(t, InputJSON, DetectFormat("", []byte(`  {"name": "roto"`)))
}

func TestImport_ProductsCSV(t *testing.T) {
	repos := &memRepos{}
	uc := NewImportUseCase(repos)
	body := "name,sku,price,stock,tax_rate\nCafé,CAF-1,2500,10,19\n\"Pan, integral\",PAN-1,1000,3,0\n"
	before := testutil.ToFloat64(importRowsTotal.WithLabelValues(dataset.EntityProducts, "imported"))

	out, err := uc.Import(context.Background(), "owner", dataset.EntityProducts, "text/csv", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	require.Len(t, repos.products, 2)
	p := repos.products[1]
	assert.Equal(t, "Pan, integral", p.Name)
	assert.Equal(t, "owner", p.UserID)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1000)))
	assert.True(t, repos.products[0].TaxRate.Equal(decimal.NewFromInt(19)))
	assert.Equal(t, before+2, testutil.ToFloat64(importRowsTotal.WithLabelValues(dataset.EntityProducts, "imported")))
}

func TestImport_SuppliersJSON(t *testing.T) {
	repos := &memRepos{}
	uc := NewImportUseCase(repos)
	body := `[{"name":"Distribuidora","contactPerson":"Luis","phone":"3001112233"}]`

	out, err := uc.Import(context.Background(), "owner", dataset.EntitySuppliers, "", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	require.Len(t, repos.suppliers, 1)
	assert.Equal(t, "Luis", repos.suppliers[0].ContactPerson)
}

func TestImport_ValidationErrorsWriteNothing(t *testing.T) {
	repos := &memRepos{}
	uc := NewImportUseCase(repos)
	body := `[{"price":10,"stock":5},{"name":"Ok","price":"x","stock":1}]`

	_, err := uc.Import(context.Background(), "owner", dataset.EntityProducts, "application/json", []byte(body))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Fila 1: el campo name es obligatorio",
		"Fila 2: el campo price debe ser numérico",
	}, verr.Errors)
	assert.Empty(t, repos.products)
}

func TestImport_RejectsNegativeValuesAndUnknownTaxRate(t *testing.T) {
	repos := &memRepos{}
	uc := NewImportUseCase(repos)
	body := "name,price,stock,tax_rate\nPan,-500,-3,7\n"

	_, err := uc.Import(context.Background(), "owner", dataset.EntityProducts, "text/csv", []byte(body))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Fila 1: el campo price no puede ser negativo",
		"Fila 1: el campo stock no puede ser negativo",
		"Fila 1: el campo tax_rate debe ser 0, 5 o 19",
	}, verr.Errors)
	assert.Empty(t, repos.products)
}

func TestImport_BadInput(t *testing.T) {
	uc := NewImportUseCase(&memRepos{})
	ctx := context.Background()

	_, err := uc.Import(ctx, "owner", dataset.EntityProducts, "application/json", []byte("no es json"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Import(ctx, "owner", dataset.EntityProducts, "text/csv", []byte(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Import(ctx, "owner", "sales", "text/csv", []byte("a\n1"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedDataset)
}

func TestImport_PersistFailureIsAllOrNothing(t *testing.T) {
	repos := &memRepos{failAt: 2}
	uc := NewImportUseCase(repos)
	body := "name,price,stock\nA,1,1\nB,2,2\n"

	_, err := uc.Import(context.Background(), "owner", dataset.EntityProducts, "text/csv", []byte(body))
	require.ErrorIs(t, err, errDuplicate)
	assert.Contains(t, err.Error(), "fila 2")
	assert.Empty(t, repos.products)
}

type fakeDatasets struct {
	rows map[string][]*dataset.Row
}

func (f fakeDatasets) Datasets() []string { return []string{"products", "sales"} }
func (f fakeDatasets) Export(_ context.Context, _ string, name string) ([]*dataset.Row, error) {
	return f.rows[name], nil
}

type fakeReport struct{ title string }

func (f *fakeReport) Render(_ context.Context, title string, _ []*dataset.Row) ([]byte, error) {
	f.title = title
	return []byte("%PDF-1.3"), nil
}

func newExport() (*ExportUseCase, *fakeReport) {
	rows := []*dataset.Row{
		dataset.NewRow().Set("name", "A,B").Set("qty", float64(2)),
	}
	report := &fakeReport{}
	uc := NewExportUseCase(fakeDatasets{rows: map[string][]*dataset.Row{"products": rows}}, report)
	uc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return uc, report
}

func TestExport_Formats(t *testing.T) {
	uc, report := newExport()
	ctx := context.Background()

	csv, err := uc.Export(ctx, "owner", "products", "")
	require.NoError(t, err)
	assert.Equal(t, "products_2026-10-19.csv", csv.Name)
	assert.Equal(t, "name,qty\n\"A,B\",2", string(csv.Content))

	excel, err := uc.Export(ctx, "owner", "products", dataset.FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, "products_2026-10-19.xlsx", excel.Name)
	assert.True(t, strings.HasPrefix(string(excel.Content), "\uFEFF"))
	assert.Contains(t, string(excel.Content), "\"A,B\",2")

	js, err := uc.Export(ctx, "owner", "products", dataset.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", js.ContentType)
	assert.Contains(t, string(js.Content), "\n  {\n    \"name\": \"A,B\"")

	pdf, err := uc.Export(ctx, "owner", "products", dataset.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.Equal(t, "Reporte de productos", report.title)
}

func TestExport_Errors(t *testing.T) {
	uc, _ := newExport()
	ctx := context.Background()

	_, err := uc.Export(ctx, "owner", "products", "xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, "owner", "users", dataset.FormatCSV)
	assert.ErrorIs(t, err, domain.ErrUnsupportedDataset)
}
