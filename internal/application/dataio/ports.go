package dataio

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/domain/dataset"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

// ImportTxRunner persiste una importación completa en una sola transacción.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// ReportRenderer genera el reporte PDF tabular de un conjunto exportado.
type ReportRenderer interface {
	Render(ctx context.Context, title string, records []*dataset.Row) ([]byte, error)
}
