package sales

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos ligados a ella.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptRenderer genera el PDF del tiquete de caja.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, r *entity.Receipt) ([]byte, error)
}

// Business datos del negocio impresos en el recibo.
type Business struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}
