package repository

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// SaleRepository persistencia de ventas (cabecera + líneas).
type SaleRepository interface {
	// Create asigna el consecutivo por dueño y guarda cabecera y líneas. Usar dentro de una tx.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
}
