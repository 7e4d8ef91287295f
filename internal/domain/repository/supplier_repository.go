package repository

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, userID, id string) (*entity.Supplier, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Supplier, error)
}
