package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando la fila no existe o pertenece a otro dueño.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (solo dentro de una tx).
	GetForUpdate(ctx context.Context, userID, id string) (*entity.Product, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, error)
	DecrementStock(ctx context.Context, id string, quantity decimal.Decimal) error
}
