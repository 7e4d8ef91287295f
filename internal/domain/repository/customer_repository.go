package repository

import (
	"context"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, userID, id string) (*entity.Customer, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Customer, error)
}
