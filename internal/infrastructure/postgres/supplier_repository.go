package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

var supplierColumns = []string{"id", "user_id", "name", "contact_person", "email", "phone", "address", "created_at", "updated_at"}

// SupplierRepo proveedores sobre PostgreSQL; consultas armadas con squirrel y escaneo con scany.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador (pool o tx).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query, args, err := psql.Insert("suppliers").
		Columns(supplierColumns...).
		Values(s.ID, s.UserID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert supplier: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor del dueño.
func (r *SupplierRepo) GetByID(ctx context.Context, userID, id string) (*entity.Supplier, error) {
	query, args, err := psql.Select(supplierColumns...).
		From("suppliers").
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select supplier: %w", err)
	}
	var s entity.Supplier
	if err := pgxscan.Get(ctx, r.q, &s, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ListByUser lista proveedores del dueño con paginación.
func (r *SupplierRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Supplier, error) {
	limit, offset = pageSize(limit, offset)
	query, args, err := psql.Select(supplierColumns...).
		From("suppliers").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suppliers: %w", err)
	}
	list := []*entity.Supplier{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return list, nil
}
