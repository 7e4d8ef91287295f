package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador (pool o tx).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create asigna el consecutivo del dueño y persiste cabecera y líneas.
// El advisory lock serializa las ventas concurrentes del mismo dueño hasta el fin de la tx.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, s.UserID); err != nil {
		return fmt.Errorf("lock sale number: %w", err)
	}
	if err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM sales WHERE user_id = $1`, s.UserID,
	).Scan(&s.Number); err != nil {
		return fmt.Errorf("next sale number: %w", err)
	}

	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, user_id, customer_id, number, subtotal, tax_total, discount, total, payment_method, amount_paid, change, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.UserID, s.CustomerID, s.Number, s.Subtotal, s.TaxTotal, s.Discount, s.Total,
		s.PaymentMethod, s.AmountPaid, s.Change, s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, user_id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, s.UserID, s.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.TaxRate, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta del dueño con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, customer_id, number, subtotal, tax_total, discount, total, payment_method, amount_paid, change, created_at
		FROM sales WHERE user_id = $1 AND id = $2`, userID, id,
	).Scan(&s.ID, &s.UserID, &s.CustomerID, &s.Number, &s.Subtotal, &s.TaxTotal, &s.Discount, &s.Total,
		&s.PaymentMethod, &s.AmountPaid, &s.Change, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY position`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}
