package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// anyArgs n comodines para sentencias cuyo contenido exacto no interesa al test.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

// ─── Productos ───────────────────────────────────────────────────────────────

func TestProductRepo_Create(t *testing.T) {
	t.Run("persiste el producto", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProductRepository(mock)
		now := time.Now()
		p := &entity.Product{ID: "p-1", UserID: "u-1", SKU: "A1", Name: "Café", Price: decimal.NewFromInt(25000), CreatedAt: now, UpdatedAt: now}

		mock.ExpectExec("INSERT INTO products").WithArgs(anyArgs(12)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(context.Background(), p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SKU duplicado devuelve ErrDuplicate", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProductRepository(mock)

		mock.ExpectExec("INSERT INTO products").WithArgs(anyArgs(12)...).WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(context.Background(), &entity.Product{ID: "p-1", UserID: "u-1"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestProductRepo_GetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("u-1", "p-404").
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.GetByID(context.Background(), "u-1", "p-404")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetForUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now()

	rows := mock.NewRows([]string{"id", "user_id", "sku", "name", "description", "category", "price", "cost", "stock", "tax_rate", "created_at", "updated_at"}).
		AddRow("p-1", "u-1", "A1", "Café", "", "bebidas", decimal.NewFromInt(25000), decimal.NewFromInt(12000), decimal.NewFromInt(10), decimal.NewFromInt(19), now, now)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE user_id = \\$1 AND id = \\$2 FOR UPDATE").
		WithArgs("u-1", "p-1").
		WillReturnRows(rows)

	p, err := repo.GetForUpdate(context.Background(), "u-1", "p-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Café", p.Name)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_DecrementStock(t *testing.T) {
	t.Run("descuenta", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProductRepository(mock)
		mock.ExpectExec("UPDATE products SET stock = stock - \\$2").
			WithArgs("p-1", decimal.NewFromInt(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.DecrementStock(context.Background(), "p-1", decimal.NewFromInt(2)))
	})

	t.Run("sin existencias suficientes", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProductRepository(mock)
		mock.ExpectExec("UPDATE products SET stock = stock - \\$2").
			WithArgs("p-1", decimal.NewFromInt(50)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.DecrementStock(context.Background(), "p-1", decimal.NewFromInt(50))
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})
}

// ─── Proveedores (squirrel + scany) ─────────────────────────────────────────

func TestSupplierRepo_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewSupplierRepository(mock)
	now := time.Now()

	rows := mock.NewRows(supplierColumns).
		AddRow("s-1", "u-1", "Lácteos SA", "Marta", "", "", "", now, now).
		AddRow("s-2", "u-1", "Panadería", "Luis", "luis@pan.co", "", "", now, now)
	mock.ExpectQuery("SELECT (.+) FROM suppliers WHERE user_id = \\$1 ORDER BY name LIMIT 50 OFFSET 0").
		WithArgs("u-1").
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "u-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Marta", list[0].ContactPerson)
	assert.Equal(t, "luis@pan.co", list[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierRepo_GetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := NewSupplierRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM suppliers WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("s-9", "u-1").
		WillReturnRows(mock.NewRows(supplierColumns))

	s, err := repo.GetByID(context.Background(), "u-1", "s-9")
	require.NoError(t, err)
	assert.Nil(t, s)
}

// ─── Usuarios ───────────────────────────────────────────────────────────────

func TestUserRepo_Create_EmailDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec("INSERT INTO users").WithArgs(anyArgs(9)...).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.User{ID: "u-1", Email: "a@b.co", Role: entity.RoleCashier})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	rows := mock.NewRows(userColumns).
		AddRow("u-1", "Ana@Tienda.co", "hash", "Ana", "", "admin", "active", now, now)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE lower\\(email\\) = lower\\(\\$1\\) LIMIT 1").
		WithArgs("ana@tienda.co").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "ana@tienda.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateRole_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec("UPDATE users SET role = \\$1").
		WithArgs("manager", "u-404").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateRole(context.Background(), "u-404", entity.RoleManager)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepo_Count(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM users").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

// ─── Ventas ─────────────────────────────────────────────────────────────────

func TestSaleRepo_Create_AsignaConsecutivo(t *testing.T) {
	mock := newMock(t)
	repo := NewSaleRepository(mock)
	sale := &entity.Sale{
		ID: "s-1", UserID: "u-1", PaymentMethod: entity.PaymentCash, CreatedAt: time.Now(),
		Items: []entity.SaleItem{{ID: "i-1", ProductID: "p-1", ProductName: "Café", Quantity: decimal.NewFromInt(1)}},
	}

	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs("u-1").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(number\\), 0\\) \\+ 1 FROM sales").
		WithArgs("u-1").
		WillReturnRows(mock.NewRows([]string{"n"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO sales").WithArgs(anyArgs(12)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO sale_items").WithArgs(anyArgs(9)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), sale))
	assert.Equal(t, int64(7), sale.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── Exportación genérica ────────────────────────────────────────────────────

func TestDatasetRepo_Export(t *testing.T) {
	mock := newMock(t)
	repo := NewDatasetRepository(mock)
	id := [16]byte{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}

	rows := mock.NewRows([]string{"id", "user_id", "name", "price"}).
		AddRow(id, "u-1", "Café", decimal.NewFromInt(25000))
	mock.ExpectQuery("SELECT \\* FROM products WHERE user_id = \\$1 ORDER BY created_at").
		WithArgs("u-1").
		WillReturnRows(rows)

	out, err := repo.Export(context.Background(), "u-1", "products")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"id", "name", "price"}, out[0].Keys())
	v, _ := out[0].Get("id")
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetRepo_Export_TablaNoPermitida(t *testing.T) {
	repo := NewDatasetRepository(newMock(t))
	_, err := repo.Export(context.Background(), "u-1", "users")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDataset)
	_, err = repo.Export(context.Background(), "u-1", "products; DROP TABLE users")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDataset)
}

// ─── Transacciones ───────────────────────────────────────────────────────────

func TestTxRunner_RunSale(t *testing.T) {
	t.Run("hace commit cuando fn no falla", func(t *testing.T) {
		mock := newMock(t)
		runner := NewTxRunner(mock)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := runner.RunSale(context.Background(), func(p repository.ProductRepository, s repository.SaleRepository) error {
			assert.NotNil(t, p)
			assert.NotNil(t, s)
			return nil
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hace rollback y propaga el error", func(t *testing.T) {
		mock := newMock(t)
		runner := NewTxRunner(mock)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := runner.RunSale(context.Background(), func(repository.ProductRepository, repository.SaleRepository) error {
			return domain.ErrInsufficientStock
		})
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
