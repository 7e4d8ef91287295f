package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/application/auth"
	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/pkg/currency"
)

type productRepo struct {
	items []*entity.Product
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	for _, it := range r.items {
		if it.UserID == p.UserID && p.SKU != "" && it.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.items = append(r.items, p)
	return nil
}
func (r *productRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	for _, it := range r.items {
		if it.ID == id && it.UserID == userID {
			return it, nil
		}
	}
	return nil, nil
}
func (r *productRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, userID, id)
}
func (r *productRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (r *productRepo) DecrementStock(context.Context, string, decimal.Decimal) error { return nil }

func TestProductUseCase(t *testing.T) {
	repo := &productRepo{}
	uc := NewProductUseCase(repo, currency.MustNew("es-CO", "COP", 0))
	ctx := context.Background()

	created, err := uc.Create(ctx, "owner", dto.CreateProductRequest{
		SKU: " CAF-1 ", Name: "Café", Price: decimal.NewFromInt(25000), Stock: decimal.NewFromInt(3), TaxRate: decimal.NewFromInt(19),
	})
	require.NoError(t, err)
	assert.Equal(t, "CAF-1", created.SKU)
	assert.Equal(t, "$ 25.000", created.PriceFormatted)

	_, err = uc.Create(ctx, "owner", dto.CreateProductRequest{SKU: "CAF-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "owner", dto.CreateProductRequest{Name: "IVA raro", TaxRate: decimal.NewFromInt(16)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "owner", dto.CreateProductRequest{Name: "Negativo", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, "owner", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café", got.Name)

	_, err = uc.GetByID(ctx, "otro", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "owner", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

type userRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (r *userRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *userRepo) Count(context.Context) (int64, error)                     { return int64(len(r.users)), nil }
func (r *userRepo) List(context.Context, int, int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}
func (r *userRepo) UpdateRole(_ context.Context, id string, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func TestUserUseCase_UpdateRole(t *testing.T) {
	repo := &userRepo{users: map[string]*entity.User{
		"admin": {ID: "admin", Role: entity.RoleAdmin, PasswordHash: "x"},
		"caja":  {ID: "caja", Role: entity.RoleCashier, PasswordHash: "y"},
	}}
	hub := auth.NewSessionHub()
	var events []auth.SessionEvent
	hub.Subscribe(func(ev auth.SessionEvent) { events = append(events, ev) })
	uc := NewUserUseCase(repo, hub)
	ctx := context.Background()

	out, err := uc.UpdateRole(ctx, "admin", "caja", entity.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, "manager", out.Role)
	require.Len(t, events, 1)
	assert.Equal(t, auth.EventUserUpdated, events[0].Type)
	assert.Equal(t, entity.RoleManager, events[0].User.Role)
	assert.Empty(t, events[0].User.PasswordHash)

	_, err = uc.UpdateRole(ctx, "admin", "admin", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateRole(ctx, "admin", "caja", entity.Role("root"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateRole(ctx, "admin", "nadie", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Len(t, events, 1)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
}

type kv struct{ data map[string]string }

func (k *kv) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := k.data[key]
	return v, ok, nil
}
func (k *kv) Set(_ context.Context, key, value string, _ time.Duration) error {
	k.data[key] = value
	return nil
}
func (k *kv) Delete(_ context.Context, key string) error {
	delete(k.data, key)
	return nil
}

func TestPreferenceUseCase_Language(t *testing.T) {
	store := &kv{data: map[string]string{}}
	uc := NewPreferenceUseCase(store, "es-CO")
	ctx := context.Background()

	lang, err := uc.Language(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "es-CO", lang)

	saved, err := uc.SetLanguage(ctx, "u1", "en-us")
	require.NoError(t, err)
	assert.Equal(t, "en-US", saved)

	lang, err = uc.Language(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "en-US", lang)

	_, err = uc.SetLanguage(ctx, "u1", "no es un idioma")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
