package navigation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
	"github.com/jhoicas/Pos-api/internal/domain/rbac"
)

func testTable(t *testing.T) *rbac.Table {
	t.Helper()
	table, err := rbac.NewTable(map[entity.Role][]entity.Module{
		entity.RoleAdmin:   {entity.ModuleDashboard, entity.ModuleSales, entity.ModuleUsers, entity.ModuleSettings},
		entity.RoleCashier: {entity.ModuleSales, entity.ModuleDashboard, entity.ModuleCustomers},
		entity.RoleStaff:   {},
	})
	require.NoError(t, err)
	return table
}

func modules(entries []Entry) []entity.Module {
	out := make([]entity.Module, len(entries))
	for i, e := range entries {
		out[i] = e.Module
	}
	return out
}

func TestMenu_OrdenDelCatalogo(t *testing.T) {
	n := NewNavigator(testTable(t), nil)

	menu := n.Menu(entity.RoleCashier)
	assert.True(t, menu.Resolved)
	assert.Equal(t, entity.RoleCashier, menu.Role)
	assert.Equal(t, []entity.Module{entity.ModuleDashboard, entity.ModuleSales, entity.ModuleCustomers}, modules(menu.Modules))
}

func TestMenu_RolSinResolverVsSinModulos(t *testing.T) {
	n := NewNavigator(testTable(t), nil)

	pending := n.Menu("")
	assert.False(t, pending.Resolved)
	assert.Empty(t, pending.Modules)

	none := n.Menu(entity.RoleStaff)
	assert.True(t, none.Resolved)
	assert.Empty(t, none.Modules)

	unknown := n.Menu(entity.Role("owner"))
	assert.True(t, unknown.Resolved)
	assert.Empty(t, unknown.Modules)
}

func TestOpen(t *testing.T) {
	var got []Event
	n := NewNavigator(testTable(t), DispatcherFunc(func(_ context.Context, ev Event) { got = append(got, ev) }))
	fixed := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }
	ctx := context.Background()

	t.Run("despacha el evento cuando hay acceso", func(t *testing.T) {
		ev, err := n.Open(ctx, "u-1", entity.RoleCashier, entity.ModuleSales)
		require.NoError(t, err)
		assert.Equal(t, "/sales", ev.Path)
		assert.Equal(t, fixed, ev.OpenedAt)
		require.Len(t, got, 1)
		assert.Equal(t, "u-1", got[0].UserID)
	})

	t.Run("rol vacío", func(t *testing.T) {
		_, err := n.Open(ctx, "u-1", "", entity.ModuleSales)
		assert.ErrorIs(t, err, domain.ErrRoleUnresolved)
	})

	t.Run("sin permiso", func(t *testing.T) {
		_, err := n.Open(ctx, "u-1", entity.RoleCashier, entity.ModuleUsers)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("módulo inexistente", func(t *testing.T) {
		_, err := n.Open(ctx, "u-1", entity.RoleAdmin, entity.Module("casino"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.Len(t, got, 1, "los intentos fallidos no despachan eventos")
}

func TestCatalog_CubreTodosLosModulos(t *testing.T) {
	for _, e := range Catalog() {
		assert.True(t, e.Module.Valid(), e.Module)
	}
	assert.Len(t, Catalog(), 14)
}
