package rbacfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

func TestDefault_TablaEmbebida(t *testing.T) {
	table := Default()

	assert.Len(t, table.Modules(entity.RoleAdmin), 14)
	assert.True(t, table.HasModuleAccess(entity.RoleCashier, entity.ModuleSales))
	assert.False(t, table.HasModuleAccess(entity.RoleCashier, entity.ModuleUsers))
	assert.False(t, table.HasModuleAccess(entity.RoleManager, entity.ModuleSettings))
	assert.True(t, table.HasModuleAccess(entity.RoleStaff, entity.ModuleDeliveryNotes))
	assert.False(t, table.HasModuleAccess("", entity.ModuleDashboard))
}

func TestParse_RechazaDesconocidos(t *testing.T) {
	_, err := Parse([]byte("roles:\n  owner:\n    - sales\n"))
	assert.Error(t, err, "rol desconocido")

	_, err = Parse([]byte("roles:\n  cashier:\n    - casino\n"))
	assert.Error(t, err, "módulo desconocido")

	_, err = Parse([]byte("permisos:\n  cashier: [sales]\n"))
	assert.Error(t, err, "campo desconocido")
}

func TestLoad_Archivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  staff: [inventory]\n"), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []entity.Module{entity.ModuleInventory}, table.Modules(entity.RoleStaff))
	assert.False(t, table.HasModuleAccess(entity.RoleAdmin, entity.ModuleSales))

	_, err = Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}
