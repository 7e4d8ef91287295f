// Package navigation arma el menú de módulos visible para un rol y emite los
// eventos de navegación cuando el usuario abre un módulo.
package navigation

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// Entry módulo del catálogo con su título y ruta en el cliente.
type Entry struct {
	Module entity.Module
	Title  string
	Path   string
}

// catalog orden fijo del menú.
var catalog = []Entry{
	{entity.ModuleDashboard, "Panel", "/dashboard"},
	{entity.ModuleSales, "Ventas", "/sales"},
	{entity.ModuleInventory, "Inventario", "/inventory"},
	{entity.ModulePurchasing, "Compras", "/purchasing"},
	{entity.ModuleFinance, "Finanzas", "/finance"},
	{entity.ModuleCustomers, "Clientes", "/customers"},
	{entity.ModuleSuppliers, "Proveedores", "/suppliers"},
	{entity.ModuleReports, "Reportes", "/reports"},
	{entity.ModuleExpenses, "Gastos", "/expenses"},
	{entity.ModuleTaxes, "Impuestos", "/taxes"},
	{entity.ModuleDeliveryNotes, "Remisiones", "/delivery-notes"},
	{entity.ModuleAssets, "Activos", "/assets"},
	{entity.ModuleUsers, "Usuarios", "/users"},
	{entity.ModuleSettings, "Configuración", "/settings"},
}

// Catalog copia del catálogo en orden de menú.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// AccessChecker decide si un rol accede a un módulo (lo implementa *rbac.Table).
type AccessChecker interface {
	HasModuleAccess(role entity.Role, module entity.Module) bool
}

// MenuState menú visible. Resolved=false significa que el rol aún se está resolviendo,
// distinto de "resuelto sin módulos".
type MenuState struct {
	Resolved bool
	Role     entity.Role
	Modules  []Entry
}

// Event navegación hacia un módulo.
type Event struct {
	UserID   string
	Module   entity.Module
	Path     string
	OpenedAt time.Time
}

// Dispatcher recibe los eventos de navegación (logger, bus, cliente).
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// DispatcherFunc adapta una función a Dispatcher.
type DispatcherFunc func(ctx context.Context, ev Event)

// Dispatch implementa Dispatcher.
func (f DispatcherFunc) Dispatch(ctx context.Context, ev Event) { f(ctx, ev) }

// Navigator filtra el catálogo por rol y despacha eventos de navegación.
type Navigator struct {
	access     AccessChecker
	dispatcher Dispatcher
	now        func() time.Time
}

// NewNavigator construye el navegador. dispatcher puede ser nil.
func NewNavigator(access AccessChecker, dispatcher Dispatcher) *Navigator {
	return &Navigator{access: access, dispatcher: dispatcher, now: time.Now}
}

// Menu módulos visibles para el rol, en el orden del catálogo.
func (n *Navigator) Menu(role entity.Role) MenuState {
	if role == "" {
		return MenuState{Resolved: false, Modules: []Entry{}}
	}
	visible := lo.Filter(catalog, func(e Entry, _ int) bool {
		return n.access.HasModuleAccess(role, e.Module)
	})
	return MenuState{Resolved: true, Role: role, Modules: visible}
}

// Open valida el acceso, emite el evento y lo devuelve.
func (n *Navigator) Open(ctx context.Context, userID string, role entity.Role, module entity.Module) (Event, error) {
	if role == "" {
		return Event{}, domain.ErrRoleUnresolved
	}
	entry, ok := lo.Find(catalog, func(e Entry) bool { return e.Module == module })
	if !ok {
		return Event{}, domain.ErrNotFound
	}
	if !n.access.HasModuleAccess(role, module) {
		return Event{}, domain.ErrForbidden
	}
	ev := Event{UserID: userID, Module: module, Path: entry.Path, OpenedAt: n.now()}
	if n.dispatcher != nil {
		n.dispatcher.Dispatch(ctx, ev)
	}
	return ev, nil
}
