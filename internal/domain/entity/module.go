package entity

// Module identificador opaco de un área funcional. Catálogo estático, no se crea en runtime.
type Module string

// Catálogo de módulos de la aplicación.
const (
	ModuleDashboard     Module = "dashboard"
	ModuleSales         Module = "sales"
	ModuleInventory     Module = "inventory"
	ModulePurchasing    Module = "purchasing"
	ModuleFinance       Module = "finance"
	ModuleCustomers     Module = "customers"
	ModuleSuppliers     Module = "suppliers"
	ModuleReports       Module = "reports"
	ModuleExpenses      Module = "expenses"
	ModuleTaxes         Module = "taxes"
	ModuleDeliveryNotes Module = "delivery_notes"
	ModuleAssets        Module = "assets"
	ModuleUsers         Module = "users"
	ModuleSettings      Module = "settings"
)

var knownModules = map[Module]struct{}{
	ModuleDashboard: {}, ModuleSales: {}, ModuleInventory: {}, ModulePurchasing: {},
	ModuleFinance: {}, ModuleCustomers: {}, ModuleSuppliers: {}, ModuleReports: {},
	ModuleExpenses: {}, ModuleTaxes: {}, ModuleDeliveryNotes: {}, ModuleAssets: {},
	ModuleUsers: {}, ModuleSettings: {},
}

// Valid informa si m pertenece al catálogo.
func (m Module) Valid() bool {
	_, ok := knownModules[m]
	return ok
}
