package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Pos-api/internal/application/auth"
	"github.com/jhoicas/Pos-api/internal/application/dataio"
	"github.com/jhoicas/Pos-api/internal/application/dto"
	"github.com/jhoicas/Pos-api/internal/application/navigation"
	"github.com/jhoicas/Pos-api/internal/application/sales"
	"github.com/jhoicas/Pos-api/internal/application/usecase"
	"github.com/jhoicas/Pos-api/internal/domain/dataset"
	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Navigator    *navigation.Navigator
	Access       navigation.AccessChecker
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *usecase.CustomerUseCase
	SupplierUC   *usecase.SupplierUseCase
	UserUC       *usecase.UserUseCase
	PreferenceUC *usecase.PreferenceUseCase
	SaleUC       *sales.SaleUseCase
	Importer     *dataio.ImportUseCase
	Exporter     *dataio.ExportUseCase
	JWTSecret    string
}

// importModules módulo que habilita importar cada entidad.
var importModules = map[string]entity.Module{
	dataset.EntityProducts:  entity.ModuleInventory,
	dataset.EntityCustomers: entity.ModuleCustomers,
	dataset.EntitySuppliers: entity.ModuleSuppliers,
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", MetricsMiddleware())

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Get("/events", requireAuth, authHandler.Events)

	protected := api.Group("/", requireAuth)
	gate := func(m entity.Module) fiber.Handler { return RequireModule(m, deps.Access) }

	moduleHandler := NewModuleHandler(deps.Navigator)
	protected.Get("/modules", moduleHandler.Menu)
	protected.Post("/modules/:module/open", moduleHandler.Open)

	products := protected.Group("/products", gate(entity.ModuleInventory))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	customers := protected.Group("/customers", gate(entity.ModuleCustomers))
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	suppliers := protected.Group("/suppliers", gate(entity.ModuleSuppliers))
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	salesGroup := protected.Group("/sales", gate(entity.ModuleSales))
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id/whatsapp", saleHandler.WhatsApp)

	dataHandler := NewDataIOHandler(deps.Importer, deps.Exporter)
	protected.Post("/import/:entity", requireImportModule(deps.Access), dataHandler.Import)
	exports := protected.Group("/export", gate(entity.ModuleReports))
	exports.Get("/", dataHandler.Datasets)
	exports.Get("/:dataset", dataHandler.Export)

	preferenceHandler := NewPreferenceHandler(deps.PreferenceUC)
	protected.Get("/preferences/language", preferenceHandler.GetLanguage)
	protected.Put("/preferences/language", preferenceHandler.SetLanguage)

	users := protected.Group("/users", gate(entity.ModuleUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
}

// requireImportModule aplica RequireModule según la entidad de la ruta.
func requireImportModule(checker navigation.AccessChecker) fiber.Handler {
	gates := make(map[string]fiber.Handler, len(importModules))
	for name, m := range importModules {
		gates[name] = RequireModule(m, checker)
	}
	return func(c *fiber.Ctx) error {
		gate, ok := gates[c.Params("entity")]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "UNSUPPORTED_DATASET",
				Message: "solo se importan products, customers y suppliers",
			})
		}
		return gate(c)
	}
}
