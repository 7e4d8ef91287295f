package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Pos-api/internal/application/auth"
	"github.com/jhoicas/Pos-api/internal/application/dataio"
	"github.com/jhoicas/Pos-api/internal/application/messaging"
	"github.com/jhoicas/Pos-api/internal/application/navigation"
	"github.com/jhoicas/Pos-api/internal/application/sales"
	"github.com/jhoicas/Pos-api/internal/application/usecase"
	"github.com/jhoicas/Pos-api/internal/domain/rbac"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
	"github.com/jhoicas/Pos-api/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/Pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pos-api/internal/infrastructure/rbacfile"
	httpRouter "github.com/jhoicas/Pos-api/internal/interfaces/http"
	"github.com/jhoicas/Pos-api/pkg/config"
	"github.com/jhoicas/Pos-api/pkg/currency"
	"github.com/jhoicas/Pos-api/pkg/logger"
)

const defaultLanguage = "es"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Sesiones revocadas, compuerta de primera venta y preferencias.
	var kv repository.KVStore
	if cfg.Redis.URL != "" {
		redisStore, err := kvstore.Dial(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		kv = redisStore
	} else {
		log.Warn().Msg("REDIS_URL vacío: almacén en memoria, las sesiones revocadas no se comparten entre procesos")
		kv = kvstore.NewMemoryStore()
	}

	var access *rbac.Table
	if cfg.RBACFile != "" {
		access, err = rbacfile.Load(cfg.RBACFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.RBACFile).Msg("cargar tabla de roles")
		}
	} else {
		access = rbacfile.Default()
	}

	money, err := currency.New(cfg.Locale.Locale, cfg.Locale.Currency, cfg.Locale.FractionDigits)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de moneda")
	}
	loc, err := time.LoadLocation(cfg.Locale.TimeZone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Locale.TimeZone).Msg("zona horaria")
	}

	hub := auth.NewSessionHub()
	hub.Subscribe(func(ev auth.SessionEvent) {
		log.Info().Str("event", string(ev.Type)).Str("user_id", ev.UserID).Msg("sesión")
	})
	navigator := navigation.NewNavigator(access, navigation.DispatcherFunc(func(_ context.Context, ev navigation.Event) {
		log.Debug().Str("user_id", ev.UserID).Str("module", string(ev.Module)).Msg("módulo abierto")
	}))

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	datasetRepo := postgres.NewDatasetRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, kv, hub, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	saleUC := sales.NewSaleUseCase(sales.Deps{
		Tx:          txRunner,
		Sales:       saleRepo,
		Customers:   customerRepo,
		Users:       userRepo,
		Gate:        messaging.NewFirstSaleGate(kv, loc, cfg.Locale.CutoffHour),
		Templater:   messaging.NewTemplater(money, loc, cfg.Business.Name),
		Receipts:    infrapdf.NewReceiptGenerator(money, loc),
		Money:       money,
		PhoneRegion: cfg.Locale.PhoneRegion,
		Business: sales.Business{
			Name:    cfg.Business.Name,
			Address: cfg.Business.Address,
			Phone:   cfg.Business.Phone,
			TaxID:   cfg.Business.TaxID,
		},
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // importaciones CSV/JSON
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Navigator:    navigator,
		Access:       access,
		ProductUC:    usecase.NewProductUseCase(productRepo, money),
		CustomerUC:   usecase.NewCustomerUseCase(customerRepo),
		SupplierUC:   usecase.NewSupplierUseCase(supplierRepo),
		UserUC:       usecase.NewUserUseCase(userRepo, hub),
		PreferenceUC: usecase.NewPreferenceUseCase(kv, defaultLanguage),
		SaleUC:       saleUC,
		Importer:     dataio.NewImportUseCase(txRunner),
		Exporter:     dataio.NewExportUseCase(datasetRepo, infrapdf.NewReportGenerator(cfg.App.Name)),
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
