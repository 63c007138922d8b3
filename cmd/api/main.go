package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	_ "github.com/jhoicas/Contable-api/docs"
	appanalytics "github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/cache"
	"github.com/jhoicas/Contable-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// @title                       Contable API
// @version                     1.0
// @description                 API contable multiempresa: terceros, inventario, ventas, compras, libro contable, dashboard y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.MigrateOnStart {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("migrador")
		}
		if err := mg.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = mg.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis opcional: sin REDIS_ADDR el caché y la lista de revocación viven en memoria.
	var (
		respCache ports.Cache
		revoker   ports.TokenRevoker
		health    = map[string]httpRouter.Pinger{"database": pool}
	)
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		redisCache := cache.NewRedisCache(client)
		respCache = redisCache
		revoker = cache.NewRedisRevoker(client)
		health["redis"] = redisCache
	} else {
		mem := cache.NewMemoryStore()
		respCache, revoker = mem, mem
		log.Warn().Msg("REDIS_ADDR vacío: caché y revocación de tokens en memoria")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	categoryRepo := postgres.NewAccountCategoryRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	documentRepos := map[entity.DocumentKind]*postgres.DocumentRepo{}
	for _, k := range []entity.DocumentKind{
		entity.KindSalesQuotation, entity.KindSalesOrder, entity.KindSalesInvoice,
		entity.KindPurchaseOrder, entity.KindPurchaseInvoice,
	} {
		documentRepos[k] = postgres.NewDocumentRepository(pool, k)
	}
	documents := map[entity.DocumentKind]*billing.DocumentUseCase{}
	for k, repo := range documentRepos {
		deps := billing.DocumentDeps{
			Documents: repo,
			Parties:   customerRepo,
			Products:  productRepo,
			Sequences: sequenceRepo,
		}
		if !k.IsSales() {
			deps.Parties = vendorRepo
		}
		if src, ok := k.SourceKind(); ok {
			deps.Sources = documentRepos[src]
		}
		if k.IsInvoice() {
			deps.Payments = paymentRepo
		}
		documents[k] = billing.NewDocumentUseCase(deps)
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, revoker, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	printUC := billing.NewPrintUseCase(
		documentRepos[entity.KindSalesInvoice], companyRepo, customerRepo, productRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Locale), ubl.NewInvoiceBuilder(),
	)
	reportUC := appanalytics.NewReportUseCase(analyticsRepo, stockRepo, companyRepo, map[string]appanalytics.TableRenderer{
		appanalytics.FormatXLSX: export.NewXLSXRenderer(),
		appanalytics.FormatPDF:  infrapdf.NewReportRenderer(),
	}, cfg.App.Locale)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Contable API",
	}))

	app.Get("/health", httpRouter.Health(health))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo, categoryRepo),
		UserUC:      usecase.NewUserUseCase(userRepo),
		CustomerUC:  usecase.NewPartyUseCase(customerRepo, paymentRepo, entity.PaymentTypeCustomer),
		VendorUC:    usecase.NewPartyUseCase(vendorRepo, paymentRepo, entity.PaymentTypeVendor),
		ProductUC:   usecase.NewProductUseCase(productRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo),
		MovementUC:  inventory.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo),
		InventoryUC: inventory.NewQueryUseCase(stockRepo, movementRepo),
		AccountUC:   usecase.NewAccountUseCase(categoryRepo, accountRepo),
		JournalUC:   usecase.NewJournalUseCase(journalRepo, accountRepo, transactionRepo, sequenceRepo),
		PaymentUC: usecase.NewPaymentUseCase(usecase.PaymentDeps{
			Payments:         paymentRepo,
			Accounts:         accountRepo,
			Customers:        customerRepo,
			Vendors:          vendorRepo,
			SalesInvoices:    documentRepos[entity.KindSalesInvoice],
			PurchaseInvoices: documentRepos[entity.KindPurchaseInvoice],
			Sequences:        sequenceRepo,
		}),
		TransactionUC: usecase.NewTransactionUseCase(transactionRepo, accountRepo, sequenceRepo),
		Documents:     documents,
		PrintUC:       printUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(analyticsRepo, respCache, cfg.Cache.TTL()),
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
		Revoker:       revoker,
		Users:         userRepo,
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
