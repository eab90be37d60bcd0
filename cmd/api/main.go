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

	appanalytics "github.com/jhoicas/Ristoranti-api/internal/application/analytics"
	"github.com/jhoicas/Ristoranti-api/internal/application/auth"
	"github.com/jhoicas/Ristoranti-api/internal/application/banking"
	"github.com/jhoicas/Ristoranti-api/internal/application/fatture"
	"github.com/jhoicas/Ristoranti-api/internal/application/planday"
	"github.com/jhoicas/Ristoranti-api/internal/application/usecase"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/cache"
	infrafattura "github.com/jhoicas/Ristoranti-api/internal/infrastructure/fatturapa"
	infrapdf "github.com/jhoicas/Ristoranti-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/storage"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Ristoranti-api/internal/interfaces/http"
	"github.com/jhoicas/Ristoranti-api/pkg/config"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	revenueRepo := postgres.NewRevenueRepository(pool)
	commissionRepo := postgres.NewCommissionRuleRepository(pool)
	fixedCostRepo := postgres.NewFixedCostRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceRepo := postgres.NewPriceHistoryRepository(pool)
	importRepo := postgres.NewInvoiceImportRepository(pool)
	bankRepo := postgres.NewBankTransactionRepository(pool)
	ruleRepo := postgres.NewRuleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del dashboard: opcional. Sin Redis el caso de uso calcula siempre.
	var summaryCache appanalytics.SummaryCache
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin caché")
		} else {
			defer rdb.Close()
			summaryCache = cache.NewRedisSummaryCache(rdb)
		}
	}

	// Archivo de los XML importados en S3: opcional.
	var archiver fatture.Archiver
	if cfg.Storage.Enabled() {
		s3Archiver, err := storage.NewS3Archiver(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de S3")
		}
		archiver = s3Archiver
	}

	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	shiftUC := planday.NewShiftUseCase(shiftRepo, userRepo, storeRepo, infrapdf.NewMarotoSchedulePDFGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(
		storeRepo, revenueRepo, shiftRepo, userRepo, commissionRepo,
		summaryCache, cfg.Redis.DashboardTTL(), log,
	)
	costReportUC := appanalytics.NewCostReportUseCase(storeRepo, fixedCostRepo, revenueRepo, shiftRepo, userRepo, commissionRepo)
	bankUC := banking.NewBankUseCase(bankRepo, ruleRepo, xlsx.NewStatementReader(), log)
	importUC := fatture.NewImportUseCase(
		supplierRepo, importRepo, txRunner,
		infrafattura.NewParser(),
		infrafattura.NewHTTPFetcher(cfg.Import.HTTPTimeout(), cfg.Import.MaxXMLBytes),
		archiver, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Import.MaxXMLBytes) + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ristoranti API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		StoreUC:           usecase.NewStoreUseCase(storeRepo),
		UserUC:            usecase.NewUserUseCase(userRepo),
		ShiftUC:           shiftUC,
		RevenueUC:         usecase.NewRevenueUseCase(revenueRepo, commissionRepo),
		FixedCostUC:       usecase.NewFixedCostUseCase(fixedCostRepo),
		SupplierUC:        usecase.NewSupplierUseCase(supplierRepo, productRepo, priceRepo),
		CostReportUC:      costReportUC,
		DashboardUC:       dashboardUC,
		CannibalizationUC: appanalytics.NewCannibalizationUseCase(storeRepo, revenueRepo),
		BankUC:            bankUC,
		ImportUC:          importUC,
		Stores:            storeRepo,
		JWTSecret:         cfg.JWT.Secret,
		MaxXMLBytes:       cfg.Import.MaxXMLBytes,
		Log:               log,
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
