package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/madhubv/doc-scanner/internal/config"
	"github.com/madhubv/doc-scanner/internal/database"
	"github.com/madhubv/doc-scanner/internal/database/migration"
	handlers "github.com/madhubv/doc-scanner/internal/http/handler"
	"github.com/madhubv/doc-scanner/internal/http/middleware"
	"github.com/madhubv/doc-scanner/internal/ledger"
	"github.com/madhubv/doc-scanner/internal/otel"
	"github.com/madhubv/doc-scanner/internal/repository/postgres"
	"github.com/madhubv/doc-scanner/internal/service"
	"github.com/madhubv/doc-scanner/internal/storage"
)

func main() {
	// Configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.Local

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	archive, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories, ledger, services
	docRepo := postgres.NewDocumentPostgres(db)
	scanRepo := postgres.NewScanPostgres(db)
	accRepo := postgres.NewAccountPostgres(db)
	credRepo := postgres.NewCreditRequestPostgres(db)

	creditLedger := ledger.New(accRepo)

	scanSvc := service.NewScanService(docRepo, scanRepo, creditLedger, archive, cfg.Match.Threshold, cfg.Match.TopK)
	docSvc := service.NewDocumentService(docRepo, archive)
	accSvc := service.NewAccountService(accRepo, cfg.Credits.InitialBalance)
	credSvc := service.NewCreditService(credRepo, accRepo, creditLedger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Request ID first so both the logger and error payloads see it.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	// The default registry also carries the domain counters registered
	// by internal/metrics.
	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, scanSvc, docSvc, accSvc, credSvc)

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
