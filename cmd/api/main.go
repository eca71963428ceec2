package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hrkone/kuitti-api/internal/application/service"
	"github.com/hrkone/kuitti-api/internal/config"
	"github.com/hrkone/kuitti-api/internal/domain/entity"
	domainRepo "github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/internal/infrastructure/database"
	"github.com/hrkone/kuitti-api/internal/infrastructure/repository"
	"github.com/hrkone/kuitti-api/internal/presentation/http/handler"
	"github.com/hrkone/kuitti-api/internal/presentation/http/routes"
	"github.com/hrkone/kuitti-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Deployment default VAT rate for templates without an override
	if rate, err := decimal.NewFromString(cfg.Receipt.VATRate); err == nil && rate.IsPositive() {
		entity.DefaultVATRate = rate
	}

	// File-backed stores
	templateRepo := repository.NewFileTemplateRepository(cfg.Store.TemplatesDir, cfg.Store.LogosDir)
	settingsRepo, err := repository.NewFileSettingsRepository(cfg.Store.SettingsFile)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}

	// The print journal database is optional; without it printing still
	// works, only history and idempotency replay are disabled.
	var printJobRepo domainRepo.PrintJobRepository
	var idempotencyRepo domainRepo.IdempotencyRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		printJobRepo = repository.NewPrintJobRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	} else {
		log.Printf("Print journal disabled; running without history and idempotency")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	receiptService := service.NewReceiptService(templateRepo, settingsRepo, &cfg.Receipt)
	printerService := service.NewPrinterService(
		thermalPrinter, receiptService, settingsRepo, printJobRepo, &cfg.Receipt, cfg.Printer.Type)
	templateService := service.NewTemplateService(templateRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	journalService := service.NewJournalService(printJobRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Receipt:  handler.NewReceiptHandler(receiptService, printerService, journalService),
		Template: handler.NewTemplateHandler(templateService),
		Printer:  handler.NewPrinterHandler(printerService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
