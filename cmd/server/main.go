package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/jaymalhar/supplyledger/internal/config"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/repository"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/persistence/sqlite"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/storage"
	httpadapter "github.com/jaymalhar/supplyledger/internal/interfaces/http"
	"github.com/jaymalhar/supplyledger/internal/invoice"
	"github.com/jaymalhar/supplyledger/internal/ledger"
	"github.com/jaymalhar/supplyledger/internal/render"
	"github.com/jaymalhar/supplyledger/pkg/database"
	"github.com/jaymalhar/supplyledger/pkg/utils"
)

func main() {
	// Local overrides for development; missing .env is fine
	_ = gotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting supply ledger server",
		zap.Int("port", cfg.Server.Port),
		zap.String("scheme", cfg.Billing.ChallanScheme))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txDB := sqlite.NewDB(db.DB, logger)

	deliveryRepo := repository.NewDeliveryRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	ledgerRepo := repository.NewLedgerRepository(txDB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)
	chequeRepo := repository.NewChequeRepository(db.DB, logger)

	artifacts := storage.NewLocalFileStore(cfg.Billing.OutputDir, logger)
	uploads := storage.NewLocalFileStore(cfg.Storage.UploadsDir, logger)

	importer := ledger.NewImporter(ledgerRepo, cfg.Ledger.ImportBatchSize, logger)

	compiler := invoice.NewCompiler(logger)
	renderer := render.NewSpreadsheetRenderer(logger)
	generator := invoice.NewGenerator(compiler, renderer, invoiceRepo, artifacts, logger)

	handlers := httpadapter.NewHandlers(
		deliveryRepo,
		paymentRepo,
		ledgerRepo,
		invoiceRepo,
		chequeRepo,
		importer,
		compiler,
		generator,
		uploads,
		cfg.Billing.ChallanScheme,
		logger,
	)

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server exited")
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "configs/config.yaml"
}
