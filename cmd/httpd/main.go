// Command httpd runs the ticket triage HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/ticket-triage/internal/api"
	"github.com/jonesrussell/ticket-triage/internal/classifier"
	"github.com/jonesrussell/ticket-triage/internal/config"
	"github.com/jonesrussell/ticket-triage/internal/database"
	"github.com/jonesrussell/ticket-triage/internal/logger"
	"github.com/jonesrussell/ticket-triage/internal/logging"
	"github.com/jonesrussell/ticket-triage/internal/processor"
	"github.com/jonesrussell/ticket-triage/internal/telemetry"
)

const (
	defaultConfigPath = "config.yml"
	shutdownTimeout   = 30 * time.Second
	migrationsDir     = "migrations"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	defer func() { _ = log.Sync() }()

	log.Info("starting ticket triage service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	tel := telemetry.NewProvider()

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", logger.Error(err))
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.Migrate {
		if err := database.Migrate(db, migrationsDir); err != nil {
			log.Fatal("database migration failed", logger.Error(err))
		}
		log.Info("database migrations applied")
	}

	ticketRepo := database.NewTicketRepository(db)
	historyRepo := database.NewHistoryRepository(db)

	chain := classifier.NewChain(cfg, log, tel)

	kvLog := logging.NewAdapter(log)
	ticketProcessor := processor.NewTicketProcessor(chain, ticketRepo, historyRepo, tel, kvLog)

	handler := api.NewHandler(ticketProcessor, historyRepo, ticketRepo, kvLog, cfg.Service.Name, cfg.Service.Version)

	server := api.NewServer(api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, kvLog, func(router *gin.Engine) {
		api.SetupRoutes(router, handler, tel)
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Error("server error", logger.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", logger.Error(err))
			os.Exit(1)
		}

		log.Info("server stopped gracefully")
	}
}
