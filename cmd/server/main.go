package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thcheetah777/engine/internal/api"
	"github.com/thcheetah777/engine/internal/config"
	"github.com/thcheetah777/engine/internal/db"
	"github.com/thcheetah777/engine/internal/rng"
	"github.com/thcheetah777/engine/internal/table"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	setupLogging(cfg.Logging)
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	// Initialize database
	database, err := initializeDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	// Run migrations
	log.Debug("Running database migrations")
	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}
	log.Info("Database migrations completed")

	// Initialize roll generator
	var r *rng.Rand
	if cfg.Rolls.Seed != 0 {
		r = rng.New(cfg.Rolls.Seed)
	} else {
		r = rng.NewTimeSeeded()
	}
	log.Debug("Random generator initialized", "seed", r.Seed())

	// Initialize table manager
	log.Debug("Initializing table manager")
	tableManager := table.NewManager(database, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed tables
	if cfg.Rolls.TablesPath != "" {
		log.Debug("Loading table definitions", "path", cfg.Rolls.TablesPath)
		if _, err := tableManager.LoadDefinitions(ctx, cfg.Rolls.TablesPath); err != nil {
			log.Fatal("Failed to load table definitions", "error", err, "path", cfg.Rolls.TablesPath)
		}
	}

	// Start background services
	go startBackgroundServices(ctx, tableManager, cfg.Rolls)
	log.Debug("Background services started")

	// Initialize API handlers
	handler := api.NewHandler(tableManager, cfg.Rolls.MaxPerRequest)
	router := api.SetupRoutes(handler, cfg.Rolls.RequestsPerMinute)
	log.Debug("API routes configured")

	// Create HTTP server
	log.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting roll server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	log.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) {
	// Set log level
	switch cfg.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warn("Invalid log level, using info", "level", cfg.Level)
		log.SetLevel(log.InfoLevel)
	}

	// Configure output format
	switch {
	case cfg.Format == "json" && cfg.Structured:
		log.SetFormatter(log.JSONFormatter)
	case cfg.Format == "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	}

	log.SetPrefix("[engine] ")
}

func initializeDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	database, err := db.Open(cfg.Path)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	log.Debug("Configuring database connection pool", "max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns, "conn_max_lifetime", cfg.ConnMaxLifetime)
	database.SetMaxOpenConns(cfg.MaxOpenConns)
	database.SetMaxIdleConns(cfg.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("Database initialized", "path", cfg.Path)
	return database, nil
}

func startBackgroundServices(ctx context.Context, tableManager *table.Manager, cfg config.RollConfig) {
	if cfg.PruneInterval <= 0 || cfg.HistoryRetention <= 0 {
		log.Info("Roll history pruning disabled")
		return
	}

	log.Debug("Starting roll history prune ticker", "interval", cfg.PruneInterval, "retention", cfg.HistoryRetention)
	pruneTicker := time.NewTicker(cfg.PruneInterval)
	defer pruneTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Background services stopped")
			return

		case <-pruneTicker.C:
			start := time.Now()
			deleted, err := tableManager.PruneHistory(ctx, cfg.HistoryRetention)
			if err != nil {
				log.Error("Failed to prune roll history", "error", err, "duration", time.Since(start))
				continue
			}
			log.Debug("Roll history pruned", "deleted", deleted, "duration", time.Since(start))
		}
	}
}
