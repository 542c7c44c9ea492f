package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dmoreno/tasktrack-api/internal/config"
	"github.com/dmoreno/tasktrack-api/internal/platform/logger"
	"github.com/dmoreno/tasktrack-api/internal/platform/postgres"
	"github.com/dmoreno/tasktrack-api/internal/service"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskService service.TaskService
}

// newApplication loads configuration and constructs every component the
// server needs, in dependency order.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, err
	}

	taskStore := postgres.NewPostgresTaskStore(db, log)
	taskService, err := service.NewTaskService(taskStore, log)
	if err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		taskService: taskService,
	}, nil
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", "error", err)
	}
}
