package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pricewise/pricewise-backend/internal/adapter/repository/postgres"
	"github.com/pricewise/pricewise-backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	slog.Info("applying migrations")
	return db.Migrate()
}
