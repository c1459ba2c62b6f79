package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the server settings read from the environment
type Config struct {
	GRPCAddr       string
	APIToken       string
	StorageDriver  string
	SQLitePath     string
	DBConnStr      string
	SnapshotKey    string
	CurrencySymbol string
	SeedDemo       bool
	RunMigrations  bool
	LogLevel       slog.Level
}

// Load reads the configuration from environment variables, applying defaults
func Load() (Config, error) {
	cfg := Config{
		GRPCAddr:       getEnv("GRPC_ADDR", ":8080"),
		APIToken:       getEnv("API_TOKEN", "dev-token"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:     getEnv("SQLITE_PATH", "pricewise.db"),
		DBConnStr:      postgresConnStr(),
		SnapshotKey:    getEnv("SNAPSHOT_KEY", "default"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "€"),
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: must be one of memory, sqlite, postgres", cfg.StorageDriver)
	}

	var err error
	if cfg.SeedDemo, err = getBool("SEED_DEMO", false); err != nil {
		return Config{}, err
	}
	if cfg.RunMigrations, err = getBool("RUN_MIGRATIONS", false); err != nil {
		return Config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// postgresConnStr builds the connection string from DB_CONN_STR or the
// individual DB_* variables (Docker friendly)
func postgresConnStr() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "pricewise"),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}
