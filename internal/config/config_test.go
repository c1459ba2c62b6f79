package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"GRPC_ADDR", "API_TOKEN", "STORAGE_DRIVER", "SQLITE_PATH", "DB_CONN_STR",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"SNAPSHOT_KEY", "CURRENCY_SYMBOL", "SEED_DEMO", "RUN_MIGRATIONS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "pricewise.db", cfg.SQLitePath)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=pricewise sslmode=disable", cfg.DBConnStr)
	assert.Equal(t, "default", cfg.SnapshotKey)
	assert.Equal(t, "€", cfg.CurrencySymbol)
	assert.False(t, cfg.SeedDemo)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_ADDR", ":9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "prices")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("RUN_MIGRATIONS", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.GRPCAddr)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Contains(t, cfg.DBConnStr, "host=db")
	assert.Contains(t, cfg.DBConnStr, "dbname=prices")
	assert.True(t, cfg.SeedDemo)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_ConnStrWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_CONN_STR", "postgres://u:p@h/db")
	t.Setenv("DB_HOST", "ignored")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h/db", cfg.DBConnStr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Unknown Driver", "STORAGE_DRIVER", "mongo"},
		{"Bad Bool", "SEED_DEMO", "maybe"},
		{"Bad Level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
