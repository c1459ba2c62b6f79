package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/pricewise/pricewise-backend/internal/adapter/grpc"
	"github.com/pricewise/pricewise-backend/internal/adapter/repository/memory"
	"github.com/pricewise/pricewise-backend/internal/adapter/repository/postgres"
	"github.com/pricewise/pricewise-backend/internal/adapter/repository/sqlite"
	"github.com/pricewise/pricewise-backend/internal/config"
	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/catalog"
	"github.com/pricewise/pricewise-backend/internal/usecase/dashboard"
	"github.com/pricewise/pricewise-backend/internal/usecase/seeder"
)

func main() {
	_ = godotenv.Load() // load .env if present; not fatal if missing

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// 1. Setup storage
	repo, closer, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	// 2. Initialize Services (Use Cases)
	catalogService := catalog.NewCatalogService(repo, cfg.SnapshotKey, logger)
	if err := catalogService.Load(ctx); err != nil {
		return err
	}
	dashboardService := dashboard.NewDashboardService(catalogService)

	if cfg.SeedDemo {
		seeded, err := seeder.NewCatalogSeeder(catalogService).Seed(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed demo catalog: %w", err)
		}
		logger.Info("demo catalog seeding finished", "seeded", seeded)
	}

	// 3. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	grpcAdapter := grpcadapter.NewServer(catalogService, dashboardService, cfg.CurrencySymbol)
	grpcadapter.RegisterPriceServiceServer(grpcServer, grpcAdapter)

	// No file descriptor is registered for PriceService, so reflection can list it but not describe it
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPCAddr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr, "storage", cfg.StorageDriver)
		serveErr <- grpcServer.Serve(lis)
	}()

	// Graceful shutdown
	return waitForShutdown(grpcServer, serveErr, logger)
}

// openRepository connects the configured snapshot storage
func openRepository(cfg config.Config, logger *slog.Logger) (domain.SnapshotRepository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.NewSnapshotRepository(), closerFunc(func() error { return nil }), nil

	case config.DriverSQLite:
		db, err := sqlite.OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSnapshotRepository(db), db, nil

	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.DBConnStr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(); err != nil {
				db.Close()
				return nil, nil, err
			}
			logger.Info("database migrations applied")
		}
		return postgres.NewSnapshotRepository(db), db, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, serveErr <-chan error, logger *slog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to serve gRPC server: %w", err)
	case sig := <-sigChan:
		logger.Info("received signal, shutting down gracefully", "signal", sig.String())
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		logger.Warn("graceful stop timed out, forcing shutdown")
		grpcServer.Stop()
	}

	logger.Info("gRPC server stopped")
	return nil
}
