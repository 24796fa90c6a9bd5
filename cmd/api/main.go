package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pc-park/internal/catalog"
	"pc-park/internal/config"
	"pc-park/internal/database"
	"pc-park/internal/logger"
	"pc-park/internal/repository"
	"pc-park/internal/server"
	"pc-park/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

// openDeps connects the backends selected by cfg.
func openDeps(ctx context.Context, cfg *config.Config, log *zap.Logger) (server.Deps, error) {
	var deps server.Deps

	if cfg.NeedsDatabase() {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return deps, err
		}
		deps.DB = db
		log.Info("Database health check", zap.Any("health", db.Health(ctx)))

		if err := database.RunMigrations(db.DB(), "migrations", log); err != nil {
			return deps, err
		}
	}

	if cfg.Storage.Backend == config.StorageRedis {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			return deps, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	switch cfg.Storage.Backend {
	case config.StorageRedis:
		deps.KV = storage.NewRedis(deps.Redis, cfg.Redis.TTL)
	case config.StoragePostgres:
		deps.KV = storage.NewPostgres(deps.DB.DB())
	default:
		deps.KV = storage.NewMemory()
	}

	source := catalog.NewStaticSource()
	if cfg.Catalog.Source == config.CatalogPostgres {
		repo := repository.NewCatalogRepository(deps.DB.DB())
		err := repo.Seed(ctx, catalog.SeedProducts(), catalog.SeedBundleStubs(), catalog.SeedDiscountRules())
		if err != nil {
			return deps, fmt.Errorf("failed to seed catalog: %w", err)
		}
		source = repo
	}
	deps.Catalog = catalog.New(source, log)

	return deps, nil
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting PC Park storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("catalog", cfg.Catalog.Source),
	)

	deps, err := openDeps(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize backends", zap.Error(err))
	}

	srv := server.NewServer(cfg, log, deps)

	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
