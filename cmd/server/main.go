package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/config"
	"github.com/vanshika/aquafund/internal/graph"
	"github.com/vanshika/aquafund/internal/kv"
	"github.com/vanshika/aquafund/internal/logging"
	"github.com/vanshika/aquafund/internal/metrics"
	"github.com/vanshika/aquafund/internal/recorder"
	"github.com/vanshika/aquafund/internal/repository"
	"github.com/vanshika/aquafund/internal/server"
	"github.com/vanshika/aquafund/internal/service"
	"github.com/vanshika/aquafund/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	cat, err := loadCatalog(cfg.Fixtures)
	if err != nil {
		logger.Error("failed to load fixtures", "error", err, "path", cfg.Fixtures.Path)
		os.Exit(1)
	}

	store, err := buildStore(ctx, logger, cfg.Redis)
	if err != nil {
		logger.Error("failed to create session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing session store failed", "error", err)
		}
	}()

	rec, err := buildRecorder(logger, cfg.Recorder)
	if err != nil {
		logger.Error("failed to open submission recorder", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Warn("closing recorder failed", "error", err)
		}
	}()

	graphClient, err := buildGraphClient(ctx, logger, cfg.Graph)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	var m *metrics.Metrics
	if cfg.HTTP.MetricsEnabled {
		m = metrics.New()
	}

	opts := service.Options{
		Recorder: rec,
		Latency:  cfg.Simulation.Latency,
		Logger:   logger.With("component", "dashboard"),
	}
	if m != nil {
		opts.Counter = m
	}
	if graphClient != nil {
		opts.Projects = service.NewGraphProjects(repository.NewProjects(graphClient))
	}
	dashboard := service.NewDashboard(cat, opts)

	if cfg.Session.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET is unset; signing session tokens with the development secret")
	}
	sessions := session.NewManager(store, cat.User, session.Options{
		Secret:    []byte(cfg.Session.Secret),
		TTL:       cfg.Session.TTL,
		KeyPrefix: cfg.Session.KeyPrefix,
		Latency:   cfg.Simulation.Latency,
	})

	health := server.HealthServices{server.StoreHealthService{Store: store}}
	if graphClient != nil {
		health = append(health, server.GraphHealthService{Client: graphClient})
	}

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           health,
		API:              server.NewAPIHandlers(logger, dashboard, sessions),
		Sessions:         sessions,
		Metrics:          m,
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func loadCatalog(cfg config.FixturesConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(cfg.Path)
}

func buildStore(ctx context.Context, logger *slog.Logger, cfg config.RedisConfig) (kv.Store, error) {
	if cfg.Addr == "" {
		logger.Info("using in-memory session store")
		return kv.NewMemory(), nil
	}
	store, err := kv.NewRedis(ctx, kv.RedisOptions{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("using redis session store", "addr", cfg.Addr, "db", cfg.DB)
	return store, nil
}

func buildRecorder(logger *slog.Logger, cfg config.RecorderConfig) (recorder.Recorder, error) {
	if cfg.SQLitePath == "" {
		return recorder.NewNoopRecorder(), nil
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.SQLitePath, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("recording submissions", "path", cfg.SQLitePath)
	return rec, nil
}

// buildGraphClient returns nil when no graph is configured; projects then
// come from the fixtures.
func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (graph.Client, error) {
	if cfg.URI == "" {
		return nil, nil
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("serving projects from graph", "uri", cfg.URI, "database", cfg.Database)
	return client, nil
}
