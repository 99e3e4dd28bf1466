package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/config"
	"github.com/vanshika/aquafund/internal/graph"
	"github.com/vanshika/aquafund/internal/logging"
	"github.com/vanshika/aquafund/internal/repository"
	"github.com/vanshika/aquafund/internal/service"
)

func main() {
	var (
		fixtures = flag.String("fixtures", "", "YAML fixture file to seed from (defaults to the embedded catalog)")
		workers  = flag.Int("workers", 4, "Number of concurrent workers for seeding")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "seed")

	path := *fixtures
	if path == "" {
		path = cfg.Fixtures.Path
	}
	cat, err := loadCatalog(path)
	if err != nil {
		logger.Error("failed to load fixtures", "error", err, "path", path)
		os.Exit(1)
	}
	if len(cat.Projects) == 0 {
		logger.Error("fixture catalog has no projects", "path", path)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg.Graph)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.NewProjects(graphClient)
	seeder := service.NewBulkSeeder(repo, *workers)

	start := time.Now()
	logger.Info("seeding projects", "count", len(cat.Projects), "workers", *workers)
	if err := seeder.SeedProjects(ctx, cat.Projects); err != nil {
		logger.Error("project seeding failed", "error", err)
		os.Exit(1)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Error("failed to count stored projects", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding complete",
		"duration", time.Since(start).String(),
		"projects", len(cat.Projects),
		"stored", total,
	)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (graph.Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for seeding: %w", graph.ErrMissingURI)
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
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.URI, "database", cfg.Database)
	return client, nil
}
