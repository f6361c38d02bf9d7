package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/nws-snapshot-etl/internal/adapter/filestore"
	"github.com/couchcryptid/nws-snapshot-etl/internal/adapter/nws"
	"github.com/couchcryptid/nws-snapshot-etl/internal/config"
	"github.com/couchcryptid/nws-snapshot-etl/internal/observability"
	"github.com/couchcryptid/nws-snapshot-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	locs, err := config.LoadLocations(cfg.LocationsFile)
	if err != nil {
		logger.Error("failed to load locations", "file", cfg.LocationsFile, "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	store, err := filestore.NewStore(cfg.OutputDir, logger)
	if err != nil {
		logger.Error("failed to open output dir", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	client := nws.NewClient(cfg, locs, logger)
	p := pipeline.New(client, store, locs, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := p.Run(ctx)

	if cfg.MetricsFile != "" {
		path := cfg.MetricsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.OutputDir, path)
		}
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn("metrics export failed", "file", path, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("snapshot run failed", "error", runErr)
		os.Exit(1)
	}
}
