// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

// Command seed populates the catalog with the provider's currently trending
// games. It is an operator tool, run once against a fresh (or stale)
// database; the backfill writer's de-duplication makes reruns safe.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/minhngvu/gamedex/internal/catalog"
	"github.com/minhngvu/gamedex/internal/platform/config"
	"github.com/minhngvu/gamedex/internal/platform/constants"
	"github.com/minhngvu/gamedex/internal/platform/migration"
	pgstore "github.com/minhngvu/gamedex/internal/platform/postgres"
	"github.com/minhngvu/gamedex/internal/provider/rawg"
)

func main() {
	count := flag.Int("count", constants.DefaultDiscoverLimit, "number of trending games to fetch")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "gamedex-seed"))

	cfg, err := config.Load()
	fatalIf(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	fatalIf(log, err, "connect to postgres")
	defer pool.Close()

	fatalIf(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	provider := rawg.NewAdapter(rawg.NewClient(cfg.RAWGBaseURL, cfg.RAWGAPIKey, cfg.RAWGTimeout, log))

	log.Info("fetching_trending_games", slog.Int("count", *count))
	games, err := provider.MostPopular(ctx, *count)
	fatalIf(log, err, "fetch trending games")

	// PersistBatch bounds each call, so feed it chunk by chunk.
	backfill := catalog.NewBackfill(catalog.NewPostgresRepository(pool), log)

	var inserted, skipped, failed int
	for start := 0; start < len(games); start += constants.BackfillMaxBatch {
		end := min(start+constants.BackfillMaxBatch, len(games))
		report := backfill.PersistBatch(ctx, games[start:end])
		inserted += report.Inserted
		skipped += report.Skipped
		failed += len(report.Failures)
	}

	log.Info("seed_finished",
		slog.Int("fetched", len(games)),
		slog.Int("inserted", inserted),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
	)

	if failed > 0 {
		os.Exit(1)
	}
}

func fatalIf(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
