// Command publish loads the JSON dictionary into PostgreSQL, replacing the
// previously published rows in one transaction.
//
// Usage:
//
//	publish [-config ninolex.yaml] [-migrate]
//
// Requires DATABASE_DSN (or database.dsn in the config file).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/ninolex-gh/internal/adapter/postgres"
	"github.com/heartmarshall/ninolex-gh/internal/adapter/postgres/pronunciation"
	"github.com/heartmarshall/ninolex-gh/internal/app"
	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/builder"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./ninolex.yaml)")
	migrate := flag.Bool("migrate", false, "apply pending migrations before publishing")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("publish", *configPath)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.RequireDatabase(); err != nil {
		logger.Error("config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, timeout := context.WithTimeout(ctx, 10*time.Minute)
	defer timeout()

	if *migrate {
		applied, err := postgres.Migrate(ctx, cfg.Database.DSN, logger)
		if err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations done", slog.Int("applied", applied))
	}

	jsonPath := cfg.Paths.Resolve(cfg.Paths.DictionaryJSON)
	if !artifact.Exists(jsonPath) {
		b := builder.New(logger, cfg.Paths, cfg.Sources)
		if _, err := b.GenerateJSON(ctx); err != nil {
			logger.Error("generate json", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	entries, err := artifact.ReadJSONFile(jsonPath)
	if err != nil {
		logger.Error("read json dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := pronunciation.New(pool, postgres.NewTxManager(pool), cfg.Database.BatchSize)

	start := time.Now()
	inserted, err := repo.ReplaceAll(ctx, entries)
	if err != nil {
		logger.Error("publish failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	keys, err := repo.Count(ctx)
	if err != nil {
		logger.Error("count published keys", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("dictionary published",
		slog.Int("rows", inserted),
		slog.Int("keys", keys),
		slog.Duration("duration", time.Since(start)),
	)
}
