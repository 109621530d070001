// Command server runs the read-only pronunciation lookup API.
//
// The dictionary is read from paths.dictionary_json when that file exists
// and from the copy embedded in the binary otherwise. When a database DSN
// is configured, /ready and /health also probe PostgreSQL.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ninolex-gh/internal/adapter/postgres"
	"github.com/heartmarshall/ninolex-gh/internal/app"
	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/transport/rest"
	"github.com/heartmarshall/ninolex-gh/pkg/ninolex"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./ninolex.yaml)")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("server", *configPath)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dict := ninolex.Embedded()
	if jsonPath := cfg.Paths.Resolve(cfg.Paths.DictionaryJSON); artifact.Exists(jsonPath) {
		dict = ninolex.FromFile(jsonPath)
		logger.Info("serving dictionary file", slog.String("path", jsonPath))
	} else {
		logger.Info("serving embedded dictionary", slog.String("version", ninolex.Version))
	}

	var checks []rest.Check
	if cfg.Database.DSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		checks = append(checks, rest.Check{Name: "database", Pinger: pool})
	}

	if err := app.NewServer(cfg, logger, dict, checks...).Run(ctx); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
