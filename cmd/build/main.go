// Command build merges the domain source tables into the unified dictionary
// CSV and exports it as JSON (plus the package copy when configured).
//
// Usage:
//
//	build [-config ninolex.yaml] [-json=false]
//
// Missing sources and dropped rows are logged but do not fail the build.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ninolex-gh/internal/app"
	"github.com/heartmarshall/ninolex-gh/internal/builder"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./ninolex.yaml)")
	withJSON := flag.Bool("json", true, "also export the JSON artifact")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("build", *configPath)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b := builder.New(logger, cfg.Paths, cfg.Sources)

	if _, err := b.Build(ctx); err != nil {
		logger.Error("build failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !*withJSON {
		return
	}

	if _, err := b.GenerateJSON(ctx); err != nil {
		logger.Error("json export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
