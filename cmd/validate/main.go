// Command validate checks every phoneme in the JSON dictionary against the
// IPA allow-list and prints a report. The JSON artifact is generated first
// when it does not exist yet.
//
// Exit codes: 0 = no character errors (tie-bar warnings allowed), 1 = errors.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ninolex-gh/internal/app"
	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/builder"
	"github.com/heartmarshall/ninolex-gh/internal/ipa"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./ninolex.yaml)")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("validate", *configPath)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	jsonPath := cfg.Paths.Resolve(cfg.Paths.DictionaryJSON)
	if !artifact.Exists(jsonPath) {
		logger.Info("json dictionary missing, generating", slog.String("path", jsonPath))
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

	report := ipa.Validate(entries)
	if err := report.Write(os.Stdout); err != nil {
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("validation finished",
		slog.Int("entries", report.EntriesChecked),
		slog.Int("char_errors", len(report.CharErrors)),
		slog.Int("tie_bar_warnings", len(report.TieBarWarnings)),
	)

	if report.Failed() {
		os.Exit(1)
	}
}
