// Command pls exports the unified dictionary as a W3C PLS 1.0 lexicon,
// building the dictionary first when it is missing.
//
// Usage:
//
//	pls [-config ninolex.yaml] [-lang en-GH] [-out exports/ninolex_gh_core.pls]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/language"

	"github.com/heartmarshall/ninolex-gh/internal/app"
	"github.com/heartmarshall/ninolex-gh/internal/builder"
	"github.com/heartmarshall/ninolex-gh/internal/lexicon"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./ninolex.yaml)")
	lang := flag.String("lang", "", "xml:lang of the lexicon (default: lexicon.lang from config)")
	out := flag.String("out", "", "output path (default: paths.lexicon from config)")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("pls", *configPath)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *lang == "" {
		*lang = cfg.Lexicon.Lang
	}
	if _, err := language.Parse(*lang); err != nil {
		logger.Error("invalid -lang", slog.String("lang", *lang), slog.String("error", err.Error()))
		os.Exit(1)
	}

	outPath := cfg.Paths.Resolve(cfg.Paths.Lexicon)
	if *out != "" {
		outPath = *out
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b := builder.New(logger, cfg.Paths, cfg.Sources)
	exporter := lexicon.NewExporter(logger, b, b.DictionaryPath(), outPath, *lang)

	if _, err := exporter.Export(ctx); err != nil {
		logger.Error("lexicon export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
