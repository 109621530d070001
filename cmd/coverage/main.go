// Command coverage reports which capitalised names in a text are missing
// from the dictionary.
//
// Usage:
//
//	coverage [-config ninolex.yaml] article.txt|article.html
//
// HTML input is reduced to its article text first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ninolex-gh/internal/app"
	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/builder"
	"github.com/heartmarshall/ninolex-gh/internal/coverage"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./ninolex.yaml)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: coverage [-config path] <text-or-html-file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	cfg, logger, err := app.Bootstrap("coverage", *configPath)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

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

	text, err := coverage.ReadText(input)
	if err != nil {
		logger.Error("read input", slog.String("path", input), slog.String("error", err.Error()))
		os.Exit(1)
	}

	report := coverage.Check(coverage.KnownSet(entries), text)
	if err := report.Write(os.Stdout); err != nil {
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
