// Package builder merges the configured domain CSV sources into the unified
// dictionary and exports it as JSON.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/config"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// Stats holds build statistics for logging.
type Stats struct {
	SourcesRead    int
	SourcesMissing int
	RowsRead       int
	RowsDropped    int
}

// Result is the outcome of a build.
type Result struct {
	Entries    []domain.Entry
	OutputPath string
	Stats      Stats
	Duration   time.Duration
}

// Builder produces the unified dictionary from domain sources.
type Builder struct {
	log     *slog.Logger
	paths   config.PathsConfig
	sources []config.Source
}

// New creates a Builder. Sources are processed in the given order.
func New(logger *slog.Logger, paths config.PathsConfig, sources []config.Source) *Builder {
	return &Builder{
		log:     logger.With("component", "builder"),
		paths:   paths,
		sources: sources,
	}
}

// DictionaryPath returns the resolved location of the unified CSV.
func (b *Builder) DictionaryPath() string {
	return b.paths.Resolve(b.paths.DictionaryCSV)
}

// Build reads every configured source and writes the unified CSV.
// Missing sources are skipped and rows without grapheme or phoneme are
// dropped; neither is an error. Entries keep source-then-row order and are
// never deduplicated here.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{OutputPath: b.DictionaryPath()}

	for _, src := range b.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, read, err := b.loadSource(src)
		if errors.Is(err, fs.ErrNotExist) {
			result.Stats.SourcesMissing++
			b.log.Debug("source missing, skipped", slog.String("source", src.Path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Path, err)
		}

		result.Stats.SourcesRead++
		result.Stats.RowsRead += read
		result.Stats.RowsDropped += read - len(entries)
		result.Entries = append(result.Entries, entries...)
	}

	if err := artifact.WriteCSVFile(result.OutputPath, result.Entries); err != nil {
		return nil, fmt.Errorf("write dictionary: %w", err)
	}

	result.Duration = time.Since(start)
	b.log.Info("dictionary built",
		slog.String("path", result.OutputPath),
		slog.Int("entries", len(result.Entries)),
		slog.Int("sources_read", result.Stats.SourcesRead),
		slog.Int("sources_missing", result.Stats.SourcesMissing),
		slog.Int("rows_dropped", result.Stats.RowsDropped),
		slog.Duration("duration", result.Duration),
	)

	return result, nil
}

// EnsureDictionary builds the unified CSV if it does not exist yet.
// It reports whether a build ran.
func (b *Builder) EnsureDictionary(ctx context.Context) (bool, error) {
	if artifact.Exists(b.DictionaryPath()) {
		return false, nil
	}
	b.log.Info("dictionary not found, building from sources", slog.String("path", b.DictionaryPath()))
	if _, err := b.Build(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// loadSource parses one source and stamps domain and provenance.
// It returns the valid entries and the number of rows read.
func (b *Builder) loadSource(src config.Source) ([]domain.Entry, int, error) {
	rows, err := artifact.ReadTableFile(b.paths.Resolve(src.Path))
	if err != nil {
		return nil, 0, err
	}

	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		if !row.IsValid() {
			continue
		}
		row.Domain = src.Domain
		row.SourceFile = src.Path
		entries = append(entries, row)
	}
	return entries, len(rows), nil
}
