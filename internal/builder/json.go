package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// JSONResult is the outcome of a JSON export.
type JSONResult struct {
	Entries int
	Paths   []string
	Built   bool
}

// GenerateJSON exports the unified CSV as JSON, building the CSV first when
// it is missing. Rows are re-filtered and trimmed on the way through, so a
// hand-edited CSV cannot leak invalid entries into the JSON. The configured
// package copy, if any, receives identical bytes.
func (b *Builder) GenerateJSON(ctx context.Context) (*JSONResult, error) {
	built, err := b.EnsureDictionary(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensure dictionary: %w", err)
	}

	rows, err := artifact.ReadTableFile(b.DictionaryPath())
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		if row.IsValid() {
			entries = append(entries, row)
		}
	}

	data, err := artifact.EncodeJSON(entries)
	if err != nil {
		return nil, err
	}

	result := &JSONResult{Entries: len(entries), Built: built}
	for _, p := range []string{b.paths.DictionaryJSON, b.paths.PackageJSON} {
		if p == "" {
			continue
		}
		path := b.paths.Resolve(p)
		if err := artifact.WriteFile(path, data); err != nil {
			return nil, err
		}
		result.Paths = append(result.Paths, path)
	}

	b.log.Info("json exported",
		slog.Int("entries", result.Entries),
		slog.Any("paths", result.Paths),
	)
	return result, nil
}
