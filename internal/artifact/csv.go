// Package artifact reads and writes the dictionary's on-disk formats:
// domain source tables, the unified CSV, and the JSON export.
package artifact

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// ReadTable parses a header-plus-rows CSV into entries. Columns are matched
// by header name; absent columns yield empty fields. A leading UTF-8 byte
// order mark (as written by spreadsheet exports) is stripped. Rows are
// returned as read, trimmed but unfiltered.
func ReadTable(r io.Reader) ([]domain.Entry, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	reader.FieldsPerRecord = -1 // allow ragged rows

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var entries []domain.Entry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		entries = append(entries, domain.EntryFromColumns(columns, record))
	}

	return entries, nil
}

// ReadTableFile opens path and parses it with ReadTable.
func ReadTableFile(path string) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// WriteCSV writes entries as the unified dictionary: a header in
// domain.Fields order, then one row per entry, "\n" line endings, no BOM.
func WriteCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = false

	if err := cw.Write(domain.Fields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(e.Record()); err != nil {
			return fmt.Errorf("write row %q: %w", e.Grapheme, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the unified dictionary to path, creating parent
// directories as needed.
func WriteCSVFile(path string, entries []domain.Entry) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
