package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// EncodeJSON renders entries as an indented JSON array of objects with the
// nine text fields. Non-ASCII text is emitted literally.
func EncodeJSON(entries []domain.Entry) ([]byte, error) {
	if entries == nil {
		entries = []domain.Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSONFile writes the JSON export to path, creating parent directories.
func WriteJSONFile(path string, entries []domain.Entry) error {
	data, err := EncodeJSON(entries)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// ReadJSON decodes a JSON export. Missing fields decode as empty strings.
func ReadJSON(r io.Reader) ([]domain.Entry, error) {
	var entries []domain.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return entries, nil
}

// ReadJSONFile opens path and decodes it with ReadJSON.
func ReadJSONFile(path string) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return entries, nil
}
