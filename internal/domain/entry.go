package domain

import "strings"

// Entry is one row of the unified pronunciation dictionary.
// All fields are plain text; optional fields are empty strings when absent.
type Entry struct {
	Grapheme   string `json:"grapheme"`
	Phoneme    string `json:"phoneme"`
	Domain     string `json:"domain"`
	Category   string `json:"category"`
	Region     string `json:"region"`
	City       string `json:"city"`
	Alias      string `json:"alias"`
	Notes      string `json:"notes"`
	SourceFile string `json:"source_file"`
}

// Fields is the fixed column order of the unified dictionary.
var Fields = []string{
	"grapheme",
	"phoneme",
	"domain",
	"category",
	"region",
	"city",
	"alias",
	"notes",
	"source_file",
}

// IsValid reports whether both grapheme and phoneme are non-empty after trimming.
func (e Entry) IsValid() bool {
	return strings.TrimSpace(e.Grapheme) != "" && strings.TrimSpace(e.Phoneme) != ""
}

// Key returns the normalized lookup key of the grapheme.
func (e Entry) Key() string {
	return NormalizeKey(e.Grapheme)
}

// Aliases splits the semicolon-separated alias field, dropping blanks.
func (e Entry) Aliases() []string {
	if strings.TrimSpace(e.Alias) == "" {
		return nil
	}
	parts := strings.Split(e.Alias, ";")
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			aliases = append(aliases, p)
		}
	}
	return aliases
}

// Record returns the entry as a row in Fields order.
func (e Entry) Record() []string {
	return []string{
		e.Grapheme,
		e.Phoneme,
		e.Domain,
		e.Category,
		e.Region,
		e.City,
		e.Alias,
		e.Notes,
		e.SourceFile,
	}
}

// Trimmed returns a copy with every field trimmed of surrounding whitespace.
func (e Entry) Trimmed() Entry {
	return Entry{
		Grapheme:   strings.TrimSpace(e.Grapheme),
		Phoneme:    strings.TrimSpace(e.Phoneme),
		Domain:     strings.TrimSpace(e.Domain),
		Category:   strings.TrimSpace(e.Category),
		Region:     strings.TrimSpace(e.Region),
		City:       strings.TrimSpace(e.City),
		Alias:      strings.TrimSpace(e.Alias),
		Notes:      strings.TrimSpace(e.Notes),
		SourceFile: strings.TrimSpace(e.SourceFile),
	}
}

// EntryFromColumns builds an Entry from a header-indexed row.
// Columns missing from the header yield empty strings.
func EntryFromColumns(columns map[string]int, row []string) Entry {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return Entry{
		Grapheme:   get("grapheme"),
		Phoneme:    get("phoneme"),
		Domain:     get("domain"),
		Category:   get("category"),
		Region:     get("region"),
		City:       get("city"),
		Alias:      get("alias"),
		Notes:      get("notes"),
		SourceFile: get("source_file"),
	}
}
