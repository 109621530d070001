// Package lexicon exports the unified dictionary as a W3C Pronunciation
// Lexicon Specification (PLS) document.
package lexicon

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// DefaultLang is the xml:lang written when none is configured.
const DefaultLang = "en-GH"

const plsNamespace = "http://www.w3.org/2005/01/pronunciation-lexicon"

// Ensurer makes sure the unified CSV exists before it is read.
type Ensurer interface {
	EnsureDictionary(ctx context.Context) (bool, error)
}

// Result is the outcome of an export.
type Result struct {
	Path       string
	Lexemes    int
	Duplicates int
}

// Exporter writes a PLS lexicon from the unified CSV.
type Exporter struct {
	log     *slog.Logger
	ensurer Ensurer
	csvPath string
	outPath string
	lang    string
}

// NewExporter creates an Exporter. An empty lang falls back to DefaultLang.
func NewExporter(logger *slog.Logger, ensurer Ensurer, csvPath, outPath, lang string) *Exporter {
	if lang == "" {
		lang = DefaultLang
	}
	return &Exporter{
		log:     logger.With("component", "lexicon"),
		ensurer: ensurer,
		csvPath: csvPath,
		outPath: outPath,
		lang:    lang,
	}
}

// Export reads the unified CSV, building it first when missing, and writes
// one lexeme per distinct normalized grapheme. The first occurrence wins.
func (x *Exporter) Export(ctx context.Context) (*Result, error) {
	if !artifact.Exists(x.csvPath) {
		if x.ensurer == nil {
			return nil, fmt.Errorf("dictionary %s: not built", x.csvPath)
		}
		if _, err := x.ensurer.EnsureDictionary(ctx); err != nil {
			return nil, fmt.Errorf("ensure dictionary: %w", err)
		}
	}

	rows, err := artifact.ReadTableFile(x.csvPath)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	lexemes, dups := Dedup(rows)

	var buf bytes.Buffer
	if err := Write(&buf, x.lang, lexemes); err != nil {
		return nil, err
	}
	if err := artifact.WriteFile(x.outPath, buf.Bytes()); err != nil {
		return nil, err
	}

	res := &Result{Path: x.outPath, Lexemes: len(lexemes), Duplicates: dups}
	x.log.Info("lexicon exported",
		slog.String("path", res.Path),
		slog.Int("lexemes", res.Lexemes),
		slog.Int("duplicates_skipped", res.Duplicates),
	)
	return res, nil
}

// Dedup keeps the first entry for every normalized grapheme, in input order.
// Rows missing a grapheme or phoneme are skipped and not counted as duplicates.
func Dedup(entries []domain.Entry) ([]domain.Entry, int) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]domain.Entry, 0, len(entries))
	dups := 0
	for _, e := range entries {
		if !e.IsValid() {
			continue
		}
		key := e.Key()
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out, dups
}

// Write renders the PLS document. Grapheme and phoneme text is XML-escaped.
func Write(w io.Writer, lang string, lexemes []domain.Entry) error {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<lexicon version="1.0" alphabet="ipa" xml:lang="`)
	if err := xml.EscapeText(&buf, []byte(lang)); err != nil {
		return err
	}
	buf.WriteString(`" xmlns="` + plsNamespace + `">` + "\n\n")

	for _, e := range lexemes {
		buf.WriteString("  <lexeme><grapheme>")
		if err := xml.EscapeText(&buf, []byte(e.Grapheme)); err != nil {
			return err
		}
		buf.WriteString("</grapheme><phoneme>")
		if err := xml.EscapeText(&buf, []byte(e.Phoneme)); err != nil {
			return err
		}
		buf.WriteString("</phoneme></lexeme>\n")
	}

	buf.WriteString("\n</lexicon>\n")
	_, err := w.Write(buf.Bytes())
	return err
}
