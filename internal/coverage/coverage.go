// Package coverage estimates how many proper nouns of a text the
// dictionary already covers. It is a gap-analysis heuristic, not NLP.
package coverage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

var tokenRe = regexp.MustCompile(`[A-Za-z\x{00C0}-\x{00FF}'\x{2019}]+`)

// Words that are often capitalized but are not names.
var stopWords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "is", "are", "was", "were", "be", "been",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "must", "shall", "can", "this", "that",
	"these", "those", "it", "its", "he", "she", "they", "we", "you", "i",
	"his", "her", "their", "our", "your", "my", "who", "which", "what",
	"when", "where", "why", "how", "if", "then", "so", "as", "not", "no",
	"yes", "all", "some", "any", "each", "every", "both", "few", "many",
	"more", "most", "other", "such", "only", "also", "just", "now", "new",
	"first", "last", "one", "two", "three", "said", "says", "told", "according",
	"president", "minister", "chief", "dr", "mr", "mrs", "ms", "prof",
	"january", "february", "march", "april", "june", "july",
	"august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Known is the set of normalized graphemes and aliases.
type Known map[string]struct{}

// KnownSet indexes every grapheme and each of its aliases.
func KnownSet(entries []domain.Entry) Known {
	known := make(Known, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Grapheme) == "" {
			continue
		}
		known[domain.NormalizeKey(e.Grapheme)] = struct{}{}
		for _, a := range e.Aliases() {
			known[domain.NormalizeKey(a)] = struct{}{}
		}
	}
	return known
}

// Contains reports whether word is a known grapheme or alias.
func (k Known) Contains(word string) bool {
	_, ok := k[domain.NormalizeKey(word)]
	return ok
}

// Tokens splits text into word tokens.
func Tokens(text string) []string {
	return tokenRe.FindAllString(text, -1)
}

// Candidates returns the likely proper nouns of text: capitalized tokens of
// at least two letters that contain a lower-case letter and are not stop
// words. Duplicates are dropped case-insensitively, keeping the first spelling.
func Candidates(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range Tokens(text) {
		if !isCandidate(tok) {
			continue
		}
		key := strings.ToLower(tok)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func isCandidate(tok string) bool {
	if utf8.RuneCountInString(tok) < 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(tok)
	if !unicode.IsUpper(first) {
		return false
	}
	if !strings.ContainsFunc(tok, unicode.IsLower) {
		return false
	}
	_, stop := stopWords[strings.ToLower(tok)]
	return !stop
}

// Report is the outcome of a coverage check.
type Report struct {
	KnownTerms int
	Tokens     int
	Candidates int
	Matched    []string
	Unmatched  []string
}

// Coverage returns matched candidates as a percentage, 0 when there are none.
func (r *Report) Coverage() float64 {
	if r.Candidates == 0 {
		return 0
	}
	return float64(len(r.Matched)) / float64(r.Candidates) * 100
}

// Check measures how many candidates of text are known. Matched and
// unmatched lists are sorted case-insensitively.
func Check(known Known, text string) *Report {
	candidates := Candidates(text)
	r := &Report{
		KnownTerms: len(known),
		Tokens:     len(Tokens(text)),
		Candidates: len(candidates),
	}
	for _, c := range candidates {
		if known.Contains(c) {
			r.Matched = append(r.Matched, c)
		} else {
			r.Unmatched = append(r.Unmatched, c)
		}
	}
	sortFold(r.Matched)
	sortFold(r.Unmatched)
	return r
}

func sortFold(s []string) {
	slices.SortStableFunc(s, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
}

// ReadText returns the text of path. HTML files (.html, .htm) are reduced
// to their main article text first.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ArticleText(f, path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ArticleText extracts the readable article text from an HTML document.
func ArticleText(r io.Reader, name string) (string, error) {
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(name)}
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return "", fmt.Errorf("extract article %s: %w", name, err)
	}
	text := article.TextContent
	if article.Title != "" {
		text = article.Title + "\n" + text
	}
	return text, nil
}

// Write renders the report.
func (r *Report) Write(w io.Writer) error {
	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 60)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nCOVERAGE REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "  Known graphemes/aliases:   %d\n", r.KnownTerms)
	fmt.Fprintf(&b, "  Total tokens in text:      %d\n", r.Tokens)
	fmt.Fprintf(&b, "  Candidate proper nouns:    %d\n", r.Candidates)
	fmt.Fprintf(&b, "  Matched in dictionary:     %d\n", len(r.Matched))
	fmt.Fprintf(&b, "  Coverage:                  %.2f%%\n\n", r.Coverage())

	if len(r.Matched) > 0 {
		fmt.Fprintf(&b, "%s\nMATCHED CANDIDATES\n%s\n", sub, sub)
		for _, m := range r.Matched {
			fmt.Fprintf(&b, "  + %s\n", m)
		}
		b.WriteString("\n")
	}

	if len(r.Unmatched) > 0 {
		fmt.Fprintf(&b, "%s\nUNMATCHED CANDIDATES (potential gaps)\n%s\n", sub, sub)
		for _, u := range r.Unmatched {
			fmt.Fprintf(&b, "  - %s\n", u)
		}
		fmt.Fprintf(&b, "\nTotal unmatched: %d\n", len(r.Unmatched))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
