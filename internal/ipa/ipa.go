// Package ipa checks dictionary phonemes against the approved IPA subset.
package ipa

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// Character classes of the approved subset.
const (
	Vowels         = "aeiouɪʊɛɔəɑæʌɒɜ"
	Length         = "ː"
	Consonants     = "bdfghjklmnpqrstvwxyzŋʃʒθðɲɾʔ"
	AffricateParts = "tɕdʑ"
	TieBars        = "\u035c\u0361"
	LabialVelar    = "ɡ" + TieBars
	Stress         = "ˈˌ"
	Separators     = ". -"
	Diacritics     = "\u0329\u0303\u0300\u0301\u0302\u0304"
	Whitespace     = " "
)

// Forbidden characters are reported apart from unknown ones. The ASCII
// apostrophe is a common stand-in for the primary stress mark ˈ (U+02C8).
const Forbidden = "'"

var allowed = func() map[rune]struct{} {
	m := make(map[rune]struct{})
	for _, set := range []string{
		Vowels, Length, Consonants, AffricateParts, LabialVelar,
		Stress, Separators, Diacritics, Whitespace,
	} {
		for _, r := range set {
			m[r] = struct{}{}
		}
	}
	return m
}()

// Tie-bar issues.
const (
	IssueKP = "'kp' without tie-bar (should be 'k\u0361p' or 'k\u035cp')"
	IssueGB = "'gb' without tie-bar (should be '\u0261\u0361b' or 'g\u0361b')"
)

// CharError is an entry whose phoneme contains characters outside the subset.
type CharError struct {
	Grapheme       string
	Phoneme        string
	SourceFile     string
	ForbiddenChars []rune
	UnknownChars   []rune
}

// TieBarWarning is an entry with a labial-velar written without a tie-bar.
type TieBarWarning struct {
	Grapheme   string
	Phoneme    string
	SourceFile string
	Issues     []string
}

// Report is the outcome of a validation run.
type Report struct {
	EntriesChecked int
	CharErrors     []CharError
	TieBarWarnings []TieBarWarning
}

// Failed reports whether any entry has invalid characters.
// Tie-bar warnings never fail a run.
func (r *Report) Failed() bool {
	return len(r.CharErrors) > 0
}

// CheckChars splits the invalid characters of phoneme into forbidden and
// unknown, each sorted and deduplicated.
func CheckChars(phoneme string) (forbidden, unknown []rune) {
	for _, c := range phoneme {
		switch {
		case strings.ContainsRune(Forbidden, c):
			forbidden = appendUnique(forbidden, c)
		case !isAllowed(c):
			unknown = appendUnique(unknown, c)
		}
	}
	slices.Sort(forbidden)
	slices.Sort(unknown)
	return forbidden, unknown
}

func isAllowed(c rune) bool {
	_, ok := allowed[c]
	return ok
}

func appendUnique(rs []rune, r rune) []rune {
	if slices.Contains(rs, r) {
		return rs
	}
	return append(rs, r)
}

// CheckTieBars reports labial-velar pairs written without a joining
// tie-bar. Each kind is reported at most once.
func CheckTieBars(phoneme string) []string {
	var kp, gb bool
	prev := rune(0)
	for _, c := range phoneme {
		switch {
		case prev == 'k' && c == 'p':
			kp = true
		case (prev == 'g' || prev == 'ɡ') && c == 'b':
			gb = true
		}
		prev = c
	}

	var issues []string
	if kp {
		issues = append(issues, IssueKP)
	}
	if gb {
		issues = append(issues, IssueGB)
	}
	return issues
}

// Validate checks every entry's phoneme.
func Validate(entries []domain.Entry) *Report {
	r := &Report{EntriesChecked: len(entries)}
	for _, e := range entries {
		source := e.SourceFile
		if source == "" {
			source = "unknown"
		}

		if forbidden, unknown := CheckChars(e.Phoneme); len(forbidden)+len(unknown) > 0 {
			r.CharErrors = append(r.CharErrors, CharError{
				Grapheme:       e.Grapheme,
				Phoneme:        e.Phoneme,
				SourceFile:     source,
				ForbiddenChars: forbidden,
				UnknownChars:   unknown,
			})
		}

		if issues := CheckTieBars(e.Phoneme); len(issues) > 0 {
			r.TieBarWarnings = append(r.TieBarWarnings, TieBarWarning{
				Grapheme:   e.Grapheme,
				Phoneme:    e.Phoneme,
				SourceFile: source,
				Issues:     issues,
			})
		}
	}
	return r
}

// Write renders a human-readable report.
func (r *Report) Write(w io.Writer) error {
	rule := strings.Repeat("-", 70)
	var b strings.Builder

	fmt.Fprintf(&b, "Checked %d entries\n\n", r.EntriesChecked)

	fmt.Fprintf(&b, "%s\n1. CHARACTER VALIDATION\n%s\n", rule, rule)
	if len(r.CharErrors) == 0 {
		b.WriteString("All phonemes contain only allowed IPA characters\n")
	} else {
		fmt.Fprintf(&b, "Found %d entries with invalid IPA characters:\n\n", len(r.CharErrors))
		for _, e := range r.CharErrors {
			fmt.Fprintf(&b, "  Grapheme: %s\n", e.Grapheme)
			fmt.Fprintf(&b, "  Phoneme:  %s\n", e.Phoneme)
			if len(e.ForbiddenChars) > 0 {
				fmt.Fprintf(&b, "  Forbidden: %s\n", formatRunes(e.ForbiddenChars))
			}
			if len(e.UnknownChars) > 0 {
				fmt.Fprintf(&b, "  Invalid:  %s\n", formatRunes(e.UnknownChars))
			}
			fmt.Fprintf(&b, "  Source:   %s\n\n", e.SourceFile)
		}
		b.WriteString("Note: replace ' (U+0027 ASCII apostrophe) with ˈ (U+02C8)\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n2. TIE-BAR CHECK (labial-velars)\n%s\n", rule, rule)
	if len(r.TieBarWarnings) == 0 {
		b.WriteString("No labial-velar tie-bar issues detected\n")
	} else {
		fmt.Fprintf(&b, "Found %d entries with potential labial-velar issues:\n\n", len(r.TieBarWarnings))
		for _, w := range r.TieBarWarnings {
			fmt.Fprintf(&b, "  Grapheme: %s\n", w.Grapheme)
			fmt.Fprintf(&b, "  Phoneme:  %s\n", w.Phoneme)
			for _, issue := range w.Issues {
				fmt.Fprintf(&b, "  Issue:    %s\n", issue)
			}
			fmt.Fprintf(&b, "  Source:   %s\n\n", w.SourceFile)
		}
		b.WriteString("These are warnings only.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "SUMMARY\n  Entries validated: %d\n  Character errors:  %d\n  Tie-bar warnings:  %d\n",
		r.EntriesChecked, len(r.CharErrors), len(r.TieBarWarnings))
	if r.Failed() {
		b.WriteString("Validation failed\n")
	} else {
		b.WriteString("Validation passed\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatRunes renders characters as 'c' (U+XXXX), comma separated.
func formatRunes(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("'%c' (U+%04X)", r, r)
	}
	return strings.Join(parts, ", ")
}
