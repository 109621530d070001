package ipa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

func TestCheckChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		phoneme       string
		wantForbidden []rune
		wantUnknown   []rune
	}{
		{name: "plain", phoneme: "kuˈmɑːsi"},
		{name: "multi word", phoneme: "a.ˈsan.te kɔ.ˈtɔ.kɔ"},
		{name: "syllabic nasal", phoneme: "m\u0329.fan.ˈtsi.pim"},
		{name: "tied labial velar", phoneme: "ak\u0361pe"},
		{name: "script g with tie", phoneme: "ɡ\u035cba"},
		{name: "affricates", phoneme: "ˈtʃa.le dʑa tɕe"},
		{name: "nasalised", phoneme: "a\u0303\u0300"},
		{name: "apostrophe", phoneme: "'akra", wantForbidden: []rune{'\''}},
		{name: "unknown", phoneme: "ˈcat", wantUnknown: []rune{'c'}},
		{name: "both sorted and unique", phoneme: "'xʧ'ʧc", wantForbidden: []rune{'\''}, wantUnknown: []rune{'c', 'ʧ'}},
		{name: "uppercase is unknown", phoneme: "Akra", wantUnknown: []rune{'A'}},
		{name: "tab is unknown", phoneme: "a\tb", wantUnknown: []rune{'\t'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			forbidden, unknown := CheckChars(tt.phoneme)
			assert.Equal(t, tt.wantForbidden, forbidden)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestCheckTieBars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phoneme string
		want    []string
	}{
		{phoneme: "akpe", want: []string{IssueKP}},
		{phoneme: "ak\u0361pe", want: nil},
		{phoneme: "ak\u035cpe", want: nil},
		{phoneme: "gbɛ", want: []string{IssueGB}},
		{phoneme: "ɡbɛ", want: []string{IssueGB}},
		{phoneme: "ɡ\u0361bɛ", want: nil},
		{phoneme: "akpakpa gbogbo", want: []string{IssueKP, IssueGB}},
		{phoneme: "k p", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.phoneme, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CheckTieBars(tt.phoneme))
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("tie-bar warning does not fail", func(t *testing.T) {
		t.Parallel()
		r := Validate([]domain.Entry{{Grapheme: "Akpe", Phoneme: "akpe", SourceFile: "data/core/core_terms.csv"}})
		assert.False(t, r.Failed())
		assert.Empty(t, r.CharErrors)
		require.Len(t, r.TieBarWarnings, 1)
		assert.Equal(t, []string{IssueKP}, r.TieBarWarnings[0].Issues)
		assert.Equal(t, 1, r.EntriesChecked)
	})

	t.Run("apostrophe fails", func(t *testing.T) {
		t.Parallel()
		r := Validate([]domain.Entry{
			{Grapheme: "Accra", Phoneme: "a'kra"},
			{Grapheme: "Ho", Phoneme: "ho"},
		})
		assert.True(t, r.Failed())
		require.Len(t, r.CharErrors, 1)
		e := r.CharErrors[0]
		assert.Equal(t, "Accra", e.Grapheme)
		assert.Equal(t, []rune{'\''}, e.ForbiddenChars)
		assert.Empty(t, e.UnknownChars)
		assert.Equal(t, "unknown", e.SourceFile)
		assert.Equal(t, 2, r.EntriesChecked)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		r := Validate(nil)
		assert.False(t, r.Failed())
		assert.Zero(t, r.EntriesChecked)
	})
}

func TestReport_Write(t *testing.T) {
	t.Parallel()

	r := Validate([]domain.Entry{
		{Grapheme: "Accra", Phoneme: "a'kr\u00e7", SourceFile: "data/places/towns.csv"},
		{Grapheme: "Akpe", Phoneme: "akpe", SourceFile: "data/core/core_terms.csv"},
	})

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "1. CHARACTER VALIDATION")
	assert.Contains(t, out, "2. TIE-BAR CHECK (labial-velars)")
	assert.Contains(t, out, "Forbidden: ''' (U+0027)")
	assert.Contains(t, out, "Invalid:  '\u00e7' (U+00E7)")
	assert.Contains(t, out, "Source:   data/places/towns.csv")
	assert.Contains(t, out, "Issue:    "+IssueKP)
	assert.Contains(t, out, "Character errors:  1")
	assert.Contains(t, out, "Tie-bar warnings:  1")
	assert.Contains(t, out, "Validation failed")
}

func TestReport_WriteClean(t *testing.T) {
	t.Parallel()

	r := Validate([]domain.Entry{{Grapheme: "Kumasi", Phoneme: "kuˈmɑːsi"}})

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "All phonemes contain only allowed IPA characters")
	assert.Contains(t, buf.String(), "No labial-velar tie-bar issues detected")
	assert.Contains(t, buf.String(), "Validation passed")
}

func TestValidate_BundledDictionary(t *testing.T) {
	t.Parallel()

	entries, err := artifact.ReadJSONFile("../../pkg/ninolex/data/ninolex_gh_dictionary.json")
	require.NoError(t, err)

	r := Validate(entries)
	assert.False(t, r.Failed(), "bundled phonemes must use only approved characters: %+v", r.CharErrors)
	assert.Equal(t, len(entries), r.EntriesChecked)
}
