package coverage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

func testKnown() Known {
	return KnownSet([]domain.Entry{
		{Grapheme: "Kumasi", Phoneme: "kuˈmɑːsi", Alias: "Garden City"},
		{Grapheme: "Tamale", Phoneme: "ta.ˈma.le"},
		{Grapheme: "Bolgatanga", Phoneme: "bɔl.ɡa.ˈtaŋ.ɡa", Alias: "Bolga; ;"},
		{Grapheme: "Asante Kotoko", Phoneme: "a.ˈsan.te kɔ.ˈtɔ.kɔ", Alias: "Kotoko;Porcupine Warriors"},
		{Grapheme: "dumsor", Phoneme: "ˈdum.sɔ"},
		{Grapheme: "  ", Phoneme: "x", Alias: "Ghost"},
	})
}

func TestKnownSet(t *testing.T) {
	t.Parallel()

	known := testKnown()
	for _, w := range []string{"kumasi", "GARDEN CITY", "Bolga", "kotoko", "Porcupine Warriors", "Dumsor"} {
		assert.True(t, known.Contains(w), w)
	}
	assert.False(t, known.Contains("Ghost"), "aliases of blank graphemes are ignored")
	assert.False(t, known.Contains(""))
	assert.Len(t, known, 8)
}

func TestTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"daw", "Wesley", "Girls'", "High", "Kwame\u2019s", "caf\u00e9", "x"},
		Tokens("Ɔdaw, Wesley Girls' High; Kwame\u2019s caf\u00e9 42 x"),
	)
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "capitalized words", text: "Kumasi and Tamale", want: []string{"Kumasi", "Tamale"}},
		{name: "stop words dropped", text: "The President said On Monday Mr Mensah left", want: []string{"Mensah"}},
		{name: "acronyms dropped", text: "ECG and NPP met GFA", want: nil},
		{name: "single letters dropped", text: "A B Ho", want: []string{"Ho"}},
		{name: "lower case dropped", text: "chale dumsor", want: nil},
		{name: "first spelling kept", text: "Accra ACCRA Accra AcCra", want: []string{"Accra"}},
		{name: "latin-1 capitals", text: "\u00c9mile went to Z\u00fcrich", want: []string{"\u00c9mile", "Z\u00fcrich"}},
		{name: "apostrophe start", text: "'Kumasi", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Candidates(tt.text))
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	text, err := ReadText("testdata/article.txt")
	require.NoError(t, err)

	r := Check(testKnown(), text)

	assert.Equal(t, []string{"Bolga", "Dumsor", "Kotoko", "Kumasi", "Tamale"}, r.Matched)
	assert.Equal(t,
		[]string{"Accra", "Asante", "Baba", "Circle", "City", "Company", "Electricity", "Garden", "Kejetia", "Mensah", "Nkrumah", "Residents", "Yara"},
		r.Unmatched,
	)
	assert.Equal(t, len(r.Matched)+len(r.Unmatched), r.Candidates)
	assert.Equal(t, float64(len(r.Matched))/float64(r.Candidates)*100, r.Coverage())
	assert.Greater(t, r.Tokens, r.Candidates)
}

func TestCheck_Empty(t *testing.T) {
	t.Parallel()

	r := Check(testKnown(), "nothing capitalized here")
	assert.Zero(t, r.Candidates)
	assert.Zero(t, r.Coverage())
	assert.Empty(t, r.Matched)
}

func TestReadText_HTML(t *testing.T) {
	t.Parallel()

	text, err := ReadText("testdata/article.html")
	require.NoError(t, err)

	assert.Contains(t, text, "Kumasi")
	assert.Contains(t, text, "Kejetia")
	assert.NotContains(t, text, "var tracking")
	assert.NotContains(t, text, "<p>")

	r := Check(testKnown(), text)
	assert.Contains(t, r.Matched, "Kumasi")
	assert.Contains(t, r.Matched, "Tamale")
}

func TestReadText_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadText(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport_Write(t *testing.T) {
	t.Parallel()

	r := Check(testKnown(), "Kumasi welcomed Kejetia traders")

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "Candidate proper nouns:    2")
	assert.Contains(t, out, "Coverage:                  50.00%")
	assert.Contains(t, out, "  + Kumasi")
	assert.Contains(t, out, "  - Kejetia")
	assert.Contains(t, out, "Total unmatched: 1")
}
