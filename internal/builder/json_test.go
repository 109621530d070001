package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/config"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

func TestGenerateJSON_BuildsWhenMissing(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeSource(t, root, "core.csv", "grapheme,phoneme,notes\ndumsor,ˈdum.sɔ,power outage\n")
	b := newTestBuilder(root, []config.Source{{Path: "core.csv", Domain: "core"}})

	res, err := b.GenerateJSON(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Built)
	assert.Equal(t, 1, res.Entries)
	require.Len(t, res.Paths, 1)

	entries, err := artifact.ReadJSONFile(res.Paths[0])
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{{
		Grapheme: "dumsor", Phoneme: "ˈdum.sɔ", Domain: "core", Notes: "power outage", SourceFile: "core.csv",
	}}, entries)
}

func TestGenerateJSON_RefiltersHandEditedCSV(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	b := newTestBuilder(root, nil)
	require.NoError(t, artifact.WriteCSVFile(b.DictionaryPath(), []domain.Entry{
		{Grapheme: "Accra", Phoneme: "aˈkra", Domain: "places"},
		{Grapheme: "", Phoneme: "ˈnobody"},
		{Grapheme: " Ho ", Phoneme: " ho "},
	}))

	res, err := b.GenerateJSON(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Built)
	assert.Equal(t, 2, res.Entries)

	entries, err := artifact.ReadJSONFile(res.Paths[0])
	require.NoError(t, err)
	assert.Equal(t, "Ho", entries[1].Grapheme)
	assert.Equal(t, "ho", entries[1].Phoneme)
}

func TestGenerateJSON_WritesPackageCopy(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeSource(t, root, "core.csv", "grapheme,phoneme\nchale,ˈtʃale\n")
	paths := testPaths(root)
	paths.PackageJSON = "pkg/ninolex/data/ninolex_gh_dictionary.json"
	b := New(newDiscardLogger(), paths, []config.Source{{Path: "core.csv", Domain: "core"}})

	res, err := b.GenerateJSON(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Paths, 2)

	primary, err := os.ReadFile(res.Paths[0])
	require.NoError(t, err)
	copied, err := os.ReadFile(filepath.Join(root, paths.PackageJSON))
	require.NoError(t, err)
	assert.Equal(t, primary, copied)
}
