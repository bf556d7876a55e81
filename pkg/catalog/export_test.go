package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso/glosso/pkg/catalog"
)

func smallCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Decode([]byte(`{
	  "project": "demo",
	  "languages": ["en"],
	  "translations": {"greeting": {"en": "Hello"}}
	}`))
	require.NoError(t, err)
	return cat
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	t.Run("multi-language layout", func(t *testing.T) {
		t.Parallel()

		cat := smallCatalog(t)
		want := "{\n  \"greeting\": {\n    \"en\": \"Hello\"\n  }\n}\n"
		assert.Equal(t, want, string(cat.ExportJSON()))
	})

	t.Run("keeps key order", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		entries, err := catalog.FlattenJSON(cat.ExportJSON())
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, "auth.login.title.en", entries[0].Path)
	})
}

func TestExportLanguageJSON(t *testing.T) {
	t.Parallel()

	t.Run("collapses leaves to strings", func(t *testing.T) {
		t.Parallel()

		cat := smallCatalog(t)
		data, err := cat.ExportLanguageJSON("en")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"greeting\": \"Hello\"\n}\n", string(data))
	})

	t.Run("missing column renders empty", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		data, err := cat.ExportLanguageJSON("de")
		require.NoError(t, err)
		entries, err := catalog.FlattenJSON(data)
		require.NoError(t, err)
		byPath := make(map[string]string, len(entries))
		for _, e := range entries {
			byPath[e.Path] = e.Value
		}
		assert.Equal(t, "Anmelden", byPath["auth.login.title"])
		assert.Equal(t, "", byPath["auth.login.hint"])
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		_, err := cat.ExportLanguageJSON("fr")
		require.ErrorIs(t, err, catalog.ErrUnknownLanguage)
	})
}

func TestExportYAML(t *testing.T) {
	t.Parallel()

	t.Run("single language", func(t *testing.T) {
		t.Parallel()

		cat := smallCatalog(t)
		data, err := cat.ExportLanguageYAML("en")
		require.NoError(t, err)
		assert.Equal(t, "greeting: Hello\n", string(data))
	})

	t.Run("multi language", func(t *testing.T) {
		t.Parallel()

		cat := smallCatalog(t)
		data, err := cat.ExportYAML()
		require.NoError(t, err)
		assert.Equal(t, "greeting:\n  en: Hello\n", string(data))
	})

	t.Run("round trips through the yaml flattener", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		data, err := cat.ExportLanguageYAML("en")
		require.NoError(t, err)
		entries, err := catalog.FlattenYAML(data)
		require.NoError(t, err)
		assert.Equal(t, []catalog.FlatEntry{
			{Path: "auth.login.title", Value: "Sign in"},
			{Path: "auth.login.hint", Value: "Use your email"},
			{Path: "home.title", Value: "Home"},
		}, entries)
	})
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("depth-first key order", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		entries, err := cat.Flatten("en")
		require.NoError(t, err)
		assert.Equal(t, []catalog.FlatEntry{
			{Path: "auth.login.title", Value: "Sign in"},
			{Path: "auth.login.hint", Value: "Use your email"},
			{Path: "home.title", Value: "Home"},
		}, entries)
	})

	t.Run("flat json document", func(t *testing.T) {
		t.Parallel()

		cat := smallCatalog(t)
		data, err := cat.ExportFlatJSON("en")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"greeting\": \"Hello\"\n}\n", string(data))
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		_, err := cat.Flatten("fr")
		require.ErrorIs(t, err, catalog.ErrUnknownLanguage)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"json", "yaml", "flat"} {
		format, err := catalog.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, catalog.Format(name), format)
	}

	_, err := catalog.ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteLanguageFiles(t *testing.T) {
	t.Parallel()

	t.Run("writes one file per language", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		dir := t.TempDir()
		require.NoError(t, cat.WriteLanguageFiles(context.Background(), dir, catalog.FormatJSON))

		for _, lang := range []string{"en", "de"} {
			data, err := os.ReadFile(filepath.Join(dir, lang+".json"))
			require.NoError(t, err)
			entries, err := catalog.FlattenJSON(data)
			require.NoError(t, err)
			assert.Len(t, entries, 3)
		}
	})

	t.Run("yaml files carry the yaml extension", func(t *testing.T) {
		t.Parallel()

		cat := smallCatalog(t)
		dir := t.TempDir()
		require.NoError(t, cat.WriteLanguageFiles(context.Background(), dir, catalog.FormatYAML))

		_, err := os.Stat(filepath.Join(dir, "en.yaml"))
		require.NoError(t, err)
	})
}
