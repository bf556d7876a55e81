package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/catalog"
)

func TestImport(t *testing.T) {
	t.Parallel()

	t.Run("applies nested json", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data := []byte(`{"home": {"title": "Startseite"}}`)
		applied, err := sess.Import("de", catalog.FormatJSON, data, false)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, session.Change{
			Path:     "home.title",
			Language: "de",
			Before:   "Start",
			After:    "Startseite",
		}, changes[0])
	})

	t.Run("applies flat dotted json", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data := []byte(`{"home.title": "Startseite", "auth.login.hint": "E-Mail verwenden"}`)
		applied, err := sess.Import("de", catalog.FormatJSON, data, false)
		require.NoError(t, err)
		assert.Equal(t, 2, applied)
	})

	t.Run("applies yaml", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data := []byte("home:\n  title: Startseite\n")
		applied, err := sess.Import("de", catalog.FormatYAML, data, false)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)
	})

	t.Run("unchanged values are not counted", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data := []byte(`{"home.title": "Start", "auth.login.title": "Einloggen"}`)
		applied, err := sess.Import("de", catalog.FormatJSON, data, false)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)
		assert.Len(t, sess.Changes(), 1)
	})

	t.Run("unknown path rejects the whole import", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data := []byte(`{"home.title": "Startseite", "home.missing": "x"}`)
		_, err := sess.Import("de", catalog.FormatJSON, data, false)
		require.ErrorIs(t, err, session.ErrMalformedImport)

		assert.False(t, sess.HasUnsavedChanges())
		tree, err := sess.BuildTree()
		require.NoError(t, err)
		assert.Equal(t, "Start", tree[1].Children[0].Values["de"])
	})

	t.Run("create missing adds new keys", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data := []byte(`{"home.subtitle": "Willkommen"}`)
		applied, err := sess.Import("de", catalog.FormatJSON, data, true)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, "", changes[0].Before)
		assert.Equal(t, "Willkommen", changes[0].After)

		tree, err := sess.BuildTree()
		require.NoError(t, err)
		require.Len(t, tree[1].Children, 2)
		assert.Equal(t, "", tree[1].Children[1].Values["en"])
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		_, err := sess.Import("de", catalog.FormatJSON, []byte(`{"home": [1, 2]}`), false)
		require.ErrorIs(t, err, session.ErrMalformedImport)
	})

	t.Run("unknown language is rejected", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		_, err := sess.Import("fr", catalog.FormatJSON, []byte(`{"home.title": "Accueil"}`), false)
		require.ErrorIs(t, err, catalog.ErrUnknownLanguage)
	})

	t.Run("sanitizer scrubs imported values", func(t *testing.T) {
		t.Parallel()

		scrub := func(s string) string {
			if s == "dirty" {
				return "clean"
			}
			return s
		}
		sess := loadedSession(t, session.WithSanitizer(scrub))
		applied, err := sess.Import("en", catalog.FormatJSON, []byte(`{"home.title": "dirty"}`), false)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		tree, err := sess.BuildTree()
		require.NoError(t, err)
		assert.Equal(t, "clean", tree[1].Children[0].Values["en"])
	})
}

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("whole document", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data, err := sess.Export("", catalog.FormatJSON)
		require.NoError(t, err)

		cat, err := catalog.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, "web", cat.Project())
	})

	t.Run("single language", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		data, err := sess.Export("de", catalog.FormatJSON)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"title": "Start"`)
		assert.NotContains(t, string(data), `"en":`)
	})

	t.Run("flat requires a language", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		_, err := sess.Export("", catalog.FormatFlat)
		require.ErrorIs(t, err, session.ErrLanguageRequired)

		data, err := sess.Export("en", catalog.FormatFlat)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"auth.login.title": "Sign in"`)
	})

	t.Run("unknown language is rejected", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		_, err := sess.Export("fr", catalog.FormatJSON)
		require.ErrorIs(t, err, catalog.ErrUnknownLanguage)
	})
}

func TestWriteLanguageFiles(t *testing.T) {
	t.Parallel()

	t.Run("writes one file per language", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		dir := t.TempDir()
		require.NoError(t, sess.WriteLanguageFiles(context.Background(), dir, catalog.FormatJSON))

		en, err := os.ReadFile(filepath.Join(dir, "en.json"))
		require.NoError(t, err)
		assert.Contains(t, string(en), `"title": "Sign in"`)

		de, err := os.ReadFile(filepath.Join(dir, "de.json"))
		require.NoError(t, err)
		assert.Contains(t, string(de), `"title": "Anmelden"`)
	})

	t.Run("yaml extension follows the format", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		dir := t.TempDir()
		require.NoError(t, sess.WriteLanguageFiles(context.Background(), dir, catalog.FormatYAML))

		_, err := os.Stat(filepath.Join(dir, "en.yaml"))
		require.NoError(t, err)
	})
}
