package session_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/catalog"
)

func TestUpdateTranslation(t *testing.T) {
	t.Parallel()

	t.Run("records a pending change", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Startseite"))

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, session.Change{
			Path:     "home.title",
			Language: "de",
			Before:   "Start",
			After:    "Startseite",
		}, changes[0])
	})

	t.Run("repeated edits keep the original before value", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Startseite"))
		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Hauptseite"))

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, "Start", changes[0].Before)
		assert.Equal(t, "Hauptseite", changes[0].After)
	})

	t.Run("restoring the original value clears the change", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Startseite"))
		require.True(t, sess.HasUnsavedChanges())

		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Start"))
		assert.False(t, sess.HasUnsavedChanges())
	})

	t.Run("separate cells track separately", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("home.title", "en", "Landing"))
		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Startseite"))
		assert.Len(t, sess.Changes(), 2)
	})

	t.Run("unknown language is rejected", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		err := sess.UpdateTranslation("home.title", "fr", "Accueil")
		require.ErrorIs(t, err, catalog.ErrUnknownLanguage)
		assert.False(t, sess.HasUnsavedChanges())
	})

	t.Run("sanitizer scrubs the value", func(t *testing.T) {
		t.Parallel()

		scrub := func(s string) string { return strings.TrimSpace(s) }
		sess := loadedSession(t, session.WithSanitizer(scrub))
		require.NoError(t, sess.UpdateTranslation("home.title", "en", "  Landing  "))

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, "Landing", changes[0].After)
	})
}

func TestRenameKey(t *testing.T) {
	t.Parallel()

	t.Run("records the rename", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		newPath, err := sess.RenameKey("auth.login.title", "heading")
		require.NoError(t, err)
		assert.Equal(t, "auth.login.heading", newPath)

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, session.Change{
			Path:     "auth.login.heading",
			Language: session.KeyRename,
			Before:   "title",
			After:    "heading",
		}, changes[0])
		assert.True(t, changes[0].IsRename())
	})

	t.Run("chained renames collapse to one change", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		mid, err := sess.RenameKey("auth.login.title", "heading")
		require.NoError(t, err)
		final, err := sess.RenameKey(mid, "caption")
		require.NoError(t, err)
		assert.Equal(t, "auth.login.caption", final)

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, "title", changes[0].Before)
		assert.Equal(t, "caption", changes[0].After)
	})

	t.Run("renaming back clears the change", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		mid, err := sess.RenameKey("auth.login.title", "heading")
		require.NoError(t, err)
		_, err = sess.RenameKey(mid, "title")
		require.NoError(t, err)
		assert.False(t, sess.HasUnsavedChanges())
	})

	t.Run("pending edits follow the renamed key", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("auth.login.title", "en", "Log in"))
		_, err := sess.RenameKey("auth.login.title", "heading")
		require.NoError(t, err)

		changes := sess.Changes()
		require.Len(t, changes, 2)
		assert.Equal(t, "auth.login.heading", changes[0].Path)
		assert.Equal(t, "en", changes[0].Language)
	})

	t.Run("pending edits follow a renamed namespace", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("auth.login.hint", "de", "E-Mail verwenden"))
		_, err := sess.RenameKey("auth.login", "signin")
		require.NoError(t, err)

		changes := sess.Changes()
		require.Len(t, changes, 2)
		assert.Equal(t, "auth.signin.hint", changes[0].Path)
		assert.Equal(t, "auth.signin", changes[1].Path)
	})

	t.Run("prefix-only overlap does not repath", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		_, err := sess.AddKey("auth.logindeep")
		require.NoError(t, err)
		require.NoError(t, sess.UpdateTranslation("auth.logindeep", "en", "deep"))

		_, err = sess.RenameKey("auth.login", "signin")
		require.NoError(t, err)

		changes := sess.Changes()
		require.Len(t, changes, 2)
		assert.Equal(t, "auth.logindeep", changes[0].Path)
	})

	t.Run("collision leaves state untouched", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		_, err := sess.RenameKey("auth.login.title", "hint")
		require.ErrorIs(t, err, catalog.ErrKeyExists)
		assert.False(t, sess.HasUnsavedChanges())
	})

	t.Run("rename to same name is a no-op", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		newPath, err := sess.RenameKey("home.title", "title")
		require.NoError(t, err)
		assert.Equal(t, "home.title", newPath)
		assert.False(t, sess.HasUnsavedChanges())
	})

	t.Run("normalizer shapes the new name", func(t *testing.T) {
		t.Parallel()

		norm := func(s string) string { return strings.ToLower(s) }
		sess := loadedSession(t, session.WithKeyNormalizer(norm))
		newPath, err := sess.RenameKey("home.title", "Headline")
		require.NoError(t, err)
		assert.Equal(t, "home.headline", newPath)
	})
}

func TestStructuralChanges(t *testing.T) {
	t.Parallel()

	t.Run("add key is not tracked", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		path, err := sess.AddKey("home.subtitle")
		require.NoError(t, err)
		assert.Equal(t, "home.subtitle", path)
		assert.False(t, sess.HasUnsavedChanges())

		tree, err := sess.BuildTree()
		require.NoError(t, err)
		require.Len(t, tree[1].Children, 2)
		assert.Equal(t, map[string]string{"en": "", "de": ""}, tree[1].Children[1].Values)
	})

	t.Run("delete key drops pending changes underneath", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("auth.login.title", "en", "Log in"))
		require.NoError(t, sess.UpdateTranslation("home.title", "en", "Landing"))

		require.NoError(t, sess.DeleteKey("auth.login"))

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, "home.title", changes[0].Path)
	})

	t.Run("delete missing key fails", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.ErrorIs(t, sess.DeleteKey("home.missing"), catalog.ErrPathNotFound)
	})
}

func TestLanguageOperations(t *testing.T) {
	t.Parallel()

	t.Run("add language fills every leaf", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.AddLanguage("fr"))

		langs, err := sess.Languages()
		require.NoError(t, err)
		require.Len(t, langs, 3)
		assert.Equal(t, session.Language{Code: "fr", Name: "French"}, langs[2])

		tree, err := sess.BuildTree()
		require.NoError(t, err)
		assert.Equal(t, "", tree[1].Children[0].Values["fr"])
		assert.False(t, sess.HasUnsavedChanges())
	})

	t.Run("adding an existing language is silent", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.AddLanguage("de"))

		langs, err := sess.Languages()
		require.NoError(t, err)
		assert.Len(t, langs, 2)
	})

	t.Run("remove language drops its pending changes", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.UpdateTranslation("home.title", "de", "Startseite"))
		require.NoError(t, sess.UpdateTranslation("home.title", "en", "Landing"))

		require.NoError(t, sess.RemoveLanguage("de"))

		changes := sess.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, "en", changes[0].Language)

		langs, err := sess.Languages()
		require.NoError(t, err)
		assert.Len(t, langs, 1)
	})

	t.Run("removing an absent language is silent", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.RemoveLanguage("fr"))

		langs, err := sess.Languages()
		require.NoError(t, err)
		assert.Len(t, langs, 2)
	})

	t.Run("the last language cannot be removed", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		require.NoError(t, sess.RemoveLanguage("de"))
		require.ErrorIs(t, sess.RemoveLanguage("en"), catalog.ErrLastLanguage)
	})

	t.Run("add then remove restores the document", func(t *testing.T) {
		t.Parallel()

		sess := loadedSession(t)
		before, err := sess.Export("", catalog.FormatJSON)
		require.NoError(t, err)

		require.NoError(t, sess.AddLanguage("fr"))
		require.NoError(t, sess.RemoveLanguage("fr"))

		after, err := sess.Export("", catalog.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})
}
