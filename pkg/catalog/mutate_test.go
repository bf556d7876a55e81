package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso/glosso/pkg/catalog"
)

func TestSetValue(t *testing.T) {
	t.Parallel()

	t.Run("updates a leaf column", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.NoError(t, cat.SetValue("auth.login.hint", "de", "E-Mail verwenden"))
		assert.Equal(t, "E-Mail verwenden", cat.Value("auth.login.hint", "de"))
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		err := cat.SetValue("auth.login.hint", "fr", "x")
		require.ErrorIs(t, err, catalog.ErrUnknownLanguage)
		assert.Equal(t, "Use your email", cat.Value("auth.login.hint", "en"))
	})

	t.Run("unresolved path", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		err := cat.SetValue("auth.logout.title", "en", "x")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})

	t.Run("namespace target", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		err := cat.SetValue("auth.login", "en", "x")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})
}

func TestRename(t *testing.T) {
	t.Parallel()

	t.Run("keeps position and subtree", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		newPath, err := cat.Rename("auth.login.title", "heading")
		require.NoError(t, err)
		assert.Equal(t, "auth.login.heading", newPath)

		node, err := cat.Resolve("auth.login")
		require.NoError(t, err)
		assert.Equal(t, []string{"heading", "hint"}, node.Keys())
		assert.Equal(t, "Sign in", cat.Value("auth.login.heading", "en"))
	})

	t.Run("renames a namespace with descendants", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		newPath, err := cat.Rename("auth", "account")
		require.NoError(t, err)
		assert.Equal(t, "account", newPath)
		assert.Equal(t, "Anmelden", cat.Value("account.login.title", "de"))
		assert.Equal(t, "", cat.Value("auth.login.title", "de"))
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		newPath, err := cat.Rename("home.title", "title")
		require.NoError(t, err)
		assert.Equal(t, "home.title", newPath)
	})

	t.Run("sibling collision", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		_, err := cat.Rename("auth.login.title", "hint")
		require.ErrorIs(t, err, catalog.ErrKeyExists)

		node, rerr := cat.Resolve("auth.login")
		require.NoError(t, rerr)
		assert.Equal(t, []string{"title", "hint"}, node.Keys())
	})

	t.Run("rejects language-shadowing name", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		_, err := cat.Rename("home.title", "de")
		require.ErrorIs(t, err, catalog.ErrInvalidKey)
	})

	t.Run("rejects dotted name", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		_, err := cat.Rename("home.title", "a.b")
		require.ErrorIs(t, err, catalog.ErrInvalidKey)
	})

	t.Run("unresolved path", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		_, err := cat.Rename("home.missing", "x")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})
}

func TestAddKey(t *testing.T) {
	t.Parallel()

	t.Run("creates leaf with blank columns", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.NoError(t, cat.AddKey("home.subtitle"))

		node, err := cat.Resolve("home.subtitle")
		require.NoError(t, err)
		assert.True(t, node.IsLeaf())
		assert.Equal(t, map[string]string{"en": "", "de": ""}, node.Values())

		home, err := cat.Resolve("home")
		require.NoError(t, err)
		assert.Equal(t, []string{"title", "subtitle"}, home.Keys())
	})

	t.Run("creates intermediate namespaces", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.NoError(t, cat.AddKey("checkout.payment.title"))

		node, err := cat.Resolve("checkout.payment")
		require.NoError(t, err)
		assert.False(t, node.IsLeaf())
	})

	t.Run("existing node", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.ErrorIs(t, cat.AddKey("home.title"), catalog.ErrKeyExists)
	})

	t.Run("path through a leaf", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.ErrorIs(t, cat.AddKey("home.title.deep"), catalog.ErrPathNotFound)
	})

	t.Run("language-shadowing segment", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.ErrorIs(t, cat.AddKey("home.de"), catalog.ErrInvalidKey)
	})
}

func TestDeleteKey(t *testing.T) {
	t.Parallel()

	t.Run("removes subtree and keeps sibling order", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.NoError(t, cat.DeleteKey("auth.login.title"))

		node, err := cat.Resolve("auth.login")
		require.NoError(t, err)
		assert.Equal(t, []string{"hint"}, node.Keys())
		_, err = cat.Resolve("auth.login.title")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})

	t.Run("unresolved path", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.ErrorIs(t, cat.DeleteKey("auth.missing"), catalog.ErrPathNotFound)
	})
}
