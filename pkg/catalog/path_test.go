package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso/glosso/pkg/catalog"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	cat := sampleCatalog(t)

	t.Run("walks to a leaf", func(t *testing.T) {
		t.Parallel()

		node, err := cat.Resolve("auth.login.title")
		require.NoError(t, err)
		assert.True(t, node.IsLeaf())
		assert.Equal(t, "Sign in", node.Value("en"))
	})

	t.Run("walks to a namespace", func(t *testing.T) {
		t.Parallel()

		node, err := cat.Resolve("auth.login")
		require.NoError(t, err)
		assert.False(t, node.IsLeaf())
		assert.Equal(t, []string{"title", "hint"}, node.Keys())
	})

	t.Run("missing segment", func(t *testing.T) {
		t.Parallel()

		_, err := cat.Resolve("auth.logout.title")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})

	t.Run("path through a leaf", func(t *testing.T) {
		t.Parallel()

		_, err := cat.Resolve("auth.login.title.en")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := cat.Resolve("")
		require.ErrorIs(t, err, catalog.ErrPathNotFound)
	})
}

func TestValueReads(t *testing.T) {
	t.Parallel()

	cat := sampleCatalog(t)

	t.Run("present value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Anmelden", cat.Value("auth.login.title", "de"))
	})

	t.Run("blank column reads empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", cat.Value("auth.login.hint", "de"))
	})

	t.Run("unresolved path reads empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", cat.Value("auth.nope", "en"))
	})

	t.Run("namespace reads empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", cat.Value("auth.login", "en"))
	})

	t.Run("values padded to every language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, map[string]string{"en": "Use your email", "de": ""}, cat.Values("auth.login.hint"))
	})

	t.Run("values of unresolved path are blanks", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, map[string]string{"en": "", "de": ""}, cat.Values("missing.path"))
	})
}

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, catalog.SplitPath("a.b.c"))
	assert.Nil(t, catalog.SplitPath(""))
	assert.Equal(t, "a.b.c", catalog.JoinPath("a", "b", "c"))

	assert.True(t, catalog.PathContains("a.b", "a.b"))
	assert.True(t, catalog.PathContains("a.b", "a.b.c"))
	assert.False(t, catalog.PathContains("a.b", "a.bc"))
	assert.False(t, catalog.PathContains("a.b", "a"))
}
