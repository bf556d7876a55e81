package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso/glosso/pkg/catalog"
)

func TestBuildTree(t *testing.T) {
	t.Parallel()

	t.Run("projects structure in key order", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		tree := cat.BuildTree()
		require.Len(t, tree, 2)

		auth := tree[0]
		assert.Equal(t, "auth", auth.Key)
		assert.Equal(t, "auth", auth.Path)
		assert.Equal(t, 0, auth.Depth)
		assert.False(t, auth.Leaf)
		require.Len(t, auth.Children, 1)

		login := auth.Children[0]
		assert.Equal(t, "auth.login", login.Path)
		assert.Equal(t, 1, login.Depth)
		require.Len(t, login.Children, 2)
		assert.Equal(t, "title", login.Children[0].Key)
		assert.Equal(t, "hint", login.Children[1].Key)
		assert.Equal(t, 2, login.Children[0].Depth)
	})

	t.Run("leaf values padded to every language", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		tree := cat.BuildTree()
		hint := tree[0].Children[0].Children[1]
		assert.True(t, hint.Leaf)
		assert.Equal(t, map[string]string{"en": "Use your email", "de": ""}, hint.Values)
	})

	t.Run("leaf completeness is the filled share", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		tree := cat.BuildTree()
		login := tree[0].Children[0]
		assert.InDelta(t, 100, login.Children[0].Completeness, 0.001)
		assert.InDelta(t, 50, login.Children[1].Completeness, 0.001)
	})

	t.Run("namespace completeness is the unweighted mean", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		tree := cat.BuildTree()
		assert.InDelta(t, 75, tree[0].Completeness, 0.001)
		assert.InDelta(t, 100, tree[1].Completeness, 0.001)
	})

	t.Run("whitespace-only values count as blank", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		require.NoError(t, cat.SetValue("home.title", "de", "   "))
		tree := cat.BuildTree()
		assert.InDelta(t, 50, tree[1].Children[0].Completeness, 0.001)
	})

	t.Run("empty namespace counts as complete", func(t *testing.T) {
		t.Parallel()

		root := catalog.NewNamespace().Put("empty", catalog.NewNamespace())
		cat, err := catalog.New("demo", []string{"en"}, root)
		require.NoError(t, err)
		tree := cat.BuildTree()
		require.Len(t, tree, 1)
		assert.InDelta(t, 100, tree[0].Completeness, 0.001)
	})

	t.Run("deep nesting averages per level", func(t *testing.T) {
		t.Parallel()

		doc := `{
		  "project": "p",
		  "languages": ["en", "de"],
		  "translations": {
		    "a": {
		      "b": {
		        "full": {"en": "x", "de": "y"},
		        "half": {"en": "x", "de": ""},
		        "none": {"en": "", "de": ""}
		      },
		      "c": {"en": "x", "de": "y"}
		    }
		  }
		}`
		cat, err := catalog.Decode([]byte(doc))
		require.NoError(t, err)
		tree := cat.BuildTree()

		b := tree[0].Children[0]
		assert.InDelta(t, 50, b.Completeness, 0.001) // (100+50+0)/3
		assert.InDelta(t, 75, tree[0].Completeness, 0.001)
	})
}

func TestCompleteness(t *testing.T) {
	t.Parallel()

	t.Run("averages root children", func(t *testing.T) {
		t.Parallel()

		cat := sampleCatalog(t)
		assert.InDelta(t, 87.5, cat.Completeness(), 0.001)
	})

	t.Run("empty catalog is complete", func(t *testing.T) {
		t.Parallel()

		cat, err := catalog.New("demo", []string{"en"}, nil)
		require.NoError(t, err)
		assert.InDelta(t, 100, cat.Completeness(), 0.001)
	})
}
