package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glosso/glosso/pkg/sanitizer"
)

func TestPlain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Sign in", sanitizer.Plain("<b>Sign in</b>"))
	assert.Equal(t, "Hello", sanitizer.Plain("<script>alert(1)</script>Hello"))
	assert.Equal(t, "plain text", sanitizer.Plain("plain text"))
}

func TestInline(t *testing.T) {
	t.Parallel()

	t.Run("keeps inline formatting", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<b>Sign in</b> now", sanitizer.Inline("<b>Sign in</b> now"))
		assert.Equal(t, "use <code>ctrl+s</code>", sanitizer.Inline("use <code>ctrl+s</code>"))
	})

	t.Run("strips scripts and handlers", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hello", sanitizer.Inline("<script>alert(1)</script>Hello"))
		assert.Equal(t, "<span>hi</span>", sanitizer.Inline(`<span onclick="evil()">hi</span>`))
	})

	t.Run("strips block elements", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a paragraph", sanitizer.Inline("<p>a paragraph</p>"))
	})

	t.Run("neutralizes javascript urls", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, sanitizer.Inline(`<a href="javascript:evil()">x</a>`), "javascript:")
	})
}
