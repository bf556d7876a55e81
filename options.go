package glosso

import (
	"log/slog"
	"time"

	"github.com/iancoleman/strcase"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/cache"
	"github.com/glosso/glosso/pkg/sanitizer"
)

// WithLogger sets the session logger.
func WithLogger(log *slog.Logger) Option {
	return session.WithLogger(log)
}

// WithSanitizer scrubs every value written through edits and imports.
func WithSanitizer(fn func(string) string) Option {
	return session.WithSanitizer(fn)
}

// WithPlainTextValues strips all HTML from values. Use it when
// translations must stay plain text.
func WithPlainTextValues() Option {
	return session.WithSanitizer(sanitizer.Plain)
}

// WithInlineHTMLValues allows inline formatting tags in values and
// strips everything else.
func WithInlineHTMLValues() Option {
	return session.WithSanitizer(sanitizer.Inline)
}

// WithKeyNormalizer shapes key names on AddKey and RenameKey.
func WithKeyNormalizer(fn func(string) string) Option {
	return session.WithKeyNormalizer(fn)
}

// WithSnakeCaseKeys normalizes new and renamed keys to snake_case.
//
// Example:
//
//	sess, _ := glosso.New(st, "web-app", glosso.WithSnakeCaseKeys())
//	path, _ := sess.AddKey("home.HeroTitle") // becomes home.hero_title
func WithSnakeCaseKeys() Option {
	return session.WithKeyNormalizer(strcase.ToSnake)
}

// WithDraftCache enables draft autosave into the given cache.
func WithDraftCache(c cache.Cache[Draft]) Option {
	return session.WithDraftCache(c)
}

// WithDraftTTL overrides how long drafts live. The default is 24 hours.
func WithDraftTTL(ttl time.Duration) Option {
	return session.WithDraftTTL(ttl)
}
