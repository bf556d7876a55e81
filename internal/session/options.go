package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/glosso/glosso/pkg/cache"
)

// Option configures a Session during New.
type Option func(*Session) error

// WithLogger attaches a structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) error {
		if log == nil {
			return errors.New("session: nil logger")
		}
		s.log = log
		return nil
	}
}

// WithSanitizer scrubs every incoming translation value, both single
// edits and bulk imports, before it reaches the catalog.
func WithSanitizer(fn func(string) string) Option {
	return func(s *Session) error {
		if fn == nil {
			return errors.New("session: nil sanitizer")
		}
		s.scrub = fn
		return nil
	}
}

// WithKeyNormalizer rewrites key segments on AddKey and RenameKey, for
// teams that enforce one key style regardless of what editors type.
func WithKeyNormalizer(fn func(string) string) Option {
	return func(s *Session) error {
		if fn == nil {
			return errors.New("session: nil key normalizer")
		}
		s.normalize = fn
		return nil
	}
}

// WithDraftCache enables draft autosave into the given cache.
func WithDraftCache(c cache.Cache[Draft]) Option {
	return func(s *Session) error {
		if c == nil {
			return errors.New("session: nil draft cache")
		}
		s.drafts = c
		return nil
	}
}

// WithDraftTTL bounds how long an autosaved draft survives. The default
// is 24 hours.
func WithDraftTTL(ttl time.Duration) Option {
	return func(s *Session) error {
		if ttl <= 0 {
			return errors.New("session: draft ttl must be positive")
		}
		s.draftTTL = ttl
		return nil
	}
}
