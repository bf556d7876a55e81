// Package logger builds the application's slog loggers: JSON output,
// request-scoped attributes pulled from context, and an optional Sentry
// fan-out for warnings and errors.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables the Sentry handler. An empty DSN disables it,
// which is the expected setup for local development.
type SentryConfig struct {
	DSN         string
	Environment string
}

// Option configures New.
type Option func(*settings)

type settings struct {
	writer     io.Writer
	level      slog.Level
	extractors []Extractor
	sentry     SentryConfig
}

// WithWriter redirects log output, mainly for tests.
func WithWriter(w io.Writer) Option {
	return func(s *settings) { s.writer = w }
}

// WithLevel sets the minimum level for the JSON handler.
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithExtractors appends context extractors applied to every record.
func WithExtractors(extractors ...Extractor) Option {
	return func(s *settings) { s.extractors = append(s.extractors, extractors...) }
}

// WithSentry adds the Sentry fan-out.
func WithSentry(cfg SentryConfig) Option {
	return func(s *settings) { s.sentry = cfg }
}

// New builds a JSON logger. With a Sentry DSN configured, errors create
// Sentry issues and warnings are forwarded as Sentry logs; a failed
// Sentry init degrades to JSON-only so the service still starts.
func New(opts ...Option) *slog.Logger {
	s := settings{writer: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&s)
	}

	jsonHandler := slog.NewJSONHandler(s.writer, &slog.HandlerOptions{Level: s.level})
	handler := slog.Handler(jsonHandler)

	if s.sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         s.sentry.DSN,
			Environment: s.sentry.Environment,
			EnableLogs:  true,
		}); err != nil {
			slog.New(jsonHandler).Error("sentry init failed", slog.String("error", err.Error()))
		} else {
			sentryHandler := sentryslog.Option{
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			}.NewSentryHandler(context.Background())
			handler = newMultiHandler(jsonHandler, sentryHandler)
		}
	}

	return slog.New(newContextHandler(handler, s.extractors...))
}

// Discard returns a logger that drops everything, used as the default
// when no logger is wired.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
