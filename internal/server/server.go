// Package server exposes an editing session over HTTP. It wires the
// session's operations into a chi router with JSON request/response
// handling, maps the session's sentinel errors onto HTTP status codes,
// and runs the optional background jobs of a deployment: re-exporting
// language files after each save and scheduled catalog backups.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/health"
	"github.com/glosso/glosso/pkg/logger"
	"github.com/glosso/glosso/pkg/store"
)

// Server errors.
var (
	ErrNoSession = errors.New("server: session is required")
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Server serves a single editing session over HTTP.
type Server struct {
	sess *session.Session
	log  *slog.Logger

	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration

	checks        health.Checks
	exporter      *exportWorker
	backup        *backupJob
	autosave      bool
	shutdownHooks []func(context.Context) error

	handler http.Handler
}

// Option configures a Server.
type Option func(*Server) error

// WithAddr sets the listen address, e.g. ":8080".
func WithAddr(addr string) Option {
	return func(s *Server) error {
		if addr == "" {
			return errors.New("server: addr cannot be empty")
		}
		s.addr = addr
		return nil
	}
}

// WithLogger sets the request and job logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) error {
		if log == nil {
			return errors.New("server: logger cannot be nil")
		}
		s.log = log
		return nil
	}
}

// WithTimeouts overrides the HTTP read/write and shutdown timeouts.
// Zero values keep the defaults.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) error {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
		return nil
	}
}

// WithHealthChecks registers named readiness checks.
func WithHealthChecks(checks health.Checks) Option {
	return func(s *Server) error {
		s.checks = checks
		return nil
	}
}

// WithExportOnSave re-exports per-language files into dir after every
// successful save.
func WithExportOnSave(dir string, format catalog.Format) Option {
	return func(s *Server) error {
		if dir == "" {
			return errors.New("server: export dir cannot be empty")
		}
		s.exporter = newExportWorker(s.sess, dir, format)
		return nil
	}
}

// WithBackups schedules cron backups of the persisted catalog document.
// The schedule uses the standard five-field cron format. Keep limits how
// many backup files are retained per project; zero keeps all.
func WithBackups(schedule string, st store.Store, project, dir string, keep int) Option {
	return func(s *Server) error {
		job, err := newBackupJob(schedule, st, project, dir, keep)
		if err != nil {
			return err
		}
		s.backup = job
		return nil
	}
}

// WithDraftAutosave persists a working-state draft after every mutation.
func WithDraftAutosave() Option {
	return func(s *Server) error {
		s.autosave = true
		return nil
	}
}

// WithShutdownHook registers a hook to run during graceful shutdown,
// after the HTTP server has stopped.
func WithShutdownHook(hook func(context.Context) error) Option {
	return func(s *Server) error {
		if hook == nil {
			return errors.New("server: shutdown hook cannot be nil")
		}
		s.shutdownHooks = append(s.shutdownHooks, hook)
		return nil
	}
}

// New creates a Server around an editing session.
func New(sess *session.Session, opts ...Option) (*Server, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	s := &Server{
		sess:            sess,
		log:             logger.Discard(),
		addr:            ":8080",
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Run starts the HTTP server and background jobs, then blocks until the
// context is cancelled or a signal arrives. Shutdown stops the server
// gracefully, drains the export worker and runs shutdown hooks.
func (s *Server) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	if s.exporter != nil {
		s.exporter.start(s.log)
	}
	if s.backup != nil {
		s.backup.start(s.log)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if s.exporter != nil {
		s.exporter.stop()
	}
	if s.backup != nil {
		s.backup.stop()
	}
	for _, hook := range s.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.log.Error("shutdown hook failed", slog.Any("error", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.log.Info("shutdown completed")
	return nil
}
