// Package health exposes liveness and readiness endpoints. Liveness
// only proves the process runs; readiness executes named dependency
// checks (store, cache) in parallel under a shared timeout and reports
// per-check results as JSON.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/glosso/glosso/pkg/logger"
)

// CheckFunc probes one dependency. Store and cache adapters expose
// methods with this signature.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to probes.
type Checks map[string]CheckFunc

// Report is the readiness response body. A check's value is "ok" or the
// error text.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const (
	statusOK   = "ok"
	statusFail = "unavailable"
)

// Option configures the readiness handler.
type Option func(*settings)

type settings struct {
	timeout time.Duration
	log     *slog.Logger
}

// WithTimeout bounds the combined runtime of all checks.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger logs failed checks at warn level.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// Live always answers 200; use it for liveness probes.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Report{Status: statusOK})
	}
}

// Ready runs every check in parallel and answers 200 when all pass,
// 503 otherwise.
func Ready(checks Checks, opts ...Option) http.HandlerFunc {
	s := settings{timeout: 5 * time.Second, log: logger.Discard()}
	for _, opt := range opts {
		opt(&s)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		report := run(r.Context(), checks, s)
		code := http.StatusOK
		if report.Status != statusOK {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, report)
	}
}

func run(ctx context.Context, checks Checks, s settings) Report {
	if len(checks) == 0 {
		return Report{Status: statusOK}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(checks))
		failed  bool
	)
	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := statusOK
			if err := check(ctx); err != nil {
				result = err.Error()
				s.log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			mu.Lock()
			if result != statusOK {
				failed = true
			}
			results[name] = result
			mu.Unlock()
		}()
	}
	wg.Wait()

	status := statusOK
	if failed {
		status = statusFail
	}
	return Report{Status: status, Checks: results}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
