package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/store"
)

// errorStatus maps session and catalog sentinels onto HTTP statuses.
// Order matters: errors arrive joined with their cause, so
// ErrMalformedImport must win over the path and key sentinels it wraps,
// and store.ErrNotFound over ErrFetchFailed.
var errorStatus = []struct {
	err    error
	status int
}{
	{session.ErrMalformedImport, http.StatusUnprocessableEntity},
	{store.ErrNotFound, http.StatusNotFound},
	{catalog.ErrPathNotFound, http.StatusNotFound},
	{session.ErrNoDraft, http.StatusNotFound},
	{catalog.ErrKeyExists, http.StatusConflict},
	{catalog.ErrDuplicateLanguage, http.StatusConflict},
	{catalog.ErrInvalidKey, http.StatusUnprocessableEntity},
	{catalog.ErrInvalidLanguage, http.StatusUnprocessableEntity},
	{catalog.ErrUnknownLanguage, http.StatusUnprocessableEntity},
	{catalog.ErrLastLanguage, http.StatusUnprocessableEntity},
	{session.ErrLanguageRequired, http.StatusUnprocessableEntity},
	{session.ErrNoCatalog, http.StatusServiceUnavailable},
	{session.ErrNoDraftCache, http.StatusServiceUnavailable},
	{session.ErrFetchFailed, http.StatusBadGateway},
	{session.ErrSaveFailed, http.StatusBadGateway},
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure maps err onto a status. Client errors expose the full
// error text; server-side failures expose only the sentinel and log the
// cause.
func (s *Server) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.status >= http.StatusInternalServerError {
			s.log.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			respondError(w, m.status, m.err.Error())
			return
		}
		respondError(w, m.status, err.Error())
		return
	}
	s.log.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody parses a JSON request body into v, answering 400 on
// malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
