package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/health"
)

// maxImportBytes bounds import payloads.
const maxImportBytes = 10 << 20

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.log))
	r.Use(recoverer(s.log))

	r.Get("/health/live", health.Live())
	r.Get("/health/ready", health.Ready(s.checks, health.WithLogger(s.log)))

	r.Route("/v1/catalog", func(r chi.Router) {
		r.Get("/", s.handleSummary)
		r.Get("/tree", s.handleTree)
		r.Get("/changes", s.handleChanges)
		r.Put("/translations", s.handleUpdateTranslation)
		r.Post("/keys", s.handleAddKey)
		r.Delete("/keys", s.handleDeleteKey)
		r.Post("/keys/rename", s.handleRenameKey)
		r.Post("/languages", s.handleAddLanguage)
		r.Delete("/languages/{code}", s.handleRemoveLanguage)
		r.Post("/save", s.handleSave)
		r.Post("/discard", s.handleDiscard)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})
	return r
}

type summaryResponse struct {
	Project           string             `json:"project"`
	Languages         []session.Language `json:"languages"`
	Completeness      float64            `json:"completeness"`
	PendingChanges    int                `json:"pendingChanges"`
	HasUnsavedChanges bool               `json:"hasUnsavedChanges"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	langs, err := s.sess.Languages()
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	completeness, err := s.sess.Completeness()
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summaryResponse{
		Project:           s.sess.Project(),
		Languages:         langs,
		Completeness:      completeness,
		PendingChanges:    len(s.sess.Changes()),
		HasUnsavedChanges: s.sess.HasUnsavedChanges(),
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.sess.BuildTree()
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	if tree == nil {
		tree = []*catalog.DisplayNode{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"tree": tree})
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	changes := s.sess.Changes()
	if changes == nil {
		changes = []session.Change{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"changes": changes})
}

func (s *Server) handleUpdateTranslation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path     string `json:"path"`
		Language string `json:"language"`
		Value    string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" || req.Language == "" {
		respondError(w, http.StatusBadRequest, "path and language are required")
		return
	}
	if err := s.sess.UpdateTranslation(req.Path, req.Language, req.Value); err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	respondJSON(w, http.StatusOK, map[string]int{"pendingChanges": len(s.sess.Changes())})
}

func (s *Server) handleAddKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	path, err := s.sess.AddKey(req.Path)
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	respondJSON(w, http.StatusCreated, map[string]string{"path": path})
}

func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	if err := s.sess.DeleteKey(req.Path); err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	respondJSON(w, http.StatusOK, map[string]int{"pendingChanges": len(s.sess.Changes())})
}

func (s *Server) handleRenameKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path   string `json:"path"`
		NewKey string `json:"newKey"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" || req.NewKey == "" {
		respondError(w, http.StatusBadRequest, "path and newKey are required")
		return
	}
	path, err := s.sess.RenameKey(req.Path, req.NewKey)
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"path":           path,
		"pendingChanges": len(s.sess.Changes()),
	})
}

func (s *Server) handleAddLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}
	if err := s.sess.AddLanguage(req.Code); err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	s.respondLanguages(w, r)
}

func (s *Server) handleRemoveLanguage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := s.sess.RemoveLanguage(code); err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	s.respondLanguages(w, r)
}

func (s *Server) respondLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := s.sess.Languages()
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"languages": langs})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Save(r.Context()); err != nil {
		s.respondFailure(w, r, err)
		return
	}
	if s.exporter != nil {
		s.exporter.trigger()
	}
	respondJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Discard(); err != nil {
		s.respondFailure(w, r, err)
		return
	}
	if s.autosave {
		if err := s.sess.DiscardDraft(r.Context()); err != nil && !errors.Is(err, session.ErrNoDraftCache) {
			s.log.WarnContext(r.Context(), "draft discard failed", slog.Any("error", err))
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("language")
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(catalog.FormatJSON)
	}
	format, err := catalog.ParseFormat(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := s.sess.Export(lang, format)
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}

	filename := s.sess.Project()
	if lang != "" {
		filename += "-" + lang
	}
	contentType := "application/json; charset=utf-8"
	ext := "json"
	if format == catalog.FormatYAML {
		contentType = "application/x-yaml; charset=utf-8"
		ext = "yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+"."+ext))
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("language")
	if lang == "" {
		respondError(w, http.StatusBadRequest, "language is required")
		return
	}
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(catalog.FormatJSON)
	}
	format, err := catalog.ParseFormat(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	createMissing := r.URL.Query().Get("createMissing") == "true"

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "import payload too large")
		return
	}

	applied, err := s.sess.Import(lang, format, data, createMissing)
	if err != nil {
		s.respondFailure(w, r, err)
		return
	}
	s.autosaveDraft(r.Context())
	respondJSON(w, http.StatusOK, map[string]int{
		"applied":        applied,
		"pendingChanges": len(s.sess.Changes()),
	})
}

// autosaveDraft persists the working state after a mutation when draft
// autosave is enabled. Failures are logged, never surfaced.
func (s *Server) autosaveDraft(ctx context.Context) {
	if !s.autosave {
		return
	}
	if err := s.sess.SaveDraft(ctx); err != nil && !errors.Is(err, session.ErrNoDraftCache) {
		s.log.WarnContext(ctx, "draft autosave failed", slog.Any("error", err))
	}
}
