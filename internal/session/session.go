// Package session implements the editing session for one project's
// catalog: it loads a catalog from a store, tracks every pending change
// against the last-saved snapshot, and saves or discards the working
// state as a whole. A session is safe for concurrent use; all editing
// operations serialize on one mutex, and Save holds it across the store
// write so no edit can slip between serialization and persistence.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glosso/glosso/pkg/cache"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/logger"
	"github.com/glosso/glosso/pkg/store"
)

// Session is an editing session over one project's catalog.
type Session struct {
	id        string
	project   string
	store     store.Store
	log       *slog.Logger
	scrub     func(string) string
	normalize func(string) string
	drafts    cache.Cache[Draft]
	draftTTL  time.Duration

	mu       sync.Mutex
	catalog  *catalog.Catalog
	snapshot *catalog.Catalog
	changes  []Change
	loadSeq  uint64
}

// New creates a session bound to a store and project. The catalog is
// not loaded yet; call Load before editing.
func New(st store.Store, project string, opts ...Option) (*Session, error) {
	if st == nil {
		return nil, ErrNoStore
	}
	if strings.TrimSpace(project) == "" {
		return nil, ErrNoProject
	}
	s := &Session{
		id:       uuid.NewString(),
		project:  project,
		store:    st,
		log:      logger.Discard(),
		draftTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Project returns the project the session edits.
func (s *Session) Project() string { return s.project }

// Load fetches the catalog from the store and resets the snapshot and
// pending changes. The store round trip runs outside the session lock;
// when loads race, the one issued last wins and earlier stragglers
// return ErrLoadSuperseded.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loadSeq++
	token := s.loadSeq
	s.mu.Unlock()

	cat, err := s.store.Load(ctx, s.project)
	if err != nil {
		return errors.Join(ErrFetchFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.loadSeq {
		return ErrLoadSuperseded
	}
	s.catalog = cat
	s.snapshot = cat.Clone()
	s.changes = nil
	s.log.InfoContext(ctx, "catalog loaded",
		slog.String("project", s.project),
		slog.Int("languages", len(cat.Languages())),
	)
	return nil
}

// Save persists the working catalog. On success the snapshot moves
// forward, pending changes clear, and any autosaved draft is dropped;
// on failure everything stays as it was. The lock is held across the
// store write, so edits cannot interleave with persistence.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return ErrNoCatalog
	}
	if err := s.store.Save(ctx, s.catalog); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	s.snapshot = s.catalog.Clone()
	s.changes = nil

	if s.drafts != nil {
		if err := s.drafts.Delete(ctx, s.draftKey()); err != nil {
			s.log.WarnContext(ctx, "dropping draft after save failed", slog.String("error", err.Error()))
		}
	}
	s.log.InfoContext(ctx, "catalog saved", slog.String("project", s.project))
	return nil
}

// Discard throws away every pending change by restoring the working
// catalog from the snapshot.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return ErrNoCatalog
	}
	s.catalog = s.snapshot.Clone()
	s.changes = nil
	return nil
}

// Changes returns a copy of the pending change list in the order the
// cells were first touched.
func (s *Session) Changes() []Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Change, len(s.changes))
	copy(out, s.changes)
	return out
}

// HasUnsavedChanges reports whether any change is pending.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.changes) > 0
}

// Language pairs a code with its English display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages returns the active languages in catalog order.
func (s *Session) Languages() ([]Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	codes := s.catalog.Languages()
	out := make([]Language, 0, len(codes))
	for _, code := range codes {
		out = append(out, Language{Code: code, Name: s.catalog.LanguageName(code)})
	}
	return out, nil
}

// BuildTree projects the working catalog for display.
func (s *Session) BuildTree() ([]*catalog.DisplayNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	return s.catalog.BuildTree(), nil
}

// Completeness returns the catalog-wide translated percentage.
func (s *Session) Completeness() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return 0, ErrNoCatalog
	}
	return s.catalog.Completeness(), nil
}

// Export serializes the working catalog. An empty language exports all
// languages, which the flat format cannot express.
func (s *Session) Export(lang string, format catalog.Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	if lang == "" {
		switch format {
		case catalog.FormatJSON:
			return s.catalog.ExportJSON(), nil
		case catalog.FormatYAML:
			return s.catalog.ExportYAML()
		default:
			return nil, ErrLanguageRequired
		}
	}
	return s.catalog.Export(lang, format)
}

// WriteLanguageFiles exports every language into dir, one file each.
// The catalog is cloned under the lock and written without it, so slow
// disks do not block editing.
func (s *Session) WriteLanguageFiles(ctx context.Context, dir string, format catalog.Format) error {
	s.mu.Lock()
	if s.catalog == nil {
		s.mu.Unlock()
		return ErrNoCatalog
	}
	cat := s.catalog.Clone()
	s.mu.Unlock()

	return cat.WriteLanguageFiles(ctx, dir, format)
}
