package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/glosso/glosso/pkg/cache"
	"github.com/glosso/glosso/pkg/catalog"
)

// Draft is an autosaved copy of a session's working state: the encoded
// catalog document plus the pending change list. Drafts are keyed by
// project so a restarted process can pick up where the previous editor
// left off.
type Draft struct {
	Project  string          `json:"project"`
	Document json.RawMessage `json:"document"`
	Changes  []Change        `json:"changes"`
	SavedAt  time.Time       `json:"saved_at"`
}

func (s *Session) draftKey() string { return s.project }

// SaveDraft snapshots the working state into the draft cache with the
// configured TTL.
func (s *Session) SaveDraft(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drafts == nil {
		return ErrNoDraftCache
	}
	if s.catalog == nil {
		return ErrNoCatalog
	}
	draft := Draft{
		Project:  s.project,
		Document: s.catalog.Encode(),
		Changes:  slices.Clone(s.changes),
		SavedAt:  time.Now().UTC(),
	}
	return s.drafts.Set(ctx, s.draftKey(), draft, s.draftTTL)
}

// RestoreDraft replaces the working catalog and pending changes with
// the autosaved draft. The session must be loaded first, so the
// snapshot still reflects the store's last-saved document.
func (s *Session) RestoreDraft(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drafts == nil {
		return ErrNoDraftCache
	}
	if s.catalog == nil {
		return ErrNoCatalog
	}
	draft, err := s.drafts.Get(ctx, s.draftKey())
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return ErrNoDraft
		}
		return err
	}
	cat, err := catalog.Decode(draft.Document)
	if err != nil {
		return err
	}
	s.catalog = cat
	s.changes = slices.Clone(draft.Changes)
	s.log.InfoContext(ctx, "draft restored",
		slog.String("project", s.project),
		slog.Int("pending_changes", len(s.changes)),
		slog.Time("saved_at", draft.SavedAt),
	)
	return nil
}

// DiscardDraft drops the autosaved draft, if any.
func (s *Session) DiscardDraft(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drafts == nil {
		return ErrNoDraftCache
	}
	return s.drafts.Delete(ctx, s.draftKey())
}
