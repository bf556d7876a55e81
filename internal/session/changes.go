package session

import (
	"slices"
	"strings"

	"github.com/glosso/glosso/pkg/catalog"
)

// KeyRename marks a Change as a key rename rather than a value edit.
// The marker can never collide with a language code because codes are
// validated as BCP 47 tags.
const KeyRename = "__key__"

// Change records one divergence between the working catalog and the
// last-saved snapshot. For value edits, Language is the edited column
// and Before/After are values; for renames, Language is KeyRename, Path
// is the node's current path and Before/After are the old and new final
// segments.
type Change struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

// IsRename reports whether the change records a key rename.
func (c Change) IsRename() bool { return c.Language == KeyRename }

// trackEdit reconciles the pending list for one (path, language) cell
// against the snapshot: an edit back to the original drops the entry,
// anything else upserts it with the original as Before.
func (s *Session) trackEdit(path, lang string) {
	current := s.catalog.Value(path, lang)
	original := s.snapshot.Value(path, lang)

	idx := s.findChange(path, lang)
	if current == original {
		if idx >= 0 {
			s.changes = slices.Delete(s.changes, idx, idx+1)
		}
		return
	}
	if idx >= 0 {
		s.changes[idx].After = current
		return
	}
	s.changes = append(s.changes, Change{Path: path, Language: lang, Before: original, After: current})
}

// trackRename maintains the rename entry for a node that moved from
// oldPath to newPath, after pending entries have been re-pathed. A
// rename chain collapses into one entry against the original name, and
// renaming back to the original drops the entry.
func (s *Session) trackRename(oldPath, newPath string) {
	oldName := lastSegment(oldPath)
	newName := lastSegment(newPath)

	idx := s.findChange(newPath, KeyRename)
	if idx >= 0 {
		s.changes[idx].After = newName
		if s.changes[idx].Before == newName {
			s.changes = slices.Delete(s.changes, idx, idx+1)
		}
		return
	}
	s.changes = append(s.changes, Change{Path: newPath, Language: KeyRename, Before: oldName, After: newName})
}

// repathChanges rewrites the paths of pending entries at or under
// oldPath so they keep pointing at the same nodes after a rename.
func (s *Session) repathChanges(oldPath, newPath string) {
	for i := range s.changes {
		if catalog.PathContains(oldPath, s.changes[i].Path) {
			s.changes[i].Path = newPath + strings.TrimPrefix(s.changes[i].Path, oldPath)
		}
	}
}

// dropChangesUnder removes pending entries at or under path, used when
// the subtree is deleted.
func (s *Session) dropChangesUnder(path string) {
	s.changes = slices.DeleteFunc(s.changes, func(c Change) bool {
		return catalog.PathContains(path, c.Path)
	})
}

// dropChangesForLanguage removes pending value edits for a removed
// column.
func (s *Session) dropChangesForLanguage(code string) {
	s.changes = slices.DeleteFunc(s.changes, func(c Change) bool {
		return c.Language == code
	})
}

func (s *Session) findChange(path, lang string) int {
	return slices.IndexFunc(s.changes, func(c Change) bool {
		return c.Path == path && c.Language == lang
	})
}

func lastSegment(path string) string {
	segments := catalog.SplitPath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
