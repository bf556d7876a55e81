package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glosso/glosso/pkg/catalog"
)

// UpdateTranslation sets one cell of the working catalog and reconciles
// the pending list: editing a cell back to its snapshot value removes
// its entry. Failed updates leave both catalog and pending list
// untouched.
func (s *Session) UpdateTranslation(path, lang, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return ErrNoCatalog
	}
	if s.scrub != nil {
		value = s.scrub(value)
	}
	if err := s.catalog.SetValue(path, lang, value); err != nil {
		return err
	}
	s.trackEdit(path, lang)
	return nil
}

// RenameKey relabels the node at path, keeping its position and
// subtree, and returns the new path. Pending entries under the node
// follow it; renaming back to the original name drops the rename entry.
func (s *Session) RenameKey(path, newName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return "", ErrNoCatalog
	}
	if s.normalize != nil {
		newName = s.normalize(newName)
	}
	newPath, err := s.catalog.Rename(path, newName)
	if err != nil {
		return "", err
	}
	if newPath == path {
		return newPath, nil
	}
	s.repathChanges(path, newPath)
	s.trackRename(path, newPath)
	return newPath, nil
}

// AddKey creates an empty leaf at path, building intermediate
// namespaces as needed, and returns the path actually created after
// normalization. Structural additions are not tracked as pending
// changes; only the values later typed into the new leaf are.
func (s *Session) AddKey(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return "", ErrNoCatalog
	}
	if s.normalize != nil {
		segments := catalog.SplitPath(path)
		for i, seg := range segments {
			segments[i] = s.normalize(seg)
		}
		path = catalog.JoinPath(segments...)
	}
	if err := s.catalog.AddKey(path); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteKey removes the node at path with its subtree and drops pending
// entries that pointed into it.
func (s *Session) DeleteKey(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return ErrNoCatalog
	}
	if err := s.catalog.DeleteKey(path); err != nil {
		return err
	}
	s.dropChangesUnder(path)
	return nil
}

// AddLanguage adds a column to the working catalog, inserting a blank
// value into every leaf. Adding an already-active language is a no-op.
// The change is structural: it is never tracked as pending, so Save
// persists it silently and Discard reverts it with everything else.
func (s *Session) AddLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return ErrNoCatalog
	}
	if s.catalog.HasLanguage(code) {
		return nil
	}
	next, err := s.catalog.AddLanguage(code)
	if err != nil {
		return err
	}
	s.catalog = next
	return nil
}

// RemoveLanguage drops a column from the working catalog along with any
// pending edits to it. Removing an absent language is a no-op; removing
// the last one fails.
func (s *Session) RemoveLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return ErrNoCatalog
	}
	if !s.catalog.HasLanguage(code) {
		return nil
	}
	next, err := s.catalog.RemoveLanguage(code)
	if err != nil {
		return err
	}
	s.catalog = next
	s.dropChangesForLanguage(code)
	return nil
}

// Import applies a single-language document to the working catalog and
// returns how many cells changed. The document is validated and applied
// against a scratch copy first, so a bad entry leaves the session
// untouched. With createMissing, unresolved paths become new leaves;
// otherwise they fail the import.
func (s *Session) Import(lang string, format catalog.Format, data []byte, createMissing bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return 0, ErrNoCatalog
	}
	if !s.catalog.HasLanguage(lang) {
		return 0, fmt.Errorf("%w: %s", catalog.ErrUnknownLanguage, lang)
	}

	var entries []catalog.FlatEntry
	var err error
	switch format {
	case catalog.FormatYAML:
		entries, err = catalog.FlattenYAML(data)
	default:
		entries, err = catalog.FlattenJSON(data)
	}
	if err != nil {
		return 0, errors.Join(ErrMalformedImport, err)
	}

	work := s.catalog.Clone()
	applied := 0
	for i := range entries {
		if s.scrub != nil {
			entries[i].Value = s.scrub(entries[i].Value)
		}
		e := entries[i]
		if strings.TrimSpace(e.Path) == "" {
			return 0, fmt.Errorf("%w: empty path", ErrMalformedImport)
		}
		if _, rerr := work.Resolve(e.Path); rerr != nil {
			if !createMissing {
				return 0, errors.Join(ErrMalformedImport, rerr)
			}
			if aerr := work.AddKey(e.Path); aerr != nil {
				return 0, errors.Join(ErrMalformedImport, aerr)
			}
			applied++
		} else if work.Value(e.Path, lang) != e.Value {
			applied++
		}
		if serr := work.SetValue(e.Path, lang, e.Value); serr != nil {
			return 0, errors.Join(ErrMalformedImport, serr)
		}
	}

	s.catalog = work
	for _, e := range entries {
		s.trackEdit(e.Path, lang)
	}
	return applied, nil
}
