package catalog

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// AddLanguage returns a new catalog with the given language appended to
// the active list and a blank value inserted into every leaf. The
// receiver is left untouched. The code must parse as a BCP 47 tag, must
// not already be active and must not collide with an existing key
// segment anywhere in the tree.
func (c *Catalog) AddLanguage(code string) (*Catalog, error) {
	if _, err := language.Parse(code); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	if c.HasLanguage(code) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateLanguage, code)
	}
	if path, found := findSegment(c.root, "", code); found {
		return nil, fmt.Errorf("%w: %q is a key segment at %s", ErrInvalidLanguage, code, path)
	}
	next := c.Clone()
	next.languages = append(next.languages, code)
	next.root.walkLeaves("", func(_ string, leaf *Node) {
		leaf.setValue(code, "")
	})
	return next, nil
}

// RemoveLanguage returns a new catalog with the language removed from
// the active list and its column deleted from every leaf. The receiver
// is left untouched. Removing the only remaining language yields
// ErrLastLanguage.
func (c *Catalog) RemoveLanguage(code string) (*Catalog, error) {
	if !c.HasLanguage(code) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, code)
	}
	if len(c.languages) == 1 {
		return nil, fmt.Errorf("%w: %s", ErrLastLanguage, code)
	}
	next := c.Clone()
	if i := slices.Index(next.languages, code); i >= 0 {
		next.languages = slices.Delete(next.languages, i, i+1)
	}
	next.root.walkLeaves("", func(_ string, leaf *Node) {
		delete(leaf.values, code)
	})
	return next, nil
}

// findSegment reports whether any namespace child anywhere in the tree
// carries the given name, returning the first dotted path that does.
func findSegment(n *Node, prefix, name string) (string, bool) {
	if n.IsLeaf() {
		return "", false
	}
	for _, key := range n.keys {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if key == name {
			return path, true
		}
		if p, found := findSegment(n.children[key], path, name); found {
			return p, true
		}
	}
	return "", false
}
