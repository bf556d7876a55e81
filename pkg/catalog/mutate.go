package catalog

import (
	"fmt"
	"strings"
)

// validSegment checks a single key segment: it must be non-empty, must
// not contain the path separator and must not shadow an active language
// code, which would make leaf classification ambiguous on the next
// decode.
func (c *Catalog) validSegment(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty segment", ErrInvalidKey)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidKey, name, Separator)
	}
	if c.HasLanguage(name) {
		return fmt.Errorf("%w: %q shadows an active language", ErrInvalidKey, name)
	}
	return nil
}

// SetValue stores a translation on the leaf at path. The path must
// resolve to an existing leaf and the language must be active. On error
// the tree is untouched.
func (c *Catalog) SetValue(path, lang, value string) error {
	if !c.HasLanguage(lang) {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	node, err := c.Resolve(path)
	if err != nil {
		return err
	}
	if !node.IsLeaf() {
		return fmt.Errorf("%w: %s is a namespace", ErrPathNotFound, path)
	}
	node.setValue(lang, value)
	return nil
}

// Rename relabels the final segment of path in place, keeping the
// node's position among its siblings and its whole subtree. It returns
// the node's new dotted path. Renaming to the current name is a no-op.
// A sibling with the new name yields ErrKeyExists.
func (c *Catalog) Rename(path, newName string) (string, error) {
	parent, oldName, err := c.resolveParent(path)
	if err != nil {
		return "", err
	}
	if parent.Child(oldName) == nil {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if newName == oldName {
		return path, nil
	}
	if err := c.validSegment(newName); err != nil {
		return "", err
	}
	if parent.Child(newName) != nil {
		return "", fmt.Errorf("%w: %s", ErrKeyExists, JoinPath(parentPath(path), newName))
	}
	parent.rename(oldName, newName)
	if pp := parentPath(path); pp != "" {
		return JoinPath(pp, newName), nil
	}
	return newName, nil
}

// AddKey creates an empty leaf at path, building intermediate
// namespaces as needed. The new leaf carries a blank value for every
// active language. An existing node at the full path yields
// ErrKeyExists; an intermediate segment resolving to a leaf yields
// ErrPathNotFound.
func (c *Catalog) AddKey(path string) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidKey)
	}
	for _, seg := range segments {
		if err := c.validSegment(seg); err != nil {
			return err
		}
	}
	node := c.root
	for _, seg := range segments[:len(segments)-1] {
		next := node.Child(seg)
		if next == nil {
			next = NewNamespace()
			node.Put(seg, next)
		} else if next.IsLeaf() {
			return fmt.Errorf("%w: %s crosses a leaf", ErrPathNotFound, path)
		}
		node = next
	}
	last := segments[len(segments)-1]
	if node.Child(last) != nil {
		return fmt.Errorf("%w: %s", ErrKeyExists, path)
	}
	values := make(map[string]string, len(c.languages))
	for _, lang := range c.languages {
		values[lang] = ""
	}
	node.Put(last, NewLeaf(values))
	return nil
}

// DeleteKey removes the node at path together with its subtree.
func (c *Catalog) DeleteKey(path string) error {
	parent, name, err := c.resolveParent(path)
	if err != nil {
		return err
	}
	if parent.Child(name) == nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	parent.remove(name)
	return nil
}

// parentPath strips the final segment from a dotted path, returning ""
// for a top-level path.
func parentPath(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[:i]
	}
	return ""
}
