package catalog

import (
	"fmt"
	"strings"
)

// Separator joins key segments into dotted paths.
const Separator = "."

// SplitPath breaks a dotted path into its segments. An empty path
// yields nil.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// JoinPath assembles segments into a dotted path.
func JoinPath(segments ...string) string {
	return strings.Join(segments, Separator)
}

// PathContains reports whether path equals prefix or lies underneath it
// on a segment boundary, so "a.b" contains "a.b.c" but not "a.bc".
func PathContains(prefix, path string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+Separator)
}

// Resolve walks the tree along the dotted path and returns the node it
// lands on. It returns ErrPathNotFound when a segment is missing or an
// intermediate segment resolves to a leaf.
func (c *Catalog) Resolve(path string) (*Node, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrPathNotFound)
	}
	node := c.root
	for _, seg := range SplitPath(path) {
		next := node.Child(seg)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		node = next
	}
	return node, nil
}

// resolveParent resolves the namespace holding the path's final segment
// and returns it together with that segment. The final segment itself
// does not have to exist yet.
func (c *Catalog) resolveParent(path string) (*Node, string, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, "", fmt.Errorf("%w: empty path", ErrPathNotFound)
	}
	parent := c.root
	for _, seg := range segments[:len(segments)-1] {
		next := parent.Child(seg)
		if next == nil || next.IsLeaf() {
			return nil, "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		parent = next
	}
	return parent, segments[len(segments)-1], nil
}

// Value returns the translation stored at path for the given language.
// Reads are forgiving: an unresolved path, a namespace node or a blank
// column all yield "".
func (c *Catalog) Value(path, lang string) string {
	node, err := c.Resolve(path)
	if err != nil {
		return ""
	}
	return node.Value(lang)
}

// Values returns the leaf at path as a language-to-value map covering
// every active language, with "" for columns that have no value yet. An
// unresolved path or a namespace yields a map of blanks, mirroring the
// forgiving Value read.
func (c *Catalog) Values(path string) map[string]string {
	out := make(map[string]string, len(c.languages))
	node, err := c.Resolve(path)
	for _, lang := range c.languages {
		if err == nil {
			out[lang] = node.Value(lang)
		} else {
			out[lang] = ""
		}
	}
	return out
}
