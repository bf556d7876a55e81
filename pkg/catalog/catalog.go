package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Catalog is a localization dataset for one project: an ordered list of
// active languages and a tree of namespaces with translation leaves.
// Construct catalogs with New or Decode.
type Catalog struct {
	project   string
	languages []string
	root      *Node
}

// New builds a catalog from a project name, an ordered language list
// and a root namespace. The language list must be non-empty and free of
// duplicates and blanks. The tree is validated against the list: leaf
// value keys must be active languages and namespace segments must not
// shadow one. A nil root yields an empty catalog.
func New(project string, languages []string, root *Node) (*Catalog, error) {
	if len(languages) == 0 {
		return nil, ErrNoLanguages
	}
	seen := make(map[string]struct{}, len(languages))
	for _, code := range languages {
		if strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("%w: empty code", ErrInvalidLanguage)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLanguage, code)
		}
		seen[code] = struct{}{}
	}
	if root == nil {
		root = NewNamespace()
	}
	if root.IsLeaf() {
		return nil, fmt.Errorf("%w: root must be a namespace", ErrMalformedDocument)
	}
	c := &Catalog{project: project, languages: slices.Clone(languages), root: root}
	if err := c.validate(root, ""); err != nil {
		return nil, err
	}
	return c, nil
}

// validate walks the tree checking the classification invariants: leaf
// value keys stay within the active languages and no namespace segment
// shares a name with one.
func (c *Catalog) validate(n *Node, path string) error {
	if n.IsLeaf() {
		for lang := range n.values {
			if !c.HasLanguage(lang) {
				return fmt.Errorf("%w: leaf %q holds value for inactive language %q", ErrMalformedDocument, path, lang)
			}
		}
		return nil
	}
	for _, key := range n.keys {
		childPath := key
		if path != "" {
			childPath = path + Separator + key
		}
		if c.HasLanguage(key) {
			return fmt.Errorf("%w: segment %q shadows language code", ErrMalformedDocument, childPath)
		}
		if err := c.validate(n.children[key], childPath); err != nil {
			return err
		}
	}
	return nil
}

// Project returns the project name the catalog belongs to.
func (c *Catalog) Project() string { return c.project }

// Languages returns the active language codes in their configured
// order.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// HasLanguage reports whether the given code is an active language.
func (c *Catalog) HasLanguage(code string) bool {
	return slices.Contains(c.languages, code)
}

// LanguageName returns the English display name for an active language
// code, falling back to the code itself when the code does not parse as
// a BCP 47 tag.
func (c *Catalog) LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

// Root returns the root namespace. The returned node is shared with the
// catalog; callers must treat it as read-only and mutate through
// Catalog methods.
func (c *Catalog) Root() *Node { return c.root }

// Clone returns a deep copy of the catalog. Edits to either copy never
// surface in the other.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		project:   c.project,
		languages: slices.Clone(c.languages),
		root:      c.root.Clone(),
	}
}

// Equal reports whether two catalogs hold the same project, language
// list and tree, comparing leaf values and key order.
func (c *Catalog) Equal(o *Catalog) bool {
	if o == nil {
		return false
	}
	if c.project != o.project || !slices.Equal(c.languages, o.languages) {
		return false
	}
	return nodesEqual(c.root, o.root)
}

func nodesEqual(a, b *Node) bool {
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		if len(a.values) != len(b.values) {
			return false
		}
		for lang, v := range a.values {
			if bv, ok := b.values[lang]; !ok || bv != v {
				return false
			}
		}
		return true
	}
	if !slices.Equal(a.keys, b.keys) {
		return false
	}
	for _, key := range a.keys {
		if !nodesEqual(a.children[key], b.children[key]) {
			return false
		}
	}
	return true
}
