package catalog

import (
	"maps"
	"slices"
)

// Node is one vertex of the catalog tree: either a namespace holding
// named children in insertion order, or a leaf holding language-code to
// translation-value pairs. Nodes must be created through NewNamespace,
// NewLeaf or Decode; the zero value is not usable.
type Node struct {
	leaf     bool
	keys     []string         // namespace: child names in insertion order
	children map[string]*Node // namespace: child nodes by name
	values   map[string]string // leaf: translation value by language code
}

// NewNamespace returns an empty namespace node.
func NewNamespace() *Node {
	return &Node{children: make(map[string]*Node)}
}

// NewLeaf returns a leaf node holding a copy of the given values. A nil
// map yields an empty leaf.
func NewLeaf(values map[string]string) *Node {
	n := &Node{leaf: true, values: make(map[string]string, len(values))}
	maps.Copy(n.values, values)
	return n
}

// IsLeaf reports whether the node holds translation values rather than
// children.
func (n *Node) IsLeaf() bool { return n.leaf }

// Keys returns the child names of a namespace in insertion order. It
// returns nil for a leaf.
func (n *Node) Keys() []string {
	if n.leaf {
		return nil
	}
	return slices.Clone(n.keys)
}

// Child returns the named child of a namespace, or nil if the node is a
// leaf or no such child exists.
func (n *Node) Child(name string) *Node {
	if n.leaf {
		return nil
	}
	return n.children[name]
}

// Value returns the translation for the given language, or "" if the
// node is a namespace or the language has no value yet.
func (n *Node) Value(lang string) string {
	if !n.leaf {
		return ""
	}
	return n.values[lang]
}

// Values returns a copy of the leaf's language-to-value map. It returns
// nil for a namespace.
func (n *Node) Values() map[string]string {
	if !n.leaf {
		return nil
	}
	return maps.Clone(n.values)
}

// Put adds or replaces a child under the given name and returns the
// receiver for chaining. A new name is appended to the key order; an
// existing name keeps its position. Put panics on a leaf, which is a
// programming error rather than a runtime condition.
func (n *Node) Put(name string, child *Node) *Node {
	if n.leaf {
		panic("catalog: Put called on a leaf node")
	}
	if _, ok := n.children[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.children[name] = child
	return n
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n.leaf {
		return NewLeaf(n.values)
	}
	c := &Node{
		keys:     slices.Clone(n.keys),
		children: make(map[string]*Node, len(n.children)),
	}
	for name, child := range n.children {
		c.children[name] = child.Clone()
	}
	return c
}

// setValue stores a translation on a leaf. Callers must only invoke it
// on leaves.
func (n *Node) setValue(lang, value string) {
	n.values[lang] = value
}

// remove deletes a child from a namespace, preserving the order of the
// remaining siblings.
func (n *Node) remove(name string) {
	if _, ok := n.children[name]; !ok {
		return
	}
	delete(n.children, name)
	if i := slices.Index(n.keys, name); i >= 0 {
		n.keys = slices.Delete(n.keys, i, i+1)
	}
}

// rename relabels a child in place, keeping its position among its
// siblings.
func (n *Node) rename(oldName, newName string) {
	child, ok := n.children[oldName]
	if !ok {
		return
	}
	delete(n.children, oldName)
	n.children[newName] = child
	if i := slices.Index(n.keys, oldName); i >= 0 {
		n.keys[i] = newName
	}
}

// walkLeaves visits every leaf in depth-first key order. The callback
// receives the leaf's dotted path.
func (n *Node) walkLeaves(prefix string, fn func(path string, leaf *Node)) {
	if n.leaf {
		fn(prefix, n)
		return
	}
	for _, key := range n.keys {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		n.children[key].walkLeaves(path, fn)
	}
}
