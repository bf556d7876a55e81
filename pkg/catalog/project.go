package catalog

import "strings"

// DisplayNode is the projection of one tree vertex for presentation:
// the key segment, its full dotted path, nesting depth, completeness
// percentage and either child projections or the leaf's values padded
// to every active language.
type DisplayNode struct {
	Key          string            `json:"key"`
	Path         string            `json:"path"`
	Depth        int               `json:"depth"`
	Leaf         bool              `json:"leaf"`
	Completeness float64           `json:"completeness"`
	Values       map[string]string `json:"values,omitempty"`
	Children     []*DisplayNode    `json:"children,omitempty"`
}

// BuildTree projects the catalog into display nodes, one per tree
// vertex, preserving key order. Completeness is the share of non-blank
// values across active languages for a leaf and the unweighted mean of
// the children for a namespace; a namespace without children counts as
// fully translated.
func (c *Catalog) BuildTree() []*DisplayNode {
	return c.project(c.root, "", 0)
}

// Completeness returns the catalog-wide percentage: the unweighted mean
// across the root's children, 100 for an empty catalog.
func (c *Catalog) Completeness() float64 {
	nodes := c.BuildTree()
	if len(nodes) == 0 {
		return 100
	}
	var sum float64
	for _, n := range nodes {
		sum += n.Completeness
	}
	return sum / float64(len(nodes))
}

func (c *Catalog) project(n *Node, prefix string, depth int) []*DisplayNode {
	out := make([]*DisplayNode, 0, len(n.keys))
	for _, key := range n.keys {
		child := n.children[key]
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		dn := &DisplayNode{Key: key, Path: path, Depth: depth}
		if child.IsLeaf() {
			dn.Leaf = true
			dn.Values = c.Values(path)
			dn.Completeness = c.leafCompleteness(child)
		} else {
			dn.Children = c.project(child, path, depth+1)
			dn.Completeness = meanCompleteness(dn.Children)
		}
		out = append(out, dn)
	}
	return out
}

// leafCompleteness counts languages with a non-blank value over the
// number of active languages. Whitespace-only values count as blank.
func (c *Catalog) leafCompleteness(leaf *Node) float64 {
	if len(c.languages) == 0 {
		return 100
	}
	var filled int
	for _, lang := range c.languages {
		if strings.TrimSpace(leaf.values[lang]) != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(c.languages)) * 100
}

func meanCompleteness(children []*DisplayNode) float64 {
	if len(children) == 0 {
		return 100
	}
	var sum float64
	for _, child := range children {
		sum += child.Completeness
	}
	return sum / float64(len(children))
}
