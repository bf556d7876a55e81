package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Format selects an export serialization.
type Format string

const (
	// FormatJSON renders nested JSON objects.
	FormatJSON Format = "json"
	// FormatYAML renders nested YAML mappings.
	FormatYAML Format = "yaml"
	// FormatFlat renders a flat JSON object with dotted-path keys.
	FormatFlat Format = "flat"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatFlat:
		return Format(s), nil
	}
	return "", fmt.Errorf("catalog: unknown export format %q", s)
}

// ExportJSON renders the whole tree as nested JSON with per-leaf
// language objects, preserving key order.
func (c *Catalog) ExportJSON() []byte {
	var buf bytes.Buffer
	writeTree(&buf, c.root, c.languages, "", "")
	buf.WriteByte('\n')
	return buf.Bytes()
}

// ExportLanguageJSON renders the tree for one language: leaves collapse
// to plain strings, a missing column renders as "".
func (c *Catalog) ExportLanguageJSON(lang string) ([]byte, error) {
	if !c.HasLanguage(lang) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	var buf bytes.Buffer
	writeTree(&buf, c.root, c.languages, lang, "")
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ExportYAML renders the whole tree as nested YAML with per-leaf
// language mappings, preserving key order.
func (c *Catalog) ExportYAML() ([]byte, error) {
	return marshalYAML(c.yamlTree(c.root, ""))
}

// ExportLanguageYAML renders the tree for one language as nested YAML.
func (c *Catalog) ExportLanguageYAML(lang string) ([]byte, error) {
	if !c.HasLanguage(lang) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	return marshalYAML(c.yamlTree(c.root, lang))
}

// Flatten returns the tree for one language as ordered dotted-path
// entries, one per leaf in depth-first key order.
func (c *Catalog) Flatten(lang string) ([]FlatEntry, error) {
	if !c.HasLanguage(lang) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	var entries []FlatEntry
	c.root.walkLeaves("", func(path string, leaf *Node) {
		entries = append(entries, FlatEntry{Path: path, Value: leaf.Value(lang)})
	})
	return entries, nil
}

// ExportFlatJSON renders the tree for one language as a flat JSON
// object keyed by dotted paths.
func (c *Catalog) ExportFlatJSON(lang string) ([]byte, error) {
	entries, err := c.Flatten(lang)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		buf.WriteString("  ")
		writeJSONString(&buf, e.Path)
		buf.WriteString(": ")
		writeJSONString(&buf, e.Value)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Export renders one language in the given format.
func (c *Catalog) Export(lang string, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return c.ExportLanguageJSON(lang)
	case FormatYAML:
		return c.ExportLanguageYAML(lang)
	case FormatFlat:
		return c.ExportFlatJSON(lang)
	}
	return nil, fmt.Errorf("catalog: unknown export format %q", format)
}

// WriteLanguageFiles writes one file per active language into dir,
// named <code>.<ext> for the chosen format. Languages are exported
// concurrently; the first failure cancels the rest.
func (c *Catalog) WriteLanguageFiles(ctx context.Context, dir string, format Format) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	g, _ := errgroup.WithContext(ctx)
	for _, lang := range c.languages {
		g.Go(func() error {
			data, err := c.Export(lang, format)
			if err != nil {
				return err
			}
			name := lang + "." + formatExt(format)
			return os.WriteFile(filepath.Join(dir, name), data, 0o644)
		})
	}
	return g.Wait()
}

func formatExt(format Format) string {
	if format == FormatYAML {
		return "yaml"
	}
	return "json"
}

func (c *Catalog) yamlTree(n *Node, single string) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if n.IsLeaf() {
		for _, lang := range c.languages {
			if v, ok := n.values[lang]; ok {
				m.Content = append(m.Content, yamlScalar(lang), yamlScalar(v))
			}
		}
		return m
	}
	for _, key := range n.keys {
		child := n.children[key]
		if child.IsLeaf() && single != "" {
			m.Content = append(m.Content, yamlScalar(key), yamlScalar(child.Value(single)))
			continue
		}
		m.Content = append(m.Content, yamlScalar(key), c.yamlTree(child, single))
	}
	return m
}

func yamlScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func marshalYAML(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
