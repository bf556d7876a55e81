package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the stored envelope wrapping one catalog.
type document struct {
	Project      string          `json:"project"`
	Languages    []string        `json:"languages"`
	Translations json.RawMessage `json:"translations"`
}

// rawNode is the order-preserving intermediate form of a decoded JSON
// object, before leaf classification.
type rawNode struct {
	keys     []string
	children map[string]*rawNode
	value    string
	isValue  bool
}

// Decode parses a stored catalog document. Key order inside the
// translations object is preserved, so a later Encode reproduces the
// document. Classification is performed once: an object carrying at
// least one active language key becomes a leaf, any other object a
// namespace. Values must be strings; numbers, booleans, nulls and
// arrays are rejected.
func Decode(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrMalformedDocument, err)
	}
	root := NewNamespace()
	if trimmed := bytes.TrimSpace(doc.Translations); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		raw, err := parseRawTree(doc.Translations)
		if err != nil {
			return nil, err
		}
		langs := make(map[string]struct{}, len(doc.Languages))
		for _, code := range doc.Languages {
			langs[code] = struct{}{}
		}
		root, err = classify(raw, langs, "")
		if err != nil {
			return nil, err
		}
	}
	return New(doc.Project, doc.Languages, root)
}

// Encode serializes the catalog back into its stored envelope with
// two-space indentation. Namespace keys keep insertion order and leaf
// languages follow the catalog's language order; only languages present
// on a leaf are written.
func (c *Catalog) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"project\": ")
	writeJSONString(&buf, c.project)
	buf.WriteString(",\n  \"languages\": ")
	langs, _ := json.Marshal(c.languages)
	buf.Write(langs)
	buf.WriteString(",\n  \"translations\": ")
	writeTree(&buf, c.root, c.languages, "", "  ")
	buf.WriteString("\n}\n")
	return buf.Bytes()
}

func parseRawTree(data []byte) (*rawNode, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Join(ErrMalformedDocument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: translations must be an object", ErrMalformedDocument)
	}
	return decodeRawObject(dec)
}

// decodeRawObject reads object members token by token, recording key
// order. The opening brace has already been consumed. A duplicated key
// keeps its first position and takes the last value, matching
// encoding/json.
func decodeRawObject(dec *json.Decoder) (*rawNode, error) {
	n := &rawNode{children: make(map[string]*rawNode)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Join(ErrMalformedDocument, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string object key", ErrMalformedDocument)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, errors.Join(ErrMalformedDocument, err)
		}
		var child *rawNode
		switch v := valTok.(type) {
		case string:
			child = &rawNode{isValue: true, value: v}
		case json.Delim:
			if v != '{' {
				return nil, fmt.Errorf("%w: key %q holds an array", ErrMalformedDocument, key)
			}
			if child, err = decodeRawObject(dec); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: key %q holds a non-string scalar", ErrMalformedDocument, key)
		}
		if _, dup := n.children[key]; !dup {
			n.keys = append(n.keys, key)
		}
		n.children[key] = child
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, errors.Join(ErrMalformedDocument, err)
	}
	return n, nil
}

// classify turns the raw tree into namespace and leaf nodes. A leaf
// must hold only language keys with string values; a namespace must
// hold only nested objects.
func classify(raw *rawNode, langs map[string]struct{}, path string) (*Node, error) {
	isLeaf := false
	for _, key := range raw.keys {
		if _, ok := langs[key]; ok {
			isLeaf = true
			break
		}
	}
	if isLeaf {
		values := make(map[string]string, len(raw.keys))
		for _, key := range raw.keys {
			if _, ok := langs[key]; !ok {
				return nil, fmt.Errorf("%w: leaf %q mixes language and key entries", ErrMalformedDocument, path)
			}
			child := raw.children[key]
			if !child.isValue {
				return nil, fmt.Errorf("%w: language %q at %q holds an object", ErrMalformedDocument, key, path)
			}
			values[key] = child.value
		}
		return NewLeaf(values), nil
	}
	n := NewNamespace()
	for _, key := range raw.keys {
		child := raw.children[key]
		childPath := key
		if path != "" {
			childPath = path + Separator + key
		}
		if child.isValue {
			return nil, fmt.Errorf("%w: %q holds a bare string outside a leaf", ErrMalformedDocument, childPath)
		}
		childNode, err := classify(child, langs, childPath)
		if err != nil {
			return nil, err
		}
		n.Put(key, childNode)
	}
	return n, nil
}

// writeTree renders a namespace as an indented JSON object. With single
// set, leaves render as plain strings for that language; otherwise as
// objects of their present languages.
func writeTree(buf *bytes.Buffer, n *Node, languages []string, single, indent string) {
	if len(n.keys) == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{\n")
	inner := indent + "  "
	for i, key := range n.keys {
		buf.WriteString(inner)
		writeJSONString(buf, key)
		buf.WriteString(": ")
		child := n.children[key]
		switch {
		case !child.IsLeaf():
			writeTree(buf, child, languages, single, inner)
		case single != "":
			writeJSONString(buf, child.Value(single))
		default:
			writeLeaf(buf, child, languages, inner)
		}
		if i < len(n.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte('}')
}

func writeLeaf(buf *bytes.Buffer, leaf *Node, languages []string, indent string) {
	present := make([]string, 0, len(leaf.values))
	for _, lang := range languages {
		if _, ok := leaf.values[lang]; ok {
			present = append(present, lang)
		}
	}
	if len(present) == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{\n")
	inner := indent + "  "
	for i, lang := range present {
		buf.WriteString(inner)
		writeJSONString(buf, lang)
		buf.WriteString(": ")
		writeJSONString(buf, leaf.values[lang])
		if i < len(present)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte('}')
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// FlatEntry is one dotted-path/value pair of a flattened
// single-language document.
type FlatEntry struct {
	Path  string
	Value string
}

// FlattenJSON parses a single-language translation document into
// ordered path/value pairs. Both nested objects and flat documents with
// dotted keys are accepted; every scalar must be a string.
func FlattenJSON(data []byte) ([]FlatEntry, error) {
	raw, err := parseRawTree(data)
	if err != nil {
		return nil, err
	}
	var entries []FlatEntry
	flattenRaw(raw, "", &entries)
	return entries, nil
}

func flattenRaw(n *rawNode, prefix string, out *[]FlatEntry) {
	for _, key := range n.keys {
		child := n.children[key]
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if child.isValue {
			*out = append(*out, FlatEntry{Path: path, Value: child.value})
		} else {
			flattenRaw(child, path, out)
		}
	}
}

// FlattenYAML parses a single-language YAML document into ordered
// path/value pairs. Mapping values must be strings or nested mappings.
func FlattenYAML(data []byte) ([]FlatEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrMalformedDocument, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be a mapping", ErrMalformedDocument)
	}
	var entries []FlatEntry
	if err := flattenYAMLNode(root, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func flattenYAMLNode(n *yaml.Node, prefix string, out *[]FlatEntry) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: mapping key must be a scalar", ErrMalformedDocument)
		}
		path := key.Value
		if prefix != "" {
			path = prefix + Separator + key.Value
		}
		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag != "!!str" {
				return fmt.Errorf("%w: value at %q is not a string", ErrMalformedDocument, path)
			}
			*out = append(*out, FlatEntry{Path: path, Value: val.Value})
		case yaml.MappingNode:
			if err := flattenYAMLNode(val, path, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: value at %q must be a string or mapping", ErrMalformedDocument, path)
		}
	}
	return nil
}
