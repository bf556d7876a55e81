// Package catalog implements the in-memory model for a localization
// catalog: a tree of namespaces whose leaves hold per-language
// translation values, addressed by dotted paths.
//
// A catalog is built once from a stored document (or programmatically
// via node constructors) and then edited through Catalog methods.
// Structure and values are kept separate from change tracking; the
// session layer records edits, this package only mutates and reads the
// tree.
//
// # Tree model
//
// Every vertex is a Node, which is either a namespace or a leaf. A
// namespace holds named children and remembers their insertion order,
// so documents survive a decode/encode round trip with their key order
// intact. A leaf holds language-code to string values. The two forms
// are distinguished once, when the tree is constructed: an object whose
// keys include at least one active language code is a leaf, anything
// else is a namespace. Because of that rule a namespace segment may
// never share a name with an active language; constructors and mutation
// methods reject such names.
//
// # Paths
//
// Paths are dotted strings ("checkout.payment.title"). Resolution walks
// namespaces segment by segment and fails with ErrPathNotFound when a
// segment is missing or a leaf is hit before the last segment. Value
// reads are forgiving and return "" for anything unresolved; mutations
// are strict and return errors.
//
// # Editing
//
//	cat, err := catalog.Decode(raw)
//	if err != nil { ... }
//	err = cat.SetValue("checkout.payment.title", "de", "Zahlung")
//	newPath, err := cat.Rename("checkout.payment", "billing")
//
// Language columns are table-wide operations: AddLanguage inserts an
// empty value into every leaf, RemoveLanguage deletes the column from
// every leaf. Both return a new Catalog and leave the receiver intact,
// so a caller holding the old tree keeps a stable snapshot.
//
// # Projection and export
//
// BuildTree produces a display-ready projection with a completeness
// percentage per node: for a leaf the share of non-blank values across
// active languages, for a namespace the unweighted mean of its
// children. ExportJSON, ExportLanguageJSON, ExportYAML and Flatten
// serialize the tree for machine consumption, preserving key order.
package catalog
