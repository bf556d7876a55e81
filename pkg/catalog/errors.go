package catalog

import "errors"

var (
	// ErrPathNotFound is returned when a dotted path does not resolve to a
	// node, or when an intermediate segment resolves to a leaf.
	ErrPathNotFound = errors.New("catalog: path not found")

	// ErrKeyExists is returned when adding or renaming a key would collide
	// with an existing sibling.
	ErrKeyExists = errors.New("catalog: key already exists")

	// ErrInvalidKey is returned for empty segments, segments containing the
	// path separator, and segments that would shadow an active language.
	ErrInvalidKey = errors.New("catalog: invalid key segment")

	// ErrUnknownLanguage is returned when an operation names a language
	// that is not part of the catalog.
	ErrUnknownLanguage = errors.New("catalog: language not in catalog")

	// ErrDuplicateLanguage is returned when adding a language that is
	// already part of the catalog.
	ErrDuplicateLanguage = errors.New("catalog: language already in catalog")

	// ErrLastLanguage is returned when removing the only remaining
	// language; a catalog must keep at least one column.
	ErrLastLanguage = errors.New("catalog: cannot remove the last language")

	// ErrInvalidLanguage is returned when a language code fails BCP 47
	// validation or would be ambiguous against existing key segments.
	ErrInvalidLanguage = errors.New("catalog: invalid language code")

	// ErrNoLanguages is returned when constructing a catalog without any
	// languages.
	ErrNoLanguages = errors.New("catalog: at least one language required")

	// ErrMalformedDocument is returned when a stored document cannot be
	// decoded into a valid catalog tree.
	ErrMalformedDocument = errors.New("catalog: malformed document")
)
