package session

import "errors"

var (
	// ErrNoStore is returned when constructing a session without a store.
	ErrNoStore = errors.New("session: store is required")

	// ErrNoProject is returned when constructing a session without a
	// project name.
	ErrNoProject = errors.New("session: project name is required")

	// ErrNoCatalog is returned by operations that need a loaded catalog.
	ErrNoCatalog = errors.New("session: no catalog loaded")

	// ErrFetchFailed wraps store failures during Load.
	ErrFetchFailed = errors.New("session: catalog load failed")

	// ErrSaveFailed wraps store failures during Save. The working state
	// and pending changes stay untouched when it is returned.
	ErrSaveFailed = errors.New("session: catalog save failed")

	// ErrLoadSuperseded is returned when a Load finishes after a newer
	// Load has already been issued; the newer call wins.
	ErrLoadSuperseded = errors.New("session: load superseded by a newer load")

	// ErrMalformedImport is returned when an import document cannot be
	// applied. Imports are atomic: nothing is applied on error.
	ErrMalformedImport = errors.New("session: malformed import document")

	// ErrLanguageRequired is returned by exports that only make sense for
	// a single language.
	ErrLanguageRequired = errors.New("session: operation requires a language")

	// ErrNoDraftCache is returned by draft operations when no draft cache
	// is configured.
	ErrNoDraftCache = errors.New("session: draft cache not configured")

	// ErrNoDraft is returned when restoring and no draft exists.
	ErrNoDraft = errors.New("session: no draft found")
)
