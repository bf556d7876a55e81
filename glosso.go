package glosso

import (
	"context"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/cache"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/store"
)

// Type aliases - public API
type (
	// Session is an editing session over one catalog.
	Session = session.Session

	// Option configures a Session.
	Option = session.Option

	// Change is one pending edit or rename.
	Change = session.Change

	// Draft is an autosaved working state.
	Draft = session.Draft

	// Language pairs a code with its English display name.
	Language = session.Language

	// Catalog is a multi-language translation document.
	Catalog = catalog.Catalog

	// DisplayNode is one row of the catalog tree projection.
	DisplayNode = catalog.DisplayNode

	// FlatEntry is one dotted-path/value pair of a flattened document.
	FlatEntry = catalog.FlatEntry

	// Format selects an export serialization.
	Format = catalog.Format

	// Store persists catalog documents by project name.
	Store = store.Store

	// PostgresConfig configures the Postgres store.
	PostgresConfig = store.PostgresConfig

	// S3Config configures the S3 store.
	S3Config = store.S3Config
)

// Export formats.
const (
	FormatJSON = catalog.FormatJSON
	FormatYAML = catalog.FormatYAML
	FormatFlat = catalog.FormatFlat
)

// KeyRename marks a change entry as a key rename rather than a value
// edit.
const KeyRename = session.KeyRename

// Session errors, re-exported so callers can match them with errors.Is.
// Catalog and store sentinels live in their own public packages.
var (
	ErrNoStore          = session.ErrNoStore
	ErrNoProject        = session.ErrNoProject
	ErrNoCatalog        = session.ErrNoCatalog
	ErrFetchFailed      = session.ErrFetchFailed
	ErrSaveFailed       = session.ErrSaveFailed
	ErrLoadSuperseded   = session.ErrLoadSuperseded
	ErrMalformedImport  = session.ErrMalformedImport
	ErrLanguageRequired = session.ErrLanguageRequired
	ErrNoDraftCache     = session.ErrNoDraftCache
	ErrNoDraft          = session.ErrNoDraft
)

// New creates an editing session for a project backed by a store.
// Call Load before editing.
//
// Example:
//
//	st, _ := glosso.NewFileStore("./data")
//	sess, _ := glosso.New(st, "web-app",
//	    glosso.WithSnakeCaseKeys(),
//	)
//	if err := sess.Load(ctx); err != nil { ... }
func New(st Store, project string, opts ...Option) (*Session, error) {
	return session.New(st, project, opts...)
}

// NewCatalog creates an empty catalog for a project with the given
// language columns. Persist it with a store to bootstrap a project.
func NewCatalog(project string, languages []string) (*Catalog, error) {
	return catalog.New(project, languages, catalog.NewNamespace())
}

// Decode parses a catalog document.
func Decode(data []byte) (*Catalog, error) {
	return catalog.Decode(data)
}

// NewMemoryStore creates an in-memory store, useful for tests and
// experiments.
func NewMemoryStore() *store.MemoryStore {
	return store.NewMemory()
}

// NewFileStore creates a store writing one JSON document per project
// under dir.
func NewFileStore(dir string) (*store.FileStore, error) {
	return store.NewFile(dir)
}

// NewPostgresStore connects to Postgres, retrying per the config. Run
// Migrate on the returned store before first use.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*store.PostgresStore, error) {
	return store.NewPostgres(ctx, cfg)
}

// NewS3Store creates a store keeping documents in an S3 bucket.
func NewS3Store(cfg S3Config) (*store.S3Store, error) {
	return store.NewS3(cfg)
}

// NewDraftCache creates an in-memory draft cache for use with
// WithDraftCache.
func NewDraftCache() cache.Cache[Draft] {
	return cache.NewMemory[Draft]()
}
