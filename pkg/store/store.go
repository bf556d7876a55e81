// Package store persists catalog documents. Every adapter speaks the
// same two-method interface, keyed by project name, and stores the
// encoded JSON envelope produced by pkg/catalog. Adapters exist for the
// local filesystem, process memory, PostgreSQL and S3-compatible object
// storage; each exposes a Healthcheck method compatible with
// pkg/health.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glosso/glosso/pkg/catalog"
)

// Store loads and saves catalog documents by project name.
type Store interface {
	// Load fetches the stored catalog for a project. A missing project
	// yields ErrNotFound.
	Load(ctx context.Context, project string) (*catalog.Catalog, error)
	// Save persists the catalog, replacing any previous document for the
	// same project.
	Save(ctx context.Context, cat *catalog.Catalog) error
}

var (
	// ErrNotFound is returned when no document exists for a project.
	ErrNotFound = errors.New("store: catalog not found")

	// ErrInvalidConfig is returned when an adapter is constructed with an
	// unusable configuration.
	ErrInvalidConfig = errors.New("store: invalid configuration")

	// ErrInvalidProject is returned for project names that cannot serve
	// as a storage key.
	ErrInvalidProject = errors.New("store: invalid project name")
)

// validateProject guards names used as file names and object keys.
func validateProject(project string) error {
	if strings.TrimSpace(project) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidProject)
	}
	if strings.ContainsAny(project, "/\\") || strings.Contains(project, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidProject, project)
	}
	return nil
}
