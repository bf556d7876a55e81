package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glosso/glosso/pkg/catalog"
)

// FileStore persists catalogs as JSON documents in a directory, one
// file per project named <project>.json.
type FileStore struct {
	dir string
}

// NewFile creates the directory if needed and returns a store over it.
func NewFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads and decodes the project's document.
func (s *FileStore) Load(_ context.Context, project string) (*catalog.Catalog, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(project))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, project)
		}
		return nil, err
	}
	return catalog.Decode(data)
}

// Save writes the encoded document through a temp file and renames it
// into place, so readers never observe a half-written document.
func (s *FileStore) Save(_ context.Context, cat *catalog.Catalog) error {
	if err := validateProject(cat.Project()); err != nil {
		return err
	}
	target := s.path(cat.Project())
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, cat.Encode(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Healthcheck verifies the directory still exists.
func (s *FileStore) Healthcheck(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, s.dir)
	}
	return nil
}

func (s *FileStore) path(project string) string {
	return filepath.Join(s.dir, project+".json")
}
