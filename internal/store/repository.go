package store

import (
	"errors"
	"strings"
)

const (
	RepositoryBackendFile  = "file"
	RepositoryBackendBbolt = "bbolt"
)

// Repository bundles the persisted UI state stores: the tree collapse state
// and the panel layout.
type Repository interface {
	Collapse() CollapseStore
	Layout() LayoutStore
	Backend() string
	Close() error
}

// RepositoryPaths locates the backing files for both repository flavors.
type RepositoryPaths struct {
	CollapsePath string
	LayoutPath   string
	DBPath       string
}

type fileRepository struct {
	collapse CollapseStore
	layout   LayoutStore
}

func NewFileRepository(paths RepositoryPaths) Repository {
	return &fileRepository{
		collapse: NewFileCollapseStore(paths.CollapsePath),
		layout:   NewFileLayoutStore(paths.LayoutPath),
	}
}

func (r *fileRepository) Collapse() CollapseStore {
	return r.collapse
}

func (r *fileRepository) Layout() LayoutStore {
	return r.layout
}

func (r *fileRepository) Backend() string {
	return RepositoryBackendFile
}

func (r *fileRepository) Close() error {
	return nil
}

func OpenRepository(paths RepositoryPaths, backend string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", RepositoryBackendBbolt:
		if strings.TrimSpace(paths.DBPath) == "" {
			return nil, errors.New("db path is required for bbolt repository")
		}
		return NewBboltRepository(paths.DBPath)
	case RepositoryBackendFile:
		return NewFileRepository(paths), nil
	default:
		return nil, errors.New("unsupported repository backend: " + backend)
	}
}
