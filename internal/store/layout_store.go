package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"studio/internal/types"
)

// LayoutStore persists the panel layout blob. Load merges a partial blob
// over defaults so older files never produce a zero-width pane.
type LayoutStore interface {
	Load(ctx context.Context) (*types.Layout, error)
	Save(ctx context.Context, layout *types.Layout) error
}

type FileLayoutStore struct {
	path string
	mu   sync.Mutex
}

func NewFileLayoutStore(path string) *FileLayoutStore {
	return &FileLayoutStore{path: path}
}

func (s *FileLayoutStore) Load(ctx context.Context) (*types.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout := &types.Layout{}
	err := readJSON(s.path, layout)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.DefaultLayout(), nil
		}
		return nil, err
	}
	layout.MergeDefaults()
	return layout, nil
}

func (s *FileLayoutStore) Save(ctx context.Context, layout *types.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if layout == nil {
		return errors.New("layout is required")
	}
	return writeJSONAtomic(s.path, layout)
}
