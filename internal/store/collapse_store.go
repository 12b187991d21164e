package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"studio/internal/types"
)

// CollapseStore persists the tree collapse state. Load tolerates a missing
// blob and always returns a usable state.
type CollapseStore interface {
	Load(ctx context.Context) (*types.CollapseState, error)
	Save(ctx context.Context, state *types.CollapseState) error
}

type FileCollapseStore struct {
	path string
	mu   sync.Mutex
}

func NewFileCollapseStore(path string) *FileCollapseStore {
	return &FileCollapseStore{path: path}
}

func (s *FileCollapseStore) Load(ctx context.Context) (*types.CollapseState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := types.NewCollapseState()
	err := readJSON(s.path, state)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, err
	}
	state.Normalize()
	return state, nil
}

func (s *FileCollapseStore) Save(ctx context.Context, state *types.CollapseState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return errors.New("collapse state is required")
	}
	return writeJSONAtomic(s.path, state)
}
