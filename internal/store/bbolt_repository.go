package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"studio/internal/types"
)

var (
	bucketCollapse = []byte("ui_collapse")
	bucketLayout   = []byte("ui_layout")
	keyState       = []byte("state")
)

type bboltRepository struct {
	db       *bolt.DB
	collapse CollapseStore
	layout   LayoutStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:       db,
		collapse: &bboltCollapseStore{db: db},
		layout:   &bboltLayoutStore{db: db},
	}, nil
}

func (r *bboltRepository) Collapse() CollapseStore {
	return r.collapse
}

func (r *bboltRepository) Layout() LayoutStore {
	return r.layout
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCollapse); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketLayout); err != nil {
			return err
		}
		return nil
	})
}

func loadBlob(db *bolt.DB, bucket []byte, v any) (bool, error) {
	var found bool
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		raw := b.Get(keyState)
		if len(raw) == 0 {
			return nil
		}
		found = true
		return json.Unmarshal(raw, v)
	})
	return found, err
}

func saveBlob(db *bolt.DB, bucket []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return errors.New("bucket missing: " + string(bucket))
		}
		return b.Put(keyState, raw)
	})
}

type bboltCollapseStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltCollapseStore) Load(ctx context.Context) (*types.CollapseState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := types.NewCollapseState()
	found, err := loadBlob(s.db, bucketCollapse, state)
	if err != nil {
		return nil, err
	}
	if !found {
		return types.NewCollapseState(), nil
	}
	state.Normalize()
	return state, nil
}

func (s *bboltCollapseStore) Save(ctx context.Context, state *types.CollapseState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return errors.New("collapse state is required")
	}
	return saveBlob(s.db, bucketCollapse, state)
}

type bboltLayoutStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltLayoutStore) Load(ctx context.Context) (*types.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout := &types.Layout{}
	found, err := loadBlob(s.db, bucketLayout, layout)
	if err != nil {
		return nil, err
	}
	if !found {
		return types.DefaultLayout(), nil
	}
	layout.MergeDefaults()
	return layout, nil
}

func (s *bboltLayoutStore) Save(ctx context.Context, layout *types.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if layout == nil {
		return errors.New("layout is required")
	}
	return saveBlob(s.db, bucketLayout, layout)
}
