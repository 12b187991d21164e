package store

import (
	"context"
	"path/filepath"
	"testing"

	"studio/internal/types"
)

func repoPaths(t *testing.T) RepositoryPaths {
	t.Helper()
	dir := t.TempDir()
	return RepositoryPaths{
		CollapsePath: filepath.Join(dir, "collapse_state.json"),
		LayoutPath:   filepath.Join(dir, "layout.json"),
		DBPath:       filepath.Join(dir, "state.db"),
	}
}

func openBackends(t *testing.T) map[string]Repository {
	t.Helper()
	repos := map[string]Repository{}
	for _, backend := range []string{RepositoryBackendFile, RepositoryBackendBbolt} {
		repo, err := OpenRepository(repoPaths(t), backend)
		if err != nil {
			t.Fatalf("open %s repository: %v", backend, err)
		}
		t.Cleanup(func() { _ = repo.Close() })
		repos[backend] = repo
	}
	return repos
}

func TestCollapseRoundTrip(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			store := repo.Collapse()

			initial, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load before save: %v", err)
			}
			if len(initial.Categories) != 0 || len(initial.Folders) != 0 {
				t.Fatalf("expected empty initial state, got %+v", initial)
			}

			initial.ToggleCategory("logic")
			initial.ToggleFolder("lib/auth")
			if err := store.Save(ctx, initial); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load after save: %v", err)
			}
			if !loaded.CategoryCollapsed("logic") {
				t.Fatal("expected logic category to persist collapsed")
			}
			if !loaded.FolderCollapsed("lib/auth") {
				t.Fatal("expected lib/auth folder to persist collapsed")
			}
			if loaded.CategoryCollapsed("templates") {
				t.Fatal("untouched category should stay expanded")
			}
		})
	}
}

func TestCollapseNormalizedOnLoad(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			store := repo.Collapse()

			state := types.NewCollapseState()
			state.Categories["data"] = true
			state.Categories["style"] = false
			state.Folders["lib"] = false
			if err := store.Save(ctx, state); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, ok := loaded.Categories["style"]; ok {
				t.Fatal("explicit expanded category should be dropped on load")
			}
			if _, ok := loaded.Folders["lib"]; ok {
				t.Fatal("explicit expanded folder should be dropped on load")
			}
			if !loaded.CategoryCollapsed("data") {
				t.Fatal("collapsed category lost during normalization")
			}
		})
	}
}

func TestCollapseSaveRequiresState(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			if err := repo.Collapse().Save(ctx, nil); err == nil {
				t.Fatal("expected error saving nil collapse state")
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			store := repo.Layout()

			initial, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load before save: %v", err)
			}
			if initial.SidebarWidth != types.DefaultSidebarWidth {
				t.Fatalf("expected default sidebar width %d, got %d", types.DefaultSidebarWidth, initial.SidebarWidth)
			}

			initial.SidebarWidth = 40
			initial.PanelVisible = true
			if err := store.Save(ctx, initial); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load after save: %v", err)
			}
			if loaded.SidebarWidth != 40 {
				t.Fatalf("sidebar width did not persist, got %d", loaded.SidebarWidth)
			}
			if !loaded.PanelVisible {
				t.Fatal("panel visibility did not persist")
			}
			if loaded.PanelWidth != types.DefaultPanelWidth {
				t.Fatalf("zero panel width should merge to default, got %d", loaded.PanelWidth)
			}
		})
	}
}

func TestOpenRepositoryBackends(t *testing.T) {
	paths := repoPaths(t)

	repo, err := OpenRepository(paths, "")
	if err != nil {
		t.Fatalf("open default repository: %v", err)
	}
	defer repo.Close()
	if repo.Backend() != RepositoryBackendBbolt {
		t.Fatalf("default backend = %q, want %q", repo.Backend(), RepositoryBackendBbolt)
	}

	if _, err := OpenRepository(paths, "postgres"); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	if _, err := OpenRepository(RepositoryPaths{}, RepositoryBackendBbolt); err == nil {
		t.Fatal("expected error when bbolt backend has no db path")
	}
}
