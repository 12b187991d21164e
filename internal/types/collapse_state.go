package types

import "sort"

// CollapseState records which categories and which folder paths are collapsed
// in the project tree. The representation is sparse: presence means collapsed,
// absence means expanded, so a restored state never enumerates every folder.
type CollapseState struct {
	Categories map[string]bool `json:"collapsed_categories,omitempty"`
	Folders    map[string]bool `json:"collapsed_folders,omitempty"`
}

func NewCollapseState() *CollapseState {
	return &CollapseState{
		Categories: map[string]bool{},
		Folders:    map[string]bool{},
	}
}

func (s *CollapseState) CategoryCollapsed(key string) bool {
	if s == nil {
		return false
	}
	return s.Categories[key]
}

func (s *CollapseState) FolderCollapsed(path string) bool {
	if s == nil {
		return false
	}
	return s.Folders[path]
}

// ToggleCategory flips the collapsed flag for a category key and reports the
// new state.
func (s *CollapseState) ToggleCategory(key string) bool {
	if s.Categories == nil {
		s.Categories = map[string]bool{}
	}
	if s.Categories[key] {
		delete(s.Categories, key)
		return false
	}
	s.Categories[key] = true
	return true
}

// ToggleFolder flips the collapsed flag for a folder path and reports the new
// state.
func (s *CollapseState) ToggleFolder(path string) bool {
	if s.Folders == nil {
		s.Folders = map[string]bool{}
	}
	if s.Folders[path] {
		delete(s.Folders, path)
		return false
	}
	s.Folders[path] = true
	return true
}

// Normalize drops entries persisted as explicit false so the sparse invariant
// holds after a round-trip through older files.
func (s *CollapseState) Normalize() {
	if s == nil {
		return
	}
	if s.Categories == nil {
		s.Categories = map[string]bool{}
	}
	if s.Folders == nil {
		s.Folders = map[string]bool{}
	}
	for key, collapsed := range s.Categories {
		if !collapsed {
			delete(s.Categories, key)
		}
	}
	for path, collapsed := range s.Folders {
		if !collapsed {
			delete(s.Folders, path)
		}
	}
}

// Clone returns an independent copy, for handing the state to a writer
// running off the event loop.
func (s *CollapseState) Clone() *CollapseState {
	out := NewCollapseState()
	if s == nil {
		return out
	}
	for key, collapsed := range s.Categories {
		out.Categories[key] = collapsed
	}
	for path, collapsed := range s.Folders {
		out.Folders[path] = collapsed
	}
	return out
}

// CollapsedFolderPaths returns the collapsed folder paths in sorted order.
func (s *CollapseState) CollapsedFolderPaths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Folders))
	for path, collapsed := range s.Folders {
		if collapsed {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}
