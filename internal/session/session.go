package session

import (
	"studio/internal/types"
)

// Session is the open-file state of one editor window: the path-keyed open
// map, the tab order, the active path and the switch intent remembered while
// the editor bridge is still initializing. It is owned by a Manager and torn
// down with it.
type Session struct {
	open          map[string]*types.OpenFile
	order         []string
	current       string
	pendingSwitch string
}

func NewSession() *Session {
	return &Session{open: map[string]*types.OpenFile{}}
}

// File returns the open entry for path, or nil.
func (s *Session) File(path string) *types.OpenFile {
	return s.open[path]
}

func (s *Session) IsOpen(path string) bool {
	_, ok := s.open[path]
	return ok
}

// Paths lists open files in tab order.
func (s *Session) Paths() []string {
	return append([]string(nil), s.order...)
}

func (s *Session) Len() int {
	return len(s.open)
}

// CurrentPath is the active path, or "" when no file is displayed.
func (s *Session) CurrentPath() string {
	return s.current
}

// Current returns the active open file, or nil.
func (s *Session) Current() *types.OpenFile {
	if s.current == "" {
		return nil
	}
	return s.open[s.current]
}

// PendingSwitch is the switch target remembered while the bridge is not yet
// ready, or "".
func (s *Session) PendingSwitch() string {
	return s.pendingSwitch
}

// AnyModified reports whether any open file has unsaved edits.
func (s *Session) AnyModified() bool {
	for _, f := range s.open {
		if f.Modified {
			return true
		}
	}
	return false
}

func (s *Session) insert(f *types.OpenFile) {
	if _, ok := s.open[f.Path]; ok {
		return
	}
	s.open[f.Path] = f
	s.order = append(s.order, f.Path)
}

// remove drops the entry and returns the deterministic fallback path: the
// neighbor that took the closed tab's slot, or the new last tab.
func (s *Session) remove(path string) string {
	if _, ok := s.open[path]; !ok {
		return ""
	}
	delete(s.open, path)
	idx := -1
	for i, p := range s.order {
		if p == path {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.order = append(s.order[:idx], s.order[idx+1:]...)
	}
	if len(s.order) == 0 {
		return ""
	}
	if idx < 0 || idx >= len(s.order) {
		idx = len(s.order) - 1
	}
	return s.order[idx]
}
