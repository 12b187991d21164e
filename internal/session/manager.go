package session

import (
	"errors"
	"fmt"
	"time"

	"studio/internal/logging"
	"studio/internal/types"
)

const (
	// SwitchRetryInterval is how often a pending switch re-checks bridge
	// readiness; SwitchRetryBudget caps the attempts (5 seconds total).
	SwitchRetryInterval = 100 * time.Millisecond
	SwitchRetryBudget   = 50
)

// ErrNotOpen marks a switch request for a path that is not in the open-files
// map. That is a caller bug, not an environmental failure; callers treat it
// as a no-op.
var ErrNotOpen = errors.New("file is not open")

// Bridge is the slice of the editor bridge the manager drives.
type Bridge interface {
	Ready() bool
	SetValue(content string)
	Value() string
	SetLanguage(language string)
}

// SwitchOutcome describes how a switch request resolved.
type SwitchOutcome int

const (
	SwitchApplied SwitchOutcome = iota
	SwitchPending
)

// RetryOutcome describes one readiness retry tick.
type RetryOutcome int

const (
	RetryIdle RetryOutcome = iota
	RetryWaiting
	RetryCompleted
	RetryExhausted
)

// Manager owns the Session and orchestrates open/switch/close/save against
// the editor bridge and the backend. All methods run on the UI event loop;
// network fetches happen outside and report back through the Complete hooks.
type Manager struct {
	session *Session
	bridge  Bridge
	log     logging.Logger

	// pendingOpens guards against stale fetch completions: a completion for
	// a path no longer pending is dropped.
	pendingOpens   map[string]struct{}
	retryRemaining int
}

func NewManager(bridge Bridge, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		session:      NewSession(),
		bridge:       bridge,
		log:          log,
		pendingOpens: map[string]struct{}{},
	}
}

func (m *Manager) Session() *Session {
	return m.session
}

// BeginOpen starts opening a path. When the file is already open it switches
// to it instead and reports that no fetch is needed, so an open never issues
// a redundant network request.
func (m *Manager) BeginOpen(path string) (fetch bool, outcome SwitchOutcome) {
	if m.session.IsOpen(path) {
		outcome, _ = m.Switch(path)
		return false, outcome
	}
	if _, already := m.pendingOpens[path]; already {
		return false, SwitchPending
	}
	m.pendingOpens[path] = struct{}{}
	return true, SwitchPending
}

// CompleteOpen applies a finished fetch. A failed fetch leaves the session
// untouched; a completion for a path that is no longer pending (closed or
// never requested) is dropped so a slow response cannot resurrect state.
func (m *Manager) CompleteOpen(path, content, language string, fetchErr error) (SwitchOutcome, error) {
	if _, ok := m.pendingOpens[path]; !ok {
		m.log.Debug("dropping stale open completion", logging.F("path", path))
		return SwitchApplied, nil
	}
	delete(m.pendingOpens, path)
	if fetchErr != nil {
		return SwitchApplied, fetchErr
	}
	m.session.insert(types.NewOpenFile(path, content, language))
	outcome, err := m.Switch(path)
	return outcome, err
}

// Switch makes path the active file. The path must already be open. When the
// bridge is not yet ready the intent is remembered and retried on ticks; only
// the most recent intent survives.
func (m *Manager) Switch(path string) (SwitchOutcome, error) {
	if !m.session.IsOpen(path) {
		return SwitchApplied, ErrNotOpen
	}
	m.session.current = path
	if m.bridge == nil || !m.bridge.Ready() {
		m.session.pendingSwitch = path
		m.retryRemaining = SwitchRetryBudget
		return SwitchPending, nil
	}
	m.applySwitch(path)
	return SwitchApplied, nil
}

func (m *Manager) applySwitch(path string) {
	f := m.session.File(path)
	if f == nil {
		return
	}
	m.session.pendingSwitch = ""
	m.bridge.SetValue(f.Content)
	m.bridge.SetLanguage(f.Language)
}

// RetryPendingSwitch runs one readiness attempt for the remembered switch.
// Exhausting the budget is terminal for the retry loop but keeps the pending
// target so a later readiness signal can still complete it.
func (m *Manager) RetryPendingSwitch() RetryOutcome {
	if m.session.pendingSwitch == "" || m.retryRemaining <= 0 {
		return RetryIdle
	}
	if m.bridge != nil && m.bridge.Ready() {
		m.applySwitch(m.session.pendingSwitch)
		m.retryRemaining = 0
		return RetryCompleted
	}
	m.retryRemaining--
	if m.retryRemaining == 0 {
		m.log.Warn("editor not ready, switch deferred",
			logging.F("path", m.session.pendingSwitch))
		return RetryExhausted
	}
	return RetryWaiting
}

// BridgeReady completes a pending switch once the bridge reports readiness
// out of band, even after the retry budget ran out.
func (m *Manager) BridgeReady() bool {
	pending := m.session.pendingSwitch
	if pending == "" || m.bridge == nil || !m.bridge.Ready() {
		return false
	}
	m.applySwitch(pending)
	m.retryRemaining = 0
	return true
}

// Close removes a file from the session. A modified file needs confirmation
// first: the call reports needsConfirm and mutates nothing until it is
// repeated with confirmed set. Closing the active file switches to the
// deterministic neighbor, or clears the surface when it was the last tab.
func (m *Manager) Close(path string, confirmed bool) (needsConfirm bool, err error) {
	f := m.session.File(path)
	if f == nil {
		return false, nil
	}
	if f.Modified && !confirmed {
		return true, nil
	}
	wasCurrent := m.session.current == path
	next := m.session.remove(path)
	if m.session.pendingSwitch == path {
		m.session.pendingSwitch = ""
		m.retryRemaining = 0
	}
	if !wasCurrent {
		return false, nil
	}
	if next == "" {
		m.session.current = ""
		if m.bridge != nil && m.bridge.Ready() {
			m.bridge.SetValue("")
			m.bridge.SetLanguage("")
		}
		return false, nil
	}
	_, err = m.Switch(next)
	return false, err
}

// BeginSave snapshots the live buffer for the active file. With no active
// file it reports ok=false and the save is a no-op.
func (m *Manager) BeginSave() (path, content string, ok bool) {
	f := m.session.Current()
	if f == nil {
		return "", "", false
	}
	content = f.Content
	if m.bridge != nil && m.bridge.Ready() {
		content = m.bridge.Value()
	}
	return f.Path, content, true
}

// CompleteSave applies a finished save. On success the saved content becomes
// the new original; on failure nothing changes and the buffer is never
// reverted. A completion for a path closed in the meantime is dropped.
func (m *Manager) CompleteSave(path, content string, saveErr error) error {
	if saveErr != nil {
		return saveErr
	}
	f := m.session.File(path)
	if f == nil {
		m.log.Debug("dropping stale save completion", logging.F("path", path))
		return nil
	}
	f.MarkSaved(content)
	return nil
}

// ContentChanged records the live buffer for the active file and recomputes
// its modified flag. It reports the flag and whether it flipped, so tab
// markers are only touched when the state actually changed.
func (m *Manager) ContentChanged() (modified, changed bool) {
	f := m.session.Current()
	if f == nil || m.bridge == nil || !m.bridge.Ready() {
		return false, false
	}
	changed = f.SetContent(m.bridge.Value())
	return f.Modified, changed
}

// Describe summarizes the session for logs and the status line.
func (m *Manager) Describe() string {
	return fmt.Sprintf("%d open, active %q", m.session.Len(), m.session.current)
}
