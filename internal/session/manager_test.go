package session

import (
	"errors"
	"testing"

	"studio/internal/types"
)

func newTestFile(path string) *types.OpenFile {
	return types.NewOpenFile(path, "pending content", "python")
}

type fakeBridge struct {
	ready    bool
	value    string
	language string
	setCalls int
}

func (b *fakeBridge) Ready() bool          { return b.ready }
func (b *fakeBridge) Value() string        { return b.value }
func (b *fakeBridge) SetLanguage(l string) { b.language = l }
func (b *fakeBridge) SetValue(v string) {
	b.value = v
	b.setCalls++
}

func openFile(t *testing.T, m *Manager, path, content string) {
	t.Helper()
	fetch, _ := m.BeginOpen(path)
	if !fetch {
		t.Fatalf("expected fetch for first open of %s", path)
	}
	if _, err := m.CompleteOpen(path, content, "python", nil); err != nil {
		t.Fatalf("CompleteOpen(%s): %v", path, err)
	}
}

func TestOpenTwiceFetchesOnce(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "one")

	fetch, outcome := m.BeginOpen("a.py")
	if fetch {
		t.Fatalf("second open must not fetch")
	}
	if outcome != SwitchApplied {
		t.Fatalf("outcome = %v", outcome)
	}
	if m.Session().Len() != 1 {
		t.Fatalf("open files = %d", m.Session().Len())
	}
}

func TestOpenFailureLeavesNoPartialEntry(t *testing.T) {
	m := NewManager(&fakeBridge{ready: true}, nil)
	if fetch, _ := m.BeginOpen("broken.py"); !fetch {
		t.Fatalf("expected fetch")
	}
	if _, err := m.CompleteOpen("broken.py", "", "", errors.New("boom")); err == nil {
		t.Fatalf("expected error")
	}
	if m.Session().IsOpen("broken.py") {
		t.Fatalf("failed open must not insert an entry")
	}
	if m.Session().CurrentPath() != "" {
		t.Fatalf("current = %q", m.Session().CurrentPath())
	}
}

func TestStaleOpenCompletionDropped(t *testing.T) {
	m := NewManager(&fakeBridge{ready: true}, nil)
	// Completion without a matching BeginOpen, e.g. after the path was
	// closed while the response was in flight.
	if _, err := m.CompleteOpen("ghost.py", "data", "python", nil); err != nil {
		t.Fatalf("CompleteOpen: %v", err)
	}
	if m.Session().IsOpen("ghost.py") {
		t.Fatalf("stale completion resurrected an entry")
	}
}

func TestSwitchPreconditionViolation(t *testing.T) {
	m := NewManager(&fakeBridge{ready: true}, nil)
	if _, err := m.Switch("never-opened.py"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("err = %v", err)
	}
	if m.Session().CurrentPath() != "" {
		t.Fatalf("current mutated on precondition violation")
	}
}

func TestSwitchKeepsUnsavedEditsAcrossTabs(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "original a")
	openFile(t, m, "b.py", "original b")

	// Edit b, then switch away and back.
	bridge.value = "edited b"
	if modified, _ := m.ContentChanged(); !modified {
		t.Fatalf("expected modified")
	}
	if _, err := m.Switch("a.py"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if bridge.value != "original a" {
		t.Fatalf("bridge = %q", bridge.value)
	}
	if _, err := m.Switch("b.py"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if bridge.value != "edited b" {
		t.Fatalf("unsaved edits lost: %q", bridge.value)
	}
}

func TestModifiedTracksContentExactly(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "x = 1")

	bridge.value = "x = 2"
	modified, changed := m.ContentChanged()
	if !modified || !changed {
		t.Fatalf("modified=%v changed=%v", modified, changed)
	}
	// Same state again: no flicker.
	if _, changed := m.ContentChanged(); changed {
		t.Fatalf("idempotent recompute reported a change")
	}
	// Reverting the edit clears the flag.
	bridge.value = "x = 1"
	modified, changed = m.ContentChanged()
	if modified || !changed {
		t.Fatalf("modified=%v changed=%v", modified, changed)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "x = 1")
	bridge.value = "x = 2"
	m.ContentChanged()

	path, content, ok := m.BeginSave()
	if !ok || path != "a.py" || content != "x = 2" {
		t.Fatalf("BeginSave = %q %q %v", path, content, ok)
	}
	if err := m.CompleteSave(path, content, nil); err != nil {
		t.Fatalf("CompleteSave: %v", err)
	}
	f := m.Session().File("a.py")
	if f.Modified || f.OriginalContent != "x = 2" || f.Content != "x = 2" {
		t.Fatalf("file = %+v", f)
	}
}

func TestSaveFailureLeavesStateUntouched(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "x = 1")
	bridge.value = "x = 2"
	m.ContentChanged()

	path, content, _ := m.BeginSave()
	if err := m.CompleteSave(path, content, errors.New("network down")); err == nil {
		t.Fatalf("expected error")
	}
	f := m.Session().File("a.py")
	if !f.Modified || f.OriginalContent != "x = 1" || f.Content != "x = 2" {
		t.Fatalf("file mutated on failed save: %+v", f)
	}
}

func TestEditDuringSaveStaysModified(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "x = 1")
	bridge.value = "x = 2"
	m.ContentChanged()

	path, content, _ := m.BeginSave()
	bridge.value = "x = 3"
	m.ContentChanged()
	if err := m.CompleteSave(path, content, nil); err != nil {
		t.Fatalf("CompleteSave: %v", err)
	}
	f := m.Session().File("a.py")
	if !f.Modified || f.Content != "x = 3" || f.OriginalContent != "x = 2" {
		t.Fatalf("in-flight edit lost: %+v", f)
	}
}

func TestSaveWithNoActiveFileIsNoop(t *testing.T) {
	m := NewManager(&fakeBridge{ready: true}, nil)
	if _, _, ok := m.BeginSave(); ok {
		t.Fatalf("expected no-op")
	}
}

func TestCloseModifiedNeedsConfirmation(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "x = 1")
	bridge.value = "x = 2"
	m.ContentChanged()

	needsConfirm, err := m.Close("a.py", false)
	if err != nil || !needsConfirm {
		t.Fatalf("needsConfirm=%v err=%v", needsConfirm, err)
	}
	// Declining leaves everything untouched.
	if !m.Session().IsOpen("a.py") || m.Session().CurrentPath() != "a.py" {
		t.Fatalf("state mutated before confirmation")
	}

	if _, err := m.Close("a.py", true); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if m.Session().IsOpen("a.py") || m.Session().CurrentPath() != "" {
		t.Fatalf("close did not remove entry")
	}
	if bridge.value != "" {
		t.Fatalf("surface not reverted to empty state")
	}
}

func TestCloseActiveSwitchesToDeterministicNeighbor(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "a")
	openFile(t, m, "b.py", "b")
	openFile(t, m, "c.py", "c")
	if _, err := m.Switch("b.py"); err != nil {
		t.Fatalf("Switch: %v", err)
	}

	if _, err := m.Close("b.py", false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := m.Session().CurrentPath(); got != "c.py" {
		t.Fatalf("current = %q, want c.py", got)
	}
	if got := m.Session().Paths(); len(got) != 2 || got[0] != "a.py" || got[1] != "c.py" {
		t.Fatalf("paths = %v", got)
	}
}

func TestCurrentAlwaysAnOpenKey(t *testing.T) {
	bridge := &fakeBridge{ready: true}
	m := NewManager(bridge, nil)
	openFile(t, m, "a.py", "a")
	openFile(t, m, "b.py", "b")

	ops := []func(){
		func() { m.Switch("a.py") },
		func() { m.Close("a.py", true) },
		func() { m.BeginOpen("b.py") },
		func() { m.Close("b.py", true) },
	}
	for i, op := range ops {
		op()
		current := m.Session().CurrentPath()
		if current != "" && !m.Session().IsOpen(current) {
			t.Fatalf("after op %d current %q is not open", i, current)
		}
	}
}

func TestSwitchRetryBudgetExhaustion(t *testing.T) {
	bridge := &fakeBridge{ready: false}
	m := NewManager(bridge, nil)
	m.Session().insert(newTestFile("x"))

	outcome, err := m.Switch("x")
	if err != nil || outcome != SwitchPending {
		t.Fatalf("outcome=%v err=%v", outcome, err)
	}

	for attempt := 1; attempt <= SwitchRetryBudget-1; attempt++ {
		if got := m.RetryPendingSwitch(); got != RetryWaiting {
			t.Fatalf("attempt %d outcome = %v", attempt, got)
		}
	}
	if got := m.RetryPendingSwitch(); got != RetryExhausted {
		t.Fatalf("attempt %d outcome = %v", SwitchRetryBudget, got)
	}
	// The 51st attempt is never made.
	if got := m.RetryPendingSwitch(); got != RetryIdle {
		t.Fatalf("post-budget outcome = %v", got)
	}
	// The intent survives exhaustion so a late readiness signal completes it.
	if got := m.Session().PendingSwitch(); got != "x" {
		t.Fatalf("pendingSwitch = %q", got)
	}
	bridge.ready = true
	if !m.BridgeReady() {
		t.Fatalf("BridgeReady did not complete the pending switch")
	}
	if m.Session().PendingSwitch() != "" {
		t.Fatalf("pendingSwitch not cleared after completion")
	}
	if bridge.value != "pending content" {
		t.Fatalf("bridge = %q", bridge.value)
	}
}

func TestNewerSwitchOverwritesPendingIntent(t *testing.T) {
	bridge := &fakeBridge{ready: false}
	m := NewManager(bridge, nil)
	m.Session().insert(newTestFile("x"))
	m.Session().insert(newTestFile("y"))

	m.Switch("x")
	m.Switch("y")
	if got := m.Session().PendingSwitch(); got != "y" {
		t.Fatalf("pendingSwitch = %q", got)
	}
	bridge.ready = true
	if got := m.RetryPendingSwitch(); got != RetryCompleted {
		t.Fatalf("outcome = %v", got)
	}
	if m.Session().CurrentPath() != "y" {
		t.Fatalf("current = %q", m.Session().CurrentPath())
	}
}

func TestCloseClearsMatchingPendingSwitch(t *testing.T) {
	bridge := &fakeBridge{ready: false}
	m := NewManager(bridge, nil)
	m.Session().insert(newTestFile("x"))
	m.Switch("x")

	if _, err := m.Close("x", false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if m.Session().PendingSwitch() != "" {
		t.Fatalf("pendingSwitch survived close")
	}
	if got := m.RetryPendingSwitch(); got != RetryIdle {
		t.Fatalf("outcome = %v", got)
	}
}
