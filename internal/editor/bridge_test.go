package editor

import "testing"

type memorySurface struct {
	value    string
	language string
	setCalls int
}

func (s *memorySurface) SetValue(v string) {
	s.value = v
	s.setCalls++
}
func (s *memorySurface) Value() string        { return s.value }
func (s *memorySurface) SetLanguage(l string) { s.language = l }
func (s *memorySurface) Language() string     { return s.language }

func TestBridgeBuffersLatestValueUntilAttach(t *testing.T) {
	b := NewBridge(nil)
	if b.Ready() {
		t.Fatalf("bridge ready before attach")
	}
	b.SetValue("first")
	b.SetLanguage("python")
	b.SetValue("second")
	if got := b.Value(); got != "second" {
		t.Fatalf("buffered value = %q", got)
	}

	surface := &memorySurface{}
	if err := b.Attach(surface, false); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !b.Ready() {
		t.Fatalf("bridge not ready after attach")
	}
	// Only the most recent buffered value is replayed, exactly once.
	if surface.value != "second" || surface.setCalls != 1 {
		t.Fatalf("surface = %+v", surface)
	}
	if surface.language != "python" {
		t.Fatalf("language = %q", surface.language)
	}
}

func TestBridgeAttachHappensOnce(t *testing.T) {
	b := NewBridge(nil)
	if err := b.Attach(&memorySurface{}, false); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := b.Attach(&memorySurface{}, true); err == nil {
		t.Fatalf("second attach must fail")
	}
	if b.Degraded() {
		t.Fatalf("rejected attach changed degraded flag")
	}
}

func TestBridgeDegradedFallback(t *testing.T) {
	b := NewBridge(nil)
	if err := b.Attach(&memorySurface{}, true); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !b.Ready() || !b.Degraded() {
		t.Fatalf("ready=%v degraded=%v", b.Ready(), b.Degraded())
	}
}

func TestBridgeCallbacks(t *testing.T) {
	b := NewBridge(nil)
	contentCalls := 0
	var lastPos Position
	b.OnContentChanged(func() { contentCalls++ })
	b.OnCursorChanged(func(p Position) { lastPos = p })

	b.EmitContentChanged()
	b.EmitContentChanged()
	b.EmitCursorChanged(Position{Line: 3, Column: 7})
	if contentCalls != 2 {
		t.Fatalf("content calls = %d", contentCalls)
	}
	if lastPos.Line != 3 || lastPos.Column != 7 {
		t.Fatalf("pos = %+v", lastPos)
	}
}

func TestNewHighlighterUnknownStyle(t *testing.T) {
	if _, err := NewHighlighter("no-such-style"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}

func TestHighlighterRendersKnownLanguage(t *testing.T) {
	h, err := NewHighlighter("monokai")
	if err != nil {
		t.Fatalf("NewHighlighter: %v", err)
	}
	out, err := h.Render("def f():\n    return 1\n", "python")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == "" {
		t.Fatalf("empty render")
	}
}

func TestLanguageForExtension(t *testing.T) {
	cases := map[string]string{
		".stpl": "scribe-template",
		".py":   "python",
		".sql":  "sql",
		".css":  "css",
		".md":   "markdown",
		".zig":  "plaintext",
	}
	for ext, want := range cases {
		if got := LanguageForExtension(ext); got != want {
			t.Errorf("LanguageForExtension(%q) = %q, want %q", ext, got, want)
		}
	}
}
