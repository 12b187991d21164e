package editor

import (
	"errors"

	"studio/internal/logging"
)

// Surface is the minimal capability contract of the editing widget. The rich
// widget and the degraded plain-text fallback both satisfy it.
type Surface interface {
	SetValue(content string)
	Value() string
	SetLanguage(language string)
	Language() string
}

// Position is a cursor location reported by the active surface.
type Position struct {
	Line   int
	Column int
}

// Bridge adapts the lazily initializing editing widget. It starts with no
// surface, buffers the most recent value and language pushed at it, and
// replays them once a surface attaches. The Uninitialized to Ready transition
// happens exactly once, either with the rich widget or with the degraded
// fallback.
type Bridge struct {
	surface  Surface
	degraded bool
	log      logging.Logger

	pendingValue    *string
	pendingLanguage *string

	onContent func()
	onCursor  func(Position)
}

func NewBridge(log logging.Logger) *Bridge {
	if log == nil {
		log = logging.Nop()
	}
	return &Bridge{log: log}
}

func (b *Bridge) Ready() bool {
	return b != nil && b.surface != nil
}

// Degraded reports whether the bridge fell back to the plain-text surface.
func (b *Bridge) Degraded() bool {
	return b != nil && b.degraded
}

// Attach completes initialization with the given surface and replays any
// buffered state. Attaching twice is a caller bug and is rejected.
func (b *Bridge) Attach(surface Surface, degraded bool) error {
	if surface == nil {
		return errors.New("surface is required")
	}
	if b.surface != nil {
		return errors.New("bridge already initialized")
	}
	b.surface = surface
	b.degraded = degraded
	if b.pendingLanguage != nil {
		surface.SetLanguage(*b.pendingLanguage)
		b.pendingLanguage = nil
	}
	if b.pendingValue != nil {
		surface.SetValue(*b.pendingValue)
		b.pendingValue = nil
	}
	if degraded {
		b.log.Warn("editor running on plain-text fallback")
	} else {
		b.log.Debug("editor surface attached")
	}
	return nil
}

// SetValue pushes content at the surface, or remembers the most recent value
// while uninitialized.
func (b *Bridge) SetValue(content string) {
	if b.surface == nil {
		b.pendingValue = &content
		return
	}
	b.surface.SetValue(content)
}

// Value reads the live buffer. While uninitialized it reflects the buffered
// value, if any.
func (b *Bridge) Value() string {
	if b.surface == nil {
		if b.pendingValue != nil {
			return *b.pendingValue
		}
		return ""
	}
	return b.surface.Value()
}

func (b *Bridge) SetLanguage(language string) {
	if b.surface == nil {
		b.pendingLanguage = &language
		return
	}
	b.surface.SetLanguage(language)
}

func (b *Bridge) LanguageTag() string {
	if b.surface == nil {
		if b.pendingLanguage != nil {
			return *b.pendingLanguage
		}
		return ""
	}
	return b.surface.Language()
}

// OnContentChanged registers the change-notification callback.
func (b *Bridge) OnContentChanged(fn func()) {
	b.onContent = fn
}

// OnCursorChanged registers the cursor-notification callback.
func (b *Bridge) OnCursorChanged(fn func(Position)) {
	b.onCursor = fn
}

// EmitContentChanged is invoked by the surface owner after each edit of the
// active buffer.
func (b *Bridge) EmitContentChanged() {
	if b != nil && b.onContent != nil {
		b.onContent()
	}
}

// EmitCursorChanged is invoked by the surface owner when the cursor moves.
func (b *Bridge) EmitCursorChanged(pos Position) {
	if b != nil && b.onCursor != nil {
		b.onCursor(pos)
	}
}
