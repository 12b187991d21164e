package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/glamour"

	"studio/internal/editor"
)

// textAreaSurface adapts the textarea widget to the editing surface
// contract. The same adapter backs both the rich and the degraded surface;
// degraded only means highlighting is unavailable at render time.
type textAreaSurface struct {
	area     *textarea.Model
	language string
}

func newTextAreaSurface() *textAreaSurface {
	area := textarea.New()
	area.Placeholder = "select a file"
	area.ShowLineNumbers = true
	area.CharLimit = 0
	return &textAreaSurface{area: &area}
}

func (s *textAreaSurface) SetValue(content string) {
	s.area.SetValue(content)
}

func (s *textAreaSurface) Value() string {
	return s.area.Value()
}

func (s *textAreaSurface) SetLanguage(language string) {
	s.language = language
}

func (s *textAreaSurface) Language() string {
	return s.language
}

func (s *textAreaSurface) Resize(width, height int) {
	s.area.SetWidth(width)
	s.area.SetHeight(height)
}

func (s *textAreaSurface) CursorPosition() editor.Position {
	return editor.Position{
		Line:   s.area.Line() + 1,
		Column: s.area.LineInfo().ColumnOffset + 1,
	}
}

// renderPreview produces the read-only styled view of the active buffer:
// markdown through the terminal markdown renderer, everything else through
// the syntax highlighter. A nil highlighter degrades to the raw text.
func renderPreview(content, language string, width int, highlighter *editor.Highlighter) string {
	if language == "markdown" {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(20, width)),
		)
		if err == nil {
			if out, err := r.Render(content); err == nil {
				return strings.TrimRight(out, "\n")
			}
		}
	}
	if highlighter != nil {
		if out, err := highlighter.Render(content, language); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return content
}
