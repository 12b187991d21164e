package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studio/internal/classify"
)

type promptMode int

const (
	promptNewFile promptMode = iota
	promptNewFolder
)

// promptController collects a path for a new entry. When opened in the scope
// of a category it pre-fills the category root and completes the category
// extension on submit, so "lib/" plus "util" becomes "lib/util.py".
type promptController struct {
	active  bool
	mode    promptMode
	kind    classify.Kind
	scoped  bool
	input   textinput.Model
	message string
}

func newPromptController() *promptController {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 48
	return &promptController{input: input}
}

func (p *promptController) IsOpen() bool {
	return p != nil && p.active
}

func (p *promptController) Open(mode promptMode, kind classify.Kind, scoped bool) {
	p.active = true
	p.mode = mode
	p.kind = kind
	p.scoped = scoped
	p.message = ""
	p.input.SetValue("")
	if scoped {
		p.input.SetValue(kind.DefaultPrefix())
	}
	p.input.CursorEnd()
	p.input.Focus()
}

func (p *promptController) Close() {
	p.active = false
	p.input.Blur()
	p.input.SetValue("")
	p.message = ""
}

func (p *promptController) Title() string {
	label := "New file"
	if p.mode == promptNewFolder {
		label = "New folder"
	}
	if p.scoped {
		label += " · " + p.kind.Label()
	}
	return label
}

// HandleKey consumes keys while the prompt is open. On submit it returns the
// completed path; an empty submit keeps the prompt open with a hint.
func (p *promptController) HandleKey(msg tea.KeyMsg) (handled, submitted bool, value string, cmd tea.Cmd) {
	if !p.IsOpen() {
		return false, false, "", nil
	}
	switch msg.String() {
	case "esc":
		p.Close()
		return true, false, "", nil
	case "enter":
		value = p.completedValue()
		if value == "" {
			p.message = "name is required"
			return true, false, "", nil
		}
		p.Close()
		return true, true, value, nil
	}
	p.input, cmd = p.input.Update(msg)
	return true, false, "", cmd
}

func (p *promptController) completedValue() string {
	value := strings.Trim(strings.TrimSpace(p.input.Value()), "/")
	if value == "" {
		return ""
	}
	if p.mode == promptNewFile && p.scoped {
		base := value
		if idx := strings.LastIndex(value, "/"); idx >= 0 {
			base = value[idx+1:]
		}
		if !strings.Contains(base, ".") {
			value += p.kind.Extension()
		}
	}
	return value
}

func (p *promptController) View(width int) string {
	if !p.IsOpen() {
		return ""
	}
	lines := []string{titleStyle.Render(p.Title()), p.input.View()}
	if p.message != "" {
		lines = append(lines, warnStyle.Render(p.message))
	}
	return modalStyle.MaxWidth(max(20, width)).Render(strings.Join(lines, "\n"))
}
