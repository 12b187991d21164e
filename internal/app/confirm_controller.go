package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

// confirmAction names what a confirmed dialog applies to.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmCloseTab
	confirmDeleteEntry
	confirmQuit
)

type confirmController struct {
	active       bool
	action       confirmAction
	payload      string
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func (c *confirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *confirmController) Open(action confirmAction, payload, title, message, confirmLabel, cancelLabel string) {
	c.active = true
	c.action = action
	c.payload = payload
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 0
}

func (c *confirmController) Close() {
	*c = confirmController{}
}

// HandleKey consumes a key while the dialog is open. The returned choice is
// confirmChoiceNone until the user resolves the dialog.
func (c *confirmController) HandleKey(msg tea.KeyMsg) (handled bool, choice confirmChoice) {
	if !c.IsOpen() {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, confirmChoiceCancel
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone
	case "right", "l", "tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "y":
		return true, confirmChoiceConfirm
	case "n":
		return true, confirmChoiceCancel
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return true, confirmChoiceNone
}

func (c *confirmController) View(width int) string {
	if !c.IsOpen() {
		return ""
	}
	confirm := "[" + c.confirmLabel + "]"
	cancel := "[" + c.cancelLabel + "]"
	if c.selected == 0 {
		confirm = selectedStyle.Render(confirm)
	} else {
		cancel = selectedStyle.Render(cancel)
	}
	body := []string{titleStyle.Render(c.title)}
	if c.message != "" {
		body = append(body, c.message)
	}
	body = append(body, "", confirm+"  "+cancel)
	inner := strings.Join(body, "\n")
	return modalStyle.MaxWidth(max(20, width)).Render(inner)
}
