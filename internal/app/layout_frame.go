package app

import (
	"studio/internal/config"
	"studio/internal/types"
)

// layoutFrame is the resolved column split for one frame: sidebar, editor,
// and the optional inspector panel. Separator columns are owned by the panes
// via their borders.
type layoutFrame struct {
	sidebarWidth int
	editorWidth  int
	panelWidth   int
	panelVisible bool
}

// resolveLayout clamps the persisted layout against the current terminal
// width and reports whether the persisted values had to change. The panel
// ceiling is dynamic: whatever remains after the sidebar and the editor
// floor. A panel that cannot fit at its minimum is hidden for the frame
// without touching the persisted visibility.
func resolveLayout(width int, layout *types.Layout, ui config.UIConfig) (layoutFrame, bool) {
	sidebarMin, sidebarMax := ui.SidebarBounds()
	if width > 0 && sidebarMax > width/2 {
		sidebarMax = max(sidebarMin, width/2)
	}
	changed := layout.ClampSidebar(sidebarMin, sidebarMax)

	frame := layoutFrame{sidebarWidth: layout.SidebarWidth}
	frame.editorWidth = max(1, width-frame.sidebarWidth)

	if layout.PanelVisible {
		panelMax := width - frame.sidebarWidth - ui.MinEditorWidth()
		if panelMax >= ui.PanelMinWidth() {
			if layout.ClampPanel(ui.PanelMinWidth(), panelMax) {
				changed = true
			}
			frame.panelVisible = true
			frame.panelWidth = layout.PanelWidth
			frame.editorWidth = max(1, width-frame.sidebarWidth-frame.panelWidth)
		}
	}
	return frame, changed
}
