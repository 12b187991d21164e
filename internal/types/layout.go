package types

const (
	DefaultSidebarWidth = 32
	DefaultPanelWidth   = 44
)

// Layout is the persisted shape of the UI: sidebar width, inspector panel
// width and whether the panel is shown. A partially populated blob merges
// over defaults on load.
type Layout struct {
	SidebarWidth int  `json:"sidebar_width,omitempty"`
	PanelWidth   int  `json:"panel_width,omitempty"`
	PanelVisible bool `json:"panel_visible,omitempty"`
}

func DefaultLayout() *Layout {
	return &Layout{
		SidebarWidth: DefaultSidebarWidth,
		PanelWidth:   DefaultPanelWidth,
	}
}

// MergeDefaults fills zero-valued dimensions from the defaults so an old or
// partial blob never produces a zero-width pane.
func (l *Layout) MergeDefaults() {
	if l.SidebarWidth <= 0 {
		l.SidebarWidth = DefaultSidebarWidth
	}
	if l.PanelWidth <= 0 {
		l.PanelWidth = DefaultPanelWidth
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampSidebar bounds the sidebar width and reports whether it changed.
func (l *Layout) ClampSidebar(lo, hi int) bool {
	clamped := clampInt(l.SidebarWidth, lo, hi)
	if clamped == l.SidebarWidth {
		return false
	}
	l.SidebarWidth = clamped
	return true
}

// ClampPanel bounds the inspector panel width and reports whether it changed.
func (l *Layout) ClampPanel(lo, hi int) bool {
	clamped := clampInt(l.PanelWidth, lo, hi)
	if clamped == l.PanelWidth {
		return false
	}
	l.PanelWidth = clamped
	return true
}
