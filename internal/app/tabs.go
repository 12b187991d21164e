package app

import (
	"path"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"studio/internal/session"
)

// renderTabs draws the open-file strip. Tabs show the base name, a bullet for
// unsaved changes, and the active tab is emphasized. The strip truncates from
// the right when the open set outgrows the width.
func renderTabs(sess *session.Session, width int) string {
	paths := sess.Paths()
	if len(paths) == 0 {
		return mutedStyle.Render(" no open files")
	}
	active := sess.CurrentPath()
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		label := path.Base(p)
		if f := sess.File(p); f != nil && f.Modified {
			label += " ●"
		}
		if p == active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	strip := strings.Join(parts, "")
	return xansi.Truncate(strip, width, "…")
}

// tabNeighbor returns the path of the tab offset steps from the active one,
// wrapping around. With no open files it returns the empty string.
func tabNeighbor(sess *session.Session, offset int) string {
	paths := sess.Paths()
	if len(paths) == 0 {
		return ""
	}
	current := sess.CurrentPath()
	idx := 0
	for i, p := range paths {
		if p == current {
			idx = i
			break
		}
	}
	idx = (idx + offset%len(paths) + len(paths)) % len(paths)
	return paths[idx]
}
