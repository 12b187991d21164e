package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"studio/internal/classify"
	"studio/internal/session"
	"studio/internal/types"
)

type rowKind int

const (
	rowCategory rowKind = iota
	rowFolder
	rowFile
	rowConfig
)

// sidebarRow is one visible line of the project tree. File rows carry the
// project path; category and folder rows carry the key their collapse flag is
// stored under.
type sidebarRow struct {
	kind      rowKind
	title     string
	depth     int
	path      string
	category  classify.Kind
	toggleKey string
	collapsed bool
	count     int
}

func (r *sidebarRow) FilterValue() string {
	return r.title
}

// folderToggleKey namespaces folder collapse flags per category, so a "lib"
// folder under Logic never collides with one under Data.
func folderToggleKey(kind classify.Kind, folderPath string) string {
	return kind.Key() + ":" + folderPath
}

// flattenTree turns one classification pass into the visible row list.
// Collapsed categories contribute only their header row; collapsed folders
// hide their whole subtree.
func flattenTree(result *classify.Result, collapse *types.CollapseState) []sidebarRow {
	var rows []sidebarRow
	for _, kind := range classify.Kinds {
		cat := result.Category(kind)
		if cat.Empty() {
			continue
		}
		rows = append(rows, sidebarRow{
			kind:      rowCategory,
			title:     kind.Label(),
			category:  kind,
			toggleKey: kind.Key(),
			collapsed: cat.Collapsed,
			count:     cat.Count(),
		})
		if cat.Collapsed {
			continue
		}
		for _, ref := range cat.Files {
			rows = append(rows, fileRow(ref, kind, 1))
		}
		for _, ref := range cat.RootFiles {
			rows = append(rows, fileRow(ref, kind, 1))
		}
		for _, folder := range cat.SortedFolders() {
			rows = appendFolderRows(rows, kind, folder, folder.Name, 1, collapse)
		}
	}
	for _, ref := range result.ConfigFiles {
		rows = append(rows, sidebarRow{
			kind:  rowConfig,
			title: ref.Name,
			path:  ref.Path,
		})
	}
	return rows
}

func appendFolderRows(rows []sidebarRow, kind classify.Kind, folder *classify.Folder, folderPath string, depth int, collapse *types.CollapseState) []sidebarRow {
	key := folderToggleKey(kind, folderPath)
	collapsed := collapse.FolderCollapsed(key)
	rows = append(rows, sidebarRow{
		kind:      rowFolder,
		title:     folder.Name,
		depth:     depth,
		category:  kind,
		toggleKey: key,
		collapsed: collapsed,
		count:     len(folder.Files) + len(folder.Subfolders),
	})
	if collapsed {
		return rows
	}
	for _, ref := range folder.Files {
		rows = append(rows, fileRow(ref, kind, depth+1))
	}
	for _, sub := range folder.SortedSubfolders() {
		rows = appendFolderRows(rows, kind, sub, folderPath+"/"+sub.Name, depth+1, collapse)
	}
	return rows
}

func fileRow(ref classify.FileRef, kind classify.Kind, depth int) sidebarRow {
	return sidebarRow{
		kind:     rowFile,
		title:    ref.Name,
		depth:    depth,
		path:     ref.Path,
		category: kind,
	}
}

// sidebarDelegate renders one row per line. It reads the session for the
// open/modified markers and highlights the cursor row only while the sidebar
// has focus.
type sidebarDelegate struct {
	sess    *session.Session
	focused bool
}

func (d *sidebarDelegate) Height() int {
	return 1
}

func (d *sidebarDelegate) Spacing() int {
	return 0
}

func (d *sidebarDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d *sidebarDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(*sidebarRow)
	if !ok {
		return
	}
	line := renderSidebarRow(*row, d.sess, m.Width())
	if index == m.Index() && d.focused {
		line = selectedStyle.Render(padToWidth(xansi.Strip(line), m.Width()))
	}
	fmt.Fprint(w, line)
}

// sidebarController owns the tree list. All keys are routed by the model, so
// the list's own keymap never runs; the list is cursor bookkeeping plus the
// delegate's rendering.
type sidebarController struct {
	list     list.Model
	delegate *sidebarDelegate
	rows     []sidebarRow
}

func newSidebarController(sess *session.Session) *sidebarController {
	delegate := &sidebarDelegate{sess: sess}
	mlist := list.New(nil, delegate, 0, 0)
	mlist.SetShowTitle(false)
	mlist.SetShowHelp(false)
	mlist.SetFilteringEnabled(false)
	mlist.SetShowPagination(false)
	mlist.SetShowStatusBar(false)
	return &sidebarController{
		list:     mlist,
		delegate: delegate,
	}
}

// SetRows replaces the visible rows and keeps the cursor on the same index,
// clamped when the new tree is shorter.
func (c *sidebarController) SetRows(rows []sidebarRow) {
	c.rows = rows
	items := make([]list.Item, len(rows))
	for i := range rows {
		items[i] = &rows[i]
	}
	index := c.list.Index()
	c.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		c.list.Select(index)
	}
}

func (c *sidebarController) Rows() []sidebarRow {
	return c.rows
}

func (c *sidebarController) Index() int {
	return c.list.Index()
}

func (c *sidebarController) Select(index int) {
	if index < 0 || index >= len(c.rows) {
		return
	}
	c.list.Select(index)
}

func (c *sidebarController) CursorUp() {
	c.list.CursorUp()
}

func (c *sidebarController) CursorDown() {
	c.list.CursorDown()
}

func (c *sidebarController) SelectedRow() (sidebarRow, bool) {
	row, ok := c.list.SelectedItem().(*sidebarRow)
	if !ok {
		return sidebarRow{}, false
	}
	return *row, true
}

func (c *sidebarController) SetSize(width, height int) {
	c.list.SetSize(max(1, width), max(1, height))
}

func (c *sidebarController) SetFocused(focused bool) {
	c.delegate.focused = focused
}

func (c *sidebarController) View() string {
	return paneBorderStyle.Render(c.list.View())
}

func renderSidebarRow(row sidebarRow, sess *session.Session, width int) string {
	indent := strings.Repeat("  ", row.depth)
	var line string
	switch row.kind {
	case rowCategory:
		line = categoryStyle.Render(fmt.Sprintf("%s%s %s %s (%d)",
			indent, marker(row.collapsed), row.category.Icon(), row.title, row.count))
	case rowFolder:
		line = fmt.Sprintf("%s%s %s/", indent, marker(row.collapsed), row.title)
	case rowConfig:
		line = mutedStyle.Render(fmt.Sprintf("%s⚙ %s", indent, row.title))
	default:
		name := row.title
		if f := sess.File(row.path); f != nil {
			if f.Modified {
				name = modifiedStyle.Render(name + " ●")
			} else {
				name = name + " ○"
			}
		}
		line = indent + "  " + name
	}
	return truncateToWidth(line, width)
}

func marker(collapsed bool) string {
	if collapsed {
		return "▸"
	}
	return "▾"
}

func truncateToWidth(s string, width int) string {
	return xansi.Truncate(s, width, "…")
}

func padToWidth(s string, width int) string {
	gap := width - xansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
