package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studio/internal/classify"
	"studio/internal/config"
	"studio/internal/editor"
	"studio/internal/logging"
	"studio/internal/session"
	"studio/internal/store"
	"studio/internal/types"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusEditor
	focusPanel
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

type statusLine struct {
	id    int
	text  string
	level statusLevel
}

type Options struct {
	Backend  Backend
	Repo     store.Repository
	Collapse *types.CollapseState
	Layout   *types.Layout
	UI       config.UIConfig
	Log      logging.Logger
}

// Model is the root of the UI: the project tree sidebar, the tabbed editor,
// and the inspector panel, glued to the session manager and the editor
// bridge.
type Model struct {
	backend Backend
	repo    store.Repository
	ui      config.UIConfig
	log     logging.Logger

	width  int
	height int
	frame  layoutFrame

	collapse   *types.CollapseState
	layout     *types.Layout
	tree       []types.FileNode
	classified *classify.Result
	sidebar    *sidebarController

	bridge      *editor.Bridge
	manager     *session.Manager
	surface     *textAreaSurface
	highlighter *editor.Highlighter
	preview     bool

	focus     focusArea
	confirm   *confirmController
	prompt    *promptController
	inspector *inspectorController

	status   statusLine
	statusID int

	quitting bool
}

func New(opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	collapse := opts.Collapse
	if collapse == nil {
		collapse = types.NewCollapseState()
	}
	layout := opts.Layout
	if layout == nil {
		layout = types.DefaultLayout()
	}
	bridge := editor.NewBridge(log)
	manager := session.NewManager(bridge, log)
	m := &Model{
		backend:   opts.Backend,
		repo:      opts.Repo,
		ui:        opts.UI,
		log:       log,
		collapse:  collapse,
		layout:    layout,
		bridge:    bridge,
		manager:   manager,
		sidebar:   newSidebarController(manager.Session()),
		confirm:   &confirmController{},
		prompt:    newPromptController(),
		inspector: newInspectorController(),
	}
	m.reclassify()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		loadTree(m.backend),
		initEditor(m.ui.EditorTheme()),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.applyResize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.updateKey(msg)
	case treeLoadedMsg:
		return m, m.applyTreeLoaded(msg)
	case fileOpenedMsg:
		return m, m.applyFileOpened(msg)
	case fileSavedMsg:
		return m, m.applyFileSaved(msg)
	case entryCreatedMsg:
		return m, m.applyEntryCreated(msg)
	case entryDeletedMsg:
		return m, m.applyEntryDeleted(msg)
	case editorReadyMsg:
		return m, m.applyEditorReady(msg)
	case switchRetryMsg:
		return m, m.applySwitchRetry()
	case routesLoadedMsg:
		m.inspector.SetRoutes(msg.routes, msg.err)
		return m, nil
	case connectionsLoadedMsg:
		m.inspector.SetConnections(msg.connections, msg.err)
		return m, nil
	case tablesLoadedMsg:
		m.inspector.SetTables(msg.connection, msg.tables, msg.err)
		return m, nil
	case tableDataMsg:
		m.inspector.SetTablePage(msg.page, msg.err)
		return m, nil
	case layoutSavedMsg:
		if msg.err != nil {
			return m, m.setStatus(statusError, "layout not saved: "+msg.err.Error())
		}
		return m, nil
	case collapseSavedMsg:
		if msg.err != nil {
			return m, m.setStatus(statusError, "tree state not saved: "+msg.err.Error())
		}
		return m, nil
	case clipboardCopiedMsg:
		if msg.err != nil {
			return m, m.setStatus(statusError, "copy failed: "+msg.err.Error())
		}
		return m, m.setStatus(statusInfo, "copied "+msg.path)
	case statusExpireMsg:
		if msg.id == m.status.id {
			m.status = statusLine{}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if handled && choice != confirmChoiceNone {
			return m, m.resolveConfirm(choice)
		}
		return m, nil
	}
	if m.prompt.IsOpen() {
		handled, submitted, value, cmd := m.prompt.HandleKey(msg)
		if submitted {
			return m, m.submitPrompt(value)
		}
		if handled {
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, m.requestQuit()
	case "tab":
		m.cycleFocus()
		return m, nil
	case "ctrl+s":
		return m, m.requestSave()
	case "ctrl+w":
		return m, m.requestClose(m.manager.Session().CurrentPath())
	case "ctrl+right":
		return m, m.switchTab(1)
	case "ctrl+left":
		return m, m.switchTab(-1)
	case "ctrl+r":
		return m, loadTree(m.backend)
	}

	switch m.focus {
	case focusEditor:
		return m, m.updateEditorKey(msg)
	case focusPanel:
		handled, cmd := m.inspector.HandleKey(msg, m.backend)
		if handled {
			return m, cmd
		}
	}
	return m, m.updateSidebarKey(msg)
}

func (m *Model) updateSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.requestQuit()
	case "up", "k":
		m.sidebar.CursorUp()
	case "down", "j":
		m.sidebar.CursorDown()
	case "enter", " ":
		return m.activateRow()
	case "n":
		kind, scoped := m.cursorScope()
		m.prompt.Open(promptNewFile, kind, scoped)
	case "N":
		kind, scoped := m.cursorScope()
		m.prompt.Open(promptNewFolder, kind, scoped)
	case "x":
		if row, ok := m.cursorRow(); ok && (row.kind == rowFile || row.kind == rowConfig) {
			m.confirm.Open(confirmDeleteEntry, row.path,
				"Delete "+row.title, "This removes the file from the project.", "Delete", "Keep")
		}
	case "y":
		if row, ok := m.cursorRow(); ok && row.path != "" {
			return copyToClipboard(row.path)
		}
	case "[":
		return m.resizeSidebar(-2)
	case "]":
		return m.resizeSidebar(2)
	case "{":
		return m.resizePanel(-2)
	case "}":
		return m.resizePanel(2)
	case "i":
		return m.togglePanel()
	case "v":
		m.preview = !m.preview
	}
	return nil
}

func (m *Model) updateEditorKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.focus = focusSidebar
		if m.surface != nil {
			m.surface.area.Blur()
		}
		return nil
	}
	if m.surface == nil {
		return nil
	}
	area, cmd := m.surface.area.Update(msg)
	*m.surface.area = area
	m.bridge.EmitContentChanged()
	if _, changed := m.manager.ContentChanged(); changed {
		// Tab markers re-render from session state on the next frame.
		m.log.Debug("modified flag flipped",
			logging.F("path", m.manager.Session().CurrentPath()))
	}
	m.bridge.EmitCursorChanged(m.surface.CursorPosition())
	return cmd
}

// activateRow opens the file under the cursor, or toggles the collapse flag
// of a category or folder row and persists the new tree state.
func (m *Model) activateRow() tea.Cmd {
	row, ok := m.cursorRow()
	if !ok {
		return nil
	}
	switch row.kind {
	case rowFile, rowConfig:
		return m.beginOpen(row.path)
	case rowCategory:
		m.collapse.ToggleCategory(row.toggleKey)
	case rowFolder:
		m.collapse.ToggleFolder(row.toggleKey)
	}
	m.reclassify()
	return saveCollapse(m.repo, m.collapse)
}

func (m *Model) beginOpen(path string) tea.Cmd {
	fetch, outcome := m.manager.BeginOpen(path)
	var cmds []tea.Cmd
	if fetch {
		cmds = append(cmds, openFile(m.backend, path))
	}
	if outcome == session.SwitchPending && !fetch {
		cmds = append(cmds, scheduleSwitchRetry())
	}
	return tea.Batch(cmds...)
}

func (m *Model) switchTab(offset int) tea.Cmd {
	next := tabNeighbor(m.manager.Session(), offset)
	if next == "" || next == m.manager.Session().CurrentPath() {
		return nil
	}
	outcome, err := m.manager.Switch(next)
	if err != nil {
		return m.setStatus(statusError, err.Error())
	}
	if outcome == session.SwitchPending {
		return scheduleSwitchRetry()
	}
	return nil
}

func (m *Model) requestSave() tea.Cmd {
	path, content, ok := m.manager.BeginSave()
	if !ok {
		return m.setStatus(statusInfo, "nothing to save")
	}
	return saveFile(m.backend, path, content)
}

func (m *Model) requestClose(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	needsConfirm, err := m.manager.Close(path, false)
	if err != nil {
		return m.setStatus(statusError, err.Error())
	}
	if needsConfirm {
		m.confirm.Open(confirmCloseTab, path,
			"Close "+path, "Unsaved changes will be lost.", "Close", "Keep open")
		return nil
	}
	return m.afterClose()
}

func (m *Model) requestQuit() tea.Cmd {
	if m.manager.Session().AnyModified() {
		m.confirm.Open(confirmQuit, "",
			"Quit", "Open files have unsaved changes.", "Quit", "Stay")
		return nil
	}
	m.quitting = true
	return tea.Quit
}

func (m *Model) resolveConfirm(choice confirmChoice) tea.Cmd {
	action, payload := m.confirm.action, m.confirm.payload
	m.confirm.Close()
	if choice != confirmChoiceConfirm {
		return nil
	}
	switch action {
	case confirmCloseTab:
		if _, err := m.manager.Close(payload, true); err != nil {
			return m.setStatus(statusError, err.Error())
		}
		return m.afterClose()
	case confirmDeleteEntry:
		return deleteEntry(m.backend, payload)
	case confirmQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// afterClose schedules a readiness retry when closing handed the surface to a
// neighbor tab before the editor was ready.
func (m *Model) afterClose() tea.Cmd {
	if m.manager.Session().PendingSwitch() != "" {
		return scheduleSwitchRetry()
	}
	return nil
}

func (m *Model) submitPrompt(value string) tea.Cmd {
	entryType := types.NodeTypeFile
	if m.prompt.mode == promptNewFolder {
		entryType = types.NodeTypeDirectory
	}
	return createEntry(m.backend, value, entryType)
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusSidebar:
		m.focus = focusEditor
		if m.surface != nil {
			m.surface.area.Focus()
		}
	case focusEditor:
		if m.surface != nil {
			m.surface.area.Blur()
		}
		if m.frame.panelVisible {
			m.focus = focusPanel
		} else {
			m.focus = focusSidebar
		}
	default:
		m.focus = focusSidebar
	}
}

func (m *Model) applyResize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	frame, changed := resolveLayout(width, m.layout, m.ui)
	m.frame = frame
	m.sidebar.SetSize(frame.sidebarWidth-1, height-3)
	if m.surface != nil {
		m.surface.Resize(max(1, frame.editorWidth-2), max(1, height-4))
	}
	if changed {
		return saveLayout(m.repo, m.layout)
	}
	return nil
}

func (m *Model) resizeSidebar(delta int) tea.Cmd {
	m.layout.SidebarWidth += delta
	frame, _ := resolveLayout(m.width, m.layout, m.ui)
	m.frame = frame
	m.sidebar.SetSize(frame.sidebarWidth-1, m.height-3)
	if m.surface != nil {
		m.surface.Resize(max(1, frame.editorWidth-2), max(1, m.height-4))
	}
	return saveLayout(m.repo, m.layout)
}

func (m *Model) resizePanel(delta int) tea.Cmd {
	if !m.layout.PanelVisible {
		return nil
	}
	m.layout.PanelWidth += delta
	frame, _ := resolveLayout(m.width, m.layout, m.ui)
	m.frame = frame
	return saveLayout(m.repo, m.layout)
}

func (m *Model) togglePanel() tea.Cmd {
	m.layout.PanelVisible = !m.layout.PanelVisible
	frame, _ := resolveLayout(m.width, m.layout, m.ui)
	m.frame = frame
	if !m.frame.panelVisible && m.focus == focusPanel {
		m.focus = focusSidebar
	}
	cmds := []tea.Cmd{saveLayout(m.repo, m.layout)}
	if m.frame.panelVisible {
		cmds = append(cmds, m.inspector.RefreshCmd(m.backend))
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyTreeLoaded(msg treeLoadedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setStatus(statusError, "tree load failed: "+msg.err.Error())
	}
	m.tree = msg.files
	m.reclassify()
	return nil
}

func (m *Model) applyFileOpened(msg fileOpenedMsg) tea.Cmd {
	outcome, err := m.manager.CompleteOpen(msg.path, msg.content, msg.language, msg.err)
	if err != nil {
		return m.setStatus(statusError, "open failed: "+err.Error())
	}
	if outcome == session.SwitchPending {
		return scheduleSwitchRetry()
	}
	return nil
}

func (m *Model) applyFileSaved(msg fileSavedMsg) tea.Cmd {
	if err := m.manager.CompleteSave(msg.path, msg.content, msg.err); err != nil {
		return m.setStatus(statusError, "save failed: "+err.Error())
	}
	if msg.err == nil {
		return m.setStatus(statusInfo, "saved "+msg.path)
	}
	return nil
}

func (m *Model) applyEntryCreated(msg entryCreatedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setStatus(statusError, "create failed: "+msg.err.Error())
	}
	cmds := []tea.Cmd{loadTree(m.backend), m.setStatus(statusInfo, "created "+msg.path)}
	if strings.Contains(lastSegment(msg.path), ".") {
		cmds = append(cmds, m.beginOpen(msg.path))
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyEntryDeleted(msg entryDeletedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setStatus(statusError, "delete failed: "+msg.err.Error())
	}
	cmds := []tea.Cmd{loadTree(m.backend), m.setStatus(statusInfo, "deleted "+msg.path)}
	if m.manager.Session().IsOpen(msg.path) {
		if _, err := m.manager.Close(msg.path, true); err == nil {
			if cmd := m.afterClose(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyEditorReady(msg editorReadyMsg) tea.Cmd {
	m.surface = newTextAreaSurface()
	m.surface.Resize(max(1, m.frame.editorWidth-2), max(1, m.height-4))
	degraded := msg.err != nil
	if degraded {
		m.log.Warn("highlighter unavailable", logging.F("error", msg.err.Error()))
	} else {
		m.highlighter = msg.highlighter
	}
	if err := m.bridge.Attach(m.surface, degraded); err != nil {
		return m.setStatus(statusError, err.Error())
	}
	m.manager.BridgeReady()
	if degraded {
		return m.setStatus(statusWarn, "editor running without highlighting")
	}
	return nil
}

func (m *Model) applySwitchRetry() tea.Cmd {
	switch m.manager.RetryPendingSwitch() {
	case session.RetryWaiting:
		return scheduleSwitchRetry()
	case session.RetryExhausted:
		return m.setStatus(statusWarn, "editor still initializing; switch deferred")
	}
	return nil
}

func (m *Model) reclassify() {
	m.classified = classify.Classify(m.tree, m.collapse)
	m.sidebar.SetRows(flattenTree(m.classified, m.collapse))
}

func (m *Model) cursorRow() (sidebarRow, bool) {
	return m.sidebar.SelectedRow()
}

// cursorScope resolves which category a new entry belongs to: the category
// of the row under the cursor, unscoped on config rows or an empty tree.
func (m *Model) cursorScope() (classify.Kind, bool) {
	row, ok := m.cursorRow()
	if !ok || row.kind == rowConfig {
		return classify.KindTemplates, false
	}
	return row.category, true
}

// statusTTL is how long a transient status line stays up.
var statusTTL = 5 * time.Second

func (m *Model) setStatus(level statusLevel, text string) tea.Cmd {
	m.statusID++
	m.status = statusLine{id: m.statusID, text: text, level: level}
	return expireStatus(m.statusID, statusTTL)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading…"
	}
	contentHeight := max(1, m.height-3)

	m.sidebar.SetFocused(m.focus == focusSidebar)
	sidebar := m.sidebar.View()
	editorPane := m.renderEditor(m.frame.editorWidth, contentHeight)

	columns := []string{sidebar, editorPane}
	if m.frame.panelVisible {
		columns = append(columns, m.inspector.View(m.frame.panelWidth, contentHeight))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	view := strings.Join([]string{
		renderTabs(m.manager.Session(), m.width),
		body,
		m.renderStatus(),
	}, "\n")

	if m.confirm.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.confirm.View(m.width-4))
	}
	if m.prompt.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.prompt.View(m.width-4))
	}
	return view
}

func (m *Model) renderEditor(width, height int) string {
	if m.surface == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			mutedStyle.Render("editor initializing…"))
	}
	current := m.manager.Session().Current()
	if current == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			mutedStyle.Render("open a file from the tree"))
	}
	if m.preview {
		rendered := renderPreview(m.bridge.Value(), current.Language, width-2, m.highlighter)
		return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(rendered)
	}
	return m.surface.area.View()
}

func (m *Model) renderStatus() string {
	if m.status.text != "" {
		switch m.status.level {
		case statusError:
			return errorStyle.Render(" " + m.status.text)
		case statusWarn:
			return warnStyle.Render(" " + m.status.text)
		default:
			return statusStyle.Render(" " + m.status.text)
		}
	}
	summary := m.manager.Describe()
	if m.bridge.Degraded() {
		summary += " · plain editor"
	}
	if pos := m.cursorSummary(); pos != "" {
		summary += " · " + pos
	}
	return statusStyle.Render(" " + summary)
}

func (m *Model) cursorSummary() string {
	if m.surface == nil || m.manager.Session().Current() == nil {
		return ""
	}
	pos := m.surface.CursorPosition()
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
