package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studio/internal/types"
)

type inspectorMode int

const (
	inspectorRoutes inspectorMode = iota
	inspectorDatabase
)

const tablePageSize = 50

// inspectorController owns the side panel: the route listing and the
// database browser with its connection, table, and page position. Loading is
// asynchronous; the controller only holds the last delivered state.
type inspectorController struct {
	mode    inspectorMode
	loading bool
	err     error

	routes      []types.Route
	routeCursor int

	connections []string
	connCursor  int
	connection  string
	tables      []string
	tableCursor int
	tablePage   *types.TablePage
}

func newInspectorController() *inspectorController {
	return &inspectorController{}
}

func (c *inspectorController) SetMode(mode inspectorMode) {
	c.mode = mode
	c.err = nil
}

// RefreshCmd returns the load command for the current mode.
func (c *inspectorController) RefreshCmd(backend Backend) tea.Cmd {
	c.loading = true
	c.err = nil
	if c.mode == inspectorRoutes {
		return loadRoutes(backend)
	}
	return loadConnections(backend)
}

func (c *inspectorController) SetRoutes(routes []types.Route, err error) {
	c.loading = false
	c.err = err
	if err != nil {
		return
	}
	c.routes = routes
	if c.routeCursor >= len(routes) {
		c.routeCursor = max(0, len(routes)-1)
	}
}

func (c *inspectorController) SetConnections(connections []string, err error) {
	c.loading = false
	c.err = err
	if err != nil {
		return
	}
	c.connections = connections
	if c.connCursor >= len(connections) {
		c.connCursor = max(0, len(connections)-1)
	}
	c.connection = ""
	c.tables = nil
	c.tablePage = nil
}

func (c *inspectorController) SetTables(connection string, tables []string, err error) {
	c.loading = false
	c.err = err
	if err != nil {
		return
	}
	c.connection = connection
	c.tables = tables
	if c.tableCursor >= len(tables) {
		c.tableCursor = max(0, len(tables)-1)
	}
	c.tablePage = nil
}

func (c *inspectorController) SetTablePage(page *types.TablePage, err error) {
	c.loading = false
	c.err = err
	if err != nil {
		return
	}
	c.tablePage = page
}

// HandleKey navigates the panel. A returned command is the fetch the key
// triggered.
func (c *inspectorController) HandleKey(msg tea.KeyMsg, backend Backend) (bool, tea.Cmd) {
	switch msg.String() {
	case "r":
		c.SetMode(inspectorRoutes)
		return true, c.RefreshCmd(backend)
	case "d":
		c.SetMode(inspectorDatabase)
		return true, c.RefreshCmd(backend)
	}
	if c.mode == inspectorRoutes {
		return c.handleRoutesKey(msg)
	}
	return c.handleDatabaseKey(msg, backend)
}

func (c *inspectorController) handleRoutesKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if c.routeCursor > 0 {
			c.routeCursor--
		}
		return true, nil
	case "down", "j":
		if c.routeCursor < len(c.routes)-1 {
			c.routeCursor++
		}
		return true, nil
	}
	return false, nil
}

func (c *inspectorController) handleDatabaseKey(msg tea.KeyMsg, backend Backend) (bool, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if c.connection == "" {
			if c.connCursor > 0 {
				c.connCursor--
			}
		} else if c.tablePage == nil && c.tableCursor > 0 {
			c.tableCursor--
		}
		return true, nil
	case "down", "j":
		if c.connection == "" {
			if c.connCursor < len(c.connections)-1 {
				c.connCursor++
			}
		} else if c.tablePage == nil && c.tableCursor < len(c.tables)-1 {
			c.tableCursor++
		}
		return true, nil
	case "enter":
		if c.connection == "" {
			if len(c.connections) == 0 {
				return true, nil
			}
			conn := c.connections[c.connCursor]
			c.loading = true
			return true, loadTables(backend, conn)
		}
		if c.tablePage == nil {
			if len(c.tables) == 0 {
				return true, nil
			}
			c.loading = true
			return true, loadTableData(backend, c.connection, c.tables[c.tableCursor], 1, tablePageSize)
		}
		return true, nil
	case "backspace", "esc":
		if c.tablePage != nil {
			c.tablePage = nil
			return true, nil
		}
		if c.connection != "" {
			c.connection = ""
			c.tables = nil
			return true, nil
		}
		return false, nil
	case "right", "l", "n":
		return c.turnPage(backend, 1)
	case "left", "h", "p":
		return c.turnPage(backend, -1)
	}
	return false, nil
}

// turnPage moves within the table data, clamped to the page count so the
// panel never requests past either end.
func (c *inspectorController) turnPage(backend Backend, delta int) (bool, tea.Cmd) {
	if c.tablePage == nil {
		return false, nil
	}
	next := c.tablePage.Page + delta
	if next < 1 || next > c.tablePage.PageCount() {
		return true, nil
	}
	c.loading = true
	return true, loadTableData(backend, c.connection, c.tablePage.Table, next, c.tablePage.PerPage)
}

func (c *inspectorController) View(width, height int) string {
	inner := max(1, width-1)
	var lines []string
	switch {
	case c.mode == inspectorRoutes:
		lines = c.routesLines(inner)
	default:
		lines = c.databaseLines(inner)
	}
	if c.loading {
		lines = append(lines, mutedStyle.Render(" loading…"))
	}
	if c.err != nil {
		lines = append(lines, errorStyle.Render(truncateToWidth(" "+c.err.Error(), inner)))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", inner))
	}
	return strings.Join(lines, "\n")
}

func (c *inspectorController) routesLines(width int) []string {
	lines := []string{panelTitleStyle.Render(" Routes")}
	if len(c.routes) == 0 && !c.loading {
		lines = append(lines, mutedStyle.Render(" no routes registered"))
	}
	for i, route := range c.routes {
		line := fmt.Sprintf(" %-6s %s", strings.Join(route.Methods, ","), route.Path)
		line = truncateToWidth(line, width)
		if i == c.routeCursor {
			line = selectedStyle.Render(padToWidth(line, width))
		}
		lines = append(lines, line)
		if i == c.routeCursor {
			detail := " " + route.File
			if len(route.Decorators) > 0 {
				detail += " @" + strings.Join(route.Decorators, " @")
			}
			lines = append(lines, mutedStyle.Render(truncateToWidth(detail, width)))
		}
	}
	return lines
}

func (c *inspectorController) databaseLines(width int) []string {
	if c.tablePage != nil {
		return c.tablePageLines(width)
	}
	if c.connection != "" {
		lines := []string{panelTitleStyle.Render(" Tables · " + c.connection)}
		if len(c.tables) == 0 && !c.loading {
			lines = append(lines, mutedStyle.Render(" no tables"))
		}
		for i, table := range c.tables {
			line := truncateToWidth(" "+table, width)
			if i == c.tableCursor {
				line = selectedStyle.Render(padToWidth(line, width))
			}
			lines = append(lines, line)
		}
		return lines
	}
	lines := []string{panelTitleStyle.Render(" Connections")}
	if len(c.connections) == 0 && !c.loading {
		lines = append(lines, mutedStyle.Render(" no database connections"))
	}
	for i, conn := range c.connections {
		line := truncateToWidth(" "+conn, width)
		if i == c.connCursor {
			line = selectedStyle.Render(padToWidth(line, width))
		}
		lines = append(lines, line)
	}
	return lines
}

func (c *inspectorController) tablePageLines(width int) []string {
	page := c.tablePage
	header := fmt.Sprintf(" %s · page %d/%d (%d rows)",
		page.Table, page.Page, page.PageCount(), page.Total)
	lines := []string{panelTitleStyle.Render(truncateToWidth(header, width))}
	lines = append(lines, mutedStyle.Render(truncateToWidth(" "+strings.Join(page.Columns, " │ "), width)))
	for _, row := range page.Data {
		cells := make([]string, 0, len(page.Columns))
		for _, col := range page.Columns {
			cells = append(cells, fmt.Sprintf("%v", row[col]))
		}
		lines = append(lines, truncateToWidth(" "+strings.Join(cells, " │ "), width))
	}
	return lines
}
