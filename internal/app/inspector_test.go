package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"studio/internal/types"
)

func TestInspectorDatabaseDrillDown(t *testing.T) {
	backend := &fakeBackend{
		connections: []string{"default", "analytics"},
		tables:      map[string][]string{"default": {"users", "posts"}},
		pages: map[int]*types.TablePage{
			1: {Table: "users", Columns: []string{"id"}, Total: 120, Page: 1, PerPage: 50},
			2: {Table: "users", Columns: []string{"id"}, Total: 120, Page: 2, PerPage: 50},
			3: {Table: "users", Columns: []string{"id"}, Total: 120, Page: 3, PerPage: 50},
		},
	}
	c := newInspectorController()
	c.SetMode(inspectorDatabase)
	c.SetConnections(backend.connections, nil)

	handled, cmd := c.HandleKey(keyMsg("enter"), backend)
	if !handled || cmd == nil {
		t.Fatal("enter on a connection should load its tables")
	}
	if msg, ok := cmd().(tablesLoadedMsg); !ok {
		t.Fatal("expected tables message")
	} else {
		c.SetTables(msg.connection, msg.tables, msg.err)
	}
	if c.connection != "default" || len(c.tables) != 2 {
		t.Fatalf("unexpected table state: %q %v", c.connection, c.tables)
	}

	_, cmd = c.HandleKey(keyMsg("enter"), backend)
	if msg, ok := cmd().(tableDataMsg); ok {
		c.SetTablePage(msg.page, msg.err)
	}
	if c.tablePage == nil || c.tablePage.Page != 1 {
		t.Fatal("enter on a table should load page 1")
	}
	if c.tablePage.PageCount() != 3 {
		t.Fatalf("page count = %d", c.tablePage.PageCount())
	}
}

func TestInspectorPagingBounds(t *testing.T) {
	backend := &fakeBackend{
		pages: map[int]*types.TablePage{
			1: {Table: "users", Total: 120, Page: 1, PerPage: 50},
			2: {Table: "users", Total: 120, Page: 2, PerPage: 50},
			3: {Table: "users", Total: 120, Page: 3, PerPage: 50},
		},
	}
	c := newInspectorController()
	c.SetMode(inspectorDatabase)
	c.connection = "default"
	c.SetTablePage(backend.pages[1], nil)

	// Backward from page 1 is a no-op.
	handled, cmd := c.turnPage(backend, -1)
	if !handled || cmd != nil {
		t.Fatal("page 0 must never be requested")
	}

	for want := 2; want <= 3; want++ {
		_, cmd = c.turnPage(backend, 1)
		if cmd == nil {
			t.Fatalf("expected fetch for page %d", want)
		}
		if msg, ok := cmd().(tableDataMsg); ok {
			c.SetTablePage(msg.page, msg.err)
		}
		if c.tablePage.Page != want {
			t.Fatalf("page = %d, want %d", c.tablePage.Page, want)
		}
	}

	// Forward past the last page is a no-op.
	_, cmd = c.turnPage(backend, 1)
	if cmd != nil {
		t.Fatal("paging past the end must not fetch")
	}
}

func TestInspectorBackspaceUnwindsDrillDown(t *testing.T) {
	c := newInspectorController()
	c.SetMode(inspectorDatabase)
	c.connection = "default"
	c.tables = []string{"users"}
	c.tablePage = &types.TablePage{Table: "users", Page: 1, PerPage: 50, Total: 1}

	if handled, _ := c.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, &fakeBackend{}); !handled {
		t.Fatal("backspace should unwind to the table list")
	}
	if c.tablePage != nil {
		t.Fatal("table page should clear first")
	}
	if handled, _ := c.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, &fakeBackend{}); !handled {
		t.Fatal("backspace should unwind to the connection list")
	}
	if c.connection != "" {
		t.Fatal("connection should clear second")
	}
}
