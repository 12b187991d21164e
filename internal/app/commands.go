package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"studio/internal/editor"
	"studio/internal/session"
	"studio/internal/store"
	"studio/internal/types"
)

const requestTimeout = 10 * time.Second

// Backend is the slice of the dev-server client the UI drives. Commands take
// it as an interface so tests can substitute a fake.
type Backend interface {
	ListFiles(ctx context.Context) ([]types.FileNode, error)
	GetFile(ctx context.Context, path string) (*FileResult, error)
	SaveFile(ctx context.Context, path, content string) error
	CreateEntry(ctx context.Context, path, entryType string) error
	DeleteEntry(ctx context.Context, path string) error
	ListRoutes(ctx context.Context) ([]types.Route, error)
	ListConnections(ctx context.Context) ([]string, error)
	ListTables(ctx context.Context, connection string) ([]string, error)
	TableData(ctx context.Context, connection, table string, page, perPage int) (*types.TablePage, error)
}

// FileResult mirrors the file endpoint payload without binding the UI to the
// client package's wire types.
type FileResult struct {
	Path     string
	Content  string
	Language string
}

func loadTree(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		files, err := backend.ListFiles(ctx)
		return treeLoadedMsg{files: files, err: err}
	}
}

func openFile(backend Backend, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		file, err := backend.GetFile(ctx, path)
		if err != nil {
			return fileOpenedMsg{path: path, err: err}
		}
		return fileOpenedMsg{path: path, content: file.Content, language: file.Language}
	}
}

func saveFile(backend Backend, path, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.SaveFile(ctx, path, content)
		return fileSavedMsg{path: path, content: content, err: err}
	}
}

func createEntry(backend Backend, path, entryType string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.CreateEntry(ctx, path, entryType)
		return entryCreatedMsg{path: path, err: err}
	}
}

func deleteEntry(backend Backend, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.DeleteEntry(ctx, path)
		return entryDeletedMsg{path: path, err: err}
	}
}

func loadRoutes(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		routes, err := backend.ListRoutes(ctx)
		return routesLoadedMsg{routes: routes, err: err}
	}
}

func loadConnections(backend Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		connections, err := backend.ListConnections(ctx)
		return connectionsLoadedMsg{connections: connections, err: err}
	}
}

func loadTables(backend Backend, connection string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tables, err := backend.ListTables(ctx, connection)
		return tablesLoadedMsg{connection: connection, tables: tables, err: err}
	}
}

func loadTableData(backend Backend, connection, table string, page, perPage int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := backend.TableData(ctx, connection, table, page, perPage)
		return tableDataMsg{page: data, err: err}
	}
}

// initEditor builds the syntax highlighter off the event loop. Widget
// bring-up is allowed to fail; the bridge then attaches the plain surface.
func initEditor(theme string) tea.Cmd {
	return func() tea.Msg {
		h, err := editor.NewHighlighter(theme)
		if err != nil {
			return editorReadyMsg{err: err}
		}
		return editorReadyMsg{highlighter: h}
	}
}

func scheduleSwitchRetry() tea.Cmd {
	return tea.Tick(session.SwitchRetryInterval, func(time.Time) tea.Msg {
		return switchRetryMsg{}
	})
}

func expireStatus(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return statusExpireMsg{id: id}
	})
}

func saveCollapse(repo store.Repository, state *types.CollapseState) tea.Cmd {
	snapshot := state.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return collapseSavedMsg{err: repo.Collapse().Save(ctx, snapshot)}
	}
}

func saveLayout(repo store.Repository, layout *types.Layout) tea.Cmd {
	snapshot := *layout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return layoutSavedMsg{err: repo.Layout().Save(ctx, &snapshot)}
	}
}

func copyToClipboard(path string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{path: path, err: clipboard.WriteAll(path)}
	}
}
