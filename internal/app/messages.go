package app

import (
	"studio/internal/editor"
	"studio/internal/types"
)

type treeLoadedMsg struct {
	files []types.FileNode
	err   error
}

type fileOpenedMsg struct {
	path     string
	content  string
	language string
	err      error
}

type fileSavedMsg struct {
	path    string
	content string
	err     error
}

type entryCreatedMsg struct {
	path string
	err  error
}

type entryDeletedMsg struct {
	path string
	err  error
}

type routesLoadedMsg struct {
	routes []types.Route
	err    error
}

type connectionsLoadedMsg struct {
	connections []string
	err         error
}

type tablesLoadedMsg struct {
	connection string
	tables     []string
	err        error
}

type tableDataMsg struct {
	page *types.TablePage
	err  error
}

// editorReadyMsg completes the asynchronous editor bring-up. A nil
// highlighter means the rich surface could not be built and the plain
// fallback attaches instead.
type editorReadyMsg struct {
	highlighter *editor.Highlighter
	err         error
}

// switchRetryMsg drives one readiness attempt for a deferred tab switch.
type switchRetryMsg struct{}

type statusExpireMsg struct {
	id int
}

type layoutSavedMsg struct {
	err error
}

type collapseSavedMsg struct {
	err error
}

type clipboardCopiedMsg struct {
	path string
	err  error
}
