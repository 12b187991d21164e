package main

import (
	"context"
	"flag"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"studio/internal/app"
	"studio/internal/config"
	"studio/internal/logging"
	"studio/internal/store"
)

type UICommand struct {
	stderr    io.Writer
	newClient clientFactory
}

func NewUICommand(stderr io.Writer, newClient clientFactory) *UICommand {
	return &UICommand{
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	coreCfg, err := config.LoadCoreConfig()
	if err != nil {
		return err
	}
	uiCfg, err := config.LoadUIConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := openUILogger(coreCfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	backend, err := c.newClient()
	if err != nil {
		return err
	}

	repo, err := openStateRepository(coreCfg)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	collapse, err := repo.Collapse().Load(ctx)
	if err != nil {
		return err
	}
	layout, err := repo.Layout().Load(ctx)
	if err != nil {
		return err
	}

	model := app.New(app.Options{
		Backend:  backend,
		Repo:     repo,
		Collapse: collapse,
		Layout:   layout,
		UI:       uiCfg,
		Log:      log,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func openUILogger(coreCfg config.CoreConfig) (logging.Logger, func() error, error) {
	path, err := config.LogPath()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFileLogger(path, logging.ParseLevel(coreCfg.LogLevel()))
}

func openStateRepository(coreCfg config.CoreConfig) (store.Repository, error) {
	collapsePath, err := config.CollapseStatePath()
	if err != nil {
		return nil, err
	}
	layoutPath, err := config.LayoutPath()
	if err != nil {
		return nil, err
	}
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	return store.OpenRepository(store.RepositoryPaths{
		CollapsePath: collapsePath,
		LayoutPath:   layoutPath,
		DBPath:       dbPath,
	}, coreCfg.StorageBackend())
}
