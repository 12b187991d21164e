package main

import (
	"context"

	"studio/internal/app"
	studioclient "studio/internal/client"
	"studio/internal/types"
)

type clientFactory func() (app.Backend, error)

// studioClientAdapter narrows the HTTP client to the surface the UI and the
// subcommands consume.
type studioClientAdapter struct {
	client *studioclient.Client
}

func newStudioClient() (app.Backend, error) {
	client, err := studioclient.New()
	if err != nil {
		return nil, err
	}
	return &studioClientAdapter{client: client}, nil
}

func (a *studioClientAdapter) ListFiles(ctx context.Context) ([]types.FileNode, error) {
	return a.client.ListFiles(ctx)
}

func (a *studioClientAdapter) GetFile(ctx context.Context, path string) (*app.FileResult, error) {
	file, err := a.client.GetFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return &app.FileResult{
		Path:     file.Path,
		Content:  file.Content,
		Language: file.Language,
	}, nil
}

func (a *studioClientAdapter) SaveFile(ctx context.Context, path, content string) error {
	return a.client.SaveFile(ctx, path, content)
}

func (a *studioClientAdapter) CreateEntry(ctx context.Context, path, entryType string) error {
	return a.client.CreateEntry(ctx, path, entryType)
}

func (a *studioClientAdapter) DeleteEntry(ctx context.Context, path string) error {
	return a.client.DeleteEntry(ctx, path)
}

func (a *studioClientAdapter) ListRoutes(ctx context.Context) ([]types.Route, error) {
	return a.client.ListRoutes(ctx)
}

func (a *studioClientAdapter) ListConnections(ctx context.Context) ([]string, error) {
	return a.client.ListConnections(ctx)
}

func (a *studioClientAdapter) ListTables(ctx context.Context, connection string) ([]string, error) {
	return a.client.ListTables(ctx, connection)
}

func (a *studioClientAdapter) TableData(ctx context.Context, connection, table string, page, perPage int) (*types.TablePage, error) {
	return a.client.TableData(ctx, connection, table, page, perPage)
}
