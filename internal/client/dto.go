package client

import "studio/internal/types"

type FilesResponse struct {
	Files []types.FileNode `json:"files"`
	Root  string           `json:"root,omitempty"`
}

type FileResponse struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language"`
	Error    string `json:"error,omitempty"`
}

type SaveFileRequest struct {
	Content string `json:"content"`
}

type CreateEntryRequest struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// MutationResponse is the common shape of write endpoints: transport success
// with an application-level failure flag.
type MutationResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r MutationResponse) err() error {
	if r.Success {
		return nil
	}
	message := r.Error
	if message == "" {
		message = "request failed"
	}
	return &APIError{StatusCode: 200, Message: message}
}

type RoutesResponse struct {
	Routes []types.Route `json:"routes"`
}

type ConnectionsResponse struct {
	Connections []string `json:"connections"`
	Error       string   `json:"error,omitempty"`
}

type TablesResponse struct {
	Tables []string `json:"tables"`
	Error  string   `json:"error,omitempty"`
}
