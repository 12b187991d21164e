package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"studio/internal/config"
	"studio/internal/types"
)

const defaultBaseURL = "http://127.0.0.1:5000"

// csrfHeader carries the anti-forgery token on mutating requests; the dev
// server validates it the way Flask-WTF does.
const csrfHeader = "X-CSRFToken"

type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
}

func New() (*Client, error) {
	cfg, err := config.LoadCoreConfig()
	if err != nil {
		return nil, err
	}
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   cfg.ServerBaseURL(),
		tokenPath: tokenPath,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListFiles fetches the project file tree.
func (c *Client) ListFiles(ctx context.Context) ([]types.FileNode, error) {
	var resp FilesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// GetFile fetches one file's content and language tag.
func (c *Client) GetFile(ctx context.Context, path string) (*FileResponse, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("file path is required")
	}
	var resp FileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/file/"+escapePath(path), nil, false, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Error}
	}
	return &resp, nil
}

// SaveFile writes content back to a file.
func (c *Client) SaveFile(ctx context.Context, path, content string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("file path is required")
	}
	var resp MutationResponse
	req := SaveFileRequest{Content: content}
	if err := c.doJSON(ctx, http.MethodPost, "/api/file/"+escapePath(path), req, true, &resp); err != nil {
		return err
	}
	return resp.err()
}

// CreateEntry creates a new file or directory at path.
func (c *Client) CreateEntry(ctx context.Context, path, entryType string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("entry path is required")
	}
	if entryType != types.NodeTypeFile && entryType != types.NodeTypeDirectory {
		return fmt.Errorf("unsupported entry type: %s", entryType)
	}
	var resp MutationResponse
	req := CreateEntryRequest{Path: path, Type: entryType}
	if err := c.doJSON(ctx, http.MethodPost, "/api/file/new", req, true, &resp); err != nil {
		return err
	}
	return resp.err()
}

// DeleteEntry removes a file, or a directory when it is empty.
func (c *Client) DeleteEntry(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("entry path is required")
	}
	var resp MutationResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/api/file/"+escapePath(path), nil, true, &resp); err != nil {
		return err
	}
	return resp.err()
}

// ListRoutes fetches the routes declared across the project's template files.
func (c *Client) ListRoutes(ctx context.Context) ([]types.Route, error) {
	var resp RoutesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/routes", nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Routes, nil
}

// ListConnections fetches the configured database connection names.
func (c *Client) ListConnections(ctx context.Context) ([]string, error) {
	var resp ConnectionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/database/connections", nil, false, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Error}
	}
	return resp.Connections, nil
}

// ListTables fetches the table names of one connection.
func (c *Client) ListTables(ctx context.Context, connection string) ([]string, error) {
	if strings.TrimSpace(connection) == "" {
		return nil, errors.New("connection name is required")
	}
	var resp TablesResponse
	path := "/api/database/" + url.PathEscape(connection) + "/tables"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, false, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Error}
	}
	return resp.Tables, nil
}

// TableData fetches one page of rows from a table.
func (c *Client) TableData(ctx context.Context, connection, table string, page, perPage int) (*types.TablePage, error) {
	if strings.TrimSpace(connection) == "" || strings.TrimSpace(table) == "" {
		return nil, errors.New("connection and table names are required")
	}
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	var resp types.TablePage
	path := fmt.Sprintf("/api/database/%s/table/%s?page=%d&per_page=%d",
		url.PathEscape(connection), url.PathEscape(table), page, perPage)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, mutation bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if mutation && c.csrfToken() != "" {
		req.Header.Set(csrfHeader, c.csrfToken())
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) csrfToken() string {
	return strings.TrimSpace(c.token)
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

// escapePath escapes each path segment while keeping the separators, so the
// project-relative path survives the URL round trip.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
