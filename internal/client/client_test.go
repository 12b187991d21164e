package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(serverURL, token string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   token,
		http: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func TestListFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/files" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"files":[{"name":"lib","type":"directory","children":[{"name":"helpers.py","type":"file","extension":".py"}]}]}`))
	}))
	defer server.Close()

	files, err := testClient(server.URL, "").ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "lib" || !files[0].IsDir() {
		t.Fatalf("files = %+v", files)
	}
	if len(files[0].Children) != 1 || files[0].Children[0].Extension != ".py" {
		t.Fatalf("children = %+v", files[0].Children)
	}
}

func TestGetFileBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Binary file cannot be displayed"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL, "").GetFile(context.Background(), "logo.png")
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Binary file cannot be displayed" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestGetFileEscapesPathSegments(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"path":"x","content":"","language":"plaintext"}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL, "").GetFile(context.Background(), "lib/my file.py"); err != nil {
		t.Fatalf("GetFile error: %v", err)
	}
	if gotPath != "/api/file/lib/my%20file.py" {
		t.Fatalf("request path = %q", gotPath)
	}
}

func TestSaveFileSendsCSRFToken(t *testing.T) {
	var gotToken, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-CSRFToken")
		var req SaveFileRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotContent = req.Content
		_, _ = w.Write([]byte(`{"success":true,"path":"lib/helpers.py"}`))
	}))
	defer server.Close()

	err := testClient(server.URL, "secret").SaveFile(context.Background(), "lib/helpers.py", "x = 1\n")
	if err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	if gotToken != "secret" {
		t.Fatalf("csrf token = %q", gotToken)
	}
	if gotContent != "x = 1\n" {
		t.Fatalf("content = %q", gotContent)
	}
}

func TestSaveFileReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"disk full"}`))
	}))
	defer server.Close()

	err := testClient(server.URL, "").SaveFile(context.Background(), "a.py", "")
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.Message != "disk full" {
		t.Fatalf("err = %v", err)
	}
}

func TestCreateEntryRejectsUnknownType(t *testing.T) {
	if err := testClient("http://127.0.0.1:1", "").CreateEntry(context.Background(), "lib/x.py", "symlink"); err == nil {
		t.Fatalf("expected error for unknown entry type")
	}
}

func TestTableDataPagination(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"table":"users","columns":["id","name"],"data":[{"id":1,"name":"ada"}],"total":120,"page":3,"per_page":50}`))
	}))
	defer server.Close()

	page, err := testClient(server.URL, "").TableData(context.Background(), "default", "users", 3, 50)
	if err != nil {
		t.Fatalf("TableData error: %v", err)
	}
	if gotQuery != "page=3&per_page=50" {
		t.Fatalf("query = %q", gotQuery)
	}
	if page.Total != 120 || page.PageCount() != 3 {
		t.Fatalf("page = %+v count=%d", page, page.PageCount())
	}
}

func TestListConnectionsBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connections":[],"error":"No database configured"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL, "").ListConnections(context.Background())
	if apiErr := AsAPIError(err); apiErr == nil || apiErr.Message != "No database configured" {
		t.Fatalf("err = %v", err)
	}
}
