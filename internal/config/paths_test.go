package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if !strings.HasSuffix(dataDir, filepath.Join(".studio")) {
		t.Fatalf("unexpected data dir: %s", dataDir)
	}

	tokenPath, err := TokenPath()
	if err != nil {
		t.Fatalf("TokenPath: %v", err)
	}
	if !strings.HasSuffix(tokenPath, filepath.Join(".studio", "token")) {
		t.Fatalf("unexpected token path: %s", tokenPath)
	}

	coreConfigPath, err := CoreConfigPath()
	if err != nil {
		t.Fatalf("CoreConfigPath: %v", err)
	}
	if !strings.HasSuffix(coreConfigPath, filepath.Join(".studio", "config.toml")) {
		t.Fatalf("unexpected core config path: %s", coreConfigPath)
	}

	uiConfigPath, err := UIConfigPath()
	if err != nil {
		t.Fatalf("UIConfigPath: %v", err)
	}
	if !strings.HasSuffix(uiConfigPath, filepath.Join(".studio", "ui.toml")) {
		t.Fatalf("unexpected ui config path: %s", uiConfigPath)
	}

	collapsePath, err := CollapseStatePath()
	if err != nil {
		t.Fatalf("CollapseStatePath: %v", err)
	}
	if !strings.HasSuffix(collapsePath, filepath.Join(".studio", "collapse_state.json")) {
		t.Fatalf("unexpected collapse path: %s", collapsePath)
	}

	layoutPath, err := LayoutPath()
	if err != nil {
		t.Fatalf("LayoutPath: %v", err)
	}
	if !strings.HasSuffix(layoutPath, filepath.Join(".studio", "layout.json")) {
		t.Fatalf("unexpected layout path: %s", layoutPath)
	}

	dbPath, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if !strings.HasSuffix(dbPath, filepath.Join(".studio", "state.db")) {
		t.Fatalf("unexpected db path: %s", dbPath)
	}

	logPath, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath: %v", err)
	}
	if !strings.HasSuffix(logPath, filepath.Join(".studio", "studio.log")) {
		t.Fatalf("unexpected log path: %s", logPath)
	}
}
