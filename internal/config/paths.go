package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".studio"

// DataDir returns the base data directory for Studio.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// TokenPath returns the path to the CSRF token file.
func TokenPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "token"), nil
}

// CoreConfigPath returns the path to the core configuration file.
func CoreConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// UIConfigPath returns the path to the UI configuration file.
func UIConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "ui.toml"), nil
}

// CollapseStatePath returns the path to the persisted sidebar collapse file.
func CollapseStatePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "collapse_state.json"), nil
}

// LayoutPath returns the path to the persisted layout file.
func LayoutPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "layout.json"), nil
}

// DBPath returns the path to the bbolt state database.
func DBPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.db"), nil
}

// LogPath returns the path to the UI log file.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "studio.log"), nil
}
