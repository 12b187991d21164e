package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServerAddress = "127.0.0.1:5000"

const (
	defaultEditorTheme = "monokai"
	defaultTabWidth    = 4

	defaultSidebarMin     = 20
	defaultSidebarMax     = 60
	defaultPanelMin       = 30
	defaultMinEditorWidth = 40
)

type CoreConfig struct {
	Server  CoreServerConfig  `toml:"server"`
	Logging CoreLoggingConfig `toml:"logging"`
	Storage CoreStorageConfig `toml:"storage"`
}

type CoreServerConfig struct {
	Address string `toml:"address"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreStorageConfig struct {
	Backend string `toml:"backend"`
}

type UIConfig struct {
	Editor UIEditorConfig `toml:"editor"`
	Layout UILayoutConfig `toml:"layout"`
}

type UIEditorConfig struct {
	Theme    string `toml:"theme"`
	TabWidth int    `toml:"tab_width"`
}

type UILayoutConfig struct {
	SidebarMin     int `toml:"sidebar_min"`
	SidebarMax     int `toml:"sidebar_max"`
	PanelMin       int `toml:"panel_min"`
	MinEditorWidth int `toml:"min_editor_width"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Server: CoreServerConfig{
			Address: defaultServerAddress,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return loadCoreConfigFromPath(path)
}

func (c CoreConfig) ServerAddress() string {
	addr := strings.TrimSpace(c.Server.Address)
	if addr == "" {
		return defaultServerAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func (c CoreConfig) ServerBaseURL() string {
	return "http://" + c.ServerAddress()
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c CoreConfig) StorageBackend() string {
	return strings.ToLower(strings.TrimSpace(c.Storage.Backend))
}

func DefaultUIConfig() UIConfig {
	return UIConfig{
		Editor: UIEditorConfig{
			Theme:    defaultEditorTheme,
			TabWidth: defaultTabWidth,
		},
	}
}

func LoadUIConfig() (UIConfig, error) {
	path, err := UIConfigPath()
	if err != nil {
		return UIConfig{}, err
	}
	return loadUIConfigFromPath(path)
}

func (c UIConfig) EditorTheme() string {
	theme := strings.TrimSpace(c.Editor.Theme)
	if theme == "" {
		return defaultEditorTheme
	}
	return theme
}

func (c UIConfig) EditorTabWidth() int {
	if c.Editor.TabWidth <= 0 {
		return defaultTabWidth
	}
	return c.Editor.TabWidth
}

// SidebarBounds returns the allowed sidebar width range.
func (c UIConfig) SidebarBounds() (minWidth, maxWidth int) {
	minWidth = c.Layout.SidebarMin
	maxWidth = c.Layout.SidebarMax
	if minWidth <= 0 {
		minWidth = defaultSidebarMin
	}
	if maxWidth <= 0 {
		maxWidth = defaultSidebarMax
	}
	if maxWidth < minWidth {
		maxWidth = minWidth
	}
	return minWidth, maxWidth
}

func (c UIConfig) PanelMinWidth() int {
	if c.Layout.PanelMin <= 0 {
		return defaultPanelMin
	}
	return c.Layout.PanelMin
}

// MinEditorWidth is the floor below which the editor pane may not shrink
// when the sidebar and panel compete for columns.
func (c UIConfig) MinEditorWidth() int {
	if c.Layout.MinEditorWidth <= 0 {
		return defaultMinEditorWidth
	}
	return c.Layout.MinEditorWidth
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func loadUIConfigFromPath(path string) (UIConfig, error) {
	cfg := DefaultUIConfig()
	if err := readTOML(path, &cfg); err != nil {
		return UIConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
