package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"studio/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"

	configScopeCore = "core"
	configScopeUI   = "ui"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		stdout: stdout,
		stderr: stderr,
	}
}

type configOutput struct {
	CoreConfigPath string                 `json:"core_config_path,omitempty" toml:"core_config_path,omitempty"`
	UIConfigPath   string                 `json:"ui_config_path,omitempty" toml:"ui_config_path,omitempty"`
	Server         *effectiveServerConfig `json:"server,omitempty" toml:"server,omitempty"`
	Logging        *effectiveLogConfig    `json:"logging,omitempty" toml:"logging,omitempty"`
	Storage        *effectiveStoreConfig  `json:"storage,omitempty" toml:"storage,omitempty"`
	Editor         *effectiveEditorConfig `json:"editor,omitempty" toml:"editor,omitempty"`
	Layout         *effectiveLayoutConfig `json:"layout,omitempty" toml:"layout,omitempty"`
}

type effectiveServerConfig struct {
	Address string `json:"address" toml:"address"`
	BaseURL string `json:"base_url" toml:"base_url"`
}

type effectiveLogConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveStoreConfig struct {
	Backend string `json:"backend" toml:"backend"`
}

type effectiveEditorConfig struct {
	Theme    string `json:"theme" toml:"theme"`
	TabWidth int    `json:"tab_width" toml:"tab_width"`
}

type effectiveLayoutConfig struct {
	SidebarMin     int `json:"sidebar_min" toml:"sidebar_min"`
	SidebarMax     int `json:"sidebar_max" toml:"sidebar_max"`
	PanelMin       int `json:"panel_min" toml:"panel_min"`
	MinEditorWidth int `json:"min_editor_width" toml:"min_editor_width"`
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	scope := fs.String("scope", "all", "scope to print: core|ui|all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat := strings.ToLower(strings.TrimSpace(*format))
	switch resolvedFormat {
	case configFormatJSON, configFormatTOML:
	default:
		return errors.New("unsupported format: " + *format)
	}

	coreCfg := config.DefaultCoreConfig()
	uiCfg := config.DefaultUIConfig()
	if !*defaults {
		var err error
		if coreCfg, err = config.LoadCoreConfig(); err != nil {
			return err
		}
		if uiCfg, err = config.LoadUIConfig(); err != nil {
			return err
		}
	}

	out := configOutput{}
	wantCore := *scope == "all" || *scope == configScopeCore
	wantUI := *scope == "all" || *scope == configScopeUI
	if !wantCore && !wantUI {
		return errors.New("unsupported scope: " + *scope)
	}

	if wantCore {
		if path, err := config.CoreConfigPath(); err == nil {
			out.CoreConfigPath = path
		}
		out.Server = &effectiveServerConfig{
			Address: coreCfg.ServerAddress(),
			BaseURL: coreCfg.ServerBaseURL(),
		}
		out.Logging = &effectiveLogConfig{Level: coreCfg.LogLevel()}
		out.Storage = &effectiveStoreConfig{Backend: coreCfg.StorageBackend()}
	}
	if wantUI {
		if path, err := config.UIConfigPath(); err == nil {
			out.UIConfigPath = path
		}
		out.Editor = &effectiveEditorConfig{
			Theme:    uiCfg.EditorTheme(),
			TabWidth: uiCfg.EditorTabWidth(),
		}
		sidebarMin, sidebarMax := uiCfg.SidebarBounds()
		out.Layout = &effectiveLayoutConfig{
			SidebarMin:     sidebarMin,
			SidebarMax:     sidebarMax,
			PanelMin:       uiCfg.PanelMinWidth(),
			MinEditorWidth: uiCfg.MinEditorWidth(),
		}
	}

	if resolvedFormat == configFormatTOML {
		encoder := toml.NewEncoder(c.stdout)
		return encoder.Encode(out)
	}
	encoder := json.NewEncoder(c.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
