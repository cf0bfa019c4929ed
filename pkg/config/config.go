package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/darksworm/gridsel/pkg/errors"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/services/selection"
	"github.com/darksworm/gridsel/pkg/theme"
	"github.com/darksworm/gridsel/pkg/tui/clipboard"
)

// Config represents the complete gridsel configuration
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Selection  SelectionConfig  `toml:"selection"`
	Clipboard  ClipboardConfig  `toml:"clipboard"`
	Grid       GridConfig       `toml:"grid,omitempty"`
}

// AppearanceConfig holds theme and visual settings
type AppearanceConfig struct {
	Theme     string            `toml:"theme"`
	Overrides map[string]string `toml:"overrides,omitempty"`
}

// SelectionConfig holds the mode of each selection axis: none, single or multiple.
type SelectionConfig struct {
	Cell   string `toml:"cell"`
	Row    string `toml:"row"`
	Column string `toml:"column"`
}

// ClipboardConfig holds copy settings
type ClipboardConfig struct {
	Enabled        bool   `toml:"enabled"`
	Separator      string `toml:"separator"`
	CopyHeaders    bool   `toml:"copy_headers"`
	CopyFormatters bool   `toml:"copy_formatters"`
	Format         string `toml:"format,omitempty"`  // text, json or yaml
	Command        string `toml:"command,omitempty"` // e.g. "wl-copy"; empty uses the platform clipboard
}

// GridConfig holds paging, row pinning and initial sort
type GridConfig struct {
	PerPage     int        `toml:"per_page,omitempty"`
	PinPosition string     `toml:"pin_position,omitempty"` // top or bottom
	PrimaryKey  string     `toml:"primary_key,omitempty"`
	Sort        SortConfig `toml:"sort,omitempty"`
}

// SortConfig holds sort preferences
type SortConfig struct {
	Field     string `toml:"field"`
	Direction string `toml:"direction"`
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() string {
	if configPath := os.Getenv("GRIDSEL_CONFIG"); configPath != "" {
		return configPath
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "gridsel", "config.toml")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "gridsel", "config.toml")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gridsel", "config.toml")
	}
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir := filepath.Dir(GetConfigPath())
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return os.MkdirAll(configDir, 0755)
	}
	return nil
}

// GetDefaultConfig returns a config with sensible defaults
func GetDefaultConfig() *Config {
	opts := clipboard.DefaultOptions()
	return &Config{
		Appearance: AppearanceConfig{Theme: theme.DefaultName},
		Selection: SelectionConfig{
			Cell:   string(model.ModeMultiple),
			Row:    string(model.ModeMultiple),
			Column: string(model.ModeMultiple),
		},
		Clipboard: ClipboardConfig{
			Enabled:        opts.Enabled,
			Separator:      opts.Separator,
			CopyHeaders:    opts.CopyHeaders,
			CopyFormatters: opts.CopyFormatters,
		},
		Grid: GridConfig{PinPosition: "top"},
	}
}

// Load reads the configuration file, falling back to defaults for the file
// and for every key it leaves out.
func Load() (*Config, error) {
	configPath := GetConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := GetDefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.ConfigError(apperrors.CodeConfigParse, "failed to parse config").WithCause(err)
	}
	if cfg.Appearance.Theme == "" {
		cfg.Appearance.Theme = theme.DefaultName
	}
	if _, err := cfg.Modes(); err != nil {
		return nil, err
	}
	if _, err := clipboard.ParseFormat(cfg.Clipboard.Format); err != nil {
		return nil, apperrors.ConfigError(apperrors.CodeConfigParse, "invalid clipboard format").WithCause(err)
	}
	return cfg, nil
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := GetConfigPath()
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", configPath, err)
	}
	return nil
}

// Modes returns the configured selection modes.
func (c *Config) Modes() (selection.Modes, error) {
	parse := func(axis model.Axis, s string) (model.SelectionMode, error) {
		m, err := model.ParseSelectionMode(s)
		if err != nil {
			return "", apperrors.ConfigError(apperrors.CodeInvalidMode, "invalid selection mode").
				WithCause(err).
				WithContext("axis", axis.String())
		}
		return m, nil
	}

	var (
		modes selection.Modes
		err   error
	)
	if modes.Cell, err = parse(model.AxisCell, c.Selection.Cell); err != nil {
		return modes, err
	}
	if modes.Row, err = parse(model.AxisRow, c.Selection.Row); err != nil {
		return modes, err
	}
	if modes.Column, err = parse(model.AxisColumn, c.Selection.Column); err != nil {
		return modes, err
	}
	return modes, nil
}

// ClipboardOptions returns the copy options. An unset format stays empty,
// which copies delimited text.
func (c *Config) ClipboardOptions() clipboard.Options {
	opts := clipboard.Options{
		Enabled:        c.Clipboard.Enabled,
		Separator:      c.Clipboard.Separator,
		CopyHeaders:    c.Clipboard.CopyHeaders,
		CopyFormatters: c.Clipboard.CopyFormatters,
	}
	if c.Clipboard.Format != "" {
		opts.Format, _ = clipboard.ParseFormat(c.Clipboard.Format)
	}
	return opts
}

// GetCopyCommand returns the clipboard command.
// Priority: GRIDSEL_COPY_COMMAND env var > config file > platform clipboard ("")
func (c *Config) GetCopyCommand() string {
	if envCmd := os.Getenv("GRIDSEL_COPY_COMMAND"); envCmd != "" {
		return envCmd
	}
	return c.Clipboard.Command
}

// Palette returns the configured theme with overrides and environment colors applied.
func (c *Config) Palette() theme.Palette {
	p := theme.FromName(c.Appearance.Theme)
	p = theme.ApplyOverrides(p, c.Appearance.Overrides)
	return theme.Normalize(theme.FromEnv(p))
}
