package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/hotkey"
	"github.com/yourusername/movetodesktop/internal/shell"
)

const (
	DefaultConfigDir    = "movetodesktop"
	DefaultConfigFile   = "config.yaml"
	DefaultHistoryLimit = 100
)

// ErrNotFound is returned when no config file exists at the default location
var ErrNotFound = errors.New("no config file found")

// DefaultConfig binds Win+Alt+1..9 to the first nine desktops
func DefaultConfig() *Config {
	cfg := &Config{
		Settings: Settings{
			Strategy:          string(desktop.StrategyAuto),
			InternalInterface: shell.InterfaceAuto,
			HistoryLimit:      DefaultHistoryLimit,
		},
	}
	for i := 0; i < 9; i++ {
		cfg.Hotkeys = append(cfg.Hotkeys, HotkeyConfig{
			Keys:    fmt.Sprintf("win+alt+%d", i+1),
			Desktop: i,
		})
	}
	return cfg
}

// LoadConfig loads configuration from the specified path or default location
// If path is empty, uses <UserConfigDir>/movetodesktop/config.yaml
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine config directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(dir, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(dir, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return nil, fmt.Errorf("%w at %s or %s", ErrNotFound, yamlPath, jsonPath)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadOrDefault loads the config at path, falling back to DefaultConfig
// when path is empty and no file exists at the default location
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if path == "" && errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Config{Settings: Settings{HistoryLimit: DefaultHistoryLimit}}

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Marshal renders the config in format ("yaml" or "json")
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	}
	return nil, fmt.Errorf("unsupported config format: %s", format)
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, DefaultConfigDir, DefaultConfigFile)
}

// GetStrategy returns the parsed resolution strategy
func (c *Config) GetStrategy() desktop.Strategy {
	s, err := desktop.ParseStrategy(c.Settings.Strategy)
	if err != nil {
		return desktop.StrategyAuto
	}
	return s
}

// GetVariants returns the internal interface variants to probe
func (c *Config) GetVariants() []shell.Variant {
	v, err := shell.SelectVariants(c.Settings.InternalInterface)
	if err != nil {
		return shell.Variants
	}
	return v
}

// GetBindings converts hotkey configs to listener bindings
func (c *Config) GetBindings() ([]hotkey.Binding, error) {
	bindings := make([]hotkey.Binding, 0, len(c.Hotkeys))
	for i, hk := range c.Hotkeys {
		combo, err := hotkey.Parse(hk.Keys)
		if err != nil {
			return nil, fmt.Errorf("hotkey %d: %w", i, err)
		}
		bindings = append(bindings, hotkey.Binding{Combo: combo, Desktop: hk.Desktop})
	}
	return bindings, nil
}
