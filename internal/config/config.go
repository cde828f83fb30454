// ABOUTME: Vitality configuration management with XDG paths.
// ABOUTME: Handles data directory, scoring windows, and storage factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/vitality/internal/baseline"
	"github.com/harperreed/vitality/internal/storage"
	"github.com/harperreed/vitality/internal/trend"
)

// Config stores vitality tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; vitality.db lives
	// here. Supports ~ expansion. Defaults to ~/.local/share/vitality.
	DataDir string `json:"data_dir,omitempty"`

	// LookbackDays is the baseline rolling window. Defaults to 60.
	LookbackDays int `json:"lookback_days,omitempty"`

	// TrendDays is the trend series window. Defaults to 7.
	TrendDays int `json:"trend_days,omitempty"`

	// LegacyScoresPath points at a flat-file score export for one-time
	// migration. Defaults to <DataDir>/scores_legacy.json.
	LegacyScoresPath string `json:"legacy_scores_path,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLookbackDays returns the configured baseline window.
func (c *Config) GetLookbackDays() int {
	if c.LookbackDays <= 0 {
		return baseline.DefaultLookbackDays
	}
	return c.LookbackDays
}

// GetTrendDays returns the configured trend window.
func (c *Config) GetTrendDays() int {
	if c.TrendDays <= 0 {
		return trend.DefaultWindowDays
	}
	return c.TrendDays
}

// GetLegacyScoresPath returns where the legacy score export is expected.
func (c *Config) GetLegacyScoresPath() string {
	if c.LegacyScoresPath == "" {
		return filepath.Join(c.GetDataDir(), "scores_legacy.json")
	}
	return ExpandPath(c.LegacyScoresPath)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite repository in the configured data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	dbPath := filepath.Join(c.GetDataDir(), "vitality.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vitality", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
