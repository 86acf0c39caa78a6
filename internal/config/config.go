package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/pipeboard/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvDatabase  = "PIPEBOARD_DB"
	EnvSocket    = "PIPEBOARD_SOCKET"
	EnvLogLevel  = "PIPEBOARD_LOG_LEVEL"
	EnvThemeFile = "PIPEBOARD_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`
	SocketPath   string `yaml:"socket_path"`
	LogLevel     string `yaml:"log_level"`
	Currency     string `yaml:"currency"`

	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
	Daemon      DaemonConfig       `yaml:"daemon"`
}

// DaemonConfig tunes the live-update daemon
type DaemonConfig struct {
	// MetricsAddr serves prometheus metrics over HTTP when set (e.g. "127.0.0.1:9091")
	MetricsAddr     string `yaml:"metrics_addr"`
	BroadcastBuffer int    `yaml:"broadcast_buffer"`
	ClientBuffer    int    `yaml:"client_buffer"`
}

// Default returns a config with every field at its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile merges the theme from PIPEBOARD_THEME_FILE when set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("failed to read theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("failed to parse theme file", "path", themeFile, "error", err)
		return
	}
	config.ColorScheme.MergeFrom(themeConfig.Theme)
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return finish(&Config{}), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return finish(&config), nil
}

func finish(config *Config) *Config {
	loadThemeFile(config)
	config.applyEnv()
	config.applyDefaults()
	return config
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config as YAML to path, creating parent directories
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "pipeboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "pipeboard", "config.yaml"), nil
}

// LogDir is where the log file lives
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// SlogLevel parses LogLevel, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv(EnvSocket); v != "" {
		c.SocketPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, "pipeboard.db")
	}
	if c.SocketPath == "" {
		c.SocketPath = filepath.Join(c.DataDir, "pipeboard.sock")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.Currency == "" {
		c.Currency = "$"
	}
	if c.Daemon.BroadcastBuffer <= 0 {
		c.Daemon.BroadcastBuffer = 100
	}
	if c.Daemon.ClientBuffer <= 0 {
		c.Daemon.ClientBuffer = 10
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pipeboard"
	}
	return filepath.Join(homeDir, ".pipeboard")
}
