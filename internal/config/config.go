// Package config handles XDG directories, the optional config file and
// the settings shared by every command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"todo/internal/snapshot"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional YAML settings file in the config dir.
	ConfigFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// LogFile receives debug logs while the terminal UI owns the screen.
	LogFile = "todo.log"

	// DefaultKey is the versioned snapshot key.
	DefaultKey = snapshot.DefaultKey
)

// Backend names a persistence implementation.
type Backend string

const (
	// BackendFile stores the snapshot as a JSON file (default).
	BackendFile Backend = "file"
	// BackendSQLite stores the snapshot in a SQLite key-value table.
	BackendSQLite Backend = "sqlite"
	// BackendGoogleTasks mirrors the list into Google Tasks.
	BackendGoogleTasks Backend = "googletasks"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendGoogleTasks:
		return true
	}
	return false
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataDir is where local backends keep their data.
	DataDir string

	// Backend selects the persistence implementation.
	Backend Backend

	// Key is the snapshot key (file name, table row or remote list title).
	Key string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives diagnostics. Nil means discard.
	Logger *slog.Logger
}

// File is the on-disk shape of config.yaml. Empty fields keep defaults.
type File struct {
	Backend Backend `yaml:"backend"`
	Key     string  `yaml:"key"`
	DataDir string  `yaml:"data_dir"`
}

// New creates a Config with the default or specified config directory
// and applies config.yaml from it if present.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:     dir,
		DataDir: DefaultDataDir(),
		Backend: BackendFile,
		Key:     DefaultKey,
	}

	f, err := LoadFile(cfg.FilePath())
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(f); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file. A missing file yields a zero File.
// Unknown fields are errors.
func LoadFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("failed to read %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("invalid %s: %w", path, err)
	}
	return f, nil
}

// Apply overlays the non-empty fields of f.
func (c *Config) Apply(f File) error {
	if f.Backend != "" {
		if !f.Backend.Valid() {
			return fmt.Errorf("unknown backend: %s", f.Backend)
		}
		c.Backend = f.Backend
	}
	if f.Key != "" {
		c.Key = f.Key
	}
	if f.DataDir != "" {
		c.DataDir = os.ExpandEnv(f.DataDir)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// Log returns the configured logger or a discarding one.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// LogPath returns the path of the terminal UI debug log.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// EnsureDataDir creates the data directory with mode 0700.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
