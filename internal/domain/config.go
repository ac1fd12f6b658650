package domain

import (
	_ "embed"
	"path/filepath"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented config file written by `config init`.
func ConfigTemplate() string {
	return configTemplateContent
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Storage  StorageConfig `toml:"storage"`
	Display  DisplayConfig `toml:"display"`
	Log      LogConfig     `toml:"log"`
}

// Storage backends.
const (
	BackendBunt   = "bunt"   // tidwall/buntdb file (default)
	BackendJSON   = "json"   // JSON object file
	BackendGit    = "git"    // git refs and blobs
	BackendMemory = "memory" // in-memory buntdb, lost on exit
)

// StorageConfig holds settings from the [storage] section.
type StorageConfig struct {
	Backend   string `toml:"backend,omitempty"`   // bunt (default), json, git, memory
	Path      string `toml:"path,omitempty"`      // Database file or repository directory
	Key       string `toml:"key,omitempty"`       // Key of the task collection
	Namespace string `toml:"namespace,omitempty"` // Ref namespace for the git backend

	// EncryptionKey is the hex AES-256 key for the git backend. It is read
	// from the environment only and never written to config files.
	EncryptionKey string `toml:"-"`
}

// DisplayConfig holds settings from the [display] section.
type DisplayConfig struct {
	TimeFormat      string        `toml:"time_format,omitempty"`      // Go layout for due dates
	DefaultFilter   string        `toml:"default_filter,omitempty"`   // all, completed, overdue
	RefreshInterval time.Duration `toml:"refresh_interval,omitempty"` // TUI overdue re-check period
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level  string `toml:"level,omitempty"`  // debug, info, warn, error
	Format string `toml:"format,omitempty"` // text, json, logfmt
}

// Default configuration values.
const (
	DefaultStorageKey      = "todos"
	DefaultNamespace       = "duelist"
	DefaultTimeFormat      = "2006-01-02 15:04"
	DefaultRefreshInterval = 30 * time.Second
)

// Directory and file names for duelist.
const (
	AppDirName          = "duelist"       // Directory name for config and data
	ConfigFileName      = "config.toml"   // Global config file name
	LocalConfigFileName = ".duelist.toml" // Config file name in the working directory
	BuntFileName        = "tasks.db"      // Default buntdb file
	JSONFileName        = "tasks.json"    // Default JSON store file
	GitDirName          = "tasks.git"     // Default bare repository for the git backend
)

// NewDefaultConfig returns a Config with default values.
// The storage path is left empty and resolved against the data directory.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:   BackendBunt,
			Key:       DefaultStorageKey,
			Namespace: DefaultNamespace,
		},
		Display: DisplayConfig{
			TimeFormat:      DefaultTimeFormat,
			DefaultFilter:   string(FilterAll),
			RefreshInterval: DefaultRefreshInterval,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the config path inside dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// DataDir returns the data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// DefaultStoragePath returns the default storage location for a backend.
func DefaultStoragePath(dataHome, backend string) string {
	dir := DataDir(dataHome)
	switch backend {
	case BackendJSON:
		return filepath.Join(dir, JSONFileName)
	case BackendGit:
		return filepath.Join(dir, GitDirName)
	case BackendMemory:
		return ":memory:"
	default:
		return filepath.Join(dir, BuntFileName)
	}
}
