// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/gitstore"
	"github.com/runoshun/duelist/internal/infra/logging"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Environment variables that override file settings.
const (
	EnvBackend  = "DUELIST_BACKEND"
	EnvDB       = "DUELIST_DB"
	EnvKey      = "DUELIST_KEY"
	EnvLogLevel = "DUELIST_LOG_LEVEL"

	EnvEncryptionKey = "DUELIST_ENCRYPTION_KEY"
)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	workDir       string // Directory searched for the local .duelist.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/duelist)
}

// NewLoader creates a new Loader.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment lookup. This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
		getenv:        getenv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultDataHome returns XDG_DATA_HOME or ~/.local/share.
func DefaultDataHome() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// Load returns the merged configuration.
// Sources are applied in order default <- global <- local <- env.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	base = mergeConfigs(base, l.fromEnv())

	base.Warnings = append(base.Warnings, validate(base)...)
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadLocal returns only the configuration in the working directory.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return l.loadFile(domain.LocalConfigPath(l.workDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := convertRawToDomainConfig(raw)
	for i, w := range cfg.Warnings {
		cfg.Warnings[i] = filepath.Base(path) + ": " + w
	}
	return cfg, nil
}

// fromEnv builds a partial config from environment variables.
func (l *Loader) fromEnv() *domain.Config {
	return &domain.Config{
		Storage: domain.StorageConfig{
			Backend: strings.TrimSpace(l.getenv(EnvBackend)),
			Path:    strings.TrimSpace(l.getenv(EnvDB)),
			Key:     strings.TrimSpace(l.getenv(EnvKey)),

			EncryptionKey: strings.TrimSpace(l.getenv(EnvEncryptionKey)),
		},
		Log: domain.LogConfig{
			Level: strings.TrimSpace(l.getenv(EnvLogLevel)),
		},
	}
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "storage":
			for k, v := range m {
				switch k {
				case "backend":
					res.Storage.Backend = stringValue(v, section, k, &warnings)
				case "path":
					res.Storage.Path = stringValue(v, section, k, &warnings)
				case "key":
					res.Storage.Key = stringValue(v, section, k, &warnings)
				case "namespace":
					res.Storage.Namespace = stringValue(v, section, k, &warnings)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [storage]: %s", k))
				}
			}
		case "display":
			for k, v := range m {
				switch k {
				case "time_format":
					res.Display.TimeFormat = stringValue(v, section, k, &warnings)
				case "default_filter":
					res.Display.DefaultFilter = stringValue(v, section, k, &warnings)
				case "refresh_interval":
					res.Display.RefreshInterval = durationValue(v, section, k, &warnings)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [display]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = stringValue(v, section, k, &warnings)
				case "format":
					res.Log.Format = stringValue(v, section, k, &warnings)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func stringValue(v any, section, key string, warnings *[]string) string {
	s, ok := v.(string)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("[%s].%s must be a string", section, key))
	}
	return s
}

// durationValue accepts a Go duration string ("30s") or a number of seconds.
func durationValue(v any, section, key string, warnings *[]string) time.Duration {
	switch val := v.(type) {
	case string:
		d, err := time.ParseDuration(val)
		if err == nil && d > 0 {
			return d
		}
	case int64:
		if val > 0 {
			return time.Duration(val) * time.Second
		}
	case float64:
		if val > 0 {
			return time.Duration(val * float64(time.Second))
		}
	}
	*warnings = append(*warnings, fmt.Sprintf("[%s].%s must be a positive duration", section, key))
	return 0
}

// validate reports settings that will be replaced by defaults at use.
func validate(cfg *domain.Config) []string {
	var warnings []string

	switch cfg.Storage.Backend {
	case domain.BackendBunt, domain.BackendJSON, domain.BackendGit, domain.BackendMemory:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown storage backend %q", cfg.Storage.Backend))
	}
	if cfg.Storage.Backend == domain.BackendGit && cfg.Storage.Key != "" && !gitstore.ValidKey(cfg.Storage.Key) {
		warnings = append(warnings, fmt.Sprintf("storage key %q cannot be used by the git backend", cfg.Storage.Key))
	}
	if cfg.Storage.EncryptionKey != "" && cfg.Storage.Backend != domain.BackendGit {
		warnings = append(warnings, fmt.Sprintf("%s is only used by the git backend", EnvEncryptionKey))
	}
	if _, err := domain.ParseFilterKind(cfg.Display.DefaultFilter); err != nil {
		warnings = append(warnings, fmt.Sprintf("unknown default filter %q, using all", cfg.Display.DefaultFilter))
		cfg.Display.DefaultFilter = string(domain.FilterAll)
	}
	if !logging.ValidLevel(cfg.Log.Level) {
		warnings = append(warnings, fmt.Sprintf("unknown log level %q, using info", cfg.Log.Level))
	}
	if !logging.ValidFormat(cfg.Log.Format) {
		warnings = append(warnings, fmt.Sprintf("unknown log format %q, using text", cfg.Log.Format))
	}

	return warnings
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Storage:  base.Storage,
		Display:  base.Display,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Storage.Backend != "" {
		result.Storage.Backend = override.Storage.Backend
	}
	if override.Storage.Path != "" {
		result.Storage.Path = override.Storage.Path
	}
	if override.Storage.Key != "" {
		result.Storage.Key = override.Storage.Key
	}
	if override.Storage.Namespace != "" {
		result.Storage.Namespace = override.Storage.Namespace
	}
	if override.Storage.EncryptionKey != "" {
		result.Storage.EncryptionKey = override.Storage.EncryptionKey
	}
	if override.Display.TimeFormat != "" {
		result.Display.TimeFormat = override.Display.TimeFormat
	}
	if override.Display.DefaultFilter != "" {
		result.Display.DefaultFilter = override.Display.DefaultFilter
	}
	if override.Display.RefreshInterval > 0 {
		result.Display.RefreshInterval = override.Display.RefreshInterval
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		result.Log.Format = override.Log.Format
	}

	return result
}

// fileView is the TOML shape written by Render.
type fileView struct {
	Storage domain.StorageConfig `toml:"storage"`
	Display struct {
		TimeFormat      string `toml:"time_format"`
		DefaultFilter   string `toml:"default_filter"`
		RefreshInterval string `toml:"refresh_interval"`
	} `toml:"display"`
	Log domain.LogConfig `toml:"log"`
}

// Render returns cfg as TOML, in the same shape the loader reads.
func Render(cfg *domain.Config) (string, error) {
	var view fileView
	view.Storage = cfg.Storage
	view.Display.TimeFormat = cfg.Display.TimeFormat
	view.Display.DefaultFilter = cfg.Display.DefaultFilter
	view.Display.RefreshInterval = cfg.Display.RefreshInterval.String()
	view.Log = cfg.Log

	b, err := toml.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}
