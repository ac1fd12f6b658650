package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/duelist/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	workDir       string // Directory holding the local .duelist.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/duelist)
}

// NewManager creates a new Manager.
func NewManager(workDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(workDir, globalConfDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return configInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// LocalConfigInfo returns information about the local config file.
func (m *Manager) LocalConfigInfo() domain.ConfigInfo {
	return configInfo(domain.LocalConfigPath(m.workDir))
}

func configInfo(path string) domain.ConfigInfo {
	_, err := os.Stat(path)
	return domain.ConfigInfo{Path: path, Exists: err == nil}
}

// InitConfig writes the commented template to the global or local config
// path and returns the path written. An existing file is only replaced
// when force is set.
func (m *Manager) InitConfig(global, force bool) (string, error) {
	var path string
	if global {
		if m.globalConfDir == "" {
			return "", errors.New("global config directory not available")
		}
		if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
			return "", fmt.Errorf("create config directory: %w", err)
		}
		path = filepath.Join(m.globalConfDir, domain.ConfigFileName)
	} else {
		path = domain.LocalConfigPath(m.workDir)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", domain.ErrConfigExists, path)
	}

	if err := os.WriteFile(path, []byte(domain.ConfigTemplate()), 0o600); err != nil {
		return path, fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
