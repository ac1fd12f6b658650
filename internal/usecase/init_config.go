// Package usecase contains the application use cases that sit between the
// command surfaces and the task store.
package usecase

import (
	"context"

	"github.com/runoshun/duelist/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Global bool // If true, initialize global config; otherwise the local .duelist.toml
	Force  bool // Overwrite an existing file
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file with the default template.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	path, err := uc.configManager.InitConfig(in.Global, in.Force)
	if err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: path}, nil
}
