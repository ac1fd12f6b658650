package domain

import (
	"context"
	"time"
)

// KeyValueStore is the local persistence collaborator.
// The task collection is stored as one serialized value under a fixed key.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false if the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// IDGenerator allocates task identifiers.
type IDGenerator interface {
	// NewID returns an identifier that has never been returned before.
	NewID() string
}

// Notifier is the user-facing error channel.
// It only receives validation failures.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- local <- env).
	Load() (*Config, error)
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo

	// LocalConfigInfo returns information about the local config file.
	LocalConfigInfo() ConfigInfo

	// InitConfig writes the config template to the global or local path.
	InitConfig(global, force bool) (string, error)
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path   string
	Exists bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
