// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/runoshun/duelist/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MemoryKV is a test double for domain.KeyValueStore.
// Fields are ordered to minimize memory padding.
type MemoryKV struct {
	Values   map[string]string
	GetErr   error
	SetErr   error
	SetCalls int
	mu       sync.Mutex
	Closed   bool
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{Values: make(map[string]string)}
}

// Get returns the stored value.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

// Set stores the value unless SetErr is configured. Every call is counted.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = value
	return nil
}

// Close marks the store as closed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Writes returns the number of Set calls so far.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SetCalls
}

// SequenceIDs is a deterministic domain.IDGenerator: id-1, id-2, ...
type SequenceIDs struct {
	n  int
	mu sync.Mutex
}

// NewID returns the next id in the sequence.
func (s *SequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// RecordingNotifier records every user-facing message.
type RecordingNotifier struct {
	Messages []string
}

// Notify records msg.
func (r *RecordingNotifier) Notify(msg string) {
	r.Messages = append(r.Messages, msg)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	GlobalInfo domain.ConfigInfo
	LocalInfo  domain.ConfigInfo
	InitCalled bool
	InitGlobal bool
	InitForce  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		GlobalInfo: domain.ConfigInfo{Path: "/home/test/.config/duelist/config.toml"},
		LocalInfo:  domain.ConfigInfo{Path: "/work/.duelist.toml"},
	}
}

// GlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// LocalConfigInfo returns the configured local config info.
func (m *MockConfigManager) LocalConfigInfo() domain.ConfigInfo {
	return m.LocalInfo
}

// InitConfig records the call and returns the matching path.
func (m *MockConfigManager) InitConfig(global, force bool) (string, error) {
	m.InitCalled = true
	m.InitGlobal = global
	m.InitForce = force
	path := m.LocalInfo.Path
	if global {
		path = m.GlobalInfo.Path
	}
	return path, m.InitErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config, or defaults when none is set.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// Ensure mocks implement their ports.
var (
	_ domain.Clock         = (*MockClock)(nil)
	_ domain.KeyValueStore = (*MemoryKV)(nil)
	_ domain.IDGenerator   = (*SequenceIDs)(nil)
	_ domain.Notifier      = (*RecordingNotifier)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
	_ domain.ConfigLoader  = (*MockConfigLoader)(nil)
)
