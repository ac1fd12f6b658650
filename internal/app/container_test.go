package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/buntstore"
	"github.com/runoshun/duelist/internal/infra/crypto"
	"github.com/runoshun/duelist/internal/infra/gitstore"
	"github.com/runoshun/duelist/internal/infra/jsonstore"
	"github.com/runoshun/duelist/internal/testutil"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		WorkDir:       t.TempDir(),
		GlobalConfDir: t.TempDir(),
		DataHome:      t.TempDir(),
		LogWriter:     &bytes.Buffer{},
	}
}

func TestOpenKV(t *testing.T) {
	dataHome := t.TempDir()

	tests := []struct {
		backend string
		check   func(t *testing.T, kv domain.KeyValueStore)
	}{
		{domain.BackendBunt, func(t *testing.T, kv domain.KeyValueStore) {
			s, ok := kv.(*buntstore.Store)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dataHome, "duelist", "tasks.db"), s.Path())
		}},
		{domain.BackendMemory, func(t *testing.T, kv domain.KeyValueStore) {
			s, ok := kv.(*buntstore.Store)
			require.True(t, ok)
			assert.Equal(t, buntstore.MemoryPath, s.Path())
		}},
		{domain.BackendJSON, func(t *testing.T, kv domain.KeyValueStore) {
			s, ok := kv.(*jsonstore.Store)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dataHome, "duelist", "tasks.json"), s.Path())
		}},
		{domain.BackendGit, func(t *testing.T, kv domain.KeyValueStore) {
			_, ok := kv.(*gitstore.Store)
			require.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			kv, err := OpenKV(domain.StorageConfig{Backend: tt.backend}, dataHome)
			require.NoError(t, err)
			defer func() { _ = kv.Close() }()
			tt.check(t, kv)
		})
	}
}

func TestOpenKV_EncryptedGit(t *testing.T) {
	dataHome := t.TempDir()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctx := context.Background()

	kv, err := OpenKV(domain.StorageConfig{Backend: domain.BackendGit, EncryptionKey: key}, dataHome)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "todos", `[{"task":"hidden"}]`))

	// Without the key the stored bytes are unreadable
	plain, err := OpenKV(domain.StorageConfig{Backend: domain.BackendGit}, dataHome)
	require.NoError(t, err)
	value, found, err := plain.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotContains(t, value, "hidden")

	value, _, err = kv.Get(ctx, "todos")
	require.NoError(t, err)
	assert.Equal(t, `[{"task":"hidden"}]`, value)
}

func TestOpenKV_InvalidEncryptionKey(t *testing.T) {
	_, err := OpenKV(domain.StorageConfig{Backend: domain.BackendGit, EncryptionKey: "nope"}, t.TempDir())
	assert.ErrorIs(t, err, crypto.ErrInvalidKey)
}

func TestOpenKV_GitRejectsUnusableKey(t *testing.T) {
	dataHome := t.TempDir()

	_, err := OpenKV(domain.StorageConfig{Backend: domain.BackendGit, Key: "my todos"}, dataHome)

	assert.ErrorIs(t, err, gitstore.ErrInvalidKey)
	// Nothing is created for a configuration that cannot be saved
	_, statErr := os.Stat(domain.DefaultStoragePath(dataHome, domain.BackendGit))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNew_GitKeyErrorIsReported(t *testing.T) {
	cfg := testConfig(t)
	content := "[storage]\nbackend = \"git\"\nkey = \"my todos\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, domain.LocalConfigFileName), []byte(content), 0o600))

	_, err := New(context.Background(), cfg)

	assert.ErrorIs(t, err, gitstore.ErrInvalidKey)
}

func TestOpenKV_UnknownBackend(t *testing.T) {
	_, err := OpenKV(domain.StorageConfig{Backend: "postgres"}, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestNew_PersistsAcrossContainers(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	c, err := New(ctx, cfg)
	require.NoError(t, err)
	_, err = c.Store.Add(ctx, "survives restart", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	reopened, err := New(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	tasks := reopened.Store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "survives restart", tasks[0].Text)
}

func TestNew_UsesLocalConfig(t *testing.T) {
	cfg := testConfig(t)
	storePath := filepath.Join(t.TempDir(), "mine.json")
	content := "[storage]\nbackend = \"json\"\npath = \"" + storePath + "\"\nkey = \"custom\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, domain.LocalConfigFileName), []byte(content), 0o600))
	ctx := context.Background()

	c, err := New(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, "custom", c.Store.Key())
	_, err = c.Store.Add(ctx, "x", time.Now())
	require.NoError(t, err)

	value, found, err := jsonstore.New(storePath).Get(ctx, "custom")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, value, `"task":"x"`)
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, domain.LocalConfigFileName), []byte("[storage]\nbackend = \"cloud\"\n"), 0o600))

	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestNew_LogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogPath = LogFilePath(cfg.DataHome)

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	c.Logger.Warn("to file")
	require.NoError(t, c.Close())

	content, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")
}

func TestNoticeRelay(t *testing.T) {
	relay := &NoticeRelay{}
	relay.Notify("dropped")

	rec := &testutil.RecordingNotifier{}
	relay.Attach(rec)
	relay.Notify("shown")
	relay.Attach(nil)
	relay.Notify("dropped again")

	assert.Equal(t, []string{"shown"}, rec.Messages)
}

func TestNewWithDeps_RoutesValidationToRelay(t *testing.T) {
	c := NewWithDeps(Config{}, nil, testutil.NewMemoryKV(), &testutil.SequenceIDs{}, &testutil.MockClock{}, testutil.DiscardLogger())
	rec := &testutil.RecordingNotifier{}
	c.Notices.Attach(rec)

	_, err := c.Store.Add(context.Background(), "  ", time.Now())

	assert.ErrorIs(t, err, domain.ErrEmptyTask)
	assert.Equal(t, []string{domain.ErrEmptyTask.Error()}, rec.Messages)
	assert.Equal(t, domain.DefaultStorageKey, c.Store.Key())
}
