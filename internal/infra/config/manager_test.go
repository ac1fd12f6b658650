package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/duelist/internal/domain"
)

func TestManager_ConfigInfo(t *testing.T) {
	workDir := t.TempDir()
	globalDir := t.TempDir()
	manager := NewManagerWithGlobalDir(workDir, globalDir)

	local := manager.LocalConfigInfo()
	assert.Equal(t, filepath.Join(workDir, domain.LocalConfigFileName), local.Path)
	assert.False(t, local.Exists)

	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[log]\nlevel = \"debug\"\n")
	global := manager.GlobalConfigInfo()
	assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), global.Path)
	assert.True(t, global.Exists)
}

func TestManager_GlobalConfigInfo_NoDir(t *testing.T) {
	manager := NewManagerWithGlobalDir(t.TempDir(), "")
	assert.Equal(t, domain.ConfigInfo{}, manager.GlobalConfigInfo())
}

func TestManager_InitConfig_Local(t *testing.T) {
	workDir := t.TempDir()
	manager := NewManagerWithGlobalDir(workDir, "")

	path, err := manager.InitConfig(false, false)
	require.NoError(t, err)
	assert.Equal(t, domain.LocalConfigPath(workDir), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), string(content))

	// Second init refuses to overwrite
	_, err = manager.InitConfig(false, false)
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitConfig_Force(t *testing.T) {
	workDir := t.TempDir()
	manager := NewManagerWithGlobalDir(workDir, "")
	writeFile(t, domain.LocalConfigPath(workDir), "old")

	path, err := manager.InitConfig(false, true)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), string(content))
}

func TestManager_InitConfig_Global(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "nested", "duelist")
	manager := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	path, err := manager.InitConfig(true, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), path)
	assert.True(t, manager.GlobalConfigInfo().Exists)
}

func TestManager_InitConfig_GlobalUnavailable(t *testing.T) {
	manager := NewManagerWithGlobalDir(t.TempDir(), "")

	_, err := manager.InitConfig(true, false)
	assert.Error(t, err)
}
