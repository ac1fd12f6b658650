package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/testutil"
	"github.com/runoshun/duelist/internal/usecase"
)

func TestShowConfig_Execute(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	manager.LocalInfo.Exists = true
	cfg := domain.NewDefaultConfig()
	cfg.Storage.Backend = domain.BackendJSON

	out, err := usecase.NewShowConfig(manager, &testutil.MockConfigLoader{Config: cfg}).
		Execute(context.Background(), usecase.ShowConfigInput{})

	require.NoError(t, err)
	assert.Same(t, cfg, out.Effective)
	assert.Equal(t, "/home/test/.config/duelist/config.toml", out.GlobalConfig.Path)
	assert.False(t, out.GlobalConfig.Exists)
	assert.True(t, out.LocalConfig.Exists)
}

func TestShowConfig_LoadError(t *testing.T) {
	uc := usecase.NewShowConfig(testutil.NewMockConfigManager(), &testutil.MockConfigLoader{Err: assert.AnError})

	_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

	assert.ErrorIs(t, err, assert.AnError)
}
