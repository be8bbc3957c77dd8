package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/testutil"
)

func TestInitStore_Execute(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".git", "initiative")
	mock := &testutil.MockStoreInitializer{}
	uc := NewInitStore(mock)

	out, err := uc.Execute(context.Background(), InitStoreInput{DataDir: dataDir})

	require.NoError(t, err)
	assert.Equal(t, dataDir, out.DataDir)
	assert.False(t, out.AlreadyInitialized)
	assert.True(t, mock.InitCalled)
	info, err := os.Stat(filepath.Join(dataDir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitStore_Execute_Repair(t *testing.T) {
	mock := &testutil.MockStoreInitializer{Initialized: true}

	out, err := NewInitStore(mock).Execute(context.Background(), InitStoreInput{DataDir: t.TempDir()})

	require.NoError(t, err)
	assert.True(t, out.AlreadyInitialized)
	assert.True(t, mock.InitCalled, "existing stores are repaired")
}

func TestInitStore_Execute_InitializerError(t *testing.T) {
	mock := &testutil.MockStoreInitializer{InitErr: errors.New("permission denied")}

	_, err := NewInitStore(mock).Execute(context.Background(), InitStoreInput{DataDir: t.TempDir()})

	require.ErrorContains(t, err, "initialize encounter store")
}

func TestShowConfig_Execute(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	manager.RepoInfo.Exists = true
	manager.RepoInfo.Content = "[log]\nlevel = \"debug\"\n"
	cfg := domain.NewDefaultConfig()

	out, err := NewShowConfig(manager, cfg).Execute(context.Background(), ShowConfigInput{})

	require.NoError(t, err)
	assert.Same(t, cfg, out.Effective)
	assert.True(t, out.RepoConfig.Exists)
	assert.Contains(t, out.RepoConfig.Content, "debug")
	assert.False(t, out.GlobalConfig.Exists)
}

func TestInitConfig_Execute(t *testing.T) {
	tests := []struct {
		name       string
		global     bool
		wantPath   string
		wantGlobal bool
	}{
		{"repo", false, "/repo/.git/initiative/config.toml", false},
		{"global", true, "/home/user/.config/initiative/config.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := testutil.NewMockConfigManager()

			out, err := NewInitConfig(manager).Execute(context.Background(), InitConfigInput{Global: tt.global})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, out.Path)
			assert.Equal(t, tt.wantGlobal, manager.GlobalInit)
			assert.Equal(t, !tt.wantGlobal, manager.RepoInit)
			require.NotNil(t, manager.LastConfig, "defaults are rendered when no config is given")
			assert.Equal(t, domain.DefaultAC, manager.LastConfig.Combat.DefaultAC)
		})
	}
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	manager.InitRepoErr = domain.ErrConfigExists

	_, err := NewInitConfig(manager).Execute(context.Background(), InitConfigInput{Config: domain.NewDefaultConfig()})

	require.ErrorIs(t, err, domain.ErrConfigExists)
}
