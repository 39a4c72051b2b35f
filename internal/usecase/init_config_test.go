package usecase

import (
	"context"
	"testing"

	"github.com/slipway-dev/slipway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfigManager struct {
	path  string
	err   error
	force bool
}

func (s *stubConfigManager) InitRepoConfig(force bool) (string, error) {
	s.force = force
	if s.err != nil {
		return "", s.err
	}
	return s.path, nil
}

func (s *stubConfigManager) RepoConfigPath() string {
	return s.path
}

func TestInitConfig_Execute_WritesStarterConfig(t *testing.T) {
	manager := &stubConfigManager{path: "/repo/.slipway.toml"}
	uc := NewInitConfig(manager)

	out, err := uc.Execute(context.Background(), InitConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "/repo/.slipway.toml", out.Path)
	assert.False(t, manager.force)
}

func TestInitConfig_Execute_ExistingConfig(t *testing.T) {
	manager := &stubConfigManager{err: domain.ErrConfigExists}
	uc := NewInitConfig(manager)

	_, err := uc.Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestInitConfig_Execute_ForcePassedThrough(t *testing.T) {
	manager := &stubConfigManager{path: "/repo/.slipway.toml"}
	uc := NewInitConfig(manager)

	_, err := uc.Execute(context.Background(), InitConfigInput{Force: true})

	require.NoError(t, err)
	assert.True(t, manager.force)
}
