package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipway-dev/slipway/internal/infra/config"
	"github.com/slipway-dev/slipway/internal/testutil"
)

func TestInitCommand_WritesConfig(t *testing.T) {
	repoRoot := t.TempDir()
	c := testContainer(singlePackageConfig(), &testutil.MockHistory{})
	c.ConfigManager = config.NewManager(repoRoot)

	out, err := execute(t, c, "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Created ")
	assert.FileExists(t, c.ConfigManager.RepoConfigPath())
}

func TestInitCommand_SecondRunFails(t *testing.T) {
	repoRoot := t.TempDir()
	c := testContainer(singlePackageConfig(), &testutil.MockHistory{})
	c.ConfigManager = config.NewManager(repoRoot)
	_, err := execute(t, c, "init")
	require.NoError(t, err)

	_, err = execute(t, c, "init")
	assert.Error(t, err)

	_, err = execute(t, c, "init", "--force")
	assert.NoError(t, err)
}

func TestConfigCommand_PrintsMergedConfig(t *testing.T) {
	repoRoot := t.TempDir()
	c := testContainer(singlePackageConfig(), &testutil.MockHistory{})
	c.ConfigLoader = config.NewLoaderWithGlobalDir(repoRoot, t.TempDir())
	c.ConfigManager = config.NewManager(repoRoot)

	out, err := execute(t, c, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "[log]")
	assert.Contains(t, out, "level = 'info'")
}
