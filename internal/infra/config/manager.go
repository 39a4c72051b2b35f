package config

import (
	"os"
	"path/filepath"

	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager creates and inspects configuration files.
type Manager struct {
	repoRoot string
}

// NewManager creates a new Manager.
func NewManager(repoRoot string) *Manager {
	return &Manager{repoRoot: repoRoot}
}

// RepoConfigPath returns the repository config file path.
func (m *Manager) RepoConfigPath() string {
	return filepath.Join(m.repoRoot, domain.RepoConfigFileName)
}

// InitRepoConfig writes a commented starter config to the repository root.
// Returns ErrConfigExists unless force is set.
func (m *Manager) InitRepoConfig(force bool) (string, error) {
	path := m.RepoConfigPath()
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", domain.ErrConfigExists
		}
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0600); err != nil {
		return "", err
	}
	return path, nil
}

const starterConfig = `# slipway release configuration.
# Each [[packages]] entry is an independently versioned release unit.

[[packages]]
name = "app"
path = "."
tag_prefix = "v"
# initial_version = "0.1.0"
# additional_paths = ["shared/proto"]
# version_files = [{ path = "VERSION", pattern = '(?P<version>\d+\.\d+\.\d+\S*)' }]

# Grouped sub-packages share the parent's version and tag:
# sub_packages = [{ name = "web", path = "app/web" }]

# [increment]
# breaking_always_increment_major = true
# features_always_increment_minor = true
# custom_major_increment_regex = ""
# custom_minor_increment_regex = ""

# Enable prerelease versioning globally or per package:
# [prerelease]
# suffix = "alpha"
# strategy = "versioned"  # or "static"

[commits]
# skip = ["abc1234"]
# reword = { "abc1234" = "fix: corrected message" }
# exclude_types = ["chore", "ci"]
# first_release_search_depth = 200
# include_merge_commits = false

[changelog]
# template = ""
# disable = false

[log]
level = "info"
`
