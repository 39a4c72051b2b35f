// Package config provides configuration loading and initialization.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	repoRoot      string // Path to the repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/slipway)
}

// NewLoader creates a new Loader.
func NewLoader(repoRoot string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(repoRoot, globalConfDir string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, domain.GlobalConfigDirName)
}

// Load returns the merged configuration: defaults <- global <- repo, with the
// repository config taking precedence.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.LoadRepo()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.GlobalConfigFileName))
}

// LoadRepo returns only the repository configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.repoRoot, domain.RepoConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs merges two configs, with override taking precedence. Packages
// are replaced wholesale when the override defines any; the remaining sections
// merge field by field.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base

	if len(override.Packages) > 0 {
		result.Packages = override.Packages
	}

	if override.Increment.BreakingAlwaysIncrementMajor != nil {
		result.Increment.BreakingAlwaysIncrementMajor = override.Increment.BreakingAlwaysIncrementMajor
	}
	if override.Increment.FeaturesAlwaysIncrementMinor != nil {
		result.Increment.FeaturesAlwaysIncrementMinor = override.Increment.FeaturesAlwaysIncrementMinor
	}
	if override.Increment.CustomMajorIncrementRegex != "" {
		result.Increment.CustomMajorIncrementRegex = override.Increment.CustomMajorIncrementRegex
	}
	if override.Increment.CustomMinorIncrementRegex != "" {
		result.Increment.CustomMinorIncrementRegex = override.Increment.CustomMinorIncrementRegex
	}

	if override.Prerelease != nil {
		result.Prerelease = override.Prerelease
	}

	if len(override.Commits.Skip) > 0 {
		result.Commits.Skip = override.Commits.Skip
	}
	if len(override.Commits.Reword) > 0 {
		result.Commits.Reword = override.Commits.Reword
	}
	if len(override.Commits.ExcludeTypes) > 0 {
		result.Commits.ExcludeTypes = override.Commits.ExcludeTypes
	}
	if override.Commits.FirstReleaseSearchDepth != 0 {
		result.Commits.FirstReleaseSearchDepth = override.Commits.FirstReleaseSearchDepth
	}
	if override.Commits.IncludeMergeCommits {
		result.Commits.IncludeMergeCommits = true
	}

	if override.Changelog.Template != "" {
		result.Changelog.Template = override.Changelog.Template
	}
	if override.Changelog.Disable {
		result.Changelog.Disable = true
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return &result
}
