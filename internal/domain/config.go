package domain

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Config is the fully merged, immutable configuration for one planning run.
// Merging of files and flags happens in the infra layer; the engine only ever
// sees this resolved value.
// Fields are ordered to minimize memory padding.
type Config struct {
	Packages   []PackageConfig   `toml:"packages"`
	Increment  IncrementConfig   `toml:"increment"`
	Prerelease *PrereleaseConfig `toml:"prerelease,omitempty"`
	Commits    CommitsConfig     `toml:"commits"`
	Changelog  ChangelogConfig   `toml:"changelog"`
	Log        LogConfig         `toml:"log"`
}

// PackageConfig describes one independently versioned release unit.
type PackageConfig struct {
	Name            string            `toml:"name"`
	Path            string            `toml:"path"`
	WorkspaceRoot   string            `toml:"workspace_root,omitempty"`
	TagPrefix       string            `toml:"tag_prefix,omitempty"`
	InitialVersion  string            `toml:"initial_version,omitempty"`
	AdditionalPaths []string          `toml:"additional_paths,omitempty"`
	SubPackages     []SubPackage      `toml:"sub_packages,omitempty"`
	VersionFiles    []VersionFileRule `toml:"version_files,omitempty"`
	Increment       *IncrementConfig  `toml:"increment,omitempty"`
	Prerelease      *PrereleaseConfig `toml:"prerelease,omitempty"`
}

// SubPackage is a grouped sub-package sharing its parent's version and tag.
type SubPackage struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// VersionFileRule tells the manifest updater which file to patch and how.
// Pattern must contain a (?P<version>...) named capture group.
type VersionFileRule struct {
	Path    string `toml:"path"`
	Pattern string `toml:"pattern"`
}

// IncrementConfig holds raw increment rule settings from the [increment]
// section or a per-package override. Nil pointers mean "inherit".
type IncrementConfig struct {
	BreakingAlwaysIncrementMajor *bool  `toml:"breaking_always_increment_major,omitempty"`
	FeaturesAlwaysIncrementMinor *bool  `toml:"features_always_increment_minor,omitempty"`
	CustomMajorIncrementRegex    string `toml:"custom_major_increment_regex,omitempty"`
	CustomMinorIncrementRegex    string `toml:"custom_minor_increment_regex,omitempty"`
}

// PrereleaseStrategy selects how prerelease identifiers evolve across releases.
type PrereleaseStrategy string

// Valid prerelease strategies.
const (
	StrategyVersioned PrereleaseStrategy = "versioned" // suffix with incrementing counter
	StrategyStatic    PrereleaseStrategy = "static"    // fixed suffix, no counter
)

// IsValid returns true if the strategy is a known value.
func (s PrereleaseStrategy) IsValid() bool {
	switch s {
	case StrategyVersioned, StrategyStatic:
		return true
	default:
		return false
	}
}

// PrereleaseConfig enables prerelease versioning for a package (or globally).
type PrereleaseConfig struct {
	Suffix   string             `toml:"suffix"`
	Strategy PrereleaseStrategy `toml:"strategy,omitempty"`
}

// CommitsConfig holds commit-level settings from the [commits] section.
type CommitsConfig struct {
	Skip                    []string          `toml:"skip,omitempty"`   // sha prefixes to drop entirely
	Reword                  map[string]string `toml:"reword,omitempty"` // sha prefix -> replacement message
	ExcludeTypes            []string          `toml:"exclude_types,omitempty"`
	FirstReleaseSearchDepth int               `toml:"first_release_search_depth,omitempty"` // 0 = unbounded
	IncludeMergeCommits     bool              `toml:"include_merge_commits,omitempty"`
}

// ChangelogConfig holds changelog rendering settings from the [changelog] section.
type ChangelogConfig struct {
	Template string `toml:"template,omitempty"` // custom text/template, empty = built-in
	Disable  bool   `toml:"disable,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// Default configuration values.
const (
	DefaultLogLevel           = "info"
	DefaultPrereleaseStrategy = StrategyVersioned
)

// Configuration file locations.
const (
	// RepoConfigFileName is the per-repository config file at the repo root.
	RepoConfigFileName = ".slipway.toml"
	// GlobalConfigFileName is the config file under the global config dir.
	GlobalConfigFileName = "config.toml"
	// GlobalConfigDirName is the directory under XDG_CONFIG_HOME.
	GlobalConfigDirName = "slipway"
)

// NewDefaultConfig returns a Config with default values and no packages.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Overrides returns the commit overrides resolved from this configuration.
func (c *Config) Overrides() Overrides {
	return Overrides{
		Skip:   c.Commits.Skip,
		Reword: c.Commits.Reword,
	}
}

// PackageByName returns the package configuration with the given name,
// or nil when absent.
func (c *Config) PackageByName(name string) *PackageConfig {
	for i := range c.Packages {
		if c.Packages[i].Name == name {
			return &c.Packages[i]
		}
	}
	return nil
}

// FullPath returns the slash-separated repository-relative root of the
// package: workspace_root joined with path. An empty or "." result means the
// package owns the repository root.
func (p *PackageConfig) FullPath() string {
	return NormalizePath(path.Join(p.WorkspaceRoot, p.Path))
}

// SubPackageFullPath resolves a sub-package path under the workspace root.
func (p *PackageConfig) SubPackageFullPath(sub SubPackage) string {
	return NormalizePath(path.Join(p.WorkspaceRoot, sub.Path))
}

// NormalizePath converts a file path to slash-separated, repository-relative
// form with no leading "./" or trailing "/".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean("/" + p)
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// Validate checks repository-level configuration invariants: at least one
// package, unique names, and no two release units claiming an identical
// resolved full path. Per-package rule and prerelease validation happens in
// ResolveRules and ResolvePrerelease.
func (c *Config) Validate() error {
	if len(c.Packages) == 0 {
		return ErrNoPackages
	}

	names := make(map[string]bool)
	paths := make(map[string]string) // full path -> owning package name
	for i := range c.Packages {
		pkg := &c.Packages[i]
		if pkg.Name == "" {
			return &ConfigError{Reason: "package name cannot be empty"}
		}
		if names[pkg.Name] {
			return &ConfigError{Package: pkg.Name, Reason: "duplicate package name"}
		}
		names[pkg.Name] = true

		full := pkg.FullPath()
		if owner, ok := paths[full]; ok {
			return &ConfigError{
				Package: pkg.Name,
				Reason:  fmt.Sprintf("path %q already claimed by package %q", full, owner),
			}
		}
		paths[full] = pkg.Name

		for _, sub := range pkg.SubPackages {
			if sub.Name == "" {
				return &ConfigError{Package: pkg.Name, Reason: "sub-package name cannot be empty"}
			}
			subFull := pkg.SubPackageFullPath(sub)
			if owner, ok := paths[subFull]; ok {
				return &ConfigError{
					Package: pkg.Name,
					Reason:  fmt.Sprintf("sub-package path %q already claimed by %q", subFull, owner),
				}
			}
			paths[subFull] = pkg.Name + "/" + sub.Name
		}

		if _, err := c.ResolvePrerelease(pkg); err != nil {
			return err
		}
		if _, err := c.ResolveRules(pkg); err != nil {
			return err
		}
		if pkg.InitialVersion != "" {
			if _, err := ParseVersion(pkg.InitialVersion); err != nil {
				return &ConfigError{Package: pkg.Name, Reason: "invalid initial_version", Err: err}
			}
		}
	}
	return nil
}

// IncrementRules are the per-package increment settings resolved once before
// planning, with custom trigger patterns already compiled.
// Fields are ordered to minimize memory padding.
type IncrementRules struct {
	MajorPattern            *regexp.Regexp
	MinorPattern            *regexp.Regexp
	ExcludeTypes            []CommitType
	BreakingIncrementsMajor bool
	FeaturesIncrementMinor  bool
	IncludeMergeCommits     bool
}

// ResolveRules merges the global increment settings with the package override
// and compiles custom patterns. A pattern that fails to compile is a
// ConfigError for that package.
func (c *Config) ResolveRules(pkg *PackageConfig) (IncrementRules, error) {
	rules := IncrementRules{
		BreakingIncrementsMajor: true,
		FeaturesIncrementMinor:  true,
		IncludeMergeCommits:     c.Commits.IncludeMergeCommits,
	}
	for _, t := range c.Commits.ExcludeTypes {
		rules.ExcludeTypes = append(rules.ExcludeTypes, CommitType(t))
	}

	apply := func(in *IncrementConfig) {
		if in == nil {
			return
		}
		if in.BreakingAlwaysIncrementMajor != nil {
			rules.BreakingIncrementsMajor = *in.BreakingAlwaysIncrementMajor
		}
		if in.FeaturesAlwaysIncrementMinor != nil {
			rules.FeaturesIncrementMinor = *in.FeaturesAlwaysIncrementMinor
		}
	}
	apply(&c.Increment)
	apply(pkg.Increment)

	majorExpr := c.Increment.CustomMajorIncrementRegex
	minorExpr := c.Increment.CustomMinorIncrementRegex
	if pkg.Increment != nil {
		if pkg.Increment.CustomMajorIncrementRegex != "" {
			majorExpr = pkg.Increment.CustomMajorIncrementRegex
		}
		if pkg.Increment.CustomMinorIncrementRegex != "" {
			minorExpr = pkg.Increment.CustomMinorIncrementRegex
		}
	}

	var err error
	if majorExpr != "" {
		if rules.MajorPattern, err = regexp.Compile(majorExpr); err != nil {
			return IncrementRules{}, &ConfigError{Package: pkg.Name, Reason: "invalid custom_major_increment_regex", Err: err}
		}
	}
	if minorExpr != "" {
		if rules.MinorPattern, err = regexp.Compile(minorExpr); err != nil {
			return IncrementRules{}, &ConfigError{Package: pkg.Name, Reason: "invalid custom_minor_increment_regex", Err: err}
		}
	}
	return rules, nil
}

// ResolvePrerelease returns the effective prerelease configuration for a
// package: package override wins over the global setting, absence means
// stable releases. The returned value has its strategy defaulted and
// validated.
func (c *Config) ResolvePrerelease(pkg *PackageConfig) (*PrereleaseConfig, error) {
	pre := c.Prerelease
	if pkg.Prerelease != nil {
		pre = pkg.Prerelease
	}
	if pre == nil {
		return nil, nil
	}
	if pre.Suffix == "" {
		return nil, &ConfigError{Package: pkg.Name, Reason: "prerelease suffix cannot be empty"}
	}
	resolved := *pre
	if resolved.Strategy == "" {
		resolved.Strategy = DefaultPrereleaseStrategy
	}
	if !resolved.Strategy.IsValid() {
		return nil, &ConfigError{
			Package: pkg.Name,
			Reason:  fmt.Sprintf("invalid prerelease strategy %q (want versioned or static)", resolved.Strategy),
		}
	}
	return &resolved, nil
}
