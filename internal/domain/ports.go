package domain

import (
	"context"
	"time"
)

// CommitSource supplies materialized, ordered commit history. Implementations
// own pagination, retries, and auth; the engine only consumes completed
// value collections. Commits are returned newest-first.
type CommitSource interface {
	// FetchCommits returns commits reachable from HEAD within the range:
	// down to, but excluding, rng.SinceTag when set, otherwise bounded by
	// rng.Depth (0 = unbounded).
	FetchCommits(ctx context.Context, rng CommitRange) ([]Commit, error)
}

// TagSource lists repository tags with their target commit and timestamp.
// Version parsing against package prefixes happens in the engine.
type TagSource interface {
	FetchTags(ctx context.Context) ([]Tag, error)
}

// Tagger creates release tags. Used by the apply path, never by planning.
type Tagger interface {
	CreateTag(ctx context.Context, name, message string) error
}

// ManifestUpdater patches version strings in package manifest files.
type ManifestUpdater interface {
	// Apply patches the version files for one release unit and returns the
	// list of files it changed.
	Apply(update ManifestUpdate) ([]string, error)
}

// ManifestUpdate is the input handed to a manifest updater per releasable
// package or sub-package. The updater never sees version calculation.
type ManifestUpdate struct {
	Package    string
	Path       string // resolved repository-relative package path
	Rules      []VersionFileRule
	OldVersion string // empty for a first release
	NewVersion string
}

// ChangelogRenderer turns structured release data into presentation text.
// The engine computes no markdown, URLs, or links.
type ChangelogRenderer interface {
	Render(rc *ReleaseCandidate, date time.Time) (string, error)
}

// ChangelogWriter persists rendered changelog text for a package.
type ChangelogWriter interface {
	// Prepend inserts rendered text at the top of the package changelog,
	// creating the file when absent. Returns the file path written.
	Prepend(pkgPath, text string) (string, error)
}

// Publisher creates releases and pull requests on a forge.
type Publisher interface {
	CreateRelease(ctx context.Context, tag, title, notes string) error
	CreatePR(ctx context.Context, opts CreatePROptions) error
}

// CreatePROptions configures pull request creation.
type CreatePROptions struct {
	Title  string
	Body   string
	Branch string
	Base   string
}

// ConfigLoader loads the merged configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + repo).
	Load() (*Config, error)
}

// ConfigManager creates and inspects configuration files.
type ConfigManager interface {
	// InitRepoConfig writes a commented starter config to the repository
	// root and returns its path. ErrConfigExists unless force is set.
	InitRepoConfig(force bool) (string, error)

	// RepoConfigPath returns the repository config file path.
	RepoConfigPath() string
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
