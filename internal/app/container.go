// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"path/filepath"

	"github.com/slipway-dev/slipway/internal/domain"
	"github.com/slipway-dev/slipway/internal/infra/changelog"
	"github.com/slipway-dev/slipway/internal/infra/config"
	"github.com/slipway-dev/slipway/internal/infra/github"
	"github.com/slipway-dev/slipway/internal/infra/gitrepo"
	"github.com/slipway-dev/slipway/internal/infra/logging"
	"github.com/slipway-dev/slipway/internal/infra/manifest"
	"github.com/slipway-dev/slipway/internal/usecase"
)

// Paths holds the resolved filesystem locations for one repository.
type Paths struct {
	RepoRoot string // root directory of the git repository
	LogDir   string // .git/slipway/logs
}

// Container provides dependency injection for the application. It holds all
// port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Commits       domain.CommitSource
	Tags          domain.TagSource
	Tagger        domain.Tagger
	Manifests     domain.ManifestUpdater
	Renderer      domain.ChangelogRenderer
	Changelog     domain.ChangelogWriter
	Publisher     domain.Publisher // nil when the gh CLI is unavailable
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Clock         domain.Clock

	Logger *slog.Logger
	Config *domain.Config
	Paths  Paths

	logFile *logging.Logger // owned file logger, nil in tests
}

// New creates a new Container by detecting the git repository from the given
// directory and loading its configuration.
func New(dir string) (*Container, error) {
	repo, err := gitrepo.Open(dir)
	if err != nil {
		return nil, err
	}
	root := repo.Root()
	if root == "" {
		root = dir
	}

	loader := config.NewLoader(root)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	paths := Paths{
		RepoRoot: root,
		LogDir:   filepath.Join(root, ".git", "slipway", "logs"),
	}

	// Logging must not block a release; fall back to a discard logger when
	// the log directory cannot be created.
	logFile, err := logging.New(paths.LogDir, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		logFile = logging.Discard()
	}

	renderer, err := changelog.NewRenderer(cfg.Changelog.Template)
	if err != nil {
		return nil, err
	}

	var publisher domain.Publisher
	if github.Available() {
		publisher = github.NewPublisher(root)
	}

	return &Container{
		Commits:       repo,
		Tags:          repo,
		Tagger:        repo,
		Manifests:     manifest.NewUpdater(root),
		Renderer:      renderer,
		Changelog:     changelog.NewWriter(root),
		Publisher:     publisher,
		ConfigLoader:  loader,
		ConfigManager: config.NewManager(root),
		Clock:         domain.RealClock{},
		Logger:        logFile.Logger,
		Config:        cfg,
		Paths:         paths,
		logFile:       logFile,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(paths Paths, cfg *domain.Config, logger *slog.Logger) *Container {
	return &Container{
		Clock:  domain.RealClock{},
		Logger: logger,
		Config: cfg,
		Paths:  paths,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

// UseCase factory methods

// PlanReleasesUseCase returns a new PlanReleases use case.
func (c *Container) PlanReleasesUseCase() *usecase.PlanReleases {
	return usecase.NewPlanReleases(c.Commits, c.Tags, c.Config, c.Logger)
}

// ApplyReleaseUseCase returns a new ApplyRelease use case.
func (c *Container) ApplyReleaseUseCase() *usecase.ApplyRelease {
	return usecase.NewApplyRelease(c.Manifests, c.Renderer, c.Changelog, c.Tagger, c.Publisher, c.Clock, c.Config, c.Logger)
}

// ShowLatestUseCase returns a new ShowLatest use case.
func (c *Container) ShowLatestUseCase() *usecase.ShowLatest {
	return usecase.NewShowLatest(c.Tags, c.Config)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
