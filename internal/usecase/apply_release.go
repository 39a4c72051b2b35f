package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slipway-dev/slipway/internal/domain"
)

// ApplyReleaseInput contains the parameters for applying a plan.
type ApplyReleaseInput struct {
	Plan    *domain.Plan
	DryRun  bool // report what would happen without touching anything
	Publish bool // additionally create forge releases
}

// AppliedRelease reports what was done for one releasable package.
type AppliedRelease struct {
	Package       string
	Version       string
	Tag           string
	ChangedFiles  []string
	ChangelogPath string
	Published     bool
}

// ApplyReleaseOutput contains the result of applying a plan.
type ApplyReleaseOutput struct {
	Applied  []AppliedRelease
	Failures []domain.PackageFailure
}

// ApplyRelease consumes a computed plan and performs the mutating side of a
// release: manifest patches, changelog updates, tag creation, and optional
// forge publication. All side effects live here; the planning engine stays
// pure.
type ApplyRelease struct {
	manifests domain.ManifestUpdater
	renderer  domain.ChangelogRenderer
	changelog domain.ChangelogWriter
	tagger    domain.Tagger
	publisher domain.Publisher // nil when publishing is not configured
	clock     domain.Clock
	config    *domain.Config
	logger    *slog.Logger
}

// NewApplyRelease creates a new ApplyRelease use case.
func NewApplyRelease(
	manifests domain.ManifestUpdater,
	renderer domain.ChangelogRenderer,
	changelog domain.ChangelogWriter,
	tagger domain.Tagger,
	publisher domain.Publisher,
	clock domain.Clock,
	config *domain.Config,
	logger *slog.Logger,
) *ApplyRelease {
	return &ApplyRelease{
		manifests: manifests,
		renderer:  renderer,
		changelog: changelog,
		tagger:    tagger,
		publisher: publisher,
		clock:     clock,
		config:    config,
		logger:    logger,
	}
}

// Execute applies every candidate in the plan. A failure for one package is
// recorded and does not abort the others.
func (uc *ApplyRelease) Execute(ctx context.Context, in ApplyReleaseInput) (*ApplyReleaseOutput, error) {
	if in.Publish && uc.publisher == nil {
		return nil, fmt.Errorf("publishing requested but no publisher is configured")
	}

	out := &ApplyReleaseOutput{}
	for i := range in.Plan.Candidates {
		rc := &in.Plan.Candidates[i]
		applied, err := uc.applyOne(ctx, rc, in)
		if err != nil {
			out.Failures = append(out.Failures, domain.PackageFailure{Name: rc.Package.Name, Err: err})
			continue
		}
		out.Applied = append(out.Applied, applied)
	}
	return out, nil
}

func (uc *ApplyRelease) applyOne(ctx context.Context, rc *domain.ReleaseCandidate, in ApplyReleaseInput) (AppliedRelease, error) {
	applied := AppliedRelease{
		Package: rc.Package.Name,
		Version: rc.NextVersion.String(),
		Tag:     rc.TagName,
	}
	if in.DryRun {
		return applied, nil
	}

	oldVersion := ""
	if rc.PriorTag != nil {
		oldVersion = rc.PriorTag.Version.String()
	}

	// Parent package first, then each sub-package path with the shared version.
	updates := []domain.ManifestUpdate{{
		Package:    rc.Package.Name,
		Path:       rc.Package.FullPath(),
		Rules:      rc.Package.VersionFiles,
		OldVersion: oldVersion,
		NewVersion: rc.NextVersion.String(),
	}}
	for _, sub := range rc.SubReleases {
		updates = append(updates, domain.ManifestUpdate{
			Package:    rc.Package.Name + "/" + sub.Name,
			Path:       sub.Path,
			Rules:      rc.Package.VersionFiles,
			OldVersion: oldVersion,
			NewVersion: sub.Version.String(),
		})
	}
	for _, u := range updates {
		changed, err := uc.manifests.Apply(u)
		if err != nil {
			return applied, fmt.Errorf("update manifests for %s: %w", u.Package, err)
		}
		applied.ChangedFiles = append(applied.ChangedFiles, changed...)
	}

	notes := ""
	if !uc.config.Changelog.Disable {
		text, err := uc.renderer.Render(rc, uc.clock.Now())
		if err != nil {
			return applied, fmt.Errorf("render changelog: %w", err)
		}
		path, err := uc.changelog.Prepend(rc.Package.FullPath(), text)
		if err != nil {
			return applied, fmt.Errorf("write changelog: %w", err)
		}
		applied.ChangelogPath = path
		notes = text
	}

	tagMessage := fmt.Sprintf("%s %s", rc.Package.Name, rc.NextVersion.String())
	if err := uc.tagger.CreateTag(ctx, rc.TagName, tagMessage); err != nil {
		return applied, fmt.Errorf("create tag %s: %w", rc.TagName, err)
	}
	uc.info("tagged release", "package", rc.Package.Name, "tag", rc.TagName)

	if in.Publish {
		title := fmt.Sprintf("%s %s", rc.Package.Name, rc.NextVersion.String())
		if err := uc.publisher.CreateRelease(ctx, rc.TagName, title, notes); err != nil {
			return applied, fmt.Errorf("publish release %s: %w", rc.TagName, err)
		}
		applied.Published = true
	}
	return applied, nil
}

func (uc *ApplyRelease) info(msg string, args ...any) {
	if uc.logger != nil {
		uc.logger.Info(msg, args...)
	}
}
