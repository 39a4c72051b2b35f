// Package usecase implements the application operations of slipway.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/slipway-dev/slipway/internal/domain"
)

// PlanReleasesInput contains the parameters for planning.
type PlanReleasesInput struct {
	Packages []string // restrict planning to these package names (empty = all)
}

// PlanReleases builds the release plan: for every configured package it
// locates the prior release tag, pulls the commit window, classifies and
// attributes commits, and computes the next version. Planning performs no
// mutations; the same input always yields the same plan.
type PlanReleases struct {
	commits domain.CommitSource
	tags    domain.TagSource
	config  *domain.Config
	logger  *slog.Logger
}

// NewPlanReleases creates a new PlanReleases use case.
func NewPlanReleases(commits domain.CommitSource, tags domain.TagSource, config *domain.Config, logger *slog.Logger) *PlanReleases {
	return &PlanReleases{
		commits: commits,
		tags:    tags,
		config:  config,
		logger:  logger,
	}
}

// packageOutcome is the per-package planning result before aggregation.
type packageOutcome struct {
	candidate *domain.ReleaseCandidate
	skipped   *domain.SkippedPackage
	err       error
}

// Execute plans all requested packages. A failure for one package never
// aborts planning for the others; failures are aggregated on the plan.
func (uc *PlanReleases) Execute(ctx context.Context, in PlanReleasesInput) (*domain.Plan, error) {
	if err := uc.config.Validate(); err != nil {
		return nil, err
	}

	packages, err := uc.selectPackages(in.Packages)
	if err != nil {
		return nil, err
	}

	tags, err := uc.tags.FetchTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}

	// Packages are independent release units; plan them concurrently.
	// Each invocation works on its own immutable snapshot.
	outcomes := make([]packageOutcome, len(packages))
	var wg sync.WaitGroup
	for i, pkg := range packages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = uc.planPackage(ctx, pkg, tags)
		}()
	}
	wg.Wait()

	plan := &domain.Plan{}
	for i, out := range outcomes {
		switch {
		case out.err != nil:
			plan.Failures = append(plan.Failures, domain.PackageFailure{Name: packages[i].Name, Err: out.err})
		case out.skipped != nil:
			plan.Skipped = append(plan.Skipped, *out.skipped)
		case out.candidate != nil:
			plan.Candidates = append(plan.Candidates, *out.candidate)
		}
	}

	// Deterministic plan order: by resolved package path, then name.
	sort.Slice(plan.Candidates, func(a, b int) bool {
		pa, pb := plan.Candidates[a].Package, plan.Candidates[b].Package
		if pa.FullPath() != pb.FullPath() {
			return pa.FullPath() < pb.FullPath()
		}
		return pa.Name < pb.Name
	})
	sort.Slice(plan.Skipped, func(a, b int) bool { return plan.Skipped[a].Name < plan.Skipped[b].Name })
	sort.Slice(plan.Failures, func(a, b int) bool { return plan.Failures[a].Name < plan.Failures[b].Name })

	return plan, nil
}

// selectPackages resolves the requested package names against configuration.
func (uc *PlanReleases) selectPackages(names []string) ([]*domain.PackageConfig, error) {
	if len(names) == 0 {
		all := make([]*domain.PackageConfig, len(uc.config.Packages))
		for i := range uc.config.Packages {
			all[i] = &uc.config.Packages[i]
		}
		return all, nil
	}
	var selected []*domain.PackageConfig
	for _, name := range names {
		pkg := uc.config.PackageByName(name)
		if pkg == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrPackageNotFound, name)
		}
		selected = append(selected, pkg)
	}
	return selected, nil
}

// planPackage runs the full pipeline for one package group: cursor, fetch,
// classify, attribute, compute.
func (uc *PlanReleases) planPackage(ctx context.Context, pkg *domain.PackageConfig, tags []domain.Tag) packageOutcome {
	prior, err := domain.LocatePriorTag(pkg, tags)
	if err != nil {
		return packageOutcome{err: err}
	}

	rng := domain.Window(prior, uc.config.Commits.FirstReleaseSearchDepth)
	raw, err := uc.commits.FetchCommits(ctx, rng)
	if err != nil {
		return packageOutcome{err: fmt.Errorf("fetch commits: %w", err)}
	}
	uc.debug("fetched history", "package", pkg.Name, "commits", len(raw), "prior", tagName(prior))

	overrides := uc.config.Overrides()
	classified := make([]domain.ClassifiedCommit, 0, len(raw))
	for _, c := range raw {
		cc, ok := domain.Classify(c, overrides)
		if !ok {
			continue
		}
		classified = append(classified, cc)
	}

	// Attribution considers every configured package so nested path
	// ownership resolves the same way regardless of which package is
	// being planned.
	attribution := domain.Attribute(classified, uc.config.Packages)
	attributed := make([]domain.ClassifiedCommit, 0, len(classified))
	for _, cc := range classified {
		if attribution.Attributes(cc.SHA, pkg.Name) {
			attributed = append(attributed, cc)
		}
	}

	rules, err := uc.config.ResolveRules(pkg)
	if err != nil {
		return packageOutcome{err: err}
	}
	bump, qualifying := domain.DecideBump(attributed, rules)
	if bump == domain.BumpNone {
		return packageOutcome{skipped: &domain.SkippedPackage{
			Name:   pkg.Name,
			Reason: "no qualifying commits since last release",
		}}
	}

	pre, err := uc.config.ResolvePrerelease(pkg)
	if err != nil {
		return packageOutcome{err: err}
	}
	next := domain.ComputeNext(pkg, prior, bump, pre)
	uc.debug("computed next version", "package", pkg.Name, "bump", bump.String(), "version", next.String())

	candidate := &domain.ReleaseCandidate{
		Package:     pkg,
		PriorTag:    prior,
		NextVersion: next,
		TagName:     pkg.TagPrefix + next.String(),
		Bump:        bump,
		Commits:     qualifying,
	}
	for _, cc := range qualifying {
		if cc.Breaking {
			candidate.Breaking = true
			break
		}
	}
	for _, sub := range pkg.SubPackages {
		candidate.SubReleases = append(candidate.SubReleases, domain.SubRelease{
			Name:    sub.Name,
			Path:    pkg.SubPackageFullPath(sub),
			Version: next,
		})
	}
	return packageOutcome{candidate: candidate}
}

func (uc *PlanReleases) debug(msg string, args ...any) {
	if uc.logger != nil {
		uc.logger.Debug(msg, args...)
	}
}

func tagName(t *domain.Tag) string {
	if t == nil {
		return "(none)"
	}
	return t.Name
}
