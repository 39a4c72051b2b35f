package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/slipway-dev/slipway/internal/domain"
)

// ShowLatestInput contains the parameters for the latest-release query.
type ShowLatestInput struct {
	Package string // empty = all packages
}

// LatestRelease is the current release state of one package. Tag is nil when
// the package has never been released.
type LatestRelease struct {
	Package string
	Tag     *domain.Tag
}

// ShowLatestOutput contains the result of the latest-release query.
type ShowLatestOutput struct {
	Releases []LatestRelease
}

// ShowLatest reports each package's current release by echoing its matched
// prior tag. This is a read-only path: no version calculation happens here.
type ShowLatest struct {
	tags   domain.TagSource
	config *domain.Config
}

// NewShowLatest creates a new ShowLatest use case.
func NewShowLatest(tags domain.TagSource, config *domain.Config) *ShowLatest {
	return &ShowLatest{tags: tags, config: config}
}

// Execute resolves the latest release tag per requested package.
func (uc *ShowLatest) Execute(ctx context.Context, in ShowLatestInput) (*ShowLatestOutput, error) {
	var packages []*domain.PackageConfig
	if in.Package != "" {
		pkg := uc.config.PackageByName(in.Package)
		if pkg == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrPackageNotFound, in.Package)
		}
		packages = append(packages, pkg)
	} else {
		for i := range uc.config.Packages {
			packages = append(packages, &uc.config.Packages[i])
		}
	}

	tags, err := uc.tags.FetchTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}

	out := &ShowLatestOutput{}
	for _, pkg := range packages {
		prior, err := domain.LocatePriorTag(pkg, tags)
		if err != nil {
			return nil, err
		}
		out.Releases = append(out.Releases, LatestRelease{Package: pkg.Name, Tag: prior})
	}
	sort.Slice(out.Releases, func(a, b int) bool { return out.Releases[a].Package < out.Releases[b].Package })
	return out, nil
}
