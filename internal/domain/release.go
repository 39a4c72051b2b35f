package domain

// ReleaseCandidate is the planning outcome for one package group. Sub-package
// projections carry the identical next version for per-path manifest routing.
// Fields are ordered to minimize memory padding.
type ReleaseCandidate struct {
	Package     *PackageConfig
	PriorTag    *Tag // nil for a first release
	NextVersion Version
	TagName     string
	Bump        Bump
	Commits     []ClassifiedCommit // attributed, qualifying commits, source order
	SubReleases []SubRelease
	Breaking    bool
}

// SubRelease is the per-sub-package projection of a group release.
type SubRelease struct {
	Name    string
	Path    string // resolved repository-relative path
	Version Version
}

// SkippedPackage records a package excluded from the actionable plan because
// no qualifying commits remained. This is a normal outcome, not an error.
type SkippedPackage struct {
	Name   string
	Reason string
}

// PackageFailure records a package whose planning failed. Failures never
// abort planning for unrelated packages.
type PackageFailure struct {
	Name string
	Err  error
}

// Plan is the ordered release plan for one run. Candidates are sorted by
// package path so output is reproducible across runs.
type Plan struct {
	Candidates []ReleaseCandidate
	Skipped    []SkippedPackage
	Failures   []PackageFailure
}

// HasWork reports whether any package is releasable.
func (p *Plan) HasWork() bool {
	return len(p.Candidates) > 0
}
