// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/slipway-dev/slipway/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockHistory is a test double for domain.CommitSource and domain.TagSource
// backed by in-memory slices. Commits must be ordered newest-first, matching
// the real source.
type MockHistory struct {
	Commits    []domain.Commit
	Tags       []domain.Tag
	CommitsErr error
	TagsErr    error
}

// FetchCommits returns commits honoring the requested range: down to but
// excluding the SinceTag commit, or the first Depth commits.
func (m *MockHistory) FetchCommits(_ context.Context, rng domain.CommitRange) ([]domain.Commit, error) {
	if m.CommitsErr != nil {
		return nil, m.CommitsErr
	}
	if rng.SinceTag != nil {
		var out []domain.Commit
		for _, c := range m.Commits {
			if c.SHA == rng.SinceTag.SHA {
				return out, nil
			}
			out = append(out, c)
		}
		return out, nil
	}
	if rng.Depth > 0 && rng.Depth < len(m.Commits) {
		return m.Commits[:rng.Depth], nil
	}
	return m.Commits, nil
}

// FetchTags returns the configured tags.
func (m *MockHistory) FetchTags(_ context.Context) ([]domain.Tag, error) {
	if m.TagsErr != nil {
		return nil, m.TagsErr
	}
	return m.Tags, nil
}

// MockTagger is a test double for domain.Tagger recording created tags.
type MockTagger struct {
	Created []string
	Err     error
}

// CreateTag records the tag name.
func (m *MockTagger) CreateTag(_ context.Context, name, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = append(m.Created, name)
	return nil
}

// MockManifestUpdater is a test double for domain.ManifestUpdater.
type MockManifestUpdater struct {
	Updates []domain.ManifestUpdate
	Changed []string
	Err     error
}

// Apply records the update and returns the configured change list.
func (m *MockManifestUpdater) Apply(update domain.ManifestUpdate) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Updates = append(m.Updates, update)
	return m.Changed, nil
}

// MockChangelogRenderer is a test double for domain.ChangelogRenderer.
type MockChangelogRenderer struct {
	Text string
	Err  error
}

// Render returns the configured text.
func (m *MockChangelogRenderer) Render(_ *domain.ReleaseCandidate, _ time.Time) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockChangelogWriter is a test double for domain.ChangelogWriter.
type MockChangelogWriter struct {
	Written map[string]string // package path -> text
	Err     error
}

// Prepend records the written text keyed by package path.
func (m *MockChangelogWriter) Prepend(pkgPath, text string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Written == nil {
		m.Written = make(map[string]string)
	}
	m.Written[pkgPath] = text
	return pkgPath + "/CHANGELOG.md", nil
}

// MockPublisher is a test double for domain.Publisher.
type MockPublisher struct {
	Releases []string
	PRs      []domain.CreatePROptions
	Err      error
}

// CreateRelease records the release tag.
func (m *MockPublisher) CreateRelease(_ context.Context, tag, _, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Releases = append(m.Releases, tag)
	return nil
}

// CreatePR records the PR options.
func (m *MockPublisher) CreatePR(_ context.Context, opts domain.CreatePROptions) error {
	if m.Err != nil {
		return m.Err
	}
	m.PRs = append(m.PRs, opts)
	return nil
}
