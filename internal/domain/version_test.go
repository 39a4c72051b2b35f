package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRules() IncrementRules {
	return IncrementRules{
		BreakingIncrementsMajor: true,
		FeaturesIncrementMinor:  true,
	}
}

func commitOfType(t *testing.T, sha, message string) ClassifiedCommit {
	t.Helper()
	cc, ok := Classify(Commit{SHA: sha, Message: message, ParentCount: 1}, Overrides{})
	require.True(t, ok)
	return cc
}

func priorTag(t *testing.T, version string) *Tag {
	t.Helper()
	v, err := ParseVersion(version)
	require.NoError(t, err)
	return &Tag{Name: "v" + version, Version: v}
}

func TestDecideBump_EmptySetNotReleasable(t *testing.T) {
	bump, qualifying := DecideBump(nil, defaultRules())

	assert.Equal(t, BumpNone, bump)
	assert.Empty(t, qualifying)
}

func TestDecideBump_PatchBaseline(t *testing.T) {
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "fix: null check"),
		commitOfType(t, "b000000", "docs: update readme"),
	}

	bump, qualifying := DecideBump(commits, defaultRules())

	assert.Equal(t, BumpPatch, bump)
	assert.Len(t, qualifying, 2)
}

func TestDecideBump_FeatureMinor(t *testing.T) {
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "fix: null check"),
		commitOfType(t, "b000000", "feat: pagination"),
	}

	bump, _ := DecideBump(commits, defaultRules())

	assert.Equal(t, BumpMinor, bump)
}

func TestDecideBump_BreakingMajor(t *testing.T) {
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "feat!: drop v1 endpoints"),
	}

	bump, _ := DecideBump(commits, defaultRules())

	assert.Equal(t, BumpMajor, bump)
}

func TestDecideBump_BreakingRuleDisabled(t *testing.T) {
	rules := defaultRules()
	rules.BreakingIncrementsMajor = false
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "fix!: behavior change"),
	}

	bump, _ := DecideBump(commits, rules)

	assert.Equal(t, BumpPatch, bump)
}

func TestDecideBump_CustomMajorPattern(t *testing.T) {
	rules := defaultRules()
	rules.MajorPattern = regexp.MustCompile(`\[api-break\]`)
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "chore: remove flag [api-break]"),
	}

	bump, _ := DecideBump(commits, rules)

	assert.Equal(t, BumpMajor, bump)
}

func TestDecideBump_CustomMinorPattern(t *testing.T) {
	rules := defaultRules()
	rules.MinorPattern = regexp.MustCompile(`(?m)^Feature:`)
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "chore: sync\n\nFeature: new importer"),
	}

	bump, _ := DecideBump(commits, rules)

	assert.Equal(t, BumpMinor, bump)
}

func TestDecideBump_CustomPatternsMatchRewordedText(t *testing.T) {
	rules := defaultRules()
	rules.MajorPattern = regexp.MustCompile(`\[api-break\]`)

	// A reword that introduces the marker must escalate.
	added, ok := Classify(
		Commit{SHA: "a000000000000000000000000000000000000000", Message: "fix: cache eviction", ParentCount: 1},
		Overrides{Reword: map[string]string{"a000000": "fix: cache eviction [api-break]"}},
	)
	require.True(t, ok)
	bump, _ := DecideBump([]ClassifiedCommit{added}, rules)
	assert.Equal(t, BumpMajor, bump)

	// A reword that removes the marker must not.
	removed, ok := Classify(
		Commit{SHA: "b000000000000000000000000000000000000000", Message: "fix: cache eviction [api-break]", ParentCount: 1},
		Overrides{Reword: map[string]string{"b000000": "fix: cache eviction"}},
	)
	require.True(t, ok)
	bump, _ = DecideBump([]ClassifiedCommit{removed}, rules)
	assert.Equal(t, BumpPatch, bump)
}

func TestDecideBump_MergeCommitsExcludedByDefault(t *testing.T) {
	merge, ok := Classify(Commit{SHA: "a000000", Message: "Merge branch 'x'", ParentCount: 2}, Overrides{})
	require.True(t, ok)

	bump, qualifying := DecideBump([]ClassifiedCommit{merge}, defaultRules())

	assert.Equal(t, BumpNone, bump)
	assert.Empty(t, qualifying)
}

func TestDecideBump_MergeCommitsIncludedWhenConfigured(t *testing.T) {
	rules := defaultRules()
	rules.IncludeMergeCommits = true
	merge, ok := Classify(Commit{SHA: "a000000", Message: "Merge branch 'x'", ParentCount: 2}, Overrides{})
	require.True(t, ok)

	bump, qualifying := DecideBump([]ClassifiedCommit{merge}, rules)

	assert.Equal(t, BumpPatch, bump)
	assert.Len(t, qualifying, 1)
}

func TestDecideBump_ExcludedTypes(t *testing.T) {
	rules := defaultRules()
	rules.ExcludeTypes = []CommitType{TypeChore, TypeCI}
	commits := []ClassifiedCommit{
		commitOfType(t, "a000000", "chore: tidy"),
		commitOfType(t, "b000000", "ci: cache deps"),
	}

	bump, qualifying := DecideBump(commits, rules)

	assert.Equal(t, BumpNone, bump)
	assert.Empty(t, qualifying)
}

func TestComputeNext_StablePatch(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}

	next := ComputeNext(pkg, priorTag(t, "2.3.1"), BumpPatch, nil)

	assert.Equal(t, "2.3.2", next.String())
}

func TestComputeNext_StableMinorResetsPatch(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}

	next := ComputeNext(pkg, priorTag(t, "2.3.1"), BumpMinor, nil)

	assert.Equal(t, "2.4.0", next.String())
}

func TestComputeNext_StableMajorResetsMinorPatch(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}

	next := ComputeNext(pkg, priorTag(t, "2.3.1"), BumpMajor, nil)

	assert.Equal(t, "3.0.0", next.String())
}

func TestComputeNext_FirstRelease(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}

	assert.Equal(t, "0.0.1", ComputeNext(pkg, nil, BumpPatch, nil).String())
	assert.Equal(t, "0.1.0", ComputeNext(pkg, nil, BumpMinor, nil).String())
	assert.Equal(t, "1.0.0", ComputeNext(pkg, nil, BumpMajor, nil).String())
}

func TestComputeNext_FirstReleaseInitialVersion(t *testing.T) {
	pkg := &PackageConfig{Name: "api", InitialVersion: "1.0.0"}

	next := ComputeNext(pkg, nil, BumpPatch, nil)

	assert.Equal(t, "1.0.0", next.String())
}

func TestComputeNext_PrereleaseContinuation(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "alpha", Strategy: StrategyVersioned}

	next := ComputeNext(pkg, priorTag(t, "1.1.0-alpha.2"), BumpPatch, pre)

	assert.Equal(t, "1.1.0-alpha.3", next.String())
}

func TestComputeNext_PrereleaseContinuationFirstCounter(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "alpha", Strategy: StrategyVersioned}

	// Prior tag carried the suffix but no counter; counting starts at 1.
	next := ComputeNext(pkg, priorTag(t, "1.1.0-alpha"), BumpPatch, pre)

	assert.Equal(t, "1.1.0-alpha.1", next.String())
}

func TestComputeNext_PrereleaseSwitchRecomputesBase(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "beta", Strategy: StrategyVersioned}

	next := ComputeNext(pkg, priorTag(t, "1.0.0-alpha.3"), BumpMinor, pre)

	assert.Equal(t, "1.1.0-beta.1", next.String())
}

func TestComputeNext_Graduation(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}

	next := ComputeNext(pkg, priorTag(t, "1.0.0-alpha.5"), BumpPatch, nil)

	assert.Equal(t, "1.0.0", next.String())
}

func TestComputeNext_GraduationEscalatesWhenBumpExceedsPending(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}

	// Pending 1.1.0 covers minor and patch changes but not a breaking one.
	next := ComputeNext(pkg, priorTag(t, "1.1.0-alpha.5"), BumpMajor, nil)

	assert.Equal(t, "2.0.0", next.String())
}

func TestComputeNext_ContinuationEscapesOnEscalation(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "alpha", Strategy: StrategyVersioned}

	// Pending 1.0.1 cannot absorb a minor change: fresh base, counter reset.
	next := ComputeNext(pkg, priorTag(t, "1.0.1-alpha.2"), BumpMinor, pre)

	assert.Equal(t, "1.1.0-alpha.1", next.String())
}

func TestComputeNext_StaticStrategyNoCounter(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "snapshot", Strategy: StrategyStatic}

	next := ComputeNext(pkg, priorTag(t, "1.2.0"), BumpMinor, pre)

	assert.Equal(t, "1.3.0-snapshot", next.String())
}

func TestComputeNext_FirstPrerelease(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "alpha", Strategy: StrategyVersioned}

	next := ComputeNext(pkg, priorTag(t, "1.0.0"), BumpMinor, pre)

	assert.Equal(t, "1.1.0-alpha.1", next.String())
}

func TestComputeNext_Monotonic(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	priors := []string{"0.0.1", "1.0.0", "1.2.3", "2.0.0-alpha.1", "3.4.5-rc.9"}
	bumps := []Bump{BumpPatch, BumpMinor, BumpMajor}

	for _, p := range priors {
		prior := priorTag(t, p)
		for _, b := range bumps {
			next := ComputeNext(pkg, prior, b, nil)
			assert.GreaterOrEqual(t, next.Base().Compare(prior.Version.Base()), 0,
				"prior %s bump %s", p, b)
		}
	}
}

func TestComputeNext_Deterministic(t *testing.T) {
	pkg := &PackageConfig{Name: "api"}
	pre := &PrereleaseConfig{Suffix: "alpha", Strategy: StrategyVersioned}
	prior := priorTag(t, "1.1.0-alpha.2")

	first := ComputeNext(pkg, prior, BumpPatch, pre)
	second := ComputeNext(pkg, prior, BumpPatch, pre)

	assert.Equal(t, first, second)
}
