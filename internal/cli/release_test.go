package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipway-dev/slipway/internal/domain"
	"github.com/slipway-dev/slipway/internal/testutil"
)

func TestReleaseCommand_AppliesPlan(t *testing.T) {
	history := &testutil.MockHistory{
		Commits: []domain.Commit{
			{SHA: "c1000000", Message: "feat: add endpoint", Paths: []string{"services/api/a.go"}, ParentCount: 1},
		},
		Tags: []domain.Tag{
			{Name: "api-v1.0.0", SHA: "t1000000", Timestamp: time.Now().Add(-time.Hour)},
		},
	}
	c := testContainer(singlePackageConfig(), history)
	tagger := c.Tagger.(*testutil.MockTagger)

	out, err := execute(t, c, "release")

	require.NoError(t, err)
	assert.Contains(t, out, "released api 1.1.0 (api-v1.1.0)")
	assert.Equal(t, []string{"api-v1.1.0"}, tagger.Created)
}

func TestReleaseCommand_DryRunCreatesNoTags(t *testing.T) {
	history := &testutil.MockHistory{
		Commits: []domain.Commit{
			{SHA: "c1000000", Message: "fix: oops", Paths: []string{"services/api/a.go"}, ParentCount: 1},
		},
	}
	c := testContainer(singlePackageConfig(), history)
	tagger := c.Tagger.(*testutil.MockTagger)

	out, err := execute(t, c, "release", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "would release api 0.0.1")
	assert.Empty(t, tagger.Created)
}

func TestReleaseCommand_NothingToRelease(t *testing.T) {
	c := testContainer(singlePackageConfig(), &testutil.MockHistory{})

	out, err := execute(t, c, "release")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to release.")
}

func TestLatestCommand_ShowsReleases(t *testing.T) {
	history := &testutil.MockHistory{
		Tags: []domain.Tag{
			{Name: "api-v1.2.0", SHA: "t1000000", Timestamp: time.Now()},
		},
	}
	c := testContainer(singlePackageConfig(), history)

	out, err := execute(t, c, "latest")

	require.NoError(t, err)
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "1.2.0")
	assert.Contains(t, out, "api-v1.2.0")
}

func TestLatestCommand_Unreleased(t *testing.T) {
	c := testContainer(singlePackageConfig(), &testutil.MockHistory{})

	out, err := execute(t, c, "latest", "api")

	require.NoError(t, err)
	assert.Contains(t, out, "unreleased")
}
