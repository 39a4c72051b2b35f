package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagAt(name, sha string, ts time.Time) Tag {
	return Tag{Name: name, SHA: sha, Timestamp: ts}
}

func TestLocatePriorTag_GreatestVersionWins(t *testing.T) {
	pkg := &PackageConfig{Name: "api", TagPrefix: "api-v"}
	now := time.Now()
	tags := []Tag{
		tagAt("api-v1.0.0", "a1", now.Add(-3*time.Hour)),
		tagAt("api-v1.2.0", "a2", now.Add(-1*time.Hour)),
		tagAt("api-v1.1.9", "a3", now.Add(-2*time.Hour)),
	}

	prior, err := LocatePriorTag(pkg, tags)

	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, "api-v1.2.0", prior.Name)
	assert.Equal(t, Version{Major: 1, Minor: 2}, prior.Version)
}

func TestLocatePriorTag_PrefixScopesTags(t *testing.T) {
	pkg := &PackageConfig{Name: "api", TagPrefix: "api-v"}
	now := time.Now()
	tags := []Tag{
		tagAt("worker-v9.9.9", "w1", now),
		tagAt("v3.0.0", "r1", now),
		tagAt("api-v0.1.0", "a1", now),
	}

	prior, err := LocatePriorTag(pkg, tags)

	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, "api-v0.1.0", prior.Name)
}

func TestLocatePriorTag_NoMatch(t *testing.T) {
	pkg := &PackageConfig{Name: "api", TagPrefix: "api-v"}
	tags := []Tag{tagAt("v1.0.0", "r1", time.Now()), tagAt("api-vNext", "r2", time.Now())}

	prior, err := LocatePriorTag(pkg, tags)

	require.NoError(t, err)
	assert.Nil(t, prior)
}

func TestLocatePriorTag_PrereleaseSortsBelowStable(t *testing.T) {
	pkg := &PackageConfig{Name: "api", TagPrefix: "v"}
	now := time.Now()
	tags := []Tag{
		tagAt("v1.2.0-rc.3", "a1", now),
		tagAt("v1.2.0", "a2", now.Add(-time.Hour)),
	}

	prior, err := LocatePriorTag(pkg, tags)

	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, "v1.2.0", prior.Name)
}

func TestLocatePriorTag_EqualVersionLatestTimestampWins(t *testing.T) {
	pkg := &PackageConfig{Name: "api", TagPrefix: "v"}
	now := time.Now()
	tags := []Tag{
		tagAt("v1.0.0", "old", now.Add(-time.Hour)),
		tagAt("v1.0.0+rebuild", "new", now),
	}

	prior, err := LocatePriorTag(pkg, tags)

	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, "new", prior.SHA)
}

func TestLocatePriorTag_UnresolvedTieIsAmbiguous(t *testing.T) {
	pkg := &PackageConfig{Name: "api", TagPrefix: "v"}
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tags := []Tag{
		tagAt("v1.0.0", "s1", ts),
		tagAt("v1.0.0+other", "s2", ts),
	}

	_, err := LocatePriorTag(pkg, tags)

	var ambErr *AmbiguousTagError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, "api", ambErr.Package)
	assert.Len(t, ambErr.Tags, 2)
}

func TestWindow_WithPriorTag(t *testing.T) {
	prior := &Tag{Name: "v1.0.0", SHA: "abc"}

	rng := Window(prior, 500)

	assert.Equal(t, prior, rng.SinceTag)
	assert.Zero(t, rng.Depth)
}

func TestWindow_FirstReleaseBoundedByDepth(t *testing.T) {
	rng := Window(nil, 500)

	assert.Nil(t, rng.SinceTag)
	assert.Equal(t, 500, rng.Depth)
}

func TestWindow_FirstReleaseUnbounded(t *testing.T) {
	rng := Window(nil, 0)

	assert.Nil(t, rng.SinceTag)
	assert.Zero(t, rng.Depth)
}
