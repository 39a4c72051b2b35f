package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/slipway-dev/slipway/internal/domain"
	"github.com/slipway-dev/slipway/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowLatest_Execute_PicksGreatestVersionPerPackage(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Packages = []domain.PackageConfig{
		{Name: "api", Path: "api", TagPrefix: "api-v"},
		{Name: "worker", Path: "worker", TagPrefix: "worker-v"},
	}
	history := &testutil.MockHistory{
		Tags: []domain.Tag{
			{Name: "api-v1.0.0", SHA: "s1", Timestamp: time.Now().Add(-2 * time.Hour)},
			{Name: "api-v1.2.0", SHA: "s2", Timestamp: time.Now().Add(-time.Hour)},
			{Name: "worker-v0.3.0", SHA: "s3", Timestamp: time.Now()},
		},
	}
	uc := NewShowLatest(history, cfg)

	out, err := uc.Execute(context.Background(), ShowLatestInput{})

	require.NoError(t, err)
	require.Len(t, out.Releases, 2)
	assert.Equal(t, "api", out.Releases[0].Package)
	require.NotNil(t, out.Releases[0].Tag)
	assert.Equal(t, "api-v1.2.0", out.Releases[0].Tag.Name)
	assert.Equal(t, "worker", out.Releases[1].Package)
	require.NotNil(t, out.Releases[1].Tag)
	assert.Equal(t, "worker-v0.3.0", out.Releases[1].Tag.Name)
}

func TestShowLatest_Execute_NeverReleased(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Packages = []domain.PackageConfig{{Name: "api", Path: "api", TagPrefix: "api-v"}}
	uc := NewShowLatest(&testutil.MockHistory{}, cfg)

	out, err := uc.Execute(context.Background(), ShowLatestInput{})

	require.NoError(t, err)
	require.Len(t, out.Releases, 1)
	assert.Nil(t, out.Releases[0].Tag)
}

func TestShowLatest_Execute_SinglePackage(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Packages = []domain.PackageConfig{
		{Name: "api", Path: "api", TagPrefix: "api-v"},
		{Name: "worker", Path: "worker", TagPrefix: "worker-v"},
	}
	history := &testutil.MockHistory{
		Tags: []domain.Tag{
			{Name: "worker-v0.3.0", SHA: "s1", Timestamp: time.Now()},
		},
	}
	uc := NewShowLatest(history, cfg)

	out, err := uc.Execute(context.Background(), ShowLatestInput{Package: "worker"})

	require.NoError(t, err)
	require.Len(t, out.Releases, 1)
	assert.Equal(t, "worker", out.Releases[0].Package)
}

func TestShowLatest_Execute_UnknownPackage(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Packages = []domain.PackageConfig{{Name: "api", Path: "api"}}
	uc := NewShowLatest(&testutil.MockHistory{}, cfg)

	_, err := uc.Execute(context.Background(), ShowLatestInput{Package: "nope"})

	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestShowLatest_Execute_AmbiguousTags(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cfg := domain.NewDefaultConfig()
	cfg.Packages = []domain.PackageConfig{{Name: "api", Path: "api", TagPrefix: "api-v"}}
	history := &testutil.MockHistory{
		Tags: []domain.Tag{
			{Name: "api-v1.0.0", SHA: "s1", Timestamp: ts},
			{Name: "api-v1.0.0+dup", SHA: "s2", Timestamp: ts},
		},
	}
	uc := NewShowLatest(history, cfg)

	_, err := uc.Execute(context.Background(), ShowLatestInput{})

	var ambErr *domain.AmbiguousTagError
	assert.ErrorAs(t, err, &ambErr)
}
