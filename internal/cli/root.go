// Package cli provides the command-line interface for slipway.
package cli

import (
	"github.com/slipway-dev/slipway/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupRelease = "release"
	groupSetup   = "setup"
)

// NewRootCommand creates the root command for slipway.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "slipway",
		Short: "Deterministic release planning for mono-repos",
		Long: `slipway computes the next release for every package in a repository
from its conventional-commit history: it finds each package's prior
release tag, attributes commits to packages by path, and derives the
next semantic version. Planning is read-only; 'slipway release'
applies the plan by patching manifests, writing changelogs, and
creating tags.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	planCmd := newPlanCommand(c)
	planCmd.GroupID = groupRelease

	releaseCmd := newReleaseCommand(c)
	releaseCmd.GroupID = groupRelease

	latestCmd := newLatestCommand(c)
	latestCmd.GroupID = groupRelease

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(planCmd, releaseCmd, latestCmd, initCmd, configCmd)
	return root
}
