package cli

import (
	"fmt"

	"github.com/slipway-dev/slipway/internal/app"
	"github.com/slipway-dev/slipway/internal/usecase"
	"github.com/spf13/cobra"
)

// newReleaseCommand creates the release command.
func newReleaseCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Packages []string
		DryRun   bool
		Publish  bool
	}

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Apply the release plan: patch manifests, write changelogs, create tags",
		Long: `Plan and apply releases in one step. For every releasable package this
patches its version files, prepends the rendered notes to its
changelog, and creates the release tag.

Examples:
  # Release everything with pending changes
  slipway release

  # Show what would happen without touching the repository
  slipway release --dry-run

  # Also create GitHub releases through the gh CLI
  slipway release --publish`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.PlanReleasesUseCase().Execute(cmd.Context(), usecase.PlanReleasesInput{
				Packages: opts.Packages,
			})
			if err != nil {
				return err
			}
			if !plan.HasWork() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to release.")
				return nil
			}

			out, err := c.ApplyReleaseUseCase().Execute(cmd.Context(), usecase.ApplyReleaseInput{
				Plan:    plan,
				DryRun:  opts.DryRun,
				Publish: opts.Publish,
			})
			if err != nil {
				return err
			}

			renderApplied(cmd.OutOrStdout(), out, opts.DryRun)
			failed := len(plan.Failures) + len(out.Failures)
			if failed > 0 {
				return fmt.Errorf("%d package(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Packages, "package", "p", nil, "Release only the named packages (repeatable)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Report what would happen without applying")
	cmd.Flags().BoolVar(&opts.Publish, "publish", false, "Also create forge releases via the gh CLI")
	return cmd
}
