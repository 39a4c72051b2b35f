package cli

import (
	"fmt"

	"github.com/slipway-dev/slipway/internal/app"
	"github.com/slipway-dev/slipway/internal/usecase"
	"github.com/spf13/cobra"
)

// newPlanCommand creates the plan command.
func newPlanCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format   string
		Packages []string
	}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the next release for each package",
		Long: `Compute what the next release of each configured package would be,
without touching the repository.

Examples:
  # Plan every package
  slipway plan

  # Plan selected packages, machine-readable
  slipway plan --package api --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.PlanReleasesUseCase().Execute(cmd.Context(), usecase.PlanReleasesInput{
				Packages: opts.Packages,
			})
			if err != nil {
				return err
			}

			switch opts.Format {
			case "table":
				return renderPlanTable(cmd.OutOrStdout(), plan)
			case "json":
				return writeJSON(cmd.OutOrStdout(), buildPlanDoc(plan))
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), buildPlanDoc(plan))
			default:
				return fmt.Errorf("unknown format %q (want table, json, or yaml)", opts.Format)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, or yaml")
	cmd.Flags().StringSliceVarP(&opts.Packages, "package", "p", nil, "Plan only the named packages (repeatable)")
	return cmd
}
