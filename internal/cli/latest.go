package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/slipway-dev/slipway/internal/app"
	"github.com/slipway-dev/slipway/internal/usecase"
	"github.com/spf13/cobra"
)

// newLatestCommand creates the latest command.
func newLatestCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest [package]",
		Short: "Show the current release of each package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLatestInput{}
			if len(args) == 1 {
				in.Package = args[0]
			}
			out, err := c.ShowLatestUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, headerStyle.Render("PACKAGE")+"\t"+
				headerStyle.Render("VERSION")+"\t"+
				headerStyle.Render("TAG"))
			for _, rel := range out.Releases {
				if rel.Tag == nil {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", rel.Package, dimStyle.Render("unreleased"), "-")
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", rel.Package, rel.Tag.Version.String(), rel.Tag.Name)
			}
			return tw.Flush()
		},
	}
	return cmd
}
