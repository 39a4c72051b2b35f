package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/slipway-dev/slipway/internal/app"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		Long: `Print the effective configuration after merging defaults, the global
config file, and the repository config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("# "+c.ConfigManager.RepoConfigPath()))
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	return cmd
}
