package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/relo/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the bundle output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Archive: all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove the zip archive")

	return cmd
}
