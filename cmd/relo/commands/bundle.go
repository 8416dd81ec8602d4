package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/relo/internal/app"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Copy the configured executables and their library closures into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noArchive, _ := cmd.Flags().GetBool("no-archive")
			noChecksum, _ := cmd.Flags().GetBool("no-checksum")

			return c.app.Run(cmd.Context(), app.RunOptions{
				SkipArchive:  noArchive,
				SkipChecksum: noChecksum,
			})
		},
	}
	cmd.Flags().Bool("no-archive", false, "Skip creating the zip archive even when one is configured")
	cmd.Flags().Bool("no-checksum", false, "Skip writing the checksum manifest")
	return cmd
}
