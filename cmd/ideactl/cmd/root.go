// Package cmd contains the ideactl commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ideactl",
	Short: "Administrative tooling for the ideaflow service",
	Long: `ideactl prepares deployments of the ideaflow service.

Examples:
  # Produce AUTH_OWNER_SECRET_HASH for the owner registration secret
  ideactl hash-secret

  # Load the demo ideas and developer accounts into the configured store
  ideactl seed --developers --developer-password changeme`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
