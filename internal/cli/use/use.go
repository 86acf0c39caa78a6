// Package use holds all cli commands related to setting contextual information
// e.g., pipeboard use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command sets context that applies to subsequent commands,
removing the need to repeat --pipeline on every call.

Examples:
  eval $(pipeboard use pipeline 3)       # Use pipeline 3
  eval $(pipeboard use pipeline --clear) # Clear pipeline context
  pipeboard use pipeline --show          # Show current pipeline`,
	}

	cmd.AddCommand(PipelineCmd())

	return cmd
}
