// Package cmd assembles the pipeboard command tree
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/board"
	"github.com/thenoetrevino/pipeboard/internal/cli/daemon"
	"github.com/thenoetrevino/pipeboard/internal/cli/lane"
	"github.com/thenoetrevino/pipeboard/internal/cli/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/cli/subaccount"
	"github.com/thenoetrevino/pipeboard/internal/cli/tag"
	"github.com/thenoetrevino/pipeboard/internal/cli/ticket"
	"github.com/thenoetrevino/pipeboard/internal/cli/tutorial"
	"github.com/thenoetrevino/pipeboard/internal/cli/use"
)

// NewRootCmd builds the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pipeboard",
		Short: "Pipeboard - sales pipelines in the terminal",
		Long: `Pipeboard tracks deals as tickets moving through the lanes of a sales pipeline.

Use the board command for the interactive view, or the other commands to
script it. Every command accepts --json for machine readable output.`,
		// Commands report their own errors through the output formatter
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(subaccount.SubAccountCmd())
	rootCmd.AddCommand(pipeline.PipelineCmd())
	rootCmd.AddCommand(lane.LaneCmd())
	rootCmd.AddCommand(ticket.TicketCmd())
	rootCmd.AddCommand(tag.TagCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(daemon.DaemonCmd())

	return rootCmd
}

// Execute runs the command tree against os.Args
func Execute() error {
	return execute(os.Args[1:])
}

// execute runs args through the command tree. Errors cobra raises before any
// command runs (unknown commands, bad or missing flags) are printed here and
// carry the usage exit code; commands report their own errors.
func execute(args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)

	ran := false
	markRun(root, &ran)

	cmd, err := root.ExecuteC()
	if err == nil || ran {
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	return &cli.StatusError{Code: cli.ExitUsage, Err: err}
}

// markRun wraps every RunE in the tree so ran is set once a command starts
func markRun(cmd *cobra.Command, ran *bool) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			*ran = true
			return run(c, args)
		}
	}
	for _, child := range cmd.Commands() {
		markRun(child, ran)
	}
}
