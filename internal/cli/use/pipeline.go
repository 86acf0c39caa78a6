package use

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// PipelineCmd returns the use pipeline subcommand
func PipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline [pipeline-id]",
		Short: "Set pipeline context for current shell session",
		Long: `Set the current pipeline using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(pipeboard use pipeline 3)        # Use pipeline 3
  eval $(pipeboard use pipeline --clear)  # Clear pipeline context
  pipeboard use pipeline --show           # Show current pipeline

The PIPEBOARD_PIPELINE environment variable is set in your current shell
session only. The --pipeline flag on other commands takes precedence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUsePipeline,
	}

	cmd.Flags().Bool("clear", false, "Clear the current pipeline context")
	cmd.Flags().Bool("show", false, "Show the current pipeline context")

	return cmd
}

func runUsePipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")

	formatter := &cli.OutputFormatter{}

	if clearFlag {
		fmt.Printf("unset %s\n", cli.EnvPipeline)
		fmt.Fprintln(os.Stderr, "Cleared pipeline context")
		return nil
	}

	var raw string
	switch {
	case showFlag:
		raw = os.Getenv(cli.EnvPipeline)
		if raw == "" {
			fmt.Println("No pipeline context set")
			fmt.Println("Use 'eval $(pipeboard use pipeline <pipeline-id>)' to set one")
			return nil
		}
	case len(args) == 1:
		raw = args[0]
	default:
		return formatter.Usage("pipeline ID required", "Usage: eval $(pipeboard use pipeline <pipeline-id>)")
	}

	pipelineID, err := strconv.Atoi(raw)
	if err != nil || pipelineID <= 0 {
		return formatter.Usage(fmt.Sprintf("invalid pipeline ID: %s", raw), "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	pipeline, err := cliInstance.App.PipelineService.GetPipelineByID(ctx, types.PipelineID(pipelineID))
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("PIPELINE_NOT_FOUND",
			fmt.Sprintf("pipeline %d not found", pipelineID),
			"Use 'pipeboard pipeline list --subaccount=<id>' to see available pipelines"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return &cli.StatusError{Code: cli.ExitCodeFor(err), Err: err}
	}

	if showFlag {
		fmt.Printf("Current pipeline: %d (%s)\n", pipeline.ID, pipeline.Name)
		return nil
	}

	// Shell export goes to stdout for eval; the note goes to stderr
	fmt.Printf("export %s=%d\n", cli.EnvPipeline, pipeline.ID)
	fmt.Fprintf(os.Stderr, "Now using pipeline %d: %s\n", pipeline.ID, pipeline.Name)
	return nil
}
