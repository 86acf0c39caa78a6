package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// DeleteCmd returns the pipeline delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a pipeline",
		Long:  "Delete a pipeline with all its lanes and tickets (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Pipeline ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "id", "error", err)
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pipelineID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	pipeline, err := cliInstance.App.PipelineService.GetPipelineByID(ctx, types.PipelineID(pipelineID))
	if err != nil {
		return formatter.Fail("PIPELINE_NOT_FOUND", err)
	}

	if !force && !quietMode && !jsonOutput {
		fmt.Printf("Delete pipeline #%d: '%s' and all its tickets? (y/N): ", pipelineID, pipeline.Name)
		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			slog.Debug("failed to read confirmation", "error", err)
		}
		if r := strings.ToLower(response); r != "y" && r != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.PipelineService.DeletePipeline(ctx, pipeline.ID); err != nil {
		return formatter.Fail("DELETE_ERROR", err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("pipeline_id", pipelineID)
	}

	fmt.Printf("✓ Pipeline %d deleted successfully\n", pipelineID)
	return nil
}
