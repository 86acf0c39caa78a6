package lane

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ReorderCmd returns the lane reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Set the left-to-right order of a pipeline's lanes",
		Long: `Set the order of every lane in a pipeline. --order must list each of the
pipeline's lane IDs exactly once; the first ID becomes the leftmost lane.
Only lanes whose position changes are written, so repeating the same
order is a no-op.

Examples:
  # Current order is 1,2,3; move lane 3 to the front
  pipeboard lane reorder --pipeline=7 --order=3,1,2

  # Exit code 5 when the order is not a permutation of the lanes
  pipeboard lane reorder --pipeline=7 --order=3,1 || echo "rejected: $?"
`,
		RunE: runReorder,
	}

	cmd.Flags().Int("pipeline", 0, "Pipeline ID (defaults to $PIPEBOARD_PIPELINE)")
	cmd.Flags().String("order", "", "Comma separated lane IDs in the new order (required)")
	if err := cmd.MarkFlagRequired("order"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "order", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runReorder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	order, _ := cmd.Flags().GetString("order")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	pipelineID, err := cli.GetPipelineID(cmd)
	if err != nil {
		return formatter.Usage(err.Error(), "Set a pipeline with: eval $(pipeboard use pipeline <pipeline-id>)")
	}

	ids, err := cli.ParseIDList(order)
	if err != nil {
		return formatter.Usage(fmt.Sprintf("invalid --order: %v", err), "Example: --order=3,1,2")
	}
	laneIDs := make([]types.LaneID, len(ids))
	for i, id := range ids {
		laneIDs[i] = types.LaneID(id)
	}

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

	if err := cliInstance.App.ReorderService.ReorderLanes(ctx, types.PipelineID(pipelineID), laneIDs); err != nil {
		return formatter.Fail("REORDER_ERROR", err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("order", ids)
	}

	fmt.Printf("✓ Lanes of pipeline %d reordered\n", pipelineID)
	return nil
}
