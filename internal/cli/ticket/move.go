package ticket

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// MoveCmd returns the ticket move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a ticket to a position in a lane",
		Long: `Move a ticket to --index (0 is the top) of --lane. The lane may be the
ticket's own lane or another lane of the same pipeline. Both lanes are
renumbered so positions stay contiguous.

Examples:
  # Move ticket 12 to the top of lane 5
  pipeboard ticket move --ticket=12 --lane=5 --index=0

  # Refuse the move unless lane 5 belongs to pipeline 2
  pipeboard ticket move --ticket=12 --lane=5 --index=3 --pipeline=2
`,
		RunE: runMove,
	}

	// Required flags
	cmd.Flags().Int("ticket", 0, "Ticket ID (required)")
	cmd.Flags().Int("lane", 0, "Target lane ID (required)")
	cmd.Flags().Int("index", 0, "Target position, 0-based (required)")
	for _, name := range []string{"ticket", "lane", "index"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	// Optional guards
	cmd.Flags().Int("pipeline", 0, "Expected pipeline of the target lane")
	cmd.Flags().Int("subaccount", 0, "Expected sub-account of the target lane")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ticketID, _ := cmd.Flags().GetInt("ticket")
	laneID, _ := cmd.Flags().GetInt("lane")
	index, _ := cmd.Flags().GetInt("index")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	req := reorder.MoveTicketRequest{
		TicketID:     types.TicketID(ticketID),
		TargetLaneID: types.LaneID(laneID),
		TargetIndex:  index,
	}
	if cmd.Flags().Changed("pipeline") {
		v, _ := cmd.Flags().GetInt("pipeline")
		id := types.PipelineID(v)
		req.PipelineID = &id
	}
	if cmd.Flags().Changed("subaccount") {
		v, _ := cmd.Flags().GetInt("subaccount")
		id := types.SubAccountID(v)
		req.SubAccountID = &id
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

	if err := cliInstance.App.ReorderService.MoveTicketWithin(ctx, req); err != nil {
		return formatter.Fail("MOVE_ERROR", err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("move", map[string]any{
			"ticket_id": ticketID,
			"lane_id":   laneID,
			"index":     index,
		})
	}

	fmt.Printf("✓ Ticket %d moved to lane %d at position %d\n", ticketID, laneID, index)
	return nil
}
