package lane

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// DeleteCmd returns the lane delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a lane and its tickets",
		Long: `Delete a lane with all of its tickets. The lanes to its right shift left
so positions stay contiguous. Requires confirmation unless --force or --quiet.`,
		RunE: runDelete,
	}

	cmd.Flags().Int("id", 0, "Lane ID (required)")
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

	laneID, _ := cmd.Flags().GetInt("id")
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

	lane, err := cliInstance.App.LaneService.GetLaneByID(ctx, types.LaneID(laneID))
	if err != nil {
		return formatter.Fail("LANE_NOT_FOUND", err)
	}

	if !force && !quietMode && !jsonOutput {
		fmt.Printf("Delete lane #%d: '%s' and all its tickets? (y/N): ", laneID, lane.Name)
		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			slog.Debug("failed to read confirmation", "error", err)
		}
		if r := strings.ToLower(response); r != "y" && r != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.LaneService.DeleteLane(ctx, lane.ID); err != nil {
		return formatter.Fail("DELETE_ERROR", err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("lane_id", laneID)
	}

	fmt.Printf("✓ Lane %d deleted successfully\n", laneID)
	return nil
}
