package lane

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// UpdateCmd returns the lane update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename a lane",
		RunE:  runUpdate,
	}

	cmd.Flags().Int("id", 0, "Lane ID (required)")
	cmd.Flags().String("name", "", "New lane name (required)")
	for _, name := range []string{"id", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	laneID, _ := cmd.Flags().GetInt("id")
	name, _ := cmd.Flags().GetString("name")
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

	name = strings.TrimSpace(name)
	if err := cliInstance.App.LaneService.UpdateLaneName(ctx, types.LaneID(laneID), name); err != nil {
		return formatter.Fail("LANE_UPDATE_ERROR", err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("lane", map[string]any{"id": laneID, "name": name})
	}

	fmt.Printf("✓ Lane %d renamed to '%s'\n", laneID, name)
	return nil
}
