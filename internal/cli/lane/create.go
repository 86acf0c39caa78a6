package lane

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	laneservice "github.com/thenoetrevino/pipeboard/internal/services/lane"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// CreateCmd returns the lane create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a lane to a pipeline",
		Long: `Append a new lane to the right end of a pipeline.
Use 'pipeboard lane reorder' to move it afterwards.

Examples:
  pipeboard lane create --pipeline=3 --name="Negotiation"
  LANE_ID=$(pipeboard lane create --pipeline=3 --name="Negotiation" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().Int("pipeline", 0, "Pipeline ID (defaults to $PIPEBOARD_PIPELINE)")
	cmd.Flags().String("name", "", "Lane name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "name", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	pipelineID, err := cli.GetPipelineID(cmd)
	if err != nil {
		return formatter.Usage(err.Error(), "Set a pipeline with: eval $(pipeboard use pipeline <pipeline-id>)")
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

	lane, err := cliInstance.App.LaneService.CreateLane(ctx, laneservice.CreateLaneRequest{
		PipelineID: types.PipelineID(pipelineID),
		Name:       strings.TrimSpace(name),
	})
	if err != nil {
		return formatter.Fail("LANE_CREATE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d\n", lane.ID)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("lane", lane)
	}

	fmt.Printf("✓ Lane '%s' created at position %d (ID: %d)\n", lane.Name, lane.Order+1, lane.ID)
	return nil
}
