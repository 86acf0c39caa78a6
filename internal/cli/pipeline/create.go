package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	pipelineservice "github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// DefaultLanes are created when --lanes is not given
var DefaultLanes = []string{"Lead", "Qualified", "Proposal", "Won"}

// CreateCmd returns the pipeline create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new pipeline",
		Long: `Create a new pipeline in a sub-account. The last lane is treated as the
closed (won) stage when computing pipeline value.

Examples:
  # Default lanes (Lead, Qualified, Proposal, Won)
  pipeboard pipeline create --subaccount=1 --name="Inbound"

  # Custom lanes, in order
  pipeboard pipeline create --subaccount=1 --name="Renewals" --lanes="Due,Contacted,Renewed"

  # Quiet mode for bash capture
  PIPELINE_ID=$(pipeboard pipeline create --subaccount=1 --name="Inbound" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().Int("subaccount", 0, "Sub-account ID (required)")
	cmd.Flags().String("name", "", "Pipeline name (required)")
	for _, name := range []string{"subaccount", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	// Optional flags
	cmd.Flags().StringSlice("lanes", nil, "Comma separated lane names")
	cmd.Flags().Bool("no-lanes", false, "Create the pipeline without lanes")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subAccountID, _ := cmd.Flags().GetInt("subaccount")
	name, _ := cmd.Flags().GetString("name")
	lanes, _ := cmd.Flags().GetStringSlice("lanes")
	noLanes, _ := cmd.Flags().GetBool("no-lanes")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if noLanes && len(lanes) > 0 {
		return formatter.Usage("--lanes and --no-lanes cannot be combined", "")
	}
	switch {
	case noLanes:
		lanes = nil
	case len(lanes) == 0:
		lanes = append([]string(nil), DefaultLanes...)
	}
	for i := range lanes {
		lanes[i] = strings.TrimSpace(lanes[i])
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

	pipeline, err := cliInstance.App.PipelineService.CreatePipeline(ctx, pipelineservice.CreatePipelineRequest{
		SubAccountID: types.SubAccountID(subAccountID),
		Name:         strings.TrimSpace(name),
		Lanes:        lanes,
	})
	if err != nil {
		return formatter.Fail("PIPELINE_CREATE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d\n", pipeline.ID)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("pipeline", map[string]any{
			"id":            pipeline.ID,
			"name":          pipeline.Name,
			"subaccount_id": pipeline.SubAccountID,
			"lanes":         lanes,
			"created_at":    pipeline.CreatedAt,
		})
	}

	fmt.Printf("✓ Pipeline '%s' created successfully (ID: %d)\n", pipeline.Name, pipeline.ID)
	if len(lanes) > 0 {
		fmt.Printf("  Lanes: %s\n", strings.Join(lanes, " → "))
	}
	return nil
}
