package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ListCmd returns the pipeline list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a sub-account's pipelines",
		RunE:  runList,
	}

	cmd.Flags().Int("subaccount", 0, "Sub-account ID (required)")
	if err := cmd.MarkFlagRequired("subaccount"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "subaccount", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subAccountID, _ := cmd.Flags().GetInt("subaccount")
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

	pipelines, err := cliInstance.App.PipelineService.GetPipelinesBySubAccount(ctx, types.SubAccountID(subAccountID))
	if err != nil {
		return formatter.Fail("PIPELINE_FETCH_ERROR", err)
	}
	if pipelines == nil {
		pipelines = []*models.Pipeline{}
	}

	if quietMode {
		for _, p := range pipelines {
			fmt.Printf("%d\n", p.ID)
		}
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("pipelines", pipelines)
	}

	if len(pipelines) == 0 {
		fmt.Println("No pipelines found")
		return nil
	}

	fmt.Printf("Found %d pipelines:\n\n", len(pipelines))
	for _, p := range pipelines {
		fmt.Printf("  [%d] %s\n", p.ID, p.Name)
	}
	return nil
}
