package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/styles"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ValueCmd returns the pipeline value subcommand
func ValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Show open value, closed value and closing rate",
		Long: `Show how much money is in a pipeline. Every lane but the last counts as
open; the last lane counts as closed.

Examples:
  pipeboard pipeline value --pipeline=3
  pipeboard pipeline value --pipeline=3 --json
`,
		RunE: runValue,
	}

	cmd.Flags().Int("pipeline", 0, "Pipeline ID (defaults to $PIPEBOARD_PIPELINE)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (open and closed value in minor units)")

	return cmd
}

func runValue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	value, err := cliInstance.App.PipelineService.GetPipelineValue(ctx, types.PipelineID(pipelineID))
	if err != nil {
		return formatter.Fail("VALUE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d %d\n", value.OpenValue, value.ClosedValue)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("value", value)
	}

	currency := cliInstance.Config.Currency
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("Pipeline %d", pipelineID)),
		"",
		styles.RenderField("Open", converters.FormatMoney(currency, value.OpenValue)),
		styles.RenderField("Closed", converters.FormatMoney(currency, value.ClosedValue)),
		styles.RenderField("Total", converters.FormatMoney(currency, value.TotalValue())),
		styles.RenderField("Closing rate", converters.FormatRate(value.ClosingRate)),
	}
	fmt.Println(styles.RenderCard(strings.Join(lines, "\n")))
	return nil
}
