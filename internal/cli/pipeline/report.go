package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/models"
	pipelineservice "github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

const reportWidth = 100

// ReportCmd returns the pipeline report subcommand
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown report of a pipeline",
		Long: `Render a pipeline as a markdown report: a lane summary table followed by
each lane's tickets in board order.

Examples:
  # Rendered for the terminal
  pipeboard pipeline report --pipeline=3

  # Raw markdown, e.g. for a pull request or wiki page
  pipeboard pipeline report --pipeline=3 --raw > report.md
`,
		RunE: runReport,
	}

	cmd.Flags().Int("pipeline", 0, "Pipeline ID (defaults to $PIPEBOARD_PIPELINE)")
	cmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	raw, _ := cmd.Flags().GetBool("raw")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	formatter := &cli.OutputFormatter{JSON: jsonOutput}

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

	pipeline, err := cliInstance.App.PipelineService.GetPipelineByID(ctx, types.PipelineID(pipelineID))
	if err != nil {
		return formatter.Fail("PIPELINE_NOT_FOUND", err)
	}
	lanes, err := cliInstance.App.LaneService.GetLaneDetails(ctx, pipeline.ID)
	if err != nil {
		return formatter.Fail("REPORT_ERROR", err)
	}
	value := pipelineservice.Summarize(pipeline.ID, lanes)

	if jsonOutput {
		return cli.WriteJSON("report", map[string]any{
			"pipeline": pipeline,
			"lanes":    lanes,
			"value":    value,
		})
	}

	markdown := BuildReport(pipeline, lanes, value, cliInstance.Config.Currency)
	if raw {
		fmt.Print(markdown)
		return nil
	}
	fmt.Print(cli.RenderMarkdown(markdown, reportWidth))
	return nil
}

// BuildReport renders a pipeline summary as markdown
func BuildReport(pipeline *models.Pipeline, lanes []*models.LaneDetail, value *models.PipelineValue, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", pipeline.Name)
	fmt.Fprintf(&b, "- **Open value:** %s\n", converters.FormatMoney(currency, value.OpenValue))
	fmt.Fprintf(&b, "- **Closed value:** %s\n", converters.FormatMoney(currency, value.ClosedValue))
	fmt.Fprintf(&b, "- **Closing rate:** %s\n\n", converters.FormatRate(value.ClosingRate))

	if len(lanes) == 0 {
		b.WriteString("_This pipeline has no lanes._\n")
		return b.String()
	}

	b.WriteString("| # | Lane | Tickets | Value |\n")
	b.WriteString("|---|------|--------:|------:|\n")
	for _, lane := range lanes {
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n",
			lane.Order+1, escapeCell(lane.Name), len(lane.Tickets), converters.FormatMoney(currency, lane.Value()))
	}

	for _, lane := range lanes {
		fmt.Fprintf(&b, "\n## %s\n\n", lane.Name)
		if len(lane.Tickets) == 0 {
			b.WriteString("_No tickets_\n")
			continue
		}
		for _, t := range lane.Tickets {
			fmt.Fprintf(&b, "1. **%s** (%s)", t.Name, converters.FormatMoney(currency, t.Value))
			if t.Description != "" {
				fmt.Fprintf(&b, ": %s", firstLine(t.Description))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
