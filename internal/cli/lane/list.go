package lane

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/styles"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// laneSummary is the JSON shape of one lane in list output
type laneSummary struct {
	ID          types.LaneID `json:"id"`
	Name        string       `json:"name"`
	Order       int          `json:"order"`
	TicketCount int          `json:"ticket_count"`
	Value       int64        `json:"value"`
}

// ListCmd returns the lane list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a pipeline's lanes in board order",
		RunE:  runList,
	}

	cmd.Flags().Int("pipeline", 0, "Pipeline ID (defaults to $PIPEBOARD_PIPELINE)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only, in order)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	lanes, err := cliInstance.App.LaneService.GetLaneDetails(ctx, types.PipelineID(pipelineID))
	if err != nil {
		return formatter.Fail("LANE_FETCH_ERROR", err)
	}

	if quietMode {
		for _, l := range lanes {
			fmt.Printf("%d\n", l.ID)
		}
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("lanes", summarize(lanes))
	}

	if len(lanes) == 0 {
		fmt.Println("No lanes found")
		return nil
	}

	currency := cliInstance.Config.Currency
	for _, l := range lanes {
		fmt.Printf("  %d. [%d] %s  %s  %s\n",
			l.Order+1,
			l.ID,
			styles.TitleStyle.Render(l.Name),
			styles.SubtitleStyle.Render(fmt.Sprintf("%d tickets", len(l.Tickets))),
			styles.ValueStyle.Render(converters.FormatMoney(currency, l.Value())))
	}
	return nil
}

func summarize(lanes []*models.LaneDetail) []laneSummary {
	out := make([]laneSummary, 0, len(lanes))
	for _, l := range lanes {
		out = append(out, laneSummary{
			ID:          l.ID,
			Name:        l.Name,
			Order:       l.Order,
			TicketCount: len(l.Tickets),
			Value:       l.Value(),
		})
	}
	return out
}
