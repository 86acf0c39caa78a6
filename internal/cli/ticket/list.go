package ticket

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/styles"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ListCmd returns the ticket list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a lane's tickets top to bottom",
		RunE:  runList,
	}

	cmd.Flags().Int("lane", 0, "Lane ID (required)")
	if err := cmd.MarkFlagRequired("lane"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "lane", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only, in order)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	laneID, _ := cmd.Flags().GetInt("lane")
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

	// Resolve the lane first so an unknown lane is an error, not an empty list
	if _, err := cliInstance.App.LaneService.GetLaneByID(ctx, types.LaneID(laneID)); err != nil {
		return formatter.Fail("LANE_NOT_FOUND", err)
	}

	tickets, err := cliInstance.App.TicketService.GetTicketsByLane(ctx, types.LaneID(laneID))
	if err != nil {
		return formatter.Fail("TICKET_FETCH_ERROR", err)
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}

	if quietMode {
		for _, t := range tickets {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("tickets", tickets)
	}

	if len(tickets) == 0 {
		fmt.Println("No tickets found")
		return nil
	}

	currency := cliInstance.Config.Currency
	for _, t := range tickets {
		line := fmt.Sprintf("  %d. [%d] %s  %s", t.Order+1, t.ID, t.Name,
			styles.ValueStyle.Render(converters.FormatMoney(currency, t.Value)))
		if len(t.Tags) > 0 {
			chips := make([]string, len(t.Tags))
			for i, tag := range t.Tags {
				chips[i] = styles.RenderTagChip(tag)
			}
			line += "  " + strings.Join(chips, " ")
		}
		fmt.Println(line)
	}
	return nil
}
