package ticket

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	ticketservice "github.com/thenoetrevino/pipeboard/internal/services/ticket"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// CreateCmd returns the ticket create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket at the bottom of a lane",
		Long: `Create a new ticket (deal) at the bottom of a lane.

Examples:
  # Simple ticket
  pipeboard ticket create --lane=4 --name="Website redesign"

  # With value and contact
  pipeboard ticket create --lane=4 --name="Website redesign" --value=12500 --contact=2

  # Quiet mode for bash capture
  TICKET_ID=$(pipeboard ticket create --lane=4 --name="Audit" --value=750.50 --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().Int("lane", 0, "Lane ID (required)")
	cmd.Flags().String("name", "", "Ticket name (required)")
	for _, name := range []string{"lane", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	// Optional flags
	cmd.Flags().String("description", "", "Ticket description (markdown)")
	cmd.Flags().String("value", "", "Deal value, e.g. 1250 or 1,250.50")
	cmd.Flags().Int("contact", 0, "Contact ID to assign")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	laneID, _ := cmd.Flags().GetInt("lane")
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	valueStr, _ := cmd.Flags().GetString("value")
	contactID, _ := cmd.Flags().GetInt("contact")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	value, err := converters.ParseMoney(valueStr)
	if err != nil {
		return formatter.DataError(err.Error(), "Example: --value=1250.50")
	}

	req := ticketservice.CreateTicketRequest{
		LaneID:      types.LaneID(laneID),
		Name:        strings.TrimSpace(name),
		Description: description,
		Value:       value,
	}
	if cmd.Flags().Changed("contact") {
		id := types.ContactID(contactID)
		req.ContactID = &id
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

	ticket, err := cliInstance.App.TicketService.CreateTicket(ctx, req)
	if err != nil {
		return formatter.Fail("TICKET_CREATE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d\n", ticket.ID)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("ticket", ticket)
	}

	fmt.Printf("✓ Ticket '%s' created successfully (ID: %d)\n", ticket.Name, ticket.ID)
	fmt.Printf("  Value: %s\n", converters.FormatMoney(cliInstance.Config.Currency, ticket.Value))
	return nil
}
