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

// UpdateCmd returns the ticket update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a ticket's name, description, value or contact",
		Long: `Update a ticket. Only the flags given are changed.

Examples:
  pipeboard ticket update --id=12 --value=18000
  pipeboard ticket update --id=12 --name="Website redesign (phase 2)" --contact=3
  pipeboard ticket update --id=12 --clear-contact
`,
		RunE: runUpdate,
	}

	cmd.Flags().Int("id", 0, "Ticket ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "id", "error", err)
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("value", "", "New value, e.g. 1250.50")
	cmd.Flags().Int("contact", 0, "Assign a contact")
	cmd.Flags().Bool("clear-contact", false, "Remove the assigned contact")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ticketID, _ := cmd.Flags().GetInt("id")
	clearContact, _ := cmd.Flags().GetBool("clear-contact")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	req := ticketservice.UpdateTicketRequest{
		ID:           types.TicketID(ticketID),
		ClearContact: clearContact,
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		name = strings.TrimSpace(name)
		req.Name = &name
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		req.Description = &description
	}
	if flags.Changed("value") {
		valueStr, _ := flags.GetString("value")
		value, err := converters.ParseMoney(valueStr)
		if err != nil {
			return formatter.DataError(err.Error(), "Example: --value=1250.50")
		}
		req.Value = &value
	}
	if flags.Changed("contact") {
		if clearContact {
			return formatter.Usage("--contact and --clear-contact cannot be combined", "")
		}
		contactID, _ := flags.GetInt("contact")
		id := types.ContactID(contactID)
		req.ContactID = &id
	}
	if req.Name == nil && req.Description == nil && req.Value == nil && req.ContactID == nil && !clearContact {
		return formatter.Usage("nothing to update",
			"Pass at least one of --name, --description, --value, --contact, --clear-contact")
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

	if err := cliInstance.App.TicketService.UpdateTicket(ctx, req); err != nil {
		return formatter.Fail("TICKET_UPDATE_ERROR", err)
	}

	if quietMode {
		return nil
	}

	ticket, err := cliInstance.App.TicketService.GetTicketByID(ctx, req.ID)
	if err != nil {
		return formatter.Fail("TICKET_FETCH_ERROR", err)
	}

	if jsonOutput {
		return cli.WriteJSON("ticket", ticket)
	}

	fmt.Printf("✓ Ticket %d updated\n", ticket.ID)
	return nil
}
