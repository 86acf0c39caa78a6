package subaccount

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/models"
	subaccountservice "github.com/thenoetrevino/pipeboard/internal/services/subaccount"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ContactCmd returns the subaccount contact command group
func ContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage a sub-account's contacts",
	}

	cmd.AddCommand(contactCreateCmd())
	cmd.AddCommand(contactListCmd())

	return cmd
}

func contactCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a contact to a sub-account",
		Long: `Add a contact that can be assigned to tickets.

Examples:
  pipeboard subaccount contact create --subaccount=1 --name="Jane Doe" --email=jane@example.com
`,
		RunE: runContactCreate,
	}

	cmd.Flags().Int("subaccount", 0, "Sub-account ID (required)")
	cmd.Flags().String("name", "", "Contact name (required)")
	cmd.Flags().String("email", "", "Contact email")
	for _, name := range []string{"subaccount", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runContactCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subAccountID, _ := cmd.Flags().GetInt("subaccount")
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
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

	contact, err := cliInstance.App.SubAccountService.CreateContact(ctx, subaccountservice.CreateContactRequest{
		SubAccountID: types.SubAccountID(subAccountID),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
	})
	if err != nil {
		return formatter.Fail("CONTACT_CREATE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d\n", contact.ID)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("contact", contact)
	}

	fmt.Printf("✓ Contact '%s' added (ID: %d)\n", contact.Name, contact.ID)
	return nil
}

func contactListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a sub-account's contacts",
		RunE:  runContactList,
	}

	cmd.Flags().Int("subaccount", 0, "Sub-account ID (required)")
	if err := cmd.MarkFlagRequired("subaccount"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "subaccount", "error", err)
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runContactList(cmd *cobra.Command, args []string) error {
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

	contacts, err := cliInstance.App.SubAccountService.GetContactsBySubAccount(ctx, types.SubAccountID(subAccountID))
	if err != nil {
		return formatter.Fail("CONTACT_FETCH_ERROR", err)
	}
	if contacts == nil {
		contacts = []*models.Contact{}
	}

	if quietMode {
		for _, c := range contacts {
			fmt.Printf("%d\n", c.ID)
		}
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("contacts", contacts)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	for _, c := range contacts {
		if c.Email != "" {
			fmt.Printf("  [%d] %s <%s>\n", c.ID, c.Name, c.Email)
		} else {
			fmt.Printf("  [%d] %s\n", c.ID, c.Name)
		}
	}
	return nil
}
