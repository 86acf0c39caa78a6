package subaccount

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// ListCmd returns the subaccount list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sub-accounts",
		RunE:  runList,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	accounts, err := cliInstance.App.SubAccountService.GetSubAccounts(ctx)
	if err != nil {
		return formatter.Fail("SUBACCOUNT_FETCH_ERROR", err)
	}
	if accounts == nil {
		accounts = []*models.SubAccount{}
	}

	if quietMode {
		for _, a := range accounts {
			fmt.Printf("%d\n", a.ID)
		}
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("subaccounts", accounts)
	}

	if len(accounts) == 0 {
		fmt.Println("No sub-accounts found")
		return nil
	}

	fmt.Printf("Found %d sub-accounts:\n\n", len(accounts))
	for _, a := range accounts {
		fmt.Printf("  [%d] %s\n", a.ID, a.Name)
	}
	return nil
}
