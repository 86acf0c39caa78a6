package subaccount

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

// CreateCmd returns the subaccount create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new sub-account",
		Long: `Create a new sub-account. Pipelines, tags and contacts belong to a sub-account.

Examples:
  # Human-readable output
  pipeboard subaccount create --name="Acme Dental"

  # Quiet mode for bash capture
  SA_ID=$(pipeboard subaccount create --name="Acme Dental" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Sub-account name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "name", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
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

	account, err := cliInstance.App.SubAccountService.CreateSubAccount(ctx, strings.TrimSpace(name))
	if err != nil {
		return formatter.Fail("SUBACCOUNT_CREATE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d\n", account.ID)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("subaccount", account)
	}

	fmt.Printf("✓ Sub-account '%s' created successfully (ID: %d)\n", account.Name, account.ID)
	return nil
}
