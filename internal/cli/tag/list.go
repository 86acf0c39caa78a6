package tag

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/styles"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ListCmd returns the tag list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a sub-account's tags",
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

	tags, err := cliInstance.App.TagService.GetTagsBySubAccount(ctx, types.SubAccountID(subAccountID))
	if err != nil {
		return formatter.Fail("TAG_FETCH_ERROR", err)
	}
	if tags == nil {
		tags = []*models.Tag{}
	}

	if quietMode {
		for _, t := range tags {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("tags", tags)
	}

	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}

	for _, t := range tags {
		fmt.Printf("  [%d] %s %s\n", t.ID, styles.RenderTagChip(t), t.Color)
	}
	return nil
}
