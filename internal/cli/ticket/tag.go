package ticket

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// TagCmd returns the ticket tag subcommand
func TagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Replace a ticket's tags",
		Long: `Replace the full set of tags on a ticket. Tags must belong to the
ticket's sub-account. Pass --clear to remove every tag.

Examples:
  pipeboard ticket tag --id=12 --tags=1,4
  pipeboard ticket tag --id=12 --clear
`,
		RunE: runTag,
	}

	cmd.Flags().Int("id", 0, "Ticket ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "id", "error", err)
	}
	cmd.Flags().String("tags", "", "Comma separated tag IDs")
	cmd.Flags().Bool("clear", false, "Remove all tags")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runTag(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ticketID, _ := cmd.Flags().GetInt("id")
	tagList, _ := cmd.Flags().GetString("tags")
	clearTags, _ := cmd.Flags().GetBool("clear")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	var tagIDs []types.TagID
	switch {
	case clearTags && tagList != "":
		return formatter.Usage("--tags and --clear cannot be combined", "")
	case clearTags:
		tagIDs = []types.TagID{}
	default:
		ids, err := cli.ParseIDList(tagList)
		if err != nil {
			return formatter.Usage(fmt.Sprintf("invalid --tags: %v", err), "Example: --tags=1,4")
		}
		for _, id := range ids {
			tagIDs = append(tagIDs, types.TagID(id))
		}
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

	if err := cliInstance.App.TicketService.SetTicketTags(ctx, types.TicketID(ticketID), tagIDs); err != nil {
		return formatter.Fail("TAG_ERROR", err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("tags", tagIDs)
	}

	fmt.Printf("✓ Ticket %d now has %d tags\n", ticketID, len(tagIDs))
	return nil
}
