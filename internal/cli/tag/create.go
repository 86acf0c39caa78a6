package tag

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	tagservice "github.com/thenoetrevino/pipeboard/internal/services/tag"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// CreateCmd returns the tag create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new tag",
		Long: `Create a tag in a sub-account.

Examples:
  pipeboard tag create --subaccount=1 --name="hot"
  pipeboard tag create --subaccount=1 --name="renewal" --color="#E06C75"
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().Int("subaccount", 0, "Sub-account ID (required)")
	cmd.Flags().String("name", "", "Tag name (required)")
	for _, name := range []string{"subaccount", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	// Optional flags
	cmd.Flags().String("color", "", "Hex color, e.g. #7D56F4")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subAccountID, _ := cmd.Flags().GetInt("subaccount")
	name, _ := cmd.Flags().GetString("name")
	color, _ := cmd.Flags().GetString("color")
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

	tag, err := cliInstance.App.TagService.CreateTag(ctx, tagservice.CreateTagRequest{
		SubAccountID: types.SubAccountID(subAccountID),
		Name:         strings.TrimSpace(name),
		Color:        strings.TrimSpace(color),
	})
	if err != nil {
		return formatter.Fail("TAG_CREATE_ERROR", err)
	}

	if quietMode {
		fmt.Printf("%d\n", tag.ID)
		return nil
	}

	if jsonOutput {
		return cli.WriteJSON("tag", tag)
	}

	fmt.Printf("✓ Tag '%s' created successfully (ID: %d)\n", tag.Name, tag.ID)
	return nil
}
