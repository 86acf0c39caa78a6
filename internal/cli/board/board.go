// Package board holds the command that opens the interactive pipeline board
//
// e.g., pipeboard board --pipeline=3
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/launcher"
	"github.com/thenoetrevino/pipeboard/internal/logging"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// ErrNoPipelines is returned when there is nothing to show on the board
var ErrNoPipelines = errors.New("no pipelines exist yet")

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive pipeline board",
		Long: `Open a pipeline as a board of lanes and tickets.

Tickets and lanes can be grabbed and dropped to reorder them. When the
daemon is running, changes made elsewhere appear on the board live.

Without --pipeline or $PIPEBOARD_PIPELINE the first pipeline is opened.

Examples:
  pipeboard board
  pipeboard board --pipeline=3
`,
		RunE: runBoard,
	}

	cmd.Flags().Int("pipeline", 0, "Pipeline ID (defaults to $PIPEBOARD_PIPELINE)")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	formatter := &cli.OutputFormatter{}

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	// The board owns the terminal, so logs go to a file from here on
	cfg := cliInstance.Config
	if err := logging.Init(cfg.LogDir(), cfg.SlogLevel()); err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", fmt.Errorf("failed to initialize logging: %w", err))
	}

	pipelineID, err := ResolvePipeline(ctx, cmd, cliInstance.App)
	if errors.Is(err, ErrNoPipelines) {
		return formatter.Usage(err.Error(), "Create one with: pipeboard pipeline create --subaccount=<id> --name=Sales")
	}
	if err != nil {
		return formatter.Fail("BOARD_ERROR", err)
	}

	if err := launcher.Launch(ctx, cliInstance.App, cfg, pipelineID); err != nil {
		return formatter.Fail("BOARD_ERROR", err)
	}
	return nil
}

// ResolvePipeline picks the pipeline to open: the flag or environment when
// set, otherwise the first pipeline of the first sub-account that has one.
func ResolvePipeline(ctx context.Context, cmd *cobra.Command, application *app.App) (types.PipelineID, error) {
	flag := cmd.Flags().Lookup("pipeline")
	if (flag != nil && flag.Changed) || os.Getenv(cli.EnvPipeline) != "" {
		id, err := cli.GetPipelineID(cmd)
		if err != nil {
			return 0, err
		}
		pipeline, err := application.PipelineService.GetPipelineByID(ctx, types.PipelineID(id))
		if err != nil {
			return 0, err
		}
		return pipeline.ID, nil
	}

	subAccounts, err := application.SubAccountService.GetSubAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sub-accounts: %w", err)
	}
	for _, sa := range subAccounts {
		pipelines, err := application.PipelineService.GetPipelinesBySubAccount(ctx, sa.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to list pipelines: %w", err)
		}
		if len(pipelines) > 0 {
			return pipelines[0].ID, nil
		}
	}
	return 0, ErrNoPipelines
}
