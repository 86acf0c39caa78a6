// Package daemon holds the command that runs the live-update daemon
//
// e.g., pipeboard daemon
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/launcher"
)

// DaemonCmd returns the daemon command
func DaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the live-update daemon",
		Long: `Run the daemon that relays change notifications between boards and commands.

Every board and command connects to the daemon's Unix socket when it is
running; changes made by one appear live on every open board.

Examples:
  pipeboard daemon
  PIPEBOARD_LOG_LEVEL=debug pipeboard daemon
`,
		RunE: runDaemon,
	}

	cmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address (overrides config)")

	return cmd
}

func runDaemon(cmd *cobra.Command, args []string) error {
	formatter := &cli.OutputFormatter{}

	cfg, err := config.Load()
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", fmt.Errorf("failed to load config: %w", err))
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.Daemon.MetricsAddr = addr
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := launcher.RunDaemon(ctx, cfg); err != nil {
		return formatter.Fail("DAEMON_ERROR", err)
	}
	return nil
}
