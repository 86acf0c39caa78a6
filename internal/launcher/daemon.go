package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/daemon"
)

// RunDaemon serves live updates on the configured socket until ctx is cancelled
func RunDaemon(ctx context.Context, cfg *config.Config) error {
	// Ensure the socket directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(cfg.SocketPath), 0700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	server, err := daemon.NewServer(cfg.SocketPath, DaemonOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	slog.Info("pipeboard daemon starting",
		"socket_path", cfg.SocketPath,
		"metrics_addr", cfg.Daemon.MetricsAddr,
		"pid", os.Getpid())

	// Start blocks until shutdown
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	slog.Info("pipeboard daemon shutting down gracefully")
	return nil
}

// DaemonOptions maps the daemon section of the config onto server options.
// Unset values fall back to the server defaults.
func DaemonOptions(cfg *config.Config) daemon.Options {
	return daemon.Options{
		BroadcastBuffer: cfg.Daemon.BroadcastBuffer,
		ClientBuffer:    cfg.Daemon.ClientBuffer,
		MetricsAddr:     cfg.Daemon.MetricsAddr,
	}
}
