// Package cli holds the shared plumbing for pipeboard's commands: the
// application handle, output formatting and exit code mapping.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
)

// daemonDialTimeout bounds how long a command waits for the daemon socket
const daemonDialTimeout = 500 * time.Millisecond

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	// owned is false when the App was injected by the caller, who then closes it
	owned bool
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var opts []app.Option
	if client := connectDaemon(ctx, cfg.SocketPath); client != nil {
		opts = append(opts, app.WithEventPublisher(client))
	}

	return &CLI{
		App:    app.New(db, opts...),
		Config: cfg,
		owned:  true,
	}, nil
}

// connectDaemon returns a connected event client, or nil when no daemon is
// listening. Commands work the same either way; only live refresh is lost.
func connectDaemon(ctx context.Context, socketPath string) events.EventPublisher {
	client, err := events.NewClient(socketPath)
	if err != nil {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, daemonDialTimeout)
	defer cancel()
	if err := client.Connect(dialCtx); err != nil {
		slog.Debug("daemon not available", "socket", socketPath, "error", err)
		return nil
	}
	return client
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
