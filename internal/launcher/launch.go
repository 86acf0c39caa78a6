// Package launcher starts the long-running parts of pipeboard: the board
// TUI and the live-update daemon.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/core"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// drainTimeout bounds how long queries started by the board may keep running after shutdown
const drainTimeout = 5 * time.Second

// Launch runs the board for pipelineID until the user quits or ctx is cancelled.
// The caller owns application and closes it afterwards.
func Launch(ctx context.Context, application *app.App, cfg *config.Config, pipelineID types.PipelineID) error {
	model := tui.InitialModel(ctx, application, cfg, pipelineID)
	if model.Live() {
		slog.Info("board connected to daemon for live updates")
	} else {
		slog.Info("board running without live updates")
	}

	p := tea.NewProgram(core.New(model), tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running board: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(drainTimeout):
			slog.Warn("board did not stop within drain timeout")
		}
	}

	return nil
}
