// Package modelops holds the commands and state transitions the board
// handlers share: loading, persisting drops, mutations and notifications.
package modelops

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// LoadBoard returns a command that loads the current pipeline, its sibling
// pipelines and its lanes with tickets.
func LoadBoard(m *tui.Model) tea.Cmd {
	application := m.App
	pipelineID := m.Board.CurrentPipelineID()
	ctx, cancel := m.DbContext()

	return func() tea.Msg {
		defer cancel()
		msg := tui.BoardLoadedMsg{PipelineID: pipelineID}

		pipeline, err := application.PipelineService.GetPipelineByID(ctx, pipelineID)
		if err != nil {
			msg.Err = fmt.Errorf("failed to load pipeline %d: %w", pipelineID, err)
			return msg
		}

		msg.Pipelines, err = application.PipelineService.GetPipelinesBySubAccount(ctx, pipeline.SubAccountID)
		if err != nil {
			msg.Err = fmt.Errorf("failed to load pipelines: %w", err)
			return msg
		}

		msg.Lanes, err = application.LaneService.GetLaneDetails(ctx, pipelineID)
		if err != nil {
			msg.Err = fmt.Errorf("failed to load lanes: %w", err)
		}
		return msg
	}
}

// ApplyBoard installs a loaded board. Loads for a pipeline that is no longer
// on screen are dropped, and so are loads that land mid-drag; the drop
// reloads the board once it is persisted.
func ApplyBoard(m *tui.Model, msg tui.BoardLoadedMsg) tea.Cmd {
	if msg.PipelineID != m.Board.CurrentPipelineID() {
		slog.Debug("discarding stale board load", "pipeline_id", msg.PipelineID)
		return nil
	}
	if msg.Err != nil {
		slog.Error("failed to load board", "pipeline_id", msg.PipelineID, "error", msg.Err)
		return Notify(m, state.LevelError, "Failed to load pipeline")
	}
	if m.Drag.Active() {
		slog.Debug("discarding board load during drag", "pipeline_id", msg.PipelineID)
		return nil
	}

	m.Board.SetPipelines(msg.Pipelines)
	m.Board.SetLanes(msg.Lanes)
	m.UiState.ClampSelection(len(msg.Lanes), m.Board.TicketCount)
	m.UiState.EnsureLaneVisible(m.UiState.SelectedLane())
	return nil
}

// SwitchPipeline moves the board to the pipeline offset tabs away, wrapping around
func SwitchPipeline(m *tui.Model, offset int) tea.Cmd {
	pipelines := m.Board.Pipelines()
	if len(pipelines) < 2 {
		return nil
	}

	current := max(m.Board.PipelineIndex(), 0)
	next := ((current+offset)%len(pipelines) + len(pipelines)) % len(pipelines)
	return ShowPipeline(m, pipelines[next].ID)
}

// ShowPipeline puts pipelineID on screen and loads it
func ShowPipeline(m *tui.Model, pipelineID types.PipelineID) tea.Cmd {
	m.Board.SetCurrentPipeline(pipelineID)
	m.UiState.SetSelectedLane(0)
	m.UiState.SetSelectedTicket(0)
	m.UiState.SetViewportOffset(0)

	if m.EventClient != nil {
		if err := m.EventClient.Subscribe(int(pipelineID)); err != nil {
			slog.Warn("failed to subscribe to pipeline", "pipeline_id", pipelineID, "error", err)
		}
	}
	return LoadBoard(m)
}
