package modelops

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// notificationTTL is how long a banner stays on screen
const notificationTTL = 4 * time.Second

// SubscribeToEvents returns a command that waits for the next event from the
// daemon and sends it as a RefreshMsg. Returns nil if EventChan is not initialized.
func SubscribeToEvents(m *tui.Model) tea.Cmd {
	if m.EventChan == nil {
		return nil
	}
	eventChan := m.EventChan
	ctx := m.Ctx

	return func() tea.Msg {
		select {
		case event, ok := <-eventChan:
			if !ok {
				// Channel closed, listener stopped
				return nil
			}
			return tui.RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// ListenForNotifications returns a command that waits for the next
// connection notice from the events client.
func ListenForNotifications(m *tui.Model) tea.Cmd {
	if m.NotifyChan == nil {
		return nil
	}
	notifyChan := m.NotifyChan
	ctx := m.Ctx

	return func() tea.Msg {
		select {
		case msg := <-notifyChan:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

// HandleRefresh reloads the board when another client changed the pipeline on screen.
// Events with pipeline 0 cover several pipelines and always reload.
func HandleRefresh(m *tui.Model, msg tui.RefreshMsg) tea.Cmd {
	current := int(m.Board.CurrentPipelineID())
	if msg.Event.PipelineID != 0 && msg.Event.PipelineID != current {
		return SubscribeToEvents(m)
	}

	slog.Debug("reloading board after remote change",
		"pipeline_id", msg.Event.PipelineID,
		"origin", msg.Event.Origin,
		"sequence_id", msg.Event.SequenceID)
	return tea.Batch(LoadBoard(m), SubscribeToEvents(m))
}

// HandleConnectionNotice shows a notice from the events client and tracks
// the connection status it implies.
func HandleConnectionNotice(m *tui.Model, msg tui.NotificationMsg) tea.Cmd {
	level := state.LevelInfo
	switch msg.Level {
	case "error":
		level = state.LevelError
		m.ConnectionState.SetStatus(state.Disconnected)
	case "warning":
		level = state.LevelWarning
		m.ConnectionState.SetStatus(state.Reconnecting)
	default:
		m.ConnectionState.SetStatus(state.Connected)
	}

	return tea.Batch(Notify(m, level, msg.Message), ListenForNotifications(m))
}

// Notify shows a banner and schedules its removal
func Notify(m *tui.Model, level state.NotificationLevel, message string) tea.Cmd {
	id := m.NotificationState.Add(level, message)
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return tui.ClearNotificationMsg{ID: id}
	})
}
