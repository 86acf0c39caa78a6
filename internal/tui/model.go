package tui

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/help"
	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// Timeout for database operations started from the board
const timeoutDB = 30 * time.Second

// Buffered so the event client never blocks on a slow UI
const notifyBuffer = 16

// Model represents the application state for the TUI
type Model struct {
	Ctx    context.Context
	App    *app.App
	Config *config.Config
	Keys   KeyMap
	Help   help.Model

	Board             *state.BoardState
	Drag              *state.DragState
	UiState           *state.UIState
	FormState         *state.FormState
	NotificationState *state.NotificationState
	ConnectionState   *state.ConnectionState

	EventClient         events.EventPublisher
	EventChan           <-chan events.Event
	NotifyChan          chan NotificationMsg
	SubscriptionStarted bool
}

// InitialModel creates the board model for pipelineID. The board itself is
// loaded asynchronously once the program starts.
func InitialModel(ctx context.Context, application *app.App, cfg *config.Config, pipelineID types.PipelineID) Model {
	components.InitStyles(cfg.ColorScheme)

	m := Model{
		Ctx:               ctx,
		App:               application,
		Config:            cfg,
		Keys:              NewKeyMap(cfg.KeyMappings),
		Help:              help.New(),
		Board:             state.NewBoardState(pipelineID),
		Drag:              state.NewDragState(),
		UiState:           state.NewUIState(),
		FormState:         state.NewFormState(),
		NotificationState: state.NewNotificationState(),
		ConnectionState:   state.NewConnectionState(state.Disconnected),
		EventClient:       application.Events(),
	}

	if m.EventClient == nil {
		return m
	}

	notifyChan := make(chan NotificationMsg, notifyBuffer)
	m.NotifyChan = notifyChan
	if notifier, ok := m.EventClient.(interface{ SetNotifyFunc(events.NotifyFunc) }); ok {
		notifier.SetNotifyFunc(func(level, message string) {
			select {
			case notifyChan <- NotificationMsg{Level: level, Message: message}:
			default:
				slog.Debug("dropped connection notification", "message", message)
			}
		})
	}

	eventChan, err := m.EventClient.Listen(ctx)
	if err != nil {
		slog.Warn("failed to listen for live updates", "error", err)
		return m
	}
	m.EventChan = eventChan

	if err := m.EventClient.Subscribe(int(pipelineID)); err != nil {
		slog.Warn("failed to subscribe to pipeline", "pipeline_id", pipelineID, "error", err)
	}
	m.ConnectionState.SetStatus(state.Connected)

	return m
}

// DbContext creates a child context with timeout for database operations
func (m *Model) DbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.Ctx, timeoutDB)
}

// Live reports whether the board receives updates from the daemon
func (m *Model) Live() bool {
	return m.EventChan != nil
}
