// Package core adapts the board model to the tea.Model interface.
package core

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/handlers"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/render"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
// It delegates all operations to the handlers and render subpackages.
type App struct {
	model *tui.Model
}

// New creates a new App around an initialized Model
func New(model tui.Model) *App {
	return &App{model: &model}
}

// Init loads the board.
// Implements tea.Model interface.
func (a *App) Init() tea.Cmd {
	return modelops.LoadBoard(a.model)
}

// Update handles all messages and updates the model.
// Implements tea.Model interface.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, handlers.Update(a.model, msg)
}

// View renders the current state of the application.
// Implements tea.Model interface.
func (a *App) View() tea.View {
	return render.View(a.model)
}

// GetModel returns the underlying Model.
// This is primarily useful for testing purposes.
func (a *App) GetModel() *tui.Model {
	return a.model
}
