package handlers

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	laneservice "github.com/thenoetrevino/pipeboard/internal/services/lane"
	ticketservice "github.com/thenoetrevino/pipeboard/internal/services/ticket"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/huhforms"
	"github.com/thenoetrevino/pipeboard/internal/tui/layers"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// styleForm applies the board theme and sizing shared by every form
func styleForm(m *tui.Model, form *huh.Form) *huh.Form {
	return form.
		WithTheme(huhforms.CreatePipeboardTheme(m.Config.ColorScheme)).
		WithKeyMap(huhforms.CreateKeyMapWithShiftEnter()).
		WithShowHelp(false).
		WithWidth(layers.ModalContentWidth(m.UiState.Width()))
}

func handleAddTicket(m *tui.Model) tea.Cmd {
	lane := m.Board.Lane(m.UiState.SelectedLane())
	if lane == nil {
		return modelops.Notify(m, state.LevelWarning, "Add a lane before adding tickets")
	}

	fs := m.FormState
	fs.ResetTicketForm()
	fs.TicketLaneID = lane.ID
	fs.TicketForm = styleForm(m, huhforms.CreateTicketForm(
		lane.Name,
		&fs.FormTicketName,
		&fs.FormTicketDesc,
		&fs.FormTicketValue,
		&fs.FormTicketConfirm,
	))

	m.UiState.SetMode(state.TicketFormMode)
	return fs.TicketForm.Init()
}

func handleAddLane(m *tui.Model) tea.Cmd {
	pipelineName := "the pipeline"
	if p := m.Board.CurrentPipeline(); p != nil {
		pipelineName = p.Name
	}

	fs := m.FormState
	fs.ResetLaneForm()
	fs.LaneForm = styleForm(m, huhforms.CreateLaneForm(pipelineName, &fs.FormLaneName))

	m.UiState.SetMode(state.LaneFormMode)
	return fs.LaneForm.Init()
}

// updateForm forwards msg to form. It reports done once the form is
// completed, aborted or cancelled with the cancel key.
func updateForm(m *tui.Model, form *huh.Form, msg tea.Msg) (updated *huh.Form, cmd tea.Cmd, completed, done bool) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == m.Config.KeyMappings.Cancel {
		return form, nil, false, true
	}

	model, cmd := form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		form = f
	}

	switch form.State {
	case huh.StateCompleted:
		return form, nil, true, true
	case huh.StateAborted:
		return form, nil, false, true
	}
	return form, cmd, false, false
}

// HandleTicketForm drives the add ticket form and creates the ticket once confirmed
func HandleTicketForm(m *tui.Model, msg tea.Msg) tea.Cmd {
	fs := m.FormState
	if fs.TicketForm == nil {
		m.UiState.SetMode(state.NormalMode)
		return nil
	}

	form, cmd, completed, done := updateForm(m, fs.TicketForm, msg)
	fs.TicketForm = form
	if !done {
		return cmd
	}

	defer func() {
		fs.ResetTicketForm()
		m.UiState.SetMode(state.NormalMode)
	}()

	if !completed || !fs.FormTicketConfirm {
		return nil
	}

	value, err := converters.ParseMoney(fs.FormTicketValue)
	if err != nil {
		// the form validates the value, so this only trips on a bypassed field
		slog.Warn("ticket form returned an invalid value", "value", fs.FormTicketValue, "error", err)
		return modelops.Notify(m, state.LevelError, err.Error())
	}

	return modelops.CreateTicket(m, ticketservice.CreateTicketRequest{
		LaneID:      fs.TicketLaneID,
		Name:        strings.TrimSpace(fs.FormTicketName),
		Description: strings.TrimSpace(fs.FormTicketDesc),
		Value:       value,
	})
}

// HandleLaneForm drives the add lane form and appends the lane once submitted
func HandleLaneForm(m *tui.Model, msg tea.Msg) tea.Cmd {
	fs := m.FormState
	if fs.LaneForm == nil {
		m.UiState.SetMode(state.NormalMode)
		return nil
	}

	form, cmd, completed, done := updateForm(m, fs.LaneForm, msg)
	fs.LaneForm = form
	if !done {
		return cmd
	}

	name := strings.TrimSpace(fs.FormLaneName)
	fs.ResetLaneForm()
	m.UiState.SetMode(state.NormalMode)

	if !completed {
		return nil
	}
	return modelops.CreateLane(m, laneservice.CreateLaneRequest{
		PipelineID: m.Board.CurrentPipelineID(),
		Name:       name,
	})
}
