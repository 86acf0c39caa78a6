package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/pipeboard/internal/config"
)

// KeyMap holds the board bindings shown by the help view.
// Handlers match on the configured strings; these bindings describe them.
type KeyMap struct {
	Left, Right, Up, Down      key.Binding
	PrevPipeline, NextPipeline key.Binding
	GrabTicket, GrabLane       key.Binding
	Drop, Cancel               key.Binding
	AddTicket, DeleteTicket    key.Binding
	AddLane, DeleteLane        key.Binding
	Refresh, Help, Quit        key.Binding
}

// NewKeyMap builds help bindings from the configured key mappings
func NewKeyMap(km config.KeyMappings) KeyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}

	return KeyMap{
		Left:         bind("prev lane", km.PrevLane, "left"),
		Right:        bind("next lane", km.NextLane, "right"),
		Up:           bind("prev ticket", km.PrevTicket, "up"),
		Down:         bind("next ticket", km.NextTicket, "down"),
		PrevPipeline: bind("prev pipeline", km.PrevPipeline),
		NextPipeline: bind("next pipeline", km.NextPipeline),
		GrabTicket:   bind("grab ticket", km.GrabTicket),
		GrabLane:     bind("grab lane", km.GrabLane),
		Drop:         bind("drop", km.Drop),
		Cancel:       bind("cancel drag", km.Cancel),
		AddTicket:    bind("add ticket", km.AddTicket),
		DeleteTicket: bind("delete ticket", km.DeleteTicket),
		AddLane:      bind("add lane", km.AddLane),
		DeleteLane:   bind("delete lane", km.DeleteLane),
		Refresh:      bind("refresh", km.Refresh),
		Help:         bind("toggle help", km.ShowHelp),
		Quit:         bind("quit", km.Quit, "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GrabTicket, k.GrabLane, k.AddTicket, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.PrevPipeline, k.NextPipeline},
		{k.GrabTicket, k.GrabLane, k.Drop, k.Cancel},
		{k.AddTicket, k.DeleteTicket, k.AddLane, k.DeleteLane},
		{k.Refresh, k.Help, k.Quit},
	}
}
