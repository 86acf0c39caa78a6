package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/pipeboard/internal/config"
)

func TestNewKeyMap_UsesConfiguredKeys(t *testing.T) {
	km := config.DefaultKeyMappings()
	km.GrabTicket = "m"

	keys := NewKeyMap(km)

	if got := keys.GrabTicket.Help().Key; got != "m" {
		t.Errorf("GrabTicket help key = %q, want %q", got, "m")
	}
	if got := keys.Left.Keys(); len(got) != 2 || got[0] != "h" || got[1] != "left" {
		t.Errorf("Left keys = %v, want [h left]", got)
	}
}

func TestKeyMap_FullHelpCoversEveryBinding(t *testing.T) {
	keys := NewKeyMap(config.DefaultKeyMappings())

	seen := map[string]bool{}
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			seen[b.Help().Desc] = true
		}
	}

	for _, b := range []key.Binding{keys.Drop, keys.Cancel, keys.DeleteLane, keys.Refresh} {
		if !seen[b.Help().Desc] {
			t.Errorf("binding %q missing from full help", b.Help().Desc)
		}
	}
}
