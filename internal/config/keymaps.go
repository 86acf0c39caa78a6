package config

// KeyMappings defines all configurable board key bindings
type KeyMappings struct {
	// Tickets
	AddTicket    string `yaml:"add_ticket"`
	DeleteTicket string `yaml:"delete_ticket"`
	GrabTicket   string `yaml:"grab_ticket"`

	// Lanes
	AddLane    string `yaml:"add_lane"`
	DeleteLane string `yaml:"delete_lane"`
	GrabLane   string `yaml:"grab_lane"`

	// Drag and drop
	Drop   string `yaml:"drop"`
	Cancel string `yaml:"cancel"`

	// Navigation
	PrevLane     string `yaml:"prev_lane"`
	NextLane     string `yaml:"next_lane"`
	PrevTicket   string `yaml:"prev_ticket"`
	NextTicket   string `yaml:"next_ticket"`
	NextPipeline string `yaml:"next_pipeline"`
	PrevPipeline string `yaml:"prev_pipeline"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTicket:    "a",
		DeleteTicket: "d",
		GrabTicket:   "space",

		AddLane:    "A",
		DeleteLane: "D",
		GrabLane:   "g",

		Drop:   "enter",
		Cancel: "esc",

		PrevLane:     "h",
		NextLane:     "l",
		PrevTicket:   "k",
		NextTicket:   "j",
		NextPipeline: "}",
		PrevPipeline: "{",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&k.AddTicket, defaults.AddTicket)
	fill(&k.DeleteTicket, defaults.DeleteTicket)
	fill(&k.GrabTicket, defaults.GrabTicket)
	fill(&k.AddLane, defaults.AddLane)
	fill(&k.DeleteLane, defaults.DeleteLane)
	fill(&k.GrabLane, defaults.GrabLane)
	fill(&k.Drop, defaults.Drop)
	fill(&k.Cancel, defaults.Cancel)
	fill(&k.PrevLane, defaults.PrevLane)
	fill(&k.NextLane, defaults.NextLane)
	fill(&k.PrevTicket, defaults.PrevTicket)
	fill(&k.NextTicket, defaults.NextTicket)
	fill(&k.NextPipeline, defaults.NextPipeline)
	fill(&k.PrevPipeline, defaults.PrevPipeline)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
