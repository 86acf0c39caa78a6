package colors

// kanagawa holds the Kanagawa palette shared by the dragon and wave presets
var kanagawa = struct {
	dragonBlack3, dragonBlack4, dragonBlack6 string
	dragonWhite, dragonAsh                   string
	dragonViolet, dragonAqua, dragonBlue2    string
	dragonGreen2, dragonRed                  string
	fujiWhite, fujiGray, sumiInk4            string
	oniViolet, crystalBlue, springGreen      string
	waveAqua2, sakuraPink                    string
	roninYellow, samuraiRed, autumnRed       string
	winterBlue, winterYellow, winterRed      string
}{
	dragonBlack3: "#181616",
	dragonBlack4: "#282727",
	dragonBlack6: "#625e5a",
	dragonWhite:  "#c5c9c5",
	dragonAsh:    "#737c73",
	dragonViolet: "#8992a7",
	dragonAqua:   "#8ea4a2",
	dragonBlue2:  "#8ba4b0",
	dragonGreen2: "#8a9a7b",
	dragonRed:    "#c4746e",
	fujiWhite:    "#DCD7BA",
	fujiGray:     "#727169",
	sumiInk4:     "#2A2A37",
	oniViolet:    "#957FB8",
	crystalBlue:  "#7E9CD8",
	springGreen:  "#98BB6C",
	waveAqua2:    "#7AA89F",
	sakuraPink:   "#D27E99",
	roninYellow:  "#FF9E3B",
	samuraiRed:   "#E82424",
	autumnRed:    "#C34043",
	winterBlue:   "#252535",
	winterYellow: "#49443C",
	winterRed:    "#43242B",
}

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	p := kanagawa
	return &ColorScheme{
		Preset: "dragon",

		Accent: p.dragonViolet,

		Create: p.dragonGreen2,
		Delete: p.dragonRed,
		Value:  p.dragonGreen2,

		LaneBorder:     p.dragonBlack6,
		TicketBorder:   p.dragonBlack4,
		SelectedBorder: p.dragonAqua,
		GrabbedBorder:  p.roninYellow,

		Title:  p.dragonBlue2,
		Subtle: p.dragonAsh,
		Normal: p.dragonWhite,

		InfoFg:    p.dragonBlue2,
		InfoBg:    p.winterBlue,
		WarningFg: p.roninYellow,
		WarningBg: p.winterYellow,
		ErrorFg:   p.samuraiRed,
		ErrorBg:   p.winterRed,
	}
}

// Wave returns the Kanagawa Wave color scheme
func Wave() *ColorScheme {
	p := kanagawa
	return &ColorScheme{
		Preset: "wave",

		Accent: p.oniViolet,

		Create: p.springGreen,
		Delete: p.autumnRed,
		Value:  p.springGreen,

		LaneBorder:     p.crystalBlue,
		TicketBorder:   p.sumiInk4,
		SelectedBorder: p.sakuraPink,
		GrabbedBorder:  p.roninYellow,

		Title:  p.crystalBlue,
		Subtle: p.fujiGray,
		Normal: p.fujiWhite,

		InfoFg:    p.waveAqua2,
		InfoBg:    p.winterBlue,
		WarningFg: p.roninYellow,
		WarningBg: p.winterYellow,
		ErrorFg:   p.samuraiRed,
		ErrorBg:   p.winterRed,
	}
}
