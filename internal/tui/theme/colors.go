package theme

import "github.com/thenoetrevino/pipeboard/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	Subtle         string
	Normal         string
	Title          string
	Create         string
	Delete         string
	Value          string
	LaneBorder     string
	TicketBorder   string
	SelectedBorder string
	GrabbedBorder  string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
)

func init() {
	Init(*colors.Default())
}

// Init initializes the theme colors from the given color scheme
func Init(scheme colors.ColorScheme) {
	scheme.ApplyDefaults()

	Highlight = scheme.Accent
	Subtle = scheme.Subtle
	Normal = scheme.Normal
	Title = scheme.Title
	Create = scheme.Create
	Delete = scheme.Delete
	Value = scheme.Value
	LaneBorder = scheme.LaneBorder
	TicketBorder = scheme.TicketBorder
	SelectedBorder = scheme.SelectedBorder
	GrabbedBorder = scheme.GrabbedBorder
	InfoFg = scheme.InfoFg
	InfoBg = scheme.InfoBg
	WarningFg = scheme.WarningFg
	WarningBg = scheme.WarningBg
	ErrorFg = scheme.ErrorFg
	ErrorBg = scheme.ErrorBg
}
