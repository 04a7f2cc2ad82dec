package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used for tables.
type Theme struct {
	Name    string
	Border  string
	Heading string
	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

var themes = map[string]Theme{
	"nightfox": nightfoxTheme(),
	"kanagawa": kanagawaTheme(),
	"slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, case-insensitively. Unknown names fall back
// to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return nightfoxTheme()
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// GradeStyle colors a grade cell from the portal's color hint.
func (t Theme) GradeStyle(color string) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "red":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true)
	case "green":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	case "blue":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:    "Nightfox",
		Border:  "#39506d", // bg4
		Heading: "#719cd6", // blue
		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:    "Kanagawa",
		Border:  "#54546D", // sumiInk6
		Heading: "#7E9CD8", // crystalBlue
		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:    "Slate",
		Border:  "#334155", // slate-700
		Heading: "#38bdf8", // sky-400
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
	}
}
