package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bsj5/profilecard/internal/lanyard"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Card and panel background
	SurfaceAlt string // Header bar and overlays

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Discord status dot colors
	StatusColors map[lanyard.Status]string
}

// StatusColor returns the dot color for a Discord status.
func (t Theme) StatusColor(s lanyard.Status) string {
	if c, ok := t.StatusColors[s]; ok {
		return c
	}
	return t.StatusColors[lanyard.StatusOffline]
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Card   lipgloss.Style
	Logo   lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Blurple":  blurpleTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Blurple", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return blurpleTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func blurpleTheme() Theme {
	// Discord dark client palette
	return Theme{
		Name: "Blurple",

		Background: "#1e1f22",
		Surface:    "#2b2d31",
		SurfaceAlt: "#313338",

		Border:      "#3f4147",
		BorderFocus: "#5865f2",

		Text:    "#dbdee1",
		Muted:   "#949ba4",
		Faint:   "#6d6f78",
		Accent:  "#5865f2", // blurple
		Success: "#1db954", // spotify green
		Warning: "#f0b232",
		Danger:  "#f23f43",
		Info:    "#00a8fc",

		StatusColors: map[lanyard.Status]string{
			lanyard.StatusOnline:  "#43b581",
			lanyard.StatusIdle:    "#faa61a",
			lanyard.StatusDND:     "#f04747",
			lanyard.StatusOffline: "#747f8d",
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4

		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#957FB8", // oniViolet
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue

		StatusColors: map[lanyard.Status]string{
			lanyard.StatusOnline:  "#98BB6C", // springGreen
			lanyard.StatusIdle:    "#FFA066", // surimiOrange
			lanyard.StatusDND:     "#E46876", // waveRed
			lanyard.StatusOffline: "#727169", // fujiGray
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		StatusColors: map[lanyard.Status]string{
			lanyard.StatusOnline:  "#22c55e", // green-500
			lanyard.StatusIdle:    "#f59e0b", // amber-500
			lanyard.StatusDND:     "#dc2626", // red-600
			lanyard.StatusOffline: "#64748b", // slate-500
		},
	}
}
