package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the browser palette.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// TypeColors colors the record type badge in the detail pane.
	TypeColors map[string]string
}

// Styles holds the Lipgloss styles derived from a Theme.
type Styles struct {
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Title      lipgloss.Style
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Danger     lipgloss.Style
	Selected   lipgloss.Style

	typeColors map[string]string
	background string
	muted      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		typeColors: t.TypeColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// TypeBadge renders a record type name as a colored badge.
func (s Styles) TypeBadge(recordType string) string {
	color := s.typeColors[recordType]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(recordType)
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
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
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SurfaceAlt:    "#212e3f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		TypeColors: map[string]string{
			"WorkSummary":     "#719cd6",
			"WorkareaSummary": "#63cdcf",
			"Workarea":        "#63cdcf",
			"PeopleSummary":   "#81b29a",
			"OrgsSummary":     "#9d79d6",
			"FamilySummary":   "#f4a261",
			"ReferralSummary": "#dbc074",
		},
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		SurfaceAlt:    "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#54546D",
		BorderFocus:   "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Accent:        "#7E9CD8",
		Success:       "#98BB6C",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		TypeColors: map[string]string{
			"WorkSummary":     "#7E9CD8",
			"WorkareaSummary": "#7FB4CA",
			"Workarea":        "#7FB4CA",
			"PeopleSummary":   "#98BB6C",
			"OrgsSummary":     "#957FB8",
			"FamilySummary":   "#FFA066",
			"ReferralSummary": "#E6C384",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS slate and sky scales.
	return Theme{
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SurfaceAlt:    "#1e293b",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		TypeColors: map[string]string{
			"WorkSummary":     "#38bdf8",
			"WorkareaSummary": "#06b6d4",
			"Workarea":        "#06b6d4",
			"PeopleSummary":   "#22c55e",
			"OrgsSummary":     "#a78bfa",
			"FamilySummary":   "#f59e0b",
			"ReferralSummary": "#eab308",
		},
	}
}
