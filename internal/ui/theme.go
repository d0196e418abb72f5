package ui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lexicon/internal/entry"
)

// Theme is a named set of colors. Styles derives every lipgloss style from it.
type Theme struct {
	Name string

	Background    string
	Surface       string // header, footer
	SurfaceAlt    string // section titles
	SelectionBg   string
	SelectionText string
	BorderFocus   string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Level badges run from easy (green) to hard (red).
	TagColors map[entry.Tag]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
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

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Section: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),

		tagColors:  t.TagColors,
		background: t.Background,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Section  lipgloss.Style
	Selected lipgloss.Style
	Dialog   lipgloss.Style

	tagColors  map[entry.Tag]string
	background string
	muted      string
}

// TagStyle returns a badge style for the given level. "N/A" and unknown
// labels use the muted color.
func (s Styles) TagStyle(label string) lipgloss.Style {
	color := s.tagColors[entry.Tag(label)]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// palette maps a color scheme's roles onto the theme. The six level colors
// are listed easiest first and assigned to entry.Tags in order.
type palette struct {
	name                      string
	bg0, bg1, bg2, sel, selFg string
	fg, muted, faint          string
	accent, good, warn, bad   string
	levels                    [6]string
}

func (p palette) theme() Theme {
	tags := make(map[entry.Tag]string, len(entry.Tags))
	for i, tag := range entry.Tags {
		tags[tag] = p.levels[i]
	}
	return Theme{
		Name:          p.name,
		Background:    p.bg0,
		Surface:       p.bg1,
		SurfaceAlt:    p.bg2,
		SelectionBg:   p.sel,
		SelectionText: p.selFg,
		BorderFocus:   p.accent,
		Text:          p.fg,
		Muted:         p.muted,
		Faint:         p.faint,
		Accent:        p.accent,
		Success:       p.good,
		Warning:       p.warn,
		Danger:        p.bad,
		TagColors:     tags,
	}
}

var palettes = []palette{
	{
		// https://github.com/EdenEast/nightfox.nvim
		name: "Nightfox",
		bg0: "#131a24", bg1: "#192330", bg2: "#212e3f", sel: "#2b3b51", selFg: "#cdcecf",
		fg: "#cdcecf", muted: "#738091", faint: "#71839b",
		accent: "#719cd6", good: "#81b29a", warn: "#dbc074", bad: "#c94f6d",
		levels: [6]string{"#81b29a", "#63cdcf", "#719cd6", "#9d79d6", "#f4a261", "#c94f6d"},
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		name: "Kanagawa",
		bg0: "#16161D", bg1: "#1F1F28", bg2: "#2A2A37", sel: "#2D4F67", selFg: "#DCD7BA",
		fg: "#DCD7BA", muted: "#C8C093", faint: "#727169",
		accent: "#7E9CD8", good: "#98BB6C", warn: "#E6C384", bad: "#E46876",
		levels: [6]string{"#98BB6C", "#7FB4CA", "#7E9CD8", "#957FB8", "#FFA066", "#E46876"},
	},
	{
		// Tailwind slate with sky accents
		name: "Slate",
		bg0: "#020617", bg1: "#0f172a", bg2: "#1e293b", sel: "#0284c7", selFg: "#f8fafc",
		fg: "#f1f5f9", muted: "#94a3b8", faint: "#64748b",
		accent: "#38bdf8", good: "#22c55e", warn: "#f59e0b", bad: "#ef4444",
		levels: [6]string{"#22c55e", "#14b8a6", "#0ea5e9", "#6366f1", "#f59e0b", "#dc2626"},
	},
}

var (
	themes     = make(map[string]Theme, len(palettes))
	themeOrder = make([]string, 0, len(palettes))
)

func init() {
	for _, p := range palettes {
		themes[p.name] = p.theme()
		themeOrder = append(themeOrder, p.name)
	}
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return slices.Clone(themeOrder)
}
