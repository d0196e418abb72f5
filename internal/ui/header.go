package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the full UI: header, search bar, list, toasts, footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	searchBar := m.renderSearchBar()
	toasts := m.renderToasts()
	footer := m.renderFooter()

	used := lipgloss.Height(header) + lipgloss.Height(searchBar) + lipgloss.Height(footer)
	if toasts != "" {
		used += lipgloss.Height(toasts)
	}
	list := m.renderList(max(m.height-used, 1))

	parts := []string{header, searchBar, list}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	favorites := 0
	for _, e := range m.proj.Entries {
		if e.Favorite {
			favorites++
		}
	}

	parts := []string{
		styles.Logo.Render("lexicon"),
		styles.Text.Render(fmt.Sprintf("%d words", len(m.proj.Entries))),
		styles.WarningText.Render(fmt.Sprintf("%d ★", favorites)),
	}
	if m.proj.SearchText != "" {
		parts = append(parts, styles.AccentText.Render(fmt.Sprintf("%d shown", len(m.visible))))
	}
	if m.busy > 0 {
		parts = append(parts, styles.MutedText.Render("saving…"))
	}
	parts = append(parts, styles.FaintText.Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	switch {
	case m.searching:
		return " " + m.search.View()
	case m.proj.SearchText != "":
		return " " + styles.AccentText.Render("/ "+m.proj.SearchText) + styles.FaintText.Render("  (/ to edit)")
	default:
		return " " + styles.FaintText.Render("/ to search")
	}
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	h := help.New()
	h.Width = max(m.width-2, 0)
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.Text
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	return styles.Footer.Width(m.width).Render(h.ShortHelpView(m.keys.ShortHelp()))
}
