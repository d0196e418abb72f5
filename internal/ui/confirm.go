package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lexicon/internal/state"
)

type deleteMsg struct{ target state.ConfirmTarget }

// confirmDialog asks before a delete, which cannot be undone once the store
// accepts it.
type confirmDialog struct {
	target *state.ConfirmTarget
}

func (c confirmDialog) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || c.target == nil {
		return c, nil, c.target == nil
	}
	switch {
	case key.Matches(km, keys.Confirm), km.String() == "y":
		target := *c.target
		return c, func() tea.Msg { return deleteMsg{target: target} }, true
	case key.Matches(km, keys.Cancel), km.String() == "n":
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDialog) View(theme Theme, width, height int) string {
	if c.target == nil {
		return ""
	}
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(fmt.Sprintf("Delete %s?", strings.ToUpper(c.target.Entry.Name))))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("The word will be gone for good."))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/enter delete · n/esc cancel"))

	modal := styles.Dialog.
		BorderForeground(lipgloss.Color(theme.Danger)).
		Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
