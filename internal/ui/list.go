package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lexicon/internal/dictionary"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/prefs"
)

// listLine is one rendered line of the word list: a section title or an
// entry at index in the visible slice.
type listLine struct {
	title string
	index int
}

func (m Model) listLines() []listLine {
	if m.layout == prefs.LayoutFlat {
		lines := make([]listLine, len(m.visible))
		for i := range m.visible {
			lines[i] = listLine{index: i}
		}
		return lines
	}

	var lines []listLine
	offset := 0
	for _, sec := range dictionary.Sections(m.visible) {
		lines = append(lines, listLine{title: fmt.Sprintf("%s (%d)", sec.Title, len(sec.Entries)), index: -1})
		for i := range sec.Entries {
			lines = append(lines, listLine{index: offset + i})
		}
		offset += len(sec.Entries)
	}
	return lines
}

// listWindow returns the [start, end) range of lines to draw so that the
// selected entry stays on screen.
func listWindow(lines []listLine, selected, height int) (int, int) {
	if height <= 0 {
		return 0, 0
	}
	at := 0
	for i, l := range lines {
		if l.index == selected {
			at = i
			break
		}
	}
	start := 0
	if at >= height {
		start = at - height + 1
	}
	return start, min(len(lines), start+height)
}

func (m Model) renderList(height int) string {
	styles := m.theme.Styles()

	if len(m.visible) == 0 {
		msg := "No words yet. Press n to add one."
		if m.proj.SearchText != "" {
			msg = fmt.Sprintf("No words match %q.", m.proj.SearchText)
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	lines := m.listLines()
	start, end := listWindow(lines, m.selected, height)

	out := make([]string, 0, height)
	for _, l := range lines[start:end] {
		if l.index < 0 {
			out = append(out, styles.Section.Width(m.width).Render(l.title))
			continue
		}
		out = append(out, m.renderRow(m.visible[l.index], l.index == m.selected))
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m Model) renderRow(e entry.Entry, selected bool) string {
	styles := m.theme.Styles()

	star := "☆"
	if e.Favorite {
		star = "★"
	}
	name := padRight(truncateEnd(e.Name, NameColumnWidth), NameColumnWidth)

	var tags []string
	for _, label := range e.TagLabels() {
		if selected {
			tags = append(tags, label)
			continue
		}
		tags = append(tags, styles.TagStyle(label).Render(label))
	}

	cols := []string{star, name}
	if m.width >= LayoutTypesWidth {
		cols = append(cols, padRight(truncateEnd(e.TypeLabel(), 20), 20))
	}
	cols = append(cols, strings.Join(tags, " "))
	if m.width >= LayoutCompactWidth {
		cols = append(cols, e.DateCreated)
	}

	if selected {
		return styles.Selected.Width(m.width).Render(" " + strings.Join(cols, "  "))
	}
	cols[0] = ternary(e.Favorite, styles.WarningText.Render(star), styles.FaintText.Render(star))
	cols[1] = styles.Text.Render(name)
	if m.width >= LayoutTypesWidth {
		cols[2] = styles.MutedText.Render(cols[2])
	}
	if m.width >= LayoutCompactWidth {
		cols[len(cols)-1] = styles.FaintText.Render(e.DateCreated)
	}
	return " " + strings.Join(cols, "  ")
}
