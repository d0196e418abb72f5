package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/state"
)

const (
	fieldName = iota
	fieldTags
	fieldTypes
	fieldCount
)

// Messages emitted by the create form. Selections live in the projection,
// so toggles go back to the model as actions.
type (
	toggleTagMsg  struct{ tag entry.Tag }
	toggleTypeMsg struct{ typ entry.Type }
	submitMsg     struct{ name string }
)

// createForm is the "new word" dialog. It owns only the name input and the
// cursor; selected levels and classes are read from the projection.
type createForm struct {
	name       textinput.Model
	focus      int
	tagCursor  int
	typeCursor int

	selectedTags  []entry.Tag
	selectedTypes []entry.Type
	duplicate     bool
}

func newCreateForm() createForm {
	ti := textinput.New()
	ti.Placeholder = "word or phrase"
	ti.Prompt = "Name  "
	ti.CharLimit = 64
	ti.Width = 32
	return createForm{name: ti}
}

// sync copies the projection's selections into the form for rendering.
func (f createForm) sync(p state.Projection) createForm {
	f.selectedTags = p.SelectedTags
	f.selectedTypes = p.SelectedTypes
	f.duplicate = p.DuplicateFlag
	return f
}

func (f createForm) open() (createForm, tea.Cmd) {
	f.focus = fieldName
	return f, f.name.Focus()
}

func (f createForm) clear() createForm {
	f.name.SetValue("")
	return f
}

func (f createForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}

	switch {
	case key.Matches(km, keys.Cancel):
		f.name.Blur()
		return f, nil, true
	case key.Matches(km, keys.Confirm):
		name := f.name.Value()
		return f, func() tea.Msg { return submitMsg{name: name} }, false
	case key.Matches(km, keys.NextField):
		return f.moveFocus(1), nil, false
	case key.Matches(km, keys.PrevField):
		return f.moveFocus(-1), nil, false
	}

	switch f.focus {
	case fieldName:
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(km)
		return f, cmd, false
	case fieldTags:
		switch {
		case key.Matches(km, keys.Left):
			f.tagCursor = (f.tagCursor + len(entry.Tags) - 1) % len(entry.Tags)
		case key.Matches(km, keys.Right):
			f.tagCursor = (f.tagCursor + 1) % len(entry.Tags)
		case key.Matches(km, keys.Toggle):
			tag := entry.Tags[f.tagCursor]
			return f, func() tea.Msg { return toggleTagMsg{tag: tag} }, false
		}
	case fieldTypes:
		switch {
		case key.Matches(km, keys.Left):
			f.typeCursor = (f.typeCursor + len(entry.Types) - 1) % len(entry.Types)
		case key.Matches(km, keys.Right):
			f.typeCursor = (f.typeCursor + 1) % len(entry.Types)
		case key.Matches(km, keys.Toggle):
			typ := entry.Types[f.typeCursor]
			return f, func() tea.Msg { return toggleTypeMsg{typ: typ} }, false
		}
	}
	return f, nil, false
}

func (f createForm) moveFocus(delta int) createForm {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	if f.focus == fieldName {
		f.name.Focus()
	} else {
		f.name.Blur()
	}
	return f
}

func (f createForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("New word"))
	b.WriteString("\n\n")
	b.WriteString(f.name.View())
	b.WriteString("\n")
	if f.duplicate {
		b.WriteString(styles.DangerText.Render("Already in the dictionary"))
	}
	b.WriteString("\n")

	b.WriteString(f.label(styles, "Level", fieldTags))
	for i, tag := range entry.Tags {
		b.WriteString(f.option(styles, string(tag), slices.Contains(f.selectedTags, tag), f.focus == fieldTags && i == f.tagCursor))
	}
	b.WriteString("\n\n")

	b.WriteString(f.label(styles, "Class", fieldTypes))
	b.WriteString("\n")
	for i, typ := range entry.Types {
		if i > 0 && i%4 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.option(styles, string(typ), slices.Contains(f.selectedTypes, typ), f.focus == fieldTypes && i == f.typeCursor))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("tab field · ←/→ move · space toggle · enter save · esc close"))

	modal := styles.Dialog.Width(min(64, max(width-4, 20))).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

func (f createForm) label(styles Styles, text string, field int) string {
	if f.focus == field {
		return styles.AccentText.Bold(true).Render(padRight(text, 6))
	}
	return styles.MutedText.Render(padRight(text, 6))
}

func (f createForm) option(styles Styles, text string, selected, cursor bool) string {
	box := ternary(selected, "[x] ", "[ ] ")
	style := styles.Text
	if selected {
		style = styles.AccentText
	}
	if cursor {
		style = styles.Selected
	}
	return style.Render(box+text) + " "
}
