package ui

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"github.com/five82/lexicon/internal/dictionary"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/prefs"
	"github.com/five82/lexicon/internal/state"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Dictionary *dictionary.Dictionary
	Toaster    *Toaster
	Prefs      prefs.Prefs
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	dict      *dictionary.Dictionary
	toaster   *Toaster
	prefsPath string
	keys      keyMap

	// UI state
	theme  Theme
	layout string
	width  int
	height int
	ready  bool

	// Data state
	proj     state.Projection
	visible  []entry.Entry
	selected int

	// Input state
	search    textinput.Model
	searching bool
	form      createForm
	showHelp  bool

	toasts []Toast
	busy   int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	layout := opts.Prefs.Layout
	if layout != prefs.LayoutFlat {
		layout = prefs.LayoutSections
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search..."
	search.CharLimit = 64

	m := Model{
		ctx:       ctx,
		dict:      opts.Dictionary,
		toaster:   opts.Toaster,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
		layout:    layout,
		search:    search,
		form:      newCreateForm(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.ctx, m.dict),
		waitForToast(m.ctx, m.toaster),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-8, 10)
		m.ready = true
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.ctx, m.dict)

	case toastMsg:
		m.toasts = pushToast(m.toasts, Toast(msg), now())
		return m, tea.Batch(waitForToast(m.ctx, m.toaster), expireCmd(ToastLifetime))

	case expireMsg:
		m.toasts = expireToasts(m.toasts, now())
		return m, nil

	case toggleTagMsg:
		m.dispatch(state.ToggleTag{Tag: msg.tag})
		return m, nil

	case toggleTypeMsg:
		m.dispatch(state.ToggleType{Type: msg.typ})
		return m, nil

	case submitMsg:
		m.busy++
		return m, m.createCmd(msg.name)

	case deleteMsg:
		m.busy++
		return m, m.deleteCmd(msg.target)

	case createdMsg:
		m.busy--
		if msg.err == nil {
			m.form = m.form.clear()
		}
		m.refresh()
		return m, nil

	case opDoneMsg:
		m.busy--
		m.refresh()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if modal := m.activeModal(); modal != nil {
		return modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// refresh re-reads the projection, keeping the cursor on the same word when
// it is still visible.
func (m *Model) refresh() {
	var selectedID string
	if e, ok := m.current(); ok {
		selectedID = e.ID
	}

	m.proj = m.dict.Snapshot()
	m.visible = m.dict.Visible()
	m.form = m.form.sync(m.proj)

	if selectedID != "" {
		if i := slices.IndexFunc(m.visible, func(e entry.Entry) bool { return e.ID == selectedID }); i >= 0 {
			m.selected = i
			return
		}
	}
	m.selected = clamp(m.selected, len(m.visible))
}

func (m *Model) dispatch(a state.Action) {
	m.dict.Dispatch(a)
	m.refresh()
}

func (m Model) current() (entry.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return entry.Entry{}, false
	}
	return m.visible[m.selected], true
}

func (m Model) activeModal() Modal {
	switch {
	case m.proj.ConfirmOpen:
		return confirmDialog{target: m.proj.ConfirmTarget}
	case m.proj.FormOpen:
		return m.form
	default:
		return nil
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if modal := m.activeModal(); modal != nil {
		return m.updateModal(modal, msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.ToggleLayout):
		m.layout = ternary(m.layout == prefs.LayoutFlat, prefs.LayoutSections, prefs.LayoutFlat)
		m.savePrefs()

	case key.Matches(msg, m.keys.Escape):
		m.toasts = nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.New):
		m.dispatch(state.ToggleForm{})
		var cmd tea.Cmd
		m.form, cmd = m.form.open()
		return m, cmd

	case key.Matches(msg, m.keys.Favorite):
		if e, ok := m.current(); ok {
			m.busy++
			return m, m.favoriteCmd(e)
		}

	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.current(); ok {
			m.dispatch(state.ToggleConfirm{Target: &state.ConfirmTarget{Entry: e, Index: m.proj.IndexOf(e.ID)}})
		}

	case key.Matches(msg, m.keys.Lookup):
		if e, ok := m.current(); ok {
			m.toasts = pushToast(m.toasts, lookupToast(e), now())
			return m, expireCmd(ToastLifetime)
		}

	case key.Matches(msg, m.keys.Up):
		m.selected = clamp(m.selected-1, len(m.visible))
	case key.Matches(msg, m.keys.Down):
		m.selected = clamp(m.selected+1, len(m.visible))
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = clamp(len(m.visible)-1, len(m.visible))
	}

	return m, nil
}

func (m Model) updateModal(modal Modal, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, closed := modal.Update(msg, m.keys)
	if f, ok := next.(createForm); ok {
		m.form = f
	}
	if !closed {
		return m, cmd
	}

	switch modal.(type) {
	case confirmDialog:
		m.dict.Dispatch(state.ToggleConfirm{})
	case createForm:
		m.dict.Dispatch(state.ToggleForm{})
		m.dict.Dispatch(state.ResetForm{})
		m.form = m.form.clear()
	}
	m.refresh()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.dispatch(state.SetSearch{Text: ""})
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if text := m.search.Value(); text != m.proj.SearchText {
		m.dispatch(state.SetSearch{Text: text})
	}
	return m, cmd
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}); err != nil {
		glog.Warningf("Save prefs: %v", err)
	}
}

// Messages

type changedMsg struct{}

type createdMsg struct{ err error }

type opDoneMsg struct{ err error }

// Commands

func waitForChange(ctx context.Context, d *dictionary.Dictionary) tea.Cmd {
	changes := d.Changes()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return changedMsg{}
		}
	}
}

func (m Model) createCmd(name string) tea.Cmd {
	ctx, dict := m.ctx, m.dict
	draft := dictionary.Draft{
		Name:  name,
		Tags:  slices.Clone(m.proj.SelectedTags),
		Types: slices.Clone(m.proj.SelectedTypes),
	}
	return func() tea.Msg {
		_, err := dict.Create(ctx, draft)
		if err != nil {
			glog.V(1).Infof("Create from form: %v", err)
		}
		return createdMsg{err: err}
	}
}

func (m Model) favoriteCmd(e entry.Entry) tea.Cmd {
	ctx, dict := m.ctx, m.dict
	return func() tea.Msg {
		return opDoneMsg{err: dict.Favorite(ctx, e)}
	}
}

func (m Model) deleteCmd(target state.ConfirmTarget) tea.Cmd {
	ctx, dict := m.ctx, m.dict
	return func() tea.Msg {
		return opDoneMsg{err: dict.Delete(ctx, target.Entry, target.Index)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
