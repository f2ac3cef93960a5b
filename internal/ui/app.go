package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lamplight/internal/prefs"
	"github.com/five82/lamplight/internal/state"
	"github.com/five82/lamplight/record"
)

// Options configures the browser.
type Options struct {
	Context context.Context
	Store   *state.Store
	// Refresh asks the poller for an immediate fetch. Nil disables the key.
	Refresh   func()
	PollTick  time.Duration
	Title     string
	ThemeName string
	PrefsPath string
	Prefs     prefs.Prefs
}

// Model is the root Bubble Tea model of the record browser.
type Model struct {
	ctx       context.Context
	store     *state.Store
	refresh   func()
	pollTick  time.Duration
	title     string
	prefsPath string
	prefs     prefs.Prefs
	keys      keyMap

	theme       Theme
	width       int
	height      int
	ready       bool
	focusDetail bool
	showHelp    bool

	snapshot    state.Snapshot
	selectedRow int
	detail      viewport.Model

	// saveErr is the last failure persisting the theme choice.
	saveErr error
}

// New creates a browser model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	title := opts.Title
	if title == "" {
		title = "lamplight"
	}

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		refresh:   opts.Refresh,
		pollTick:  pollTick,
		title:     title,
		prefsPath: opts.PrefsPath,
		prefs:     opts.Prefs,
		keys:      defaultKeyMap(),
		theme:     GetTheme(themeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.detailSize()
		if !m.ready {
			m.detail = viewport.New(w, h)
			m.ready = true
		} else {
			m.detail.Width = w
			m.detail.Height = h
		}
		m.updateDetail()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		m.updateDetail()
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
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			m.saveErr = prefs.Save(m.prefsPath, m.prefs)
		}
		m.updateDetail()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.focusDetail = !m.focusDetail
		return m, nil
	}

	if m.focusDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Items)
	if count == 0 {
		return m, nil
	}

	prev := m.selectedRow
	page := max(m.listHeight(), 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow++
	case key.Matches(msg, m.keys.Up):
		m.selectedRow--
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow += page
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow -= page
	}
	m.clampSelection()
	if m.selectedRow != prev {
		m.updateDetail()
		m.detail.GotoTop()
	}
	return m, nil
}

func (m *Model) clampSelection() {
	last := len(m.snapshot.Items) - 1
	if m.selectedRow > last {
		m.selectedRow = last
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// selected returns the highlighted record, if any.
func (m Model) selected() (record.Record, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Items) {
		return nil, false
	}
	return m.snapshot.Items[m.selectedRow], true
}

func (m *Model) updateDetail() {
	if !m.ready {
		return
	}
	m.detail.SetContent(m.renderDetail())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the browser and blocks until the user quits or the context in
// opts is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
