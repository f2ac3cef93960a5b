package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lamplight/api"
	"github.com/five82/lamplight/internal/prefs"
	"github.com/five82/lamplight/internal/state"
	"github.com/five82/lamplight/recordset"
)

const peopleBody = `{"data":[
	{"id":7,"first_name":"Pat","surname":"Smith","email":"pat@example.org"},
	{"id":9,"first_name":"Sam","surname":"Jones","email":"sam@example.org"}
]}`

func storeWith(t *testing.T, status int, body string) *state.Store {
	t.Helper()
	rs, err := recordset.NewFactory(nil).Build(
		api.NewRequestContext("people", "all", nil),
		api.NewEnvelope(status, nil, []byte(body)),
		"",
	)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	store := &state.Store{}
	store.Update(rs, nil)
	return store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ready sizes the model and loads the store snapshot the way the program
// loop would.
func ready(t *testing.T, m Model, store *state.Store) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	next, _ = next.Update(snapshotMsg(store.Snapshot()))
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_LoadingUntilSized(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestModel_RendersRowsWithPreferredTemplate(t *testing.T) {
	store := storeWith(t, 200, peopleBody)
	m := ready(t, New(Options{
		Store: store,
		Prefs: prefs.Prefs{Templates: map[string]string{"PeopleSummary": "{surname}, {first_name}"}},
	}), store)

	view := m.View()
	for _, want := range []string{"Smith, Pat", "Jones, Sam", "2 records"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_SelectionDrivesDetail(t *testing.T) {
	store := storeWith(t, 200, peopleBody)
	m := ready(t, New(Options{Store: store}), store)

	if !strings.Contains(m.renderDetail(), "pat@example.org") {
		t.Fatalf("detail should show first record:\n%s", m.renderDetail())
	}

	m = press(m, runes("j"))
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want 1", m.selectedRow)
	}
	if !strings.Contains(m.renderDetail(), "sam@example.org") {
		t.Fatalf("detail should follow selection:\n%s", m.renderDetail())
	}

	m = press(m, runes("j"))
	if m.selectedRow != 1 {
		t.Fatalf("selection should stop at the last row, got %d", m.selectedRow)
	}

	m = press(m, runes("g"))
	if m.selectedRow != 0 {
		t.Fatalf("g should jump to the top, got %d", m.selectedRow)
	}
}

func TestModel_TabMovesFocusToDetail(t *testing.T) {
	store := storeWith(t, 200, peopleBody)
	m := ready(t, New(Options{Store: store}), store)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.focusDetail {
		t.Fatal("tab should focus the detail pane")
	}
	m = press(m, runes("j"))
	if m.selectedRow != 0 {
		t.Fatalf("list selection should not move while detail is focused, got %d", m.selectedRow)
	}
}

func TestModel_FooterShowsServerError(t *testing.T) {
	store := storeWith(t, 401, `{"error":401,"msg":"Bad key"}`)
	m := ready(t, New(Options{Store: store}), store)

	view := m.View()
	if !strings.Contains(view, "error 401: Bad key") {
		t.Fatalf("footer should show the API error:\n%s", view)
	}
	if !strings.Contains(view, "No records") {
		t.Fatalf("empty set should say so:\n%s", view)
	}
}

func TestModel_RefreshKeyCallsPoller(t *testing.T) {
	calls := 0
	store := storeWith(t, 200, peopleBody)
	m := ready(t, New(Options{Store: store, Refresh: func() { calls++ }}), store)

	press(m, runes("r"))
	if calls != 1 {
		t.Fatalf("refresh calls = %d, want 1", calls)
	}
}

func TestModel_CycleThemePersistsPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	store := storeWith(t, 200, peopleBody)
	m := ready(t, New(Options{
		Store:     store,
		PrefsPath: path,
		Prefs: prefs.Prefs{
			Theme:     "Nightfox",
			Templates: map[string]string{"PeopleSummary": "{surname}"},
		},
	}), store)

	m = press(m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if m.saveErr != nil {
		t.Fatalf("saveErr = %v", m.saveErr)
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
	if saved.Template("PeopleSummary") != "{surname}" {
		t.Fatalf("templates should survive a theme change, got %v", saved.Templates)
	}
}

func TestModel_HelpOverlayClosesOnAnyKey(t *testing.T) {
	store := storeWith(t, 200, peopleBody)
	m := ready(t, New(Options{Store: store}), store)

	m = press(m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay should be visible")
	}
	m = press(m, runes("x"))
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := New(Options{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() = %v, want 3 themes", names)
	}
	for i, name := range names {
		if got, want := NextTheme(name), names[(i+1)%len(names)]; got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
		if GetTheme(name).Name != name {
			t.Fatalf("GetTheme(%q) returned %q", name, GetTheme(name).Name)
		}
	}
	if got := NextTheme("Unknown"); got != names[0] {
		t.Fatalf("NextTheme(Unknown) = %q, want %q", got, names[0])
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown) = %q, want Nightfox", got)
	}
}
