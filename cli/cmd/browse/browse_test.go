package browse

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ntro/dotenv"
	"github.com/ardnew/ntro/log"
)

const first = `# @type 'dev' | 'prod'
APP_ENV=dev
DATABASE_URL=postgres://localhost
# @type boolean
NEXT_PUBLIC_DEBUG=false
`

const second = `# @type number
NEXT_PUBLIC_DEBUG=1
`

func testRows(t *testing.T) []Row {
	t.Helper()

	docs := []dotenv.Document{
		dotenv.ParseDocument(".env", first),
		dotenv.ParseDocument(".env.local", second),
	}

	_, err := dotenv.Merge(docs, dotenv.WithAllConflicts())

	conflicts, ok := err.(dotenv.Conflicts)
	if !ok {
		t.Fatalf("Merge() error = %v, want Conflicts", err)
	}

	return Rows(dotenv.MergeKeys(docs), conflicts, nil)
}

func TestRows(t *testing.T) {
	rows := testRows(t)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	want := []struct {
		key, declared string
		public        bool
		conflict      bool
	}{
		{"APP_ENV", ".env:2", false, false},
		{"DATABASE_URL", ".env:3", false, false},
		{"NEXT_PUBLIC_DEBUG", ".env.local:2", true, true},
	}

	for i, w := range want {
		r := rows[i]
		if r.Key != w.key || r.Declared != w.declared || r.Public != w.public ||
			(r.Conflict != "") != w.conflict {
			t.Errorf("rows[%d] = %+v, want %+v", i, r, w)
		}
	}
}

func TestRows_Hints(t *testing.T) {
	reg, err := dotenv.Merge([]dotenv.Document{dotenv.ParseDocument(".env", first)})
	if err != nil {
		t.Fatal(err)
	}

	rows := Rows(reg, nil, dotenv.PrefixClassifier("APP_"))

	if rows[0].Hint != "'dev' | 'prod'" || rows[0].HintSource != ".env:1" || !rows[0].Public {
		t.Errorf("rows[0] = %+v", rows[0])
	}

	if rows[1].Hint != "" || rows[1].Public {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func update(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)

		var ok bool
		if m, ok = next.(model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}

	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestModel_Filter(t *testing.T) {
	m := newModel(context.Background(), testRows(t), nil, log.Logger{})

	if len(m.matches) != 3 {
		t.Fatalf("unfiltered matches = %d, want 3", len(m.matches))
	}

	m = update(t, m, runes("dburl"))

	if len(m.matches) != 1 || m.matches[0].Str != "DATABASE_URL" {
		t.Fatalf("matches = %v", m.matches)
	}

	if r, ok := m.selected(); !ok || r.Key != "DATABASE_URL" {
		t.Errorf("selected = %+v, %v", r, ok)
	}

	m = update(t, m, key(tea.KeyEsc))

	if m.quitting || m.input.Value() != "" || len(m.matches) != 3 {
		t.Errorf("Esc did not clear filter: %q, %d matches", m.input.Value(), len(m.matches))
	}

	m = update(t, m, runes("zzz"))

	if len(m.matches) != 0 {
		t.Errorf("matches = %v, want none", m.matches)
	}

	if _, ok := m.selected(); ok {
		t.Error("selected with no matches")
	}
}

func TestModel_Navigate(t *testing.T) {
	m := newModel(context.Background(), testRows(t), nil, log.Logger{})

	tests := []struct {
		msg  tea.Msg
		want int
	}{
		{key(tea.KeyUp), 0},
		{key(tea.KeyDown), 1},
		{key(tea.KeyTab), 2},
		{key(tea.KeyDown), 2},
		{key(tea.KeyShiftTab), 1},
		{key(tea.KeyHome), 0},
		{key(tea.KeyEnd), 2},
	}

	for i, tt := range tests {
		m = update(t, m, tt.msg)
		if m.cursor != tt.want {
			t.Errorf("step %d: cursor = %d, want %d", i, m.cursor, tt.want)
		}
	}

	// Narrowing the filter clamps the cursor.
	m = update(t, m, runes("APP"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after filtering, want 0", m.cursor)
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc} {
		m := newModel(context.Background(), nil, nil, log.Logger{})

		next, cmd := m.Update(key(k))
		if !next.(model).quitting || cmd == nil {
			t.Errorf("%v did not quit", k)
		}

		if next.View() != "" {
			t.Errorf("%v: view after quit = %q", k, next.View())
		}
	}
}

func TestModel_View(t *testing.T) {
	rows := testRows(t)
	conflicts := []string{"conflicting type annotations: NEXT_PUBLIC_DEBUG"}

	m := newModel(context.Background(), rows, conflicts, log.Logger{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}, key(tea.KeyEnd))

	view := m.View()

	for _, want := range []string{
		"conflicting type annotations",
		"3/3",
		"APP_ENV",
		"DATABASE_URL",
		"declared",
		".env.local:2",
		"conflict",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_Window(t *testing.T) {
	rows := make([]Row, 50)
	for i := range rows {
		rows[i] = Row{Key: strings.Repeat("K", i+1)}
	}

	m := newModel(context.Background(), rows, nil, log.Logger{})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10}, key(tea.KeyEnd))

	first, last := m.window()
	if last != 50 || last-first != 10-chrome {
		t.Errorf("window = [%d, %d)", first, last)
	}

	if first > m.cursor || m.cursor >= last {
		t.Errorf("cursor %d outside window [%d, %d)", m.cursor, first, last)
	}
}
