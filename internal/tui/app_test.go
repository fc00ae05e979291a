package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/shuffler/internal/deck"
	"github.com/arcanaland/shuffler/internal/render"
	"github.com/arcanaland/shuffler/internal/session"
	"github.com/arcanaland/shuffler/internal/store"
)

func newTestApp() App {
	ctrl := session.New(store.NewMemory(), session.WithRand(deck.NewRand(5)))
	ctrl.Init()
	a := New(ctrl, Options{Size: render.Small})
	a.width = 100
	a.height = 40
	return a
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		model, _ := a.Update(msg)
		a = model.(App)
	}
	return a
}

func typeText(a App, s string) App {
	for _, r := range s {
		a = press(a, string(r))
	}
	return a
}

func TestAppNavigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantCursor int
		wantOpened int
	}{
		{"nothing pressed", nil, -1, 0},
		{"next", []string{"n"}, 0, 1},
		{"space and right", []string{"space", "right"}, 1, 2},
		{"back", []string{"n", "n", "n", "p", "left"}, 0, 3},
		{"back stops at first card", []string{"n", "n", "p", "p", "p"}, 0, 2},
		{"back with nothing opened", []string{"p"}, -1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := press(newTestApp(), tc.keys...)
			st := a.ctrl.State()
			if st.Cursor != tc.wantCursor {
				t.Errorf("cursor = %d, want %d", st.Cursor, tc.wantCursor)
			}
			if len(st.History) != tc.wantOpened {
				t.Errorf("opened = %d, want %d", len(st.History), tc.wantOpened)
			}
			if len(st.Deck)+len(st.History) != 52 {
				t.Errorf("deck+opened = %d, want 52", len(st.Deck)+len(st.History))
			}
		})
	}
}

func TestAppNextOnEmptyDeck(t *testing.T) {
	a := newTestApp()
	for i := 0; i < 53; i++ {
		a = press(a, "n")
	}
	st := a.ctrl.State()
	if len(st.Deck) != 0 || len(st.History) != 52 || st.Cursor != 51 {
		t.Fatalf("got deck=%d opened=%d cursor=%d", len(st.Deck), len(st.History), st.Cursor)
	}
	if !strings.Contains(a.View(), "0 cards remaining") {
		t.Error("expected empty deck count in view")
	}
	if !strings.Contains(a.View(), "Empty") {
		t.Error("expected empty deck placeholder in view")
	}
}

func TestAppShuffleModal(t *testing.T) {
	a := press(newTestApp(), "n", "n", "s")
	if !a.modal.open {
		t.Fatal("expected modal open after s")
	}
	if !strings.Contains(a.View(), "Confirm Shuffle") {
		t.Error("expected modal in view")
	}

	// keys go to the modal, not the deck
	a = typeText(a, "np")
	if got := len(a.ctrl.State().History); got != 2 {
		t.Fatalf("opened = %d while modal open, want 2", got)
	}
	if strings.Contains(a.View(), "np") {
		t.Error("password must be masked")
	}

	a = press(a, "enter")
	if !a.modal.open {
		t.Fatal("wrong password should keep modal open")
	}
	if a.modal.input != "" {
		t.Errorf("input = %q after wrong password, want empty", a.modal.input)
	}
	if !strings.Contains(a.View(), "Incorrect password") {
		t.Error("expected error in view")
	}

	a = typeText(a, "shufflex")
	a = press(a, "backspace", "enter")
	if a.modal.open {
		t.Fatal("expected modal closed after correct password")
	}
	st := a.ctrl.State()
	if len(st.Deck) != 52 || len(st.History) != 0 || st.Cursor != -1 {
		t.Fatalf("after shuffle got deck=%d opened=%d cursor=%d", len(st.Deck), len(st.History), st.Cursor)
	}
	if !strings.Contains(a.View(), "No card") {
		t.Error("expected no opened card after shuffle")
	}
}

func TestAppShuffleModalCancel(t *testing.T) {
	a := press(newTestApp(), "n", "s")
	a = typeText(a, "SHUFFLE")
	a = press(a, "esc")
	if a.modal.open {
		t.Fatal("expected modal closed after esc")
	}
	if a.modal.input != "" {
		t.Error("expected input cleared on cancel")
	}
	if got := len(a.ctrl.State().History); got != 1 {
		t.Fatalf("cancel must not change state, opened = %d", got)
	}
}

func TestAppShuffleModalAttempts(t *testing.T) {
	a := press(newTestApp(), "n")
	a.opts.Attempts = 2
	a = press(a, "s")

	a = typeText(a, "nope")
	a = press(a, "enter")
	if !a.modal.open {
		t.Fatal("first wrong password should keep modal open")
	}

	a = typeText(a, " shuffle")
	a = press(a, "enter")
	if a.modal.open {
		t.Fatal("expected modal closed after the last attempt")
	}
	if !strings.Contains(a.View(), "Too many incorrect attempts") {
		t.Error("expected attempts notice in view")
	}
	if got := len(a.ctrl.State().History); got != 1 {
		t.Fatalf("failed confirmation must not reshuffle, opened = %d", got)
	}

	// a fresh modal gets a fresh count
	a = press(a, "s")
	if a.modal.failures != 0 {
		t.Errorf("failures = %d on reopened modal, want 0", a.modal.failures)
	}
	if strings.Contains(a.View(), "Too many incorrect attempts") {
		t.Error("notice should clear on the next key")
	}
	a = typeText(a, "SHUFFLE")
	a = press(a, "enter")
	if got := len(a.ctrl.State().Deck); got != 52 {
		t.Fatalf("deck = %d after shuffle, want 52", got)
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestAppViewPosition(t *testing.T) {
	a := newTestApp()
	if strings.Contains(a.View(), "Card 1 of") {
		t.Error("no position before the first card")
	}
	a = press(a, "n", "n", "n", "p")
	view := a.View()
	if !strings.Contains(view, "Card 2 of 3") {
		t.Errorf("expected position in view, got:\n%s", view)
	}
	if !strings.Contains(view, "49 cards remaining") {
		t.Error("expected remaining count")
	}
	cur, _ := a.ctrl.Current()
	if !strings.Contains(view, string(cur.Rank)) {
		t.Error("expected current card rank in view")
	}
}

func TestAppWindowSize(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	a = model.(App)
	if a.width != 120 || a.height != 50 {
		t.Errorf("size = %dx%d, want 120x50", a.width, a.height)
	}
}
