package app

import (
	"path/filepath"
	"testing"

	"github.com/arjunrao/modaltext/internal/key"
	"github.com/arjunrao/modaltext/internal/mode"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	a, err := New(Options{MacrosPath: filepath.Join(t.TempDir(), "macros.yaml")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func rn(r rune) key.Event { return key.NewRuneEvent(r, key.ModNone) }

func TestNewOpensScratchWindowInNormalMode(t *testing.T) {
	a := newTestApp(t)
	if got := a.modes.CurrentName(); got != mode.ModeNormal {
		t.Fatalf("CurrentName = %q, want normal", got)
	}
	if len(a.windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(a.windows))
	}
}

func TestInsertModeTypesText(t *testing.T) {
	a := newTestApp(t)
	for _, ev := range []key.Event{rn('i'), rn('h'), rn('i'), key.NewSpecialEvent(key.KeyEscape, key.ModNone)} {
		if _, err := a.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey: %v", err)
		}
	}
	win := a.activeWindow()
	if got := win.File.Text.Text(); got != "hi" {
		t.Fatalf("text = %q, want %q", got, "hi")
	}
	if got := a.modes.CurrentName(); got != mode.ModeNormal {
		t.Fatalf("CurrentName after Escape = %q, want normal", got)
	}
}

func TestDeleteCharAndUndo(t *testing.T) {
	a := newTestApp(t)
	for _, ev := range []key.Event{rn('i'), rn('a'), rn('b'), rn('c'), key.NewSpecialEvent(key.KeyEscape, key.ModNone)} {
		a.HandleKey(ev)
	}
	a.moveCursorTo(0)

	if _, err := a.HandleKey(rn('x')); err != nil {
		t.Fatalf("HandleKey x: %v", err)
	}
	win := a.activeWindow()
	if got := win.File.Text.Text(); got != "bc" {
		t.Fatalf("after x = %q, want %q", got, "bc")
	}

	if _, err := a.HandleKey(rn('u')); err != nil {
		t.Fatalf("HandleKey u: %v", err)
	}
	if got := win.File.Text.Text(); got != "abc" {
		t.Fatalf("after undo = %q, want %q", got, "abc")
	}
}

func TestDotRepeatsLastInsert(t *testing.T) {
	a := newTestApp(t)
	for _, ev := range []key.Event{rn('i'), rn('x'), key.NewSpecialEvent(key.KeyEscape, key.ModNone)} {
		a.HandleKey(ev)
	}
	win := a.activeWindow()
	if got := win.File.Text.Text(); got != "x" {
		t.Fatalf("after insert = %q, want %q", got, "x")
	}

	if _, err := a.HandleKey(rn('.')); err != nil {
		t.Fatalf("HandleKey .: %v", err)
	}
	if got := win.File.Text.Text(); got != "xx" {
		t.Fatalf("after repeat = %q, want %q", got, "xx")
	}
}

func TestExQuitClosesLastWindow(t *testing.T) {
	a := newTestApp(t)
	for _, ev := range []key.Event{rn(':'), rn('q'), key.NewSpecialEvent(key.KeyEnter, key.ModNone)} {
		quit, err := a.HandleKey(ev)
		if err != nil {
			t.Fatalf("HandleKey: %v", err)
		}
		if ev.IsEnter() && !quit {
			t.Fatalf(":q did not quit")
		}
	}
}

func TestSearchNextFindsNextMatch(t *testing.T) {
	a := newTestApp(t)
	win := a.activeWindow()
	if err := win.Editor().Insert(0, "foo bar foo"); err != nil {
		t.Fatalf("seed text: %v", err)
	}
	a.moveCursorTo(0)

	a.runSearch("foo", true)
	if got := win.View.Primary().Pos; got != 8 {
		t.Fatalf("after / search, cursor = %d, want 8", got)
	}
}

func TestReplaceCharPushesAndPopsReplaceMode(t *testing.T) {
	a := newTestApp(t)
	win := a.activeWindow()
	if err := win.Editor().Insert(0, "abc"); err != nil {
		t.Fatalf("seed text: %v", err)
	}
	a.moveCursorTo(0)

	if _, err := a.HandleKey(rn('r')); err != nil {
		t.Fatalf("HandleKey r: %v", err)
	}
	if got := a.modes.CurrentName(); got != mode.ModeReplace {
		t.Fatalf("CurrentName after 'r' = %q, want replace", got)
	}

	if _, err := a.HandleKey(rn('Z')); err != nil {
		t.Fatalf("HandleKey Z: %v", err)
	}
	if got := a.modes.CurrentName(); got != mode.ModeNormal {
		t.Fatalf("CurrentName after replacement key = %q, want normal", got)
	}
	if got := win.File.Text.Text(); got != "Zbc" {
		t.Fatalf("text = %q, want %q", got, "Zbc")
	}
}

func TestMacroRecordAndPlay(t *testing.T) {
	a := newTestApp(t)
	win := a.activeWindow()
	if err := win.Editor().Insert(0, "ab"); err != nil {
		t.Fatalf("seed text: %v", err)
	}
	a.moveCursorTo(0)

	for _, ev := range []key.Event{rn('q'), rn('a'), rn('x'), rn('q')} {
		if _, err := a.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey: %v", err)
		}
	}
	if got := win.File.Text.Text(); got != "b" {
		t.Fatalf("after recorded x = %q, want %q", got, "b")
	}
	if a.macros.IsRecording() {
		t.Fatalf("still recording after second q")
	}

	a.moveCursorTo(0)
	if _, err := a.HandleKey(rn('@')); err != nil {
		t.Fatalf("HandleKey @: %v", err)
	}
	if _, err := a.HandleKey(rn('a')); err != nil {
		t.Fatalf("HandleKey @a register: %v", err)
	}
	if got := win.File.Text.Text(); got != "" {
		t.Fatalf("after @a = %q, want empty", got)
	}
}
