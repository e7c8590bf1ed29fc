package ui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arjunrao/modaltext/internal/key"
)

// Terminal is the tcell-backed implementation of app.Ui. It owns the
// tcell.Screen, decodes its events into key.Event for the mode graph's
// key reader, and draws the single status/prompt line the core itself
// is responsible for.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	mu     sync.Mutex
	status string
	prompt rune // 0 when no prompt is shown
	input  string
}

// NewTerminal allocates and initializes a tcell screen in raw mode.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	go screen.ChannelEvents(t.events, t.quit)
	return t, nil
}

// PollKey implements app.Ui. It blocks for up to timeout; a resize event
// is applied to the screen and reported as a non-key poll (ok=false) so
// the mainloop's idle branch runs and the next PollKey call picks up a
// real key.
func (t *Terminal) PollKey(timeout time.Duration) (key.Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev := <-t.events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				return convertKey(e), true
			case *tcell.EventResize:
				t.screen.Sync()
				return key.Event{}, false
			default:
				// Mouse, paste, focus events: not part of the core's
				// grammar; drop and keep waiting within the budget.
				continue
			}
		case <-timer.C:
			return key.Event{}, false
		}
	}
}

// DrawStatus implements app.Ui.
func (t *Terminal) DrawStatus(text string) {
	t.mu.Lock()
	t.status = text
	t.prompt = 0
	t.mu.Unlock()
	t.render()
}

// ShowPrompt implements app.Ui.
func (t *Terminal) ShowPrompt(prompt rune, buffer string) {
	t.mu.Lock()
	t.prompt = prompt
	t.input = buffer
	t.mu.Unlock()
	t.render()
}

// HidePrompt implements app.Ui.
func (t *Terminal) HidePrompt() {
	t.mu.Lock()
	t.prompt = 0
	t.mu.Unlock()
	t.render()
}

// MarkDirty implements app.Ui (and workspace.UI). The core owns no
// buffer-rendering surface, so there is nothing further to schedule;
// the next status draw already happens every keystroke.
func (t *Terminal) MarkDirty() {}

// Resize implements app.Ui: re-read the terminal size after a SIGWINCH.
func (t *Terminal) Resize() {
	t.screen.Sync()
	t.render()
}

// Suspend implements app.Ui: it drops raw mode through tcell's
// Screen.Suspend. It does not stop the process or resume the screen.
func (t *Terminal) Suspend() error {
	return t.screen.Suspend()
}

// Close implements app.Ui.
func (t *Terminal) Close() {
	close(t.quit)
	t.screen.Fini()
}

// render draws either the active prompt or the status line on the
// terminal's bottom row.
func (t *Terminal) render() {
	t.mu.Lock()
	prompt, input, status := t.prompt, t.input, t.status
	t.mu.Unlock()

	width, height := t.screen.Size()
	if height == 0 {
		return
	}
	row := height - 1
	t.screen.SetContent(0, row, ' ', nil, tcell.StyleDefault)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}

	var line string
	if prompt != 0 {
		line = string(prompt) + input
	} else {
		line = status
	}
	col := 0
	for _, r := range line {
		if col >= width {
			break
		}
		t.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
	t.screen.Show()
}

// convertKey turns a tcell key event into the core's key.Event.
func convertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())

	if e.Key() == tcell.KeyRune {
		return key.NewRuneEvent(e.Rune(), mods)
	}

	if k, ok := specialKeys[e.Key()]; ok {
		return key.NewSpecialEvent(k, mods)
	}

	// tcell reports Ctrl-<letter> as its own Key constant rather than
	// KeyRune+ModCtrl; recover the letter and fold it into our
	// modifier-based model so the parser sees a uniform key.Event shape.
	if r, mod, ok := ctrlLetter(e.Key()); ok {
		return key.NewRuneEvent(r, mods|mod)
	}

	// Unrecognized key: surface as a KeyNone event so the key reader can
	// still make forward progress instead of stalling.
	return key.NewSpecialEvent(key.KeyNone, mods)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= key.ModMeta
	}
	return out
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:              key.KeyEscape,
	tcell.KeyEnter:                key.KeyEnter,
	tcell.KeyTab:                 key.KeyTab,
	tcell.KeyBackspace:           key.KeyBackspace,
	tcell.KeyBackspace2:          key.KeyBackspace,
	tcell.KeyDelete:              key.KeyDelete,
	tcell.KeyInsert:              key.KeyInsert,
	tcell.KeyHome:                key.KeyHome,
	tcell.KeyEnd:                 key.KeyEnd,
	tcell.KeyPgUp:                key.KeyPageUp,
	tcell.KeyPgDn:                key.KeyPageDown,
	tcell.KeyUp:                  key.KeyUp,
	tcell.KeyDown:                key.KeyDown,
	tcell.KeyLeft:                key.KeyLeft,
	tcell.KeyRight:               key.KeyRight,
	tcell.KeyF1:                  key.KeyF1,
	tcell.KeyF2:                  key.KeyF2,
	tcell.KeyF3:                  key.KeyF3,
	tcell.KeyF4:                  key.KeyF4,
	tcell.KeyF5:                  key.KeyF5,
	tcell.KeyF6:                  key.KeyF6,
	tcell.KeyF7:                  key.KeyF7,
	tcell.KeyF8:                  key.KeyF8,
	tcell.KeyF9:                  key.KeyF9,
	tcell.KeyF10:                 key.KeyF10,
	tcell.KeyF11:                 key.KeyF11,
	tcell.KeyF12:                 key.KeyF12,
}

// ctrlLetter recovers the ASCII letter behind tcell's KeyCtrlA..KeyCtrlZ
// constants (and ' ' for KeyCtrlSpace), returning it as a lowercase
// rune plus the Ctrl modifier.
func ctrlLetter(k tcell.Key) (rune, key.Modifier, bool) {
	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return rune('a' + int(k-tcell.KeyCtrlA)), key.ModCtrl, true
	case k == tcell.KeyCtrlSpace:
		return ' ', key.ModCtrl, true
	default:
		return 0, key.ModNone, false
	}
}
