package app

import (
	"github.com/arjunrao/modaltext/internal/cursor"
	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/workspace"
)

func selectionOf(start, end int) cursor.Selection {
	return cursor.Selection{Start: start, End: end}
}

// setMark implements 'm<char>': record the primary cursor's position
// under a named mark (a-z/A-Z/0-9, per vim.Parser's parseMarkSet).
func (a *Application) setMark(arg any) {
	s, _ := arg.(string)
	if s == "" {
		return
	}
	c := a.activeCursor()
	if c == nil {
		return
	}
	a.activeWindow().File.SetNamedMark(rune(s[0]), c.Pos)
}

// gotoMark implements '\'<char>' and '`<char>'. Vim distinguishes exact
// position (`) from start-of-line (') for most marks; the core has no
// separate line-start/column semantics worth modeling here, so both
// forms jump to the mark's exact stored offset.
func (a *Application) gotoMark(arg any) {
	s, _ := arg.(string)
	if s == "" {
		return
	}
	name := rune(s[0])
	win := a.activeWindow()

	var pos int
	var ok bool
	switch name {
	case '.':
		pos, ok = win.File.ChangeAt(win.File.ChangeCount() - 1)
	default:
		pos, ok = win.File.NamedMarkPos(name)
	}
	if !ok {
		return
	}
	win.Jumplist.Push(a.activeCursor().Pos)
	a.moveCursorTo(pos)
}

// captureVisualMarks stores the primary cursor's selection bounds under
// the '<' and '>' marks and remembers the active visual submode, so 'gv'
// can restore them after the executor (which owns clearing a consumed
// selection) runs.
func (a *Application) captureVisualMarks(win *workspace.Window) {
	c := win.View.Primary()
	if c == nil || !c.HasSelection() {
		return
	}
	sel := c.SelectionOrEmpty()
	win.File.SetNamedMark('<', sel.Start)
	win.File.SetNamedMark('>', sel.End)
	a.lastVisualMode = a.modes.CurrentName()
}

// reselectVisual implements 'gv': restore the last visual selection and
// re-enter its mode.
func (a *Application) reselectVisual() {
	win := a.activeWindow()
	start, ok1 := win.File.NamedMarkPos('<')
	end, ok2 := win.File.NamedMarkPos('>')
	if !ok1 || !ok2 {
		return
	}
	c := win.View.Primary()
	if c == nil {
		return
	}
	c.Pos = end
	target := a.lastVisualMode
	if target == "" {
		target = mode.ModeVisual
	}
	_ = a.modes.SwitchWithContext(target, a.context())
	c.SetSelection(selectionOf(start, end))
}
