package app

import (
	"github.com/arjunrao/modaltext/internal/key"
	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/vim"
)

// handleInsertKey drives INSERT. InsertMode.HandleUnmapped covers
// printable runes and space; the control keys that end or shape an
// insert run (Escape, Backspace, Enter, Tab) are handled here since they
// have no InsertMode binding at all.
func (a *Application) handleInsertKey(ev key.Event) (bool, error) {
	switch {
	case ev.IsEscape():
		a.finishInsertRepeat()
		win := a.activeWindow()
		win.File.Hist.EndGroup()
		for _, c := range win.View.Cursors() {
			pt := win.File.Text.OffsetToPoint(int64(c.Pos))
			start := int(win.File.Text.LineStartOffset(pt.Line))
			if c.Pos > start {
				c.Pos--
			}
		}
		_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
		return false, nil
	case ev.IsBackspace():
		a.backspaceAtCursor()
		return false, nil
	case ev.IsEnter():
		a.insertAtCursor("\n")
		return false, nil
	case ev.IsTab():
		a.insertAtCursor(a.tabText())
		return false, nil
	}
	return a.handleUnmapped(ev)
}

// tabText returns the literal text a Tab key inserts, honoring the
// expandtab/tabwidth settings.
func (a *Application) tabText() string {
	if !a.cfg.Editor.ExpandTab {
		return "\t"
	}
	win := a.activeWindow()
	c := win.View.Primary()
	width := a.cfg.Editor.TabWidth
	if width <= 0 {
		width = 8
	}
	n := width
	if c != nil {
		pt := win.File.Text.OffsetToPoint(int64(c.Pos))
		n = width - int(pt.Column)%width
	}
	spaces := make([]byte, n)
	for i := range spaces {
		spaces[i] = ' '
	}
	return string(spaces)
}

// backspaceAtCursor deletes the byte before every cursor.
func (a *Application) backspaceAtCursor() {
	win := a.activeWindow()
	for _, c := range win.View.Cursors() {
		if c.Pos == 0 {
			continue
		}
		_, n := win.File.Text.RuneAt(int64(c.Pos) - 1)
		if n == 0 {
			n = 1
		}
		start := c.Pos - n
		if err := win.Editor().Delete(start, c.Pos); err != nil {
			a.logger.Debug("backspace: %v", err)
			continue
		}
		win.View.ShiftFrom(start, -n, c.ID())
		c.Pos = start
	}
	win.Redraw()
}

// handleVisualKey drives VISUAL/VISUAL_LINE/VISUAL_BLOCK: mode toggles
// that vim.Parser has no opinion on, then the visual-family parser (the
// same grammar as normal mode, but primed so completed commands act on
// the current selection), then VisualMode.HandleUnmapped for anything
// left over (count digits).
func (a *Application) handleVisualKey(ev key.Event) (bool, error) {
	if ev.IsEscape() {
		a.leaveVisual()
		return false, nil
	}
	if ev.IsRune() && !ev.IsModified() && a.visualParser.State() == vim.StateInitial {
		switch ev.Rune {
		case 'v':
			if a.modes.CurrentName() == mode.ModeVisual {
				a.leaveVisual()
			} else {
				_ = a.modes.SwitchWithContext(mode.ModeVisual, a.context())
			}
			return false, nil
		case 'V':
			if a.modes.CurrentName() == mode.ModeVisualLine {
				a.leaveVisual()
			} else {
				_ = a.modes.SwitchWithContext(mode.ModeVisualLine, a.context())
			}
			return false, nil
		}
		if a.modes.CurrentName() == mode.ModeVisualBlock {
			switch ev.Rune {
			case 'I':
				return a.runParsedCommand(blockCursorCommand(&vim.OpCursorSOL)), nil
			case 'A':
				return a.runParsedCommand(blockCursorCommand(&vim.OpCursorEOL)), nil
			}
		}
	}

	res := a.visualParser.Parse(ev)
	switch res.Status {
	case vim.StatusComplete:
		return a.runParsedCommand(res.Command), nil
	case vim.StatusPending, vim.StatusInvalid:
		return false, nil
	default:
		return a.handleUnmapped(ev)
	}
}

// blockCursorCommand builds the operator-only command VISUAL_BLOCK's 'I'
// and 'A' run: no motion or text object, so the executor resolves its
// range from the current selection and spawns one cursor per line.
func blockCursorCommand(op *vim.Operator) *vim.Command {
	cmd := vim.NewCommand()
	cmd.Operator = op
	cmd.Action = op.Action
	return cmd
}

// leaveVisual drops every selection and returns to NORMAL.
func (a *Application) leaveVisual() {
	a.visualParser.Reset()
	win := a.activeWindow()
	a.captureVisualMarks(win)
	win.View.ClearSelections()
	_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
}

// handlePromptKey drives the shared CommandMode buffer for both ':'
// ex-command entry and '/'/'?' incremental search entry; promptKind
// (set by enterPrompt) decides how Enter's buffer content is
// interpreted.
func (a *Application) handlePromptKey(ev key.Event) (bool, error) {
	switch {
	case ev.IsEscape():
		_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
		return false, nil
	case ev.IsEnter():
		line := a.cmdMode.Buffer()
		a.cmdMode.AddToHistory(line)
		kind := a.promptKind
		_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
		return a.submitPrompt(kind, line)
	case ev.IsBackspace():
		if !a.cmdMode.Backspace() {
			_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
		}
		return false, nil
	case ev.Key == key.KeyLeft:
		a.cmdMode.MoveLeft()
		return false, nil
	case ev.Key == key.KeyRight:
		a.cmdMode.MoveRight()
		return false, nil
	case ev.Key == key.KeyUp:
		a.cmdMode.HistoryPrev()
		return false, nil
	case ev.Key == key.KeyDown:
		a.cmdMode.HistoryNext()
		return false, nil
	case ev.Key == key.KeyHome:
		a.cmdMode.MoveToStart()
		return false, nil
	case ev.Key == key.KeyEnd:
		a.cmdMode.MoveToEnd()
		return false, nil
	}
	return a.handleUnmapped(ev)
}

// submitPrompt dispatches a completed prompt line by the kind of prompt
// it closed (':' ex-command, '/' or '?' search pattern).
func (a *Application) submitPrompt(kind rune, line string) (bool, error) {
	switch kind {
	case ':':
		return a.evalEx(line)
	case '/':
		a.runSearch(line, true)
	case '?':
		a.runSearch(line, false)
	}
	return false, nil
}
