package app

import (
	"github.com/arjunrao/modaltext/internal/mode"
)

// runAction interprets the Action a mode's HandleUnmapped produced: mode
// switches, window close, cursor nudges, and jumplist navigation that sit
// outside vim.Parser's grammar entirely.
func (a *Application) runAction(act *mode.Action) (bool, error) {
	switch act.Name {
	case "mode.insert":
		a.enterInsert(act.Args)
	case "mode.visual":
		a.enterVisual(act.Args)
	case "mode.command":
		a.enterPrompt(':')
	case "mode.search":
		if forward, _ := act.Args["forward"].(bool); forward {
			a.enterPrompt('/')
		} else {
			a.enterPrompt('?')
		}
	case "window.writeAndClose":
		return a.writeAndCloseActive()
	case "window.closeDiscard":
		return a.closeActive(true)
	case "cursor.left":
		a.nudgeCursor(-1, 0, act.Args)
	case "cursor.right":
		a.nudgeCursor(1, 0, act.Args)
	case "cursor.up":
		a.nudgeCursor(0, -1, act.Args)
	case "cursor.down":
		a.nudgeCursor(0, 1, act.Args)
	case "cursor.line_start":
		a.moveCursorToLineStart()
	case "cursor.line_end":
		a.moveCursorToLineEnd()
	case "editor.redo":
		a.redo()
	case "jumplist.back":
		a.jumpTo(a.activeWindow().Jumplist.Back(a.activeCursor().Pos))
	case "jumplist.forward":
		a.jumpTo(a.activeWindow().Jumplist.Forward())
	case "view.page_up", "view.page_down", "view.half_page_up", "view.half_page_down":
		// Window layout/scrolling is out of scope; there is no viewport to
		// page within a core that tracks no visible-range state.
	case "editor.insertText":
		if text, _ := act.Args["text"].(string); text != "" {
			a.insertAtCursor(text)
		}
	case "editor.replaceChar":
		if ch, _ := act.Args["char"].(string); ch != "" {
			a.replaceCharAtCursor(ch)
		}
	}
	return false, nil
}

// insertAtCursor inserts text at every cursor in the active view and
// advances each past it, the ordinary path for both single-cursor INSERT
// typing and the multi-cursor run VISUAL_BLOCK's I/A spawn.
func (a *Application) insertAtCursor(text string) {
	win := a.activeWindow()
	for _, c := range win.View.Cursors() {
		if err := win.Editor().Insert(c.Pos, text); err != nil {
			a.logger.Debug("insert: %v", err)
			continue
		}
		win.View.ShiftFrom(c.Pos, len(text), c.ID())
		c.Pos += len(text)
	}
	win.Redraw()
}

// replaceCharAtCursor implements 'r': overwrite the character under every
// cursor without entering insert mode, then return to NORMAL.
func (a *Application) replaceCharAtCursor(ch string) {
	win := a.activeWindow()
	for _, c := range win.View.Cursors() {
		_, n := win.File.Text.RuneAt(int64(c.Pos))
		if n == 0 {
			continue
		}
		if err := win.Editor().Replace(c.Pos, c.Pos+n, ch); err != nil {
			a.logger.Debug("replaceChar: %v", err)
			continue
		}
		win.View.ShiftFrom(c.Pos, len(ch)-n, c.ID())
	}
	win.Redraw()
	_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
}

// jumpTo moves the primary cursor to pos if it resolved (not cursor.EPos).
func (a *Application) jumpTo(pos int) {
	if pos < 0 {
		return
	}
	a.moveCursorTo(pos)
}

// redo reapplies the most recently undone edit.
func (a *Application) redo() {
	win := a.activeWindow()
	if err := win.File.Redo(); err != nil {
		a.logger.Debug("redo: %v", err)
		return
	}
	win.View.ClampAll(int(win.File.Text.Len()))
	win.Redraw()
}

// writeAndCloseActive implements ZZ: save the active window's file, then
// close the window.
func (a *Application) writeAndCloseActive() (bool, error) {
	win := a.activeWindow()
	if err := win.File.Save(""); err != nil {
		a.logger.Warn("write: %v", err)
		return false, nil
	}
	return a.closeActive(false)
}

// closeActive closes the active window. force bypasses the unsaved-changes
// guard (ZQ, :q!).
func (a *Application) closeActive(force bool) (bool, error) {
	win := a.activeWindow()
	if !force && win.File.Modified() {
		a.logger.Warn("unsaved changes (add ! to discard)")
		return false, nil
	}
	if err := a.registry.Close(win); err != nil {
		return false, err
	}
	a.windows = append(a.windows[:a.active], a.windows[a.active+1:]...)
	if len(a.windows) == 0 {
		return true, nil
	}
	if a.active >= len(a.windows) {
		a.active = len(a.windows) - 1
	}
	return false, nil
}
