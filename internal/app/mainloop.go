package app

import (
	"fmt"
	"time"

	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/workspace"
)

// Run drives the main loop: poll a key (or time out and run idle work),
// dispatch it, redraw the status line, repeat until a quit command
// closes the last window. SetBackend must be called first.
func (a *Application) Run() error {
	if a.ui == nil {
		return ErrNoBackend
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	idle := time.Duration(a.cfg.Editor.IdleTimeoutMS) * time.Millisecond
	if idle <= 0 {
		idle = 250 * time.Millisecond
	}

	go a.watchSignals()

	a.drawStatus()
	for {
		if a.sigbus.CompareAndSwap(true, false) {
			if done := a.recoverFromSigbus(); done {
				break
			}
		}

		ev, ok := a.ui.PollKey(idle)
		if !ok {
			a.onIdle()
			continue
		}

		quit, err := a.HandleKey(ev)
		if err != nil {
			return err
		}
		a.drawStatus()
		if quit {
			break
		}
	}

	a.ui.Close()
	a.signalDone()
	return nil
}

// signalDone closes a.done at most once, so Run and an out-of-band
// Shutdown call can't double-close it.
func (a *Application) signalDone() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Shutdown stops the signal-watching goroutine. The mainloop itself only
// exits via HandleKey's quit return; a UI that wants to force an early
// exit should make its next PollKey call return so Run can observe that
// on its own next iteration.
func (a *Application) Shutdown() {
	a.signalDone()
	if err := a.registry.CloseWatcher(); err != nil {
		a.logger.Debug("shutdown: close watcher: %v", err)
	}
}

// recoverFromSigbus implements spec.md §5/§7's SIGBUS recovery: close
// every window whose file was truncated, warning with its filename, and
// report whether no window survived (the mainloop should then exit
// fatally rather than run with zero windows).
func (a *Application) recoverFromSigbus() bool {
	activeWin := a.activeWindow()
	var survivors []*workspace.Window
	for _, win := range a.windows {
		if !win.File.Truncated() {
			survivors = append(survivors, win)
			continue
		}
		name := win.File.Name
		if name == "" {
			name = "[No Name]"
		}
		a.logger.Error("closing %s: backing file was truncated", name)
		if err := a.registry.Close(win); err != nil {
			a.logger.Warn("sigbus cleanup: %v", err)
		}
	}
	a.windows = survivors

	if len(a.windows) == 0 {
		a.exitStatus = 1
		return true
	}
	a.active = 0
	for i, win := range a.windows {
		if win == activeWin {
			a.active = i
			break
		}
	}
	return false
}

// onIdle runs once per idle timeout with no key available: it reports an
// external file change flagged by reload.go, splits the INSERT undo
// group at the pause, and refreshes the status line.
func (a *Application) onIdle() {
	a.warnIfChangedOnDisk()
	a.splitInsertUndoGroup()
	a.drawStatus()
}

// splitInsertUndoGroup closes out the undo group opened when INSERT was
// entered and immediately opens a fresh one, so that idle_timeout of
// inactivity mid-insert becomes an undo boundary (spec.md §4.2's
// "INSERT.idle ... snapshots the buffer so undo granularity is
// sentence-sized, not keystroke-sized") without leaving INSERT itself.
func (a *Application) splitInsertUndoGroup() {
	if !a.modes.IsMode(mode.ModeInsert) {
		return
	}
	hist := a.activeWindow().File.Hist
	if !hist.IsGrouping() {
		return
	}
	hist.EndGroup()
	hist.BeginGroup("insert")
}

// warnIfChangedOnDisk surfaces reload.go's "changed on disk" flag as a
// one-line info message the first idle tick after it's noticed, then
// acknowledges it so the warning doesn't repeat every tick.
func (a *Application) warnIfChangedOnDisk() {
	win := a.activeWindow()
	if !win.File.ChangedOnDisk() {
		return
	}
	a.logger.Warn("%s: changed on disk since it was opened", win.File.Name)
	win.File.AcknowledgeDisk()
}

// drawStatus renders the mode name, file name/modified marker, and
// cursor position, or the active prompt line if one is open.
func (a *Application) drawStatus() {
	if a.modes.CurrentName() == mode.ModeCommand {
		a.ui.ShowPrompt(a.cmdMode.Prompt(), a.cmdMode.Buffer())
		return
	}
	a.ui.HidePrompt()

	win := a.activeWindow()
	c := win.View.Primary()
	line, col := uint32(0), uint32(0)
	if c != nil {
		pt := win.File.Text.OffsetToPoint(int64(c.Pos))
		line, col = pt.Line, pt.Column
	}
	name := win.File.Name
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if win.File.Modified() {
		modified = " [+]"
	}
	display := a.modes.Current()
	modeName := ""
	if display != nil {
		modeName = display.DisplayName()
	}
	a.ui.DrawStatus(fmt.Sprintf("%s | %s%s | %d:%d", modeName, name, modified, line+1, col+1))
}
