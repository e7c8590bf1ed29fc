package app

import (
	"github.com/arjunrao/modaltext/internal/exec"
	"github.com/arjunrao/modaltext/internal/key"
	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/vim"
)

// repeatState implements '.': it buffers the raw key sequence of the
// change currently in progress (vim.Parser owns no notion of "the last
// change", so the app layer has to record one independently) and replays
// that sequence verbatim through HandleKey on '.'.
type repeatState struct {
	buf        []key.Event
	lastChange []key.Event
	capturing  bool
	replaying  bool
}

// recordForRepeat buffers ev if it may be part of the change currently
// being built. Capture starts speculatively on the first key of a new
// normal-mode command and, if that command enters INSERT, continues
// through the insert run until Escape.
func (a *Application) recordForRepeat(ev key.Event) {
	if a.repeat.replaying {
		return
	}
	if a.modes.CurrentName() == mode.ModeInsert {
		if a.repeat.capturing {
			a.repeat.buf = append(a.repeat.buf, ev)
		}
		return
	}
	if a.modes.IsMode(mode.ModeNormal) && a.normalParser.State() == vim.StateInitial && !a.repeat.capturing {
		a.repeat.buf = a.repeat.buf[:0]
		a.repeat.capturing = true
	}
	if a.repeat.capturing {
		a.repeat.buf = append(a.repeat.buf, ev)
	}
}

// noteRepeatable finalizes the buffered sequence once a vim.Command has
// run to completion without entering insert mode. A command that enters
// insert stays open for capture; finishInsertRepeat closes it on Escape.
func (a *Application) noteRepeatable(cmd *vim.Command, res exec.Result) {
	if a.repeat.replaying {
		return
	}
	if res.EntersInsert {
		return
	}
	if res.Repeatable || res.OperatorRan {
		a.repeat.lastChange = append(a.repeat.lastChange[:0:0], a.repeat.buf...)
	}
	a.repeat.capturing = false
	a.repeat.buf = a.repeat.buf[:0]
}

// resetRepeatCapture discards any in-progress capture without touching
// lastChange. Sentinel actions (undo, '.', search, marks, changelist
// navigation) are not themselves repeatable, but recordForRepeat has
// already speculatively opened a capture for the key that triggered
// them; left alone it would bleed into the next command's buffer.
func (a *Application) resetRepeatCapture() {
	a.repeat.capturing = false
	a.repeat.buf = a.repeat.buf[:0]
}

// finishInsertRepeat closes out a capture that entered insert mode,
// called when Escape returns to NORMAL.
func (a *Application) finishInsertRepeat() {
	if a.repeat.replaying {
		return
	}
	if a.repeat.capturing {
		a.repeat.lastChange = append(a.repeat.lastChange[:0:0], a.repeat.buf...)
	}
	a.repeat.capturing = false
	a.repeat.buf = a.repeat.buf[:0]
}

// replayLastChange implements '.': feed the last captured change's keys
// back through HandleKey with hint.InOperatorMacro set, so the executor
// treats it the same way it treats a macro register replaying an operator.
func (a *Application) replayLastChange() {
	if a.repeat.replaying || len(a.repeat.lastChange) == 0 {
		return
	}
	seq := a.repeat.lastChange
	a.repeat.replaying = true
	defer func() { a.repeat.replaying = false }()
	for _, ev := range seq {
		if _, err := a.HandleKey(ev); err != nil {
			a.logger.Debug("repeat: %v", err)
			return
		}
	}
}
