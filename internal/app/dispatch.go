package app

import (
	"github.com/arjunrao/modaltext/internal/key"
	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/vim"
)

// pendingMacro tracks the two-key sequences 'q<reg>' (start/stop
// recording) and '@<reg>' (play) that vim.Parser's grammar has no
// opinion on and so always reports as passthrough.
type pendingMacro struct {
	awaitingRecordRegister bool
	awaitingPlayRegister   bool
}

// HandleKey feeds one terminal key event through the editor. It returns
// quit=true once the user has asked to exit (ZZ, ZQ, :q, :q!, :wq).
func (a *Application) HandleKey(ev key.Event) (quit bool, err error) {
	a.recordForRepeat(ev)
	if a.macros.IsRecording() && !a.isMacroStopKey(ev) {
		a.macros.Record(ev)
	}
	return a.dispatch(ev)
}

func (a *Application) isMacroStopKey(ev key.Event) bool {
	return a.macros.IsRecording() && ev.IsRune() && !ev.IsModified() && ev.Rune == 'q' &&
		a.modes.IsMode(mode.ModeNormal) && a.normalParser.State() == vim.StateInitial
}

func (a *Application) dispatch(ev key.Event) (bool, error) {
	switch a.modes.CurrentName() {
	case mode.ModeCommand:
		return a.handlePromptKey(ev)
	case mode.ModeInsert:
		return a.handleInsertKey(ev)
	case mode.ModeVisual, mode.ModeVisualLine, mode.ModeVisualBlock:
		return a.handleVisualKey(ev)
	default:
		return a.handleNormalKey(ev)
	}
}

// handleNormalKey drives NORMAL/OPERATOR_PENDING through the macro
// trigger check, the normal-family vim.Parser, and, on passthrough,
// NormalMode.HandleUnmapped. It also keeps mode.ModeOperatorPending in
// sync with the parser's own StateOperator/StateOperatorCount/
// StateTextObjectPrefix states, so the status line and cursor style
// reflect "awaiting a motion" the way spec.md's mode graph names it,
// even though vim.Parser (not the mode graph) actually tracks the
// pending operator.
func (a *Application) handleNormalKey(ev key.Event) (bool, error) {
	if quit, handled := a.handleMacroTrigger(ev); handled {
		return quit, nil
	}

	wasPending := a.awaitingMotion()
	wasReplacing := a.normalParser.State() == vim.StateReplaceChar
	res := a.normalParser.Parse(ev)
	a.syncOperatorPendingMode(wasPending, a.awaitingMotion())
	a.syncReplacePendingMode(wasReplacing, a.normalParser.State() == vim.StateReplaceChar)

	switch res.Status {
	case vim.StatusComplete:
		return a.runParsedCommand(res.Command), nil
	case vim.StatusPending, vim.StatusInvalid:
		return false, nil
	default: // StatusPassthrough
		return a.handleUnmapped(ev)
	}
}

// awaitingMotion reports whether normalParser is holding a count/operator/
// text-object prefix that still needs a motion or text object to act on.
func (a *Application) awaitingMotion() bool {
	switch a.normalParser.State() {
	case vim.StateOperator, vim.StateOperatorCount, vim.StateTextObjectPrefix:
		return true
	default:
		return false
	}
}

// syncOperatorPendingMode pushes mode.ModeOperatorPending when the parser
// starts waiting for a motion and pops back to NORMAL once it either
// completes, is abandoned, or Escape resets it. A mismatched pop (no
// push happened, e.g. the mode graph was already elsewhere) is harmless:
// Manager.Pop just reports an empty-stack error that we ignore.
func (a *Application) syncOperatorPendingMode(was, now bool) {
	if now == was {
		return
	}
	if now {
		ctx := mode.NewContext()
		ctx.Extra["operator"] = a.normalParser.PendingKeys()
		_ = a.modes.PushWithContext(mode.ModeOperatorPending, ctx)
	} else {
		_ = a.modes.Pop()
	}
}

// syncReplacePendingMode pushes mode.ModeReplace when normalParser enters
// StateReplaceChar (right after 'r') and pops it once the replacement key
// resolves that state, one way or another. Mirrors syncOperatorPendingMode.
func (a *Application) syncReplacePendingMode(was, now bool) {
	if now == was {
		return
	}
	if now {
		_ = a.modes.PushWithContext(mode.ModeReplace, a.context())
	} else {
		_ = a.modes.Pop()
	}
}

// handleMacroTrigger intercepts 'q' (record) and '@' (play), which
// vim.Parser never recognizes, before anything reaches the parser.
func (a *Application) handleMacroTrigger(ev key.Event) (quit bool, handled bool) {
	if a.pending.awaitingRecordRegister {
		a.pending.awaitingRecordRegister = false
		if ev.IsRune() && !ev.IsModified() {
			_ = a.macros.StartRecording(ev.Rune)
		}
		return false, true
	}
	if a.pending.awaitingPlayRegister {
		a.pending.awaitingPlayRegister = false
		if ev.IsRune() && !ev.IsModified() {
			a.playMacro(ev.Rune, a.activeCursor())
		}
		return false, true
	}
	if !ev.IsRune() || ev.IsModified() || a.normalParser.State() != vim.StateInitial {
		return false, false
	}
	switch ev.Rune {
	case 'q':
		if a.macros.IsRecording() {
			a.macros.StopRecording()
		} else {
			a.pending.awaitingRecordRegister = true
		}
		return false, true
	case '@':
		a.pending.awaitingPlayRegister = true
		return false, true
	}
	return false, false
}

// playMacro replays register (or the last-played one for '@@') by
// feeding its recorded events back through HandleKey.
func (a *Application) playMacro(register rune, _ any) {
	if register == '@' {
		_ = a.player.PlayLast(1, func(e key.Event) { _, _ = a.HandleKey(e) })
		return
	}
	_ = a.player.Play(register, 1, func(e key.Event) { _, _ = a.HandleKey(e) })
}

// runParsedCommand interprets a completed vim.Command: a closed set of
// sentinel actions (undo/redo/repeat/search) the executor has no range to
// act on, or a real command run through Do.
func (a *Application) runParsedCommand(cmd *vim.Command) bool {
	switch cmd.Action {
	case "editor.undo":
		_ = a.activeWindow().File.Undo()
		a.activeWindow().View.ClampAll(int(a.activeWindow().File.Text.Len()))
		a.activeWindow().Redraw()
	case "editor.repeat":
		a.replayLastChange()
	case "search.next":
		a.searchNext(cmd.GetCount(), true)
	case "search.prev":
		a.searchNext(cmd.GetCount(), false)
	case "search.wordForward":
		a.searchWord(true)
	case "search.wordBackward":
		a.searchWord(false)
	case "mark.set":
		a.setMark(cmd.Args["mark"])
	case "mark.goto":
		a.gotoMark(cmd.Args["mark"])
	case "changelist.older":
		a.jumpTo(a.activeWindow().Changelist.Older())
	case "changelist.newer":
		a.jumpTo(a.activeWindow().Changelist.Newer())
	case "visual.reselect":
		a.reselectVisual()
	default:
		res := a.runCommand(cmd, a.repeat.replaying)
		a.noteRepeatable(cmd, res)
		return false
	}

	// None of the sentinel actions above are themselves dot-repeatable;
	// a bare '.' must not leave stray capture state for the next command
	// to inherit.
	a.resetRepeatCapture()
	return false
}

// handleUnmapped interprets a mode.UnmappedResult's Action, the small set
// of editor-level effects (mode switches, window close, cursor nudges,
// jumplist/changelist navigation) that live outside vim.Parser's grammar.
func (a *Application) handleUnmapped(ev key.Event) (bool, error) {
	m := a.modes.Current()
	if m == nil {
		return false, nil
	}
	result := m.HandleUnmapped(ev, a.context())
	if result == nil || result.Action == nil {
		return false, nil
	}
	return a.runAction(result.Action)
}
