package exec

import (
	"github.com/arjunrao/modaltext/internal/cursor"
	"github.com/arjunrao/modaltext/internal/vim"
)

// Jumper is the narrow slice of workspace.Jumplist the executor needs:
// pushing a jump origin before a JUMP motion runs, and invalidating the
// ring cursor after any other motion (spec §4.8).
type Jumper interface {
	Push(pos int)
	Invalidate()
}

// ModeHint tells the executor which mode-dependent branch of §4.6 to
// take; internal/app's modeHint computes it from the mode manager's
// current mode before calling Do.
type ModeHint struct {
	// Visual is true in any of VISUAL/VISUAL_LINE/VISUAL_BLOCK.
	Visual bool
	// VisualLine forces the linewise range normalization independent of
	// the motion/operator's own type (VISUAL_LINE mode).
	VisualLine bool
	// InOperatorMacro is true while an operator macro (auto-recording for
	// `.`) is already running, so a nested repeatable action does not
	// itself become the new action_prev (spec §4.6 step 2).
	InOperatorMacro bool
}

// Result reports what Do did, so internal/app's runCommand can drive the
// mode transitions (spec §4.6 step 4: "transition modes ... snapshot the
// text; redraw").
type Result struct {
	// ChangedText is true if an operator that mutates the buffer ran.
	ChangedText bool
	// OperatorRan is true if any operator executed, whether or not it
	// mutated text (e.g. YANK).
	OperatorRan bool
	// EntersInsert is true if the operator that ran wants INSERT/REPLACE
	// entered next (spec: CHANGE, INSERT, REPLACE).
	EntersInsert bool
	// Repeatable mirrors spec step 2's `repeatable` flag: an operator ran
	// and the executor was not itself replaying the operator macro.
	Repeatable bool
	// UsedTextObjectOrVisual is true when the range came from a
	// text-object or a plain visual selection rather than a motion. No
	// caller outside this package reads it.
	UsedTextObjectOrVisual bool
}

// Executor runs one parsed vim.Command against a View (spec §4.6,
// action_do). It holds no per-window state itself; register storage and
// jumplist are passed in so one Executor can serve every window.
type Executor struct {
	Registers *vim.RegisterStore
	Private   *vim.PrivateStore
	TabWidth  int
	ExpandTab bool
}

// NewExecutor creates an Executor sharing the given register store. A
// PrivateStore is allocated internally since it is pure per-cursor
// bookkeeping no caller needs to share across Executors.
func NewExecutor(registers *vim.RegisterStore) *Executor {
	return &Executor{Registers: registers, Private: vim.NewPrivateStore(), TabWidth: 4}
}

// Do executes cmd against view/ed, per spec §4.6.
func (e *Executor) Do(cmd *vim.Command, view *cursor.View, ed Editor, jl Jumper, hint ModeHint) Result {
	if cmd == nil {
		return Result{}
	}
	count := cmd.GetCount()

	linewise := cmd.Linewise || hint.VisualLine
	if cmd.Motion != nil {
		if cmd.Motion.Type == vim.MotionLinewise {
			linewise = true
		}
		if cmd.Motion.Type == vim.MotionCharwise {
			linewise = false
		}
	}

	multi := view.IsMulti()
	repeatable := cmd.Operator != nil && !hint.InOperatorMacro

	var result Result
	if cmd.TextObject != nil || (hint.Visual && !hint.VisualLine && cmd.Motion == nil) {
		result.UsedTextObjectOrVisual = true
	}

	for _, c := range view.Cursors() {
		id := c.ID()
		cur := view.Get(id)
		if cur == nil {
			continue // disposed by an earlier iteration's operator
		}

		reg := cmd.Register

		rng, newPos, cursorLinewise := e.resolveRange(cmd, cur, ed, jl, hint, count, linewise)

		if hint.Visual {
			cur.SetSelection(cursor.Selection{Start: rng.Start, End: rng.End})
			if cmd.TextObject != nil || (!hint.VisualLine && cmd.Motion == nil) {
				cur.Pos = rng.End
			}
		}

		if cmd.Operator == nil {
			if cmd.Motion != nil {
				cur.Pos = clampPos(ed, newPos)
			}
			continue
		}

		opFn := GetOperatorFunc(operatorAction(cmd.Operator, cursorLinewise))
		if opFn == nil {
			continue
		}
		octx := &OperatorContext{
			Editor:    ed,
			Registers: e.Registers,
			Private:   e.Private,
			Multi:     multi,
			CursorID:  uint64(id),
			View:      view,
			Count:     count,
			Pos:       cur.Pos,
			Range:     rng,
			Register:  reg,
			Linewise:  cursorLinewise,
			Args:      cmd.Args,
			TabWidth:  e.TabWidth,
			ExpandTab: e.ExpandTab,
		}
		lenBefore := ed.Len()
		newCursorPos := opFn(octx)
		delta := int(ed.Len() - lenBefore)
		if delta != 0 {
			// Every other cursor (and selection boundary) at or after the
			// edit shifts by delta, the same rule marks follow (spec §8).
			view.ShiftFrom(rng.Start, delta, id)
		}

		result.OperatorRan = true
		if cmd.Operator.ChangesText {
			result.ChangedText = true
		}
		if cmd.Operator.EntersInsert {
			result.EntersInsert = true
		}

		if cmd.Operator.Name == "cursorStartOfLine" || cmd.Operator.Name == "cursorEndOfLine" {
			spawnLineCursors(view, ed, rng, cmd.Operator.Name == "cursorEndOfLine")
			view.Dispose(id)
			e.Private.Forget(uint64(id))
			continue
		}

		if newCursorPos == cursor.EPos {
			view.Dispose(id)
			e.Private.Forget(uint64(id))
			continue
		}
		cur.Pos = clampPos(ed, newCursorPos)
		cur.ClearSelection()
	}

	view.ClampAll(int(ed.Len()))
	result.Repeatable = repeatable
	return result
}

// operatorAction picks Operator.LinewiseAction over Action when the
// range was normalized to whole lines and a linewise variant exists.
func operatorAction(op *vim.Operator, linewise bool) string {
	if linewise && op.LinewiseAction != "" {
		return op.LinewiseAction
	}
	return op.Action
}

// resolveRange implements steps 3's range construction: motion, else
// text-object, else visual selection, then linewise normalization.
func (e *Executor) resolveRange(cmd *vim.Command, cur *cursor.Cursor, ed Editor, jl Jumper, hint ModeHint, count int, linewise bool) (TextRange, int, bool) {
	pos := cur.Pos

	switch {
	case cmd.Motion != nil:
		return e.resolveMotionRange(cmd, cur, ed, jl, count, linewise)

	case cmd.TextObject != nil:
		action := cmd.TextObject.InnerAction
		if cmd.TextObjectPrefix == vim.PrefixAround {
			action = cmd.TextObject.AroundAction
		}
		fn := GetTextObjectFunc(action)
		if fn == nil {
			return TextRange{Start: pos, End: pos}, pos, linewise
		}
		rng := cur.SelectionOrEmpty()
		start, end := pos, pos
		if hint.Visual && cur.HasSelection() {
			start, end = rng.Start, rng.End
		}
		base := TextRange{Start: start, End: end}
		p := pos
		for i := 0; i < count; i++ {
			objRange, ok := fn(ed, p)
			if !ok {
				break
			}
			if objRange.Linewise {
				linewise = true
			}
			base = unionRange(base, TextRange{Start: objRange.Start, End: objRange.End})
			p = objRange.End + 1
			if p >= int(ed.Len()) {
				break
			}
		}
		if base.Empty() {
			base = TextRange{Start: pos, End: pos}
		}
		if linewise {
			base = normalizeLinewise(ed, base)
		}
		return base, base.End, linewise

	case hint.Visual:
		sel := cur.SelectionOrEmpty()
		rng := TextRange{Start: sel.Start, End: sel.End}
		if rng.Empty() {
			rng = TextRange{Start: pos, End: pos + 1}
		}
		if linewise {
			rng = normalizeLinewise(ed, rng)
		}
		return rng, rng.End, linewise

	default:
		rng := TextRange{Start: pos, End: pos}
		if linewise {
			rng = normalizeLinewise(ed, rng)
		}
		return rng, pos, linewise
	}
}

func (e *Executor) resolveMotionRange(cmd *vim.Command, cur *cursor.Cursor, ed Editor, jl Jumper, count int, linewise bool) (TextRange, int, bool) {
	m := cmd.Motion
	fn := GetMotionFunc(m.Action)
	start := cur.Pos
	pos := start
	if fn != nil {
		steps := count
		if m.Idempotent {
			steps = 1
		}
		mctx := MotionContext{
			Buf: ed, Cursor: cur, Count: count, HasCount: cmd.Count > 0, CharArg: cmd.CharArg,
		}
		for i := 0; i < steps; i++ {
			mctx.Pos = pos
			next := fn(mctx)
			if next == cursor.EPos {
				break
			}
			pos = next
		}
	}

	if cmd.Operator == nil {
		if m.Jump {
			jl.Push(start)
		} else {
			jl.Invalidate()
		}
	}

	lo, hi := start, pos
	if lo > hi {
		lo, hi = hi, lo
	}
	rng := TextRange{Start: lo, End: hi}
	if cmd.Operator != nil && m.Inclusive && hi < int(ed.Len()) {
		_, size := ed.RuneAt(bo(hi))
		if size == 0 {
			size = 1
		}
		rng.End = hi + size
	}
	if linewise {
		rng = normalizeLinewise(ed, rng)
	}
	return rng, pos, linewise
}

// unionRange returns the smallest range covering both a and b, treating
// an empty a as "no prior range".
func unionRange(a, b TextRange) TextRange {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return TextRange{Start: start, End: end}
}

// normalizeLinewise widens a range to whole-line boundaries, including
// the trailing newline so a linewise DELETE removes the line break too.
func normalizeLinewise(buf Buffer, r TextRange) TextRange {
	if r.Empty() {
		r.End = r.Start + 1
	}
	startLine := lineOf(buf, r.Start)
	endLine := lineOf(buf, r.End-1)
	start := int(buf.LineStartOffset(startLine))
	end := int(buf.LineEndOffset(endLine)) + 1
	if end > int(buf.Len()) {
		end = int(buf.Len())
	}
	return TextRange{Start: start, End: end, Linewise: true}
}

// spawnLineCursors implements CURSOR_SOL/CURSOR_EOL: one new cursor per
// line spanned by rng, at the start or finish of each line.
func spawnLineCursors(view *cursor.View, buf Buffer, rng TextRange, atEnd bool) {
	if rng.Empty() {
		return
	}
	first := lineOf(buf, rng.Start)
	last := lineOf(buf, rng.End-1)
	for l := first; l <= last; l++ {
		start, end := lineBounds(buf, l)
		if atEnd {
			p := end
			if p > start {
				_, size := buf.RuneAt(bo(p - 1))
				if size == 0 {
					size = 1
				}
				p -= size
			}
			view.AddCursor(p)
		} else {
			view.AddCursor(start)
		}
	}
}
