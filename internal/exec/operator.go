package exec

import (
	"strings"

	"github.com/arjunrao/modaltext/internal/cursor"
	"github.com/arjunrao/modaltext/internal/vim"
)

// OperatorContext is the ctx an Operator receives (spec §4.5:
// "(vis, text, ctx) where ctx = {count, pos, newpos, range, reg,
// linewise, arg}"). Args carries operator-specific extras the parser
// attached to the command (e.g. put's "after" anchor).
type OperatorContext struct {
	Editor    Editor
	Registers *vim.RegisterStore
	View      *cursor.View

	// Private and the CursorID/Multi pair back spec §3's per-cursor
	// register: when Multi is true and no explicit Register was given,
	// yank/delete/put route through Private keyed by CursorID instead of
	// the single shared unnamed register, so simultaneous multi-cursor
	// edits don't clobber each other's implicit register content.
	Private  *vim.PrivateStore
	CursorID uint64
	Multi    bool

	Count    int
	Pos      int
	Range    TextRange
	Register rune // 0 means "use the default/unnamed register"
	Linewise bool
	Args     map[string]any

	TabWidth   int
	ExpandTab  bool
}

// OperatorFunc performs one operator invocation and returns the cursor's
// resulting position, or cursor.EPos to dispose the cursor.
type OperatorFunc func(ctx *OperatorContext) int

var operatorFuncs = map[string]OperatorFunc{
	"editor.delete":         opDelete,
	"editor.deleteLine":     opDelete,
	"editor.change":         opChange,
	"editor.changeLine":     opChange,
	"editor.yank":           opYank,
	"editor.yankLine":       opYank,
	"editor.indentRight":    opIndentRight,
	"editor.indentLineRight": opIndentRight,
	"editor.indentLeft":     opIndentLeft,
	"editor.indentLineLeft": opIndentLeft,
	"editor.format":         opFormat,
	"editor.formatLine":     opFormat,
	"editor.toLower":        opCase(caseLower),
	"editor.lineTolower":    opCase(caseLower),
	"editor.toUpper":        opCase(caseUpper),
	"editor.lineToUpper":    opCase(caseUpper),
	"editor.toggleCase":     opCase(caseToggle),
	"editor.lineToggleCase": opCase(caseToggle),
	"editor.join":           opJoin,
	"editor.put":            opPut,
	"editor.deleteCharForward":  opDeleteCharForward,
	"editor.deleteCharBackward": opDeleteCharBackward,
	"editor.replaceChar":        opReplaceChar,
	"editor.cursorSOL":          opCursorNoop,
	"editor.cursorEOL":          opCursorNoop,
}

// opCursorNoop backs CURSOR_SOL/CURSOR_EOL: the operator itself never
// touches the buffer, it only exists so Executor.Do's special case for
// cmd.Operator.Name can spawn one cursor per spanned line afterward.
func opCursorNoop(ctx *OperatorContext) int {
	return ctx.Pos
}

// GetOperatorFunc returns the implementation registered for an
// operator's Action/LinewiseAction string, or nil if none is registered.
func GetOperatorFunc(action string) OperatorFunc {
	return operatorFuncs[action]
}

func (c *OperatorContext) register() rune {
	if c.Register != 0 {
		return c.Register
	}
	return 0
}

func yankTo(ctx *OperatorContext, explicit rune, content string, linewise bool) {
	if explicit != 0 {
		ctx.Registers.Set(explicit, content, linewise, false)
		return
	}
	if ctx.Multi && ctx.Private != nil {
		ctx.Private.SetYank(ctx.CursorID, content, linewise, false)
		return
	}
	ctx.Registers.SetYank(content, linewise, false)
}

func deleteTo(ctx *OperatorContext, explicit rune, content string, linewise bool) {
	if explicit != 0 {
		ctx.Registers.Set(explicit, content, linewise, false)
		return
	}
	if ctx.Multi && ctx.Private != nil {
		ctx.Private.SetDelete(ctx.CursorID, content, linewise, false)
		return
	}
	small := !linewise && !strings.Contains(content, "\n")
	ctx.Registers.SetDelete(content, linewise, false, small)
}

func opDelete(ctx *OperatorContext) int {
	r := ctx.Range
	if r.Empty() {
		return r.Start
	}
	content := ctx.Editor.TextRange(bo(r.Start), bo(r.End))
	deleteTo(ctx, ctx.register(), content, ctx.Linewise)
	if err := ctx.Editor.Delete(r.Start, r.End); err != nil {
		return r.Start
	}
	if ctx.Linewise {
		// Land on the start of the line the deletion collapsed into, or
		// the previous line if the deletion removed the last line(s).
		max := int(ctx.Editor.Len())
		pos := r.Start
		if pos > max {
			pos = max
		}
		return motionFirstNonBlank(MotionContext{Buf: ctx.Editor, Pos: clampPos(ctx.Editor, pos)})
	}
	return clampPos(ctx.Editor, r.Start)
}

func opChange(ctx *OperatorContext) int {
	return opDelete(ctx)
}

func opYank(ctx *OperatorContext) int {
	r := ctx.Range
	content := ctx.Editor.TextRange(bo(r.Start), bo(r.End))
	yankTo(ctx, ctx.register(), content, ctx.Linewise)
	return ctx.Pos
}

// expandTabString returns the text a single leading tab-stop's worth of
// indent expands to (spec §4.5: "returns a string of N spaces if
// expandtab option true ... else \"\\t\"").
func expandTabString(tabWidth int, expand bool) string {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	if tabWidth > 8 {
		tabWidth = 8
	}
	if expand {
		return strings.Repeat(" ", tabWidth)
	}
	return "\t"
}

func linesOf(r TextRange) (int, int) { return r.Start, r.End }

func opIndentRight(ctx *OperatorContext) int {
	buf := ctx.Editor
	start, end := linesOf(ctx.Range)
	firstLine := lineOf(buf, start)
	lastLine := lineOf(buf, end)
	if end > start {
		lastLine = lineOf(buf, end-1)
	}
	indent := expandTabString(ctx.TabWidth, ctx.ExpandTab)
	for l := int(lastLine); l >= int(firstLine); l-- {
		lineStart, lineEnd := lineBounds(buf, uint32(l))
		if lineEnd <= lineStart {
			continue
		}
		ctx.Editor.Insert(lineStart, indent)
	}
	return int(buf.LineStartOffset(firstLine))
}

func opIndentLeft(ctx *OperatorContext) int {
	buf := ctx.Editor
	start, end := linesOf(ctx.Range)
	firstLine := lineOf(buf, start)
	lastLine := lineOf(buf, end)
	if end > start {
		lastLine = lineOf(buf, end-1)
	}
	tabWidth := ctx.TabWidth
	if tabWidth <= 0 {
		tabWidth = 8
	}
	for l := int(lastLine); l >= int(firstLine); l-- {
		lineStart, lineEnd := lineBounds(buf, uint32(l))
		removed := 0
		p := lineStart
		for p < lineEnd && removed < tabWidth {
			b, _ := buf.ByteAt(bo(p))
			if b == '\t' {
				p++
				removed = tabWidth
				break
			}
			if b == ' ' {
				p++
				removed++
				continue
			}
			break
		}
		if p > lineStart {
			ctx.Editor.Delete(lineStart, p)
		}
	}
	return int(buf.LineStartOffset(firstLine))
}

// opFormat is a hook for an external formatter (e.g. gofmt-style
// reindentation); this core has no language-aware formatter, so it is a
// no-op that leaves the cursor at the range's start.
func opFormat(ctx *OperatorContext) int {
	return ctx.Range.Start
}

type caseFn func(byte) byte

func caseLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func caseUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func caseToggle(b byte) byte {
	switch {
	case b >= 'a' && b <= 'z':
		return b - ('a' - 'A')
	case b >= 'A' && b <= 'Z':
		return b + ('a' - 'A')
	default:
		return b
	}
}

func opCase(fn caseFn) OperatorFunc {
	return func(ctx *OperatorContext) int {
		r := ctx.Range
		if r.Empty() {
			return r.Start
		}
		content := ctx.Editor.TextRange(bo(r.Start), bo(r.End))
		out := make([]byte, len(content))
		for i := 0; i < len(content); i++ {
			if content[i] < 0x80 {
				out[i] = fn(content[i])
			} else {
				out[i] = content[i]
			}
		}
		ctx.Editor.Replace(r.Start, r.End, string(out))
		return r.Start
	}
}

func opJoin(ctx *OperatorContext) int {
	buf := ctx.Editor
	start, end := linesOf(ctx.Range)
	firstLine := lineOf(buf, start)
	lastLine := lineOf(buf, end)
	if end > start {
		lastLine = lineOf(buf, end-1)
	}
	if lastLine <= firstLine {
		lastLine = firstLine + 1
	}
	if lastLine >= buf.LineCount() {
		lastLine = buf.LineCount() - 1
	}
	joinAt := int(buf.LineEndOffset(firstLine))
	for l := firstLine; l < lastLine; l++ {
		_, end := lineBounds(buf, firstLine)
		nextStart, _ := lineBounds(buf, firstLine+1)
		p := nextStart
		nextEnd := int(buf.LineEndOffset(firstLine + 1))
		for p < nextEnd {
			b, _ := buf.ByteAt(bo(p))
			if !isBlank(b) {
				break
			}
			p++
		}
		sep := " "
		if end == joinAt && end > 0 {
			if b, ok := buf.ByteAt(bo(end - 1)); ok && b == ' ' {
				sep = ""
			}
		}
		ctx.Editor.Replace(end, p, sep)
	}
	return joinAt
}

func opDeleteCharForward(ctx *OperatorContext) int {
	buf := ctx.Editor
	line := lineOf(buf, ctx.Pos)
	_, end := lineBounds(buf, line)
	if ctx.Pos >= end {
		return ctx.Pos
	}
	_, size := buf.RuneAt(bo(ctx.Pos))
	if size == 0 {
		size = 1
	}
	stop := ctx.Pos + size
	for i := 1; i < ctx.Count && stop < end; i++ {
		_, sz := buf.RuneAt(bo(stop))
		if sz == 0 {
			sz = 1
		}
		stop += sz
	}
	content := buf.TextRange(bo(ctx.Pos), bo(stop))
	deleteTo(ctx, ctx.register(), content, false)
	ctx.Editor.Delete(ctx.Pos, stop)
	return clampPos(buf, ctx.Pos)
}

func opDeleteCharBackward(ctx *OperatorContext) int {
	buf := ctx.Editor
	line := lineOf(buf, ctx.Pos)
	start, _ := lineBounds(buf, line)
	if ctx.Pos <= start {
		return ctx.Pos
	}
	p := ctx.Pos
	for i := 0; i < ctx.Count && p > start; i++ {
		_, size := buf.RuneAt(bo(p - 1))
		if size == 0 {
			size = 1
		}
		p -= size
	}
	content := buf.TextRange(bo(p), bo(ctx.Pos))
	deleteTo(ctx, ctx.register(), content, false)
	ctx.Editor.Delete(p, ctx.Pos)
	return p
}

func opReplaceChar(ctx *OperatorContext) int {
	buf := ctx.Editor
	line := lineOf(buf, ctx.Pos)
	_, end := lineBounds(buf, line)
	p := ctx.Pos
	n := ctx.Count
	if n <= 0 {
		n = 1
	}
	stop := p
	for i := 0; i < n && stop < end; i++ {
		_, size := buf.RuneAt(bo(stop))
		if size == 0 {
			size = 1
		}
		stop += size
	}
	if stop-p < n {
		return ctx.Pos
	}
	ch, _ := ctx.Args["char"].(string)
	ctx.Editor.Replace(p, stop, strings.Repeat(ch, n))
	return p + len(ch)*(n-1)
}

// opPut pastes the selected register count times, anchored before or
// after the cursor per ctx.Args["after"] (spec §4.5 PUT).
func opPut(ctx *OperatorContext) int {
	var content string
	var linewise bool
	if explicit := ctx.register(); explicit != 0 {
		content, linewise, _ = ctx.Registers.Get(explicit)
	} else if ctx.Multi && ctx.Private != nil {
		if c, lw, _, ok := ctx.Private.Get(ctx.CursorID); ok {
			content, linewise = c, lw
		} else {
			content, linewise, _ = ctx.Registers.Get('"')
		}
	} else {
		content, linewise, _ = ctx.Registers.Get('"')
	}
	if content == "" {
		return ctx.Pos
	}
	after, _ := ctx.Args["after"].(bool)
	count := ctx.Count
	if count <= 0 {
		count = 1
	}
	repeated := strings.Repeat(content, count)

	buf := ctx.Editor
	if linewise {
		if !strings.HasSuffix(repeated, "\n") {
			repeated += "\n"
		}
		line := lineOf(buf, ctx.Pos)
		var at int
		if after {
			at = int(buf.LineEndOffset(line)) + 1
			if at > int(buf.Len()) {
				at = int(buf.Len())
				if !strings.HasPrefix(repeated, "\n") {
					repeated = "\n" + strings.TrimSuffix(repeated, "\n")
				}
			}
		} else {
			at = int(buf.LineStartOffset(line))
		}
		ctx.Editor.Insert(at, repeated)
		return motionFirstNonBlank(MotionContext{Buf: buf, Pos: at})
	}

	at := ctx.Pos
	if after {
		line := lineOf(buf, ctx.Pos)
		_, lineEnd := lineBounds(buf, line)
		if ctx.Pos < lineEnd {
			_, size := buf.RuneAt(bo(ctx.Pos))
			if size == 0 {
				size = 1
			}
			at = ctx.Pos + size
		} else {
			at = lineEnd
		}
	}
	ctx.Editor.Insert(at, repeated)
	end := at + len(repeated)
	if end > at {
		_, size := buf.RuneAt(bo(end - 1))
		if size == 0 {
			size = 1
		}
		return end - size
	}
	return at
}
