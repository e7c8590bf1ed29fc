package app

import (
	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/text/buffer"
)

// enterInsert positions the cursor per args["position"] (set by the i/I/a/
// A/o/O keys in NormalMode.HandleUnmapped) and switches to INSERT.
func (a *Application) enterInsert(args map[string]any) {
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	text := win.File.Text
	pos, _ := args["position"].(string)

	switch pos {
	case "line_start":
		pt := text.OffsetToPoint(buffer.ByteOffset(c.Pos))
		c.Pos = firstNonBlank(text, pt.Line)
	case "after":
		end := int(text.LineEndOffset(text.OffsetToPoint(buffer.ByteOffset(c.Pos)).Line))
		if c.Pos < end {
			c.Pos++
		}
	case "line_end":
		pt := text.OffsetToPoint(buffer.ByteOffset(c.Pos))
		c.Pos = int(text.LineEndOffset(pt.Line))
	case "new_line_below":
		pt := text.OffsetToPoint(buffer.ByteOffset(c.Pos))
		at := int(text.LineEndOffset(pt.Line))
		_ = win.Editor().Insert(at, "\n")
		win.View.ShiftFrom(at, 1, c.ID())
		c.Pos = at + 1
	case "new_line_above":
		pt := text.OffsetToPoint(buffer.ByteOffset(c.Pos))
		at := int(text.LineStartOffset(pt.Line))
		_ = win.Editor().Insert(at, "\n")
		win.View.ShiftFrom(at, 1, c.ID())
		c.Pos = at
	}

	c.DesiredCol = 0
	win.Redraw()
	win.File.Hist.BeginGroup("insert")
	_ = a.modes.SwitchWithContext(mode.ModeInsert, a.context())
}

// firstNonBlank returns the offset of the first non-space/tab byte on
// line, or the line start if the line is entirely blank.
func firstNonBlank(text *buffer.Buffer, line uint32) int {
	start := text.LineStartOffset(line)
	end := text.LineEndOffset(line)
	for off := start; off < end; off++ {
		b, ok := text.ByteAt(off)
		if !ok {
			break
		}
		if b != ' ' && b != '\t' {
			return int(off)
		}
	}
	return int(start)
}

// enterVisual switches to VISUAL or VISUAL_LINE (args["type"] == "line")
// and anchors a selection at every cursor's current position.
func (a *Application) enterVisual(args map[string]any) {
	target := mode.ModeVisual
	if t, _ := args["type"].(string); t == "line" {
		target = mode.ModeVisualLine
	}
	win := a.activeWindow()
	win.View.StartSelections()
	_ = a.modes.SwitchWithContext(target, a.context())
}

// enterPrompt switches to COMMAND, sharing the single CommandMode buffer
// between ':' ex-entry and '/'/'?' search entry; promptKind records which
// one is active so handlePromptKey knows how to interpret Enter.
func (a *Application) enterPrompt(kind rune) {
	a.promptKind = kind
	a.cmdMode.SetPrompt(kind)
	_ = a.modes.SwitchWithContext(mode.ModeCommand, a.context())
}
