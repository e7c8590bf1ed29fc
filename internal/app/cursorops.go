package app

import (
	"github.com/arjunrao/modaltext/internal/text/buffer"
)

// moveCursorTo sets the primary cursor's byte offset, clamped to the
// buffer, and clears any desired-column cache.
func (a *Application) moveCursorTo(pos int) {
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	max := int(win.File.Text.Len())
	if pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	c.Pos = pos
	c.DesiredCol = 0
	win.Redraw()
}

// nudgeCursor moves the primary cursor by dx columns and dy lines, the
// count in args["count"] times, for the arrow-key actions NormalMode
// produces directly (these never reach vim.Parser's h/j/k/l motions).
func (a *Application) nudgeCursor(dx, dy int, args map[string]any) {
	count := 1
	if n, ok := args["count"].(int); ok && n > 0 {
		count = n
	}
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	text := win.File.Text
	for i := 0; i < count; i++ {
		pt := text.OffsetToPoint(buffer.ByteOffset(c.Pos))
		if dy != 0 {
			line := int(pt.Line) + dy
			if line < 0 {
				line = 0
			}
			if line >= int(text.LineCount()) {
				line = int(text.LineCount()) - 1
			}
			col := pt.Column
			lineLen := uint32(text.LineLen(uint32(line)))
			if col > lineLen {
				col = lineLen
			}
			c.Pos = int(text.PointToOffset(buffer.Point{Line: uint32(line), Column: col}))
		}
		if dx != 0 {
			np := c.Pos + dx
			lineStart := int(text.LineStartOffset(pt.Line))
			lineEnd := int(text.LineEndOffset(pt.Line))
			if np < lineStart {
				np = lineStart
			}
			if np > lineEnd {
				np = lineEnd
			}
			c.Pos = np
		}
	}
	c.DesiredCol = 0
	win.Redraw()
}

// moveCursorToLineStart moves the primary cursor to column 0 of its line.
func (a *Application) moveCursorToLineStart() {
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	pt := win.File.Text.OffsetToPoint(buffer.ByteOffset(c.Pos))
	a.moveCursorTo(int(win.File.Text.LineStartOffset(pt.Line)))
}

// moveCursorToLineEnd moves the primary cursor to the last column of its
// line (one before the line terminator, matching '$' in normal mode).
func (a *Application) moveCursorToLineEnd() {
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	pt := win.File.Text.OffsetToPoint(buffer.ByteOffset(c.Pos))
	end := int(win.File.Text.LineEndOffset(pt.Line))
	start := int(win.File.Text.LineStartOffset(pt.Line))
	if end > start {
		end--
	}
	a.moveCursorTo(end)
}
