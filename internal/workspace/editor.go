package workspace

import "github.com/arjunrao/modaltext/internal/text/buffer"

// FileEditor adapts a File to the executor's abstract Text collaborator
// (internal/exec.Editor): reads are forwarded to File.Text, writes go
// through File's own Insert/Delete/Replace so that undo history and
// mark adjustment stay in sync with every edit the executor makes. It
// exists only because File's buffer lives in a field named Text, which
// collides with the Text() string method the read interface requires.
type FileEditor struct {
	*File
}

// NewFileEditor wraps f for use as an exec.Editor.
func NewFileEditor(f *File) FileEditor {
	return FileEditor{File: f}
}

func (e FileEditor) Len() buffer.ByteOffset { return e.File.Text.Len() }

func (e FileEditor) Text() string { return e.File.Text.Text() }

func (e FileEditor) TextRange(start, end buffer.ByteOffset) string {
	return e.File.Text.TextRange(start, end)
}

func (e FileEditor) LineCount() uint32 { return e.File.Text.LineCount() }

func (e FileEditor) LineText(line uint32) string { return e.File.Text.LineText(line) }

func (e FileEditor) LineLen(line uint32) int { return e.File.Text.LineLen(line) }

func (e FileEditor) ByteAt(offset buffer.ByteOffset) (byte, bool) { return e.File.Text.ByteAt(offset) }

func (e FileEditor) RuneAt(offset buffer.ByteOffset) (rune, int) { return e.File.Text.RuneAt(offset) }

func (e FileEditor) OffsetToPoint(offset buffer.ByteOffset) buffer.Point {
	return e.File.Text.OffsetToPoint(offset)
}

func (e FileEditor) PointToOffset(point buffer.Point) buffer.ByteOffset {
	return e.File.Text.PointToOffset(point)
}

func (e FileEditor) LineStartOffset(line uint32) buffer.ByteOffset {
	return e.File.Text.LineStartOffset(line)
}

func (e FileEditor) LineEndOffset(line uint32) buffer.ByteOffset {
	return e.File.Text.LineEndOffset(line)
}

func (e FileEditor) TabWidth() int { return e.File.Text.TabWidth() }
