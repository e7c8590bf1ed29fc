package exec

import "github.com/arjunrao/modaltext/internal/text/buffer"

// Buffer is the read-only slice of the Text collaborator that motions
// and text-objects query. *buffer.Buffer satisfies this directly.
type Buffer interface {
	Len() buffer.ByteOffset
	Text() string
	TextRange(start, end buffer.ByteOffset) string
	LineCount() uint32
	LineText(line uint32) string
	LineLen(line uint32) int
	ByteAt(offset buffer.ByteOffset) (byte, bool)
	RuneAt(offset buffer.ByteOffset) (rune, int)
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
	PointToOffset(point buffer.Point) buffer.ByteOffset
	LineStartOffset(line uint32) buffer.ByteOffset
	LineEndOffset(line uint32) buffer.ByteOffset
	TabWidth() int
}

// Editor is the mutating slice of the Text collaborator: the operators
// that change the buffer call these rather than touching Buffer
// directly, so that undo history and mark adjustment (owned by
// workspace.File) stay consistent. Positions are plain byte offsets.
type Editor interface {
	Buffer
	Insert(pos int, text string) error
	Delete(start, end int) error
	Replace(start, end int, text string) error
}

// bo converts a plain byte offset to the Buffer interface's native type.
func bo(pos int) buffer.ByteOffset { return buffer.ByteOffset(pos) }

// clampPos constrains pos to the buffer's valid offset range [0, Len()].
func clampPos(buf Buffer, pos int) int {
	max := int(buf.Len())
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}

// lineOf returns the 0-based line number containing offset.
func lineOf(buf Buffer, offset int) uint32 {
	return buf.OffsetToPoint(bo(offset)).Line
}

// lineBounds returns [start,end) for a 0-based line number, end being
// the offset just before its line break (or EOF for the last line).
func lineBounds(buf Buffer, line uint32) (int, int) {
	return int(buf.LineStartOffset(line)), int(buf.LineEndOffset(line))
}
