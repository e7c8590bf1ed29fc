package exec

import (
	"github.com/arjunrao/modaltext/internal/cursor"
)

// MotionContext carries everything a MotionFunc needs to compute one
// step of a motion (spec §4.3: "a named function from position →
// position"). Count is the full repeat count requested by the command,
// not a per-step counter — most motions ignore it and let the executor
// loop them; Idempotent motions (gg, G) use it directly as a target line.
type MotionContext struct {
	Buf     Buffer
	Pos     int
	Cursor  *cursor.Cursor
	Count   int
	HasCount bool
	CharArg rune
	LastFind FindState
}

// FindState remembers the most recent f/F/t/T invocation so that ; and ,
// (not modeled as separate motions here, but available to callers) can
// repeat it.
type FindState struct {
	Char      rune
	Till      bool
	Backward  bool
}

// MotionFunc computes the next position from ctx, or cursor.EPos if the
// motion cannot move any further (e.g. h at column 0).
type MotionFunc func(ctx MotionContext) int

// motionFuncs maps a Motion's Action string to its implementation.
var motionFuncs = map[string]MotionFunc{
	"cursor.left":            motionLeft,
	"cursor.right":           motionRight,
	"cursor.up":               motionUp,
	"cursor.down":             motionDown,
	"cursor.wordForward":      motionWordForward(isWordChar),
	"cursor.wordBackward":     motionWordBackward(isWordChar),
	"cursor.wordEnd":          motionWordEnd(isWordChar),
	"cursor.WORDForward":      motionWordForward(isNonBlank),
	"cursor.WORDBackward":     motionWordBackward(isNonBlank),
	"cursor.WORDEnd":          motionWordEnd(isNonBlank),
	"cursor.lineStart":        motionLineStart,
	"cursor.firstNonBlank":    motionFirstNonBlank,
	"cursor.lineEnd":          motionLineEnd,
	"cursor.screenLineStart":  motionLineStart,
	"cursor.screenLineEnd":    motionLineEnd,
	"cursor.documentStart":    motionDocumentStart,
	"cursor.documentEnd":      motionDocumentEnd,
	"cursor.findChar":         motionFindChar,
	"cursor.findCharBack":     motionFindCharBack,
	"cursor.tillChar":         motionTillChar,
	"cursor.tillCharBack":     motionTillCharBack,
	"cursor.paragraphForward": motionParagraphForward,
	"cursor.paragraphBackward": motionParagraphBackward,
	"cursor.sentenceForward":  motionSentenceForward,
	"cursor.sentenceBackward": motionSentenceBackward,
	"cursor.matchPair":        motionMatchPair,
}

// GetMotionFunc returns the implementation registered for a motion's
// Action string, or nil if none is registered.
func GetMotionFunc(action string) MotionFunc {
	return motionFuncs[action]
}

// --- character classification ---------------------------------------------

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b >= 0x80 // treat multi-byte UTF-8 continuation/lead bytes as word bytes
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isNonBlank(b byte) bool { return !isBlank(b) }

// charClass distinguishes blank / word / punctuation runs, the three
// classes "w" boundaries fall between.
func charClass(b byte, wordChar func(byte) bool) int {
	switch {
	case isBlank(b):
		return 0
	case wordChar(b):
		return 1
	default:
		return 2
	}
}

// --- charwise motions -------------------------------------------------------

func motionLeft(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	start, _ := lineBounds(ctx.Buf, line)
	if ctx.Pos <= start {
		return cursor.EPos
	}
	_, size := ctx.Buf.RuneAt(bo(ctx.Pos - 1))
	if size == 0 {
		size = 1
	}
	return ctx.Pos - size
}

func motionRight(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	_, end := lineBounds(ctx.Buf, line)
	if ctx.Pos >= end {
		return cursor.EPos
	}
	_, size := ctx.Buf.RuneAt(bo(ctx.Pos))
	if size == 0 {
		size = 1
	}
	return ctx.Pos + size
}

func motionUp(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	if line == 0 {
		return cursor.EPos
	}
	col := desiredColumn(ctx)
	return offsetAtScreenColumn(ctx.Buf, line-1, col)
}

func motionDown(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	if line+1 >= ctx.Buf.LineCount() {
		return cursor.EPos
	}
	col := desiredColumn(ctx)
	return offsetAtScreenColumn(ctx.Buf, line+1, col)
}

// desiredColumn returns (and caches on the cursor) the screen column a
// vertical motion should aim for, so that j/k through short lines and
// back restores the original column (spec: cursor.DesiredCol).
func desiredColumn(ctx MotionContext) int {
	col := screenColumn(ctx.Buf, ctx.Pos)
	if ctx.Cursor != nil {
		if ctx.Cursor.DesiredCol > col {
			col = ctx.Cursor.DesiredCol
		}
		ctx.Cursor.DesiredCol = col
	}
	return col
}

func motionLineStart(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	start, _ := lineBounds(ctx.Buf, line)
	return start
}

func motionFirstNonBlank(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	start, end := lineBounds(ctx.Buf, line)
	for p := start; p < end; p++ {
		b, ok := ctx.Buf.ByteAt(bo(p))
		if !ok || !isBlank(b) {
			return p
		}
	}
	return start
}

func motionLineEnd(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	start, end := lineBounds(ctx.Buf, line)
	if end <= start {
		return start
	}
	return end - 1
}

func motionDocumentStart(ctx MotionContext) int {
	line := targetLine(ctx, 0)
	return motionFirstNonBlank(MotionContext{Buf: ctx.Buf, Pos: int(ctx.Buf.LineStartOffset(line))})
}

func motionDocumentEnd(ctx MotionContext) int {
	last := ctx.Buf.LineCount() - 1
	line := targetLine(ctx, last)
	return motionFirstNonBlank(MotionContext{Buf: ctx.Buf, Pos: int(ctx.Buf.LineStartOffset(line))})
}

// targetLine resolves gg/G's count argument to a 0-based line number: an
// explicit count means "go to that line" (1-based in the grammar, so
// subtract one); with none, fall back to def.
func targetLine(ctx MotionContext, def uint32) uint32 {
	if !ctx.HasCount || ctx.Count <= 0 {
		return def
	}
	line := uint32(ctx.Count - 1)
	if line >= ctx.Buf.LineCount() {
		line = ctx.Buf.LineCount() - 1
	}
	return line
}

func motionFindChar(ctx MotionContext) int {
	return scanLine(ctx, ctx.Pos+1, 1, ctx.CharArg, false)
}

func motionFindCharBack(ctx MotionContext) int {
	return scanLine(ctx, ctx.Pos-1, -1, ctx.CharArg, false)
}

func motionTillChar(ctx MotionContext) int {
	pos := scanLine(ctx, ctx.Pos+1, 1, ctx.CharArg, false)
	if pos == cursor.EPos {
		return cursor.EPos
	}
	return pos - 1
}

func motionTillCharBack(ctx MotionContext) int {
	pos := scanLine(ctx, ctx.Pos-1, -1, ctx.CharArg, false)
	if pos == cursor.EPos {
		return cursor.EPos
	}
	return pos + 1
}

// scanLine walks byte-by-byte from start in dir (+1/-1) within the
// current line looking for target, honoring UTF-8 rune boundaries.
func scanLine(ctx MotionContext, start, dir int, target rune, _ bool) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	lo, hi := lineBounds(ctx.Buf, line)
	p := start
	for p >= lo && p < hi {
		r, size := ctx.Buf.RuneAt(bo(p))
		if size == 0 {
			size = 1
		}
		if r == target {
			return p
		}
		if dir > 0 {
			p += size
		} else {
			// Stepping backward a byte at a time would land mid-rune;
			// re-resolve from the previous rune boundary instead.
			p--
			for p >= lo {
				if _, sz := ctx.Buf.RuneAt(bo(p)); sz > 0 {
					break
				}
				p--
			}
		}
	}
	return cursor.EPos
}

func motionParagraphForward(ctx MotionContext) int {
	n := ctx.Buf.LineCount()
	line := lineOf(ctx.Buf, ctx.Pos)
	for l := line + 1; l < n; l++ {
		if ctx.Buf.LineLen(l) == 0 {
			return int(ctx.Buf.LineStartOffset(l))
		}
	}
	return int(ctx.Buf.Len())
}

func motionParagraphBackward(ctx MotionContext) int {
	line := lineOf(ctx.Buf, ctx.Pos)
	for l := int(line) - 1; l >= 0; l-- {
		if ctx.Buf.LineLen(uint32(l)) == 0 {
			return int(ctx.Buf.LineStartOffset(uint32(l)))
		}
	}
	return 0
}

// sentenceEnders are the punctuation bytes that, followed by blank or
// end-of-line, terminate a sentence.
var sentenceEnders = map[byte]bool{'.': true, '!': true, '?': true}

func motionSentenceForward(ctx MotionContext) int {
	text := ctx.Buf.Text()
	n := len(text)
	p := ctx.Pos
	for p < n {
		if sentenceEnders[text[p]] {
			q := p + 1
			for q < n && (text[q] == ')' || text[q] == ']' || text[q] == '"' || text[q] == '\'') {
				q++
			}
			for q < n && isBlank(text[q]) {
				q++
			}
			if q < n && q > p+1 {
				return q
			}
		}
		p++
	}
	return n
}

func motionSentenceBackward(ctx MotionContext) int {
	text := ctx.Buf.Text()
	p := ctx.Pos - 1
	for p > 0 {
		if sentenceEnders[text[p-1]] {
			q := p
			for q < len(text) && isBlank(text[q]) {
				q++
			}
			if q < ctx.Pos {
				return q
			}
		}
		p--
	}
	return 0
}

var matchPairs = map[byte]byte{
	'(': ')', '[': ']', '{': '}',
	')': '(', ']': '[', '}': '{',
}

func motionMatchPair(ctx MotionContext) int {
	text := ctx.Buf.Text()
	n := len(text)
	// Scan forward from pos to the first bracket on the current line.
	start := ctx.Pos
	for start < n && matchPairs[text[start]] == 0 && text[start] != '\n' {
		start++
	}
	if start >= n || text[start] == '\n' {
		return cursor.EPos
	}
	open := text[start]
	match := matchPairs[open]
	forward := open == '(' || open == '[' || open == '{'
	depth := 1
	if forward {
		for p := start + 1; p < n; p++ {
			switch text[p] {
			case open:
				depth++
			case match:
				depth--
				if depth == 0 {
					return p
				}
			}
		}
	} else {
		for p := start - 1; p >= 0; p-- {
			switch text[p] {
			case open:
				depth++
			case match:
				depth--
				if depth == 0 {
					return p
				}
			}
		}
	}
	return cursor.EPos
}

// motionWordForward returns a MotionFunc moving to the start of the
// next word (or WORD, depending on wordChar) as classified by wordChar.
func motionWordForward(wordChar func(byte) bool) MotionFunc {
	return func(ctx MotionContext) int {
		text := ctx.Buf.Text()
		n := len(text)
		p := ctx.Pos
		if p >= n {
			return cursor.EPos
		}
		startClass := charClass(text[p], wordChar)
		for p < n && charClass(text[p], wordChar) == startClass && startClass != 0 {
			p++
		}
		for p < n && isBlank(text[p]) {
			p++
		}
		if p >= n {
			return n
		}
		return p
	}
}

// motionWordBackward returns a MotionFunc moving to the start of the
// previous word.
func motionWordBackward(wordChar func(byte) bool) MotionFunc {
	return func(ctx MotionContext) int {
		text := ctx.Buf.Text()
		p := ctx.Pos - 1
		for p >= 0 && isBlank(text[p]) {
			p--
		}
		if p < 0 {
			return 0
		}
		cls := charClass(text[p], wordChar)
		for p > 0 && charClass(text[p-1], wordChar) == cls {
			p--
		}
		if p < 0 {
			p = 0
		}
		return p
	}
}

// motionWordEnd returns a MotionFunc moving to the last character of
// the current or next word.
func motionWordEnd(wordChar func(byte) bool) MotionFunc {
	return func(ctx MotionContext) int {
		text := ctx.Buf.Text()
		n := len(text)
		p := ctx.Pos + 1
		for p < n && isBlank(text[p]) {
			p++
		}
		if p >= n {
			return n - 1
		}
		cls := charClass(text[p], wordChar)
		for p+1 < n && charClass(text[p+1], wordChar) == cls {
			p++
		}
		return p
	}
}
