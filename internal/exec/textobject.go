package exec

import "strings"

// TextRange is a half-open byte range [Start, End) together with the
// flags an operator and the executor's range-normalization step need.
type TextRange struct {
	Start, End int
	Linewise   bool
	Blockwise  bool
}

// Empty reports whether the range has zero extent.
func (r TextRange) Empty() bool { return r.End <= r.Start }

// TextObjectFunc resolves a text object at pos to a range. ok is false
// if no instance of the object could be found around pos.
type TextObjectFunc func(buf Buffer, pos int) (TextRange, bool)

// textObjectFuncs maps a TextObject's InnerAction/AroundAction string to
// its implementation.
var textObjectFuncs = map[string]TextObjectFunc{
	"select.innerWord":         innerWord(isWordChar),
	"select.aroundWord":        aroundWord(isWordChar),
	"select.innerWORD":         innerWord(isNonBlank),
	"select.aroundWORD":        aroundWord(isNonBlank),
	"select.innerSentence":     innerSentence,
	"select.aroundSentence":    aroundSentence,
	"select.innerParagraph":    innerParagraph,
	"select.aroundParagraph":   aroundParagraph,
	"select.innerBlock":        innerDelim('(', ')'),
	"select.aroundBlock":       aroundDelim('(', ')'),
	"select.innerBigBlock":     innerDelim('{', '}'),
	"select.aroundBigBlock":    aroundDelim('{', '}'),
	"select.innerTag":          innerTag,
	"select.aroundTag":         aroundTag,
	"select.innerParen":        innerDelim('(', ')'),
	"select.aroundParen":       aroundDelim('(', ')'),
	"select.innerBracket":      innerDelim('[', ']'),
	"select.aroundBracket":     aroundDelim('[', ']'),
	"select.innerBrace":        innerDelim('{', '}'),
	"select.aroundBrace":       aroundDelim('{', '}'),
	"select.innerAngle":        innerDelim('<', '>'),
	"select.aroundAngle":       aroundDelim('<', '>'),
	"select.innerDoubleQuote":  innerQuote('"'),
	"select.aroundDoubleQuote": aroundQuote('"'),
	"select.innerSingleQuote":  innerQuote('\''),
	"select.aroundSingleQuote": aroundQuote('\''),
	"select.innerBacktick":     innerQuote('`'),
	"select.aroundBacktick":    aroundQuote('`'),
}

// GetTextObjectFunc returns the implementation registered for a text
// object's action string, or nil if none is registered.
func GetTextObjectFunc(action string) TextObjectFunc {
	return textObjectFuncs[action]
}

func innerWord(wordChar func(byte) bool) TextObjectFunc {
	return func(buf Buffer, pos int) (TextRange, bool) {
		text := buf.Text()
		if pos >= len(text) {
			return TextRange{}, false
		}
		cls := charClass(text[pos], wordChar)
		start, end := pos, pos+1
		for start > 0 && charClass(text[start-1], wordChar) == cls {
			start--
		}
		for end < len(text) && charClass(text[end], wordChar) == cls {
			end++
		}
		return TextRange{Start: start, End: end}, true
	}
}

// aroundWord extends innerWord with trailing (or, at end of line,
// leading) whitespace, matching vim's "aw" behavior.
func aroundWord(wordChar func(byte) bool) TextObjectFunc {
	inner := innerWord(wordChar)
	return func(buf Buffer, pos int) (TextRange, bool) {
		r, ok := inner(buf, pos)
		if !ok {
			return r, ok
		}
		text := buf.Text()
		end := r.End
		grew := false
		for end < len(text) && isBlank(text[end]) {
			end++
			grew = true
		}
		if !grew {
			for r.Start > 0 && isBlank(text[r.Start-1]) {
				r.Start--
			}
		} else {
			r.End = end
		}
		return r, true
	}
}

func innerSentence(buf Buffer, pos int) (TextRange, bool) {
	start := motionSentenceBackward(MotionContext{Buf: buf, Pos: pos})
	end := motionSentenceForward(MotionContext{Buf: buf, Pos: pos})
	if end <= start {
		return TextRange{}, false
	}
	text := buf.Text()
	for end > start && isBlank(text[end-1]) {
		end--
	}
	return TextRange{Start: start, End: end}, true
}

func aroundSentence(buf Buffer, pos int) (TextRange, bool) {
	start := motionSentenceBackward(MotionContext{Buf: buf, Pos: pos})
	end := motionSentenceForward(MotionContext{Buf: buf, Pos: pos})
	if end <= start {
		return TextRange{}, false
	}
	return TextRange{Start: start, End: end}, true
}

func innerParagraph(buf Buffer, pos int) (TextRange, bool) {
	start := motionParagraphBackward(MotionContext{Buf: buf, Pos: pos})
	end := motionParagraphForward(MotionContext{Buf: buf, Pos: pos})
	if end <= start {
		return TextRange{}, false
	}
	return TextRange{Start: start, End: end, Linewise: true}, true
}

func aroundParagraph(buf Buffer, pos int) (TextRange, bool) {
	r, ok := innerParagraph(buf, pos)
	return r, ok
}

// innerDelim returns the range strictly inside the nearest enclosing
// open/close delimiter pair around pos.
func innerDelim(open, close byte) TextObjectFunc {
	return func(buf Buffer, pos int) (TextRange, bool) {
		s, e, ok := enclosingPair(buf, pos, open, close)
		if !ok {
			return TextRange{}, false
		}
		return TextRange{Start: s + 1, End: e}, true
	}
}

// aroundDelim returns the range including the delimiters themselves.
func aroundDelim(open, close byte) TextObjectFunc {
	return func(buf Buffer, pos int) (TextRange, bool) {
		s, e, ok := enclosingPair(buf, pos, open, close)
		if !ok {
			return TextRange{}, false
		}
		return TextRange{Start: s, End: e + 1}, true
	}
}

// enclosingPair finds the innermost open/close delimiter pair whose span
// contains pos, scanning the whole buffer (spec's text objects are not
// limited to a single line for bracket pairs).
func enclosingPair(buf Buffer, pos int, open, close byte) (start, end int, ok bool) {
	text := buf.Text()
	depth := 0
	start = -1
	for p := pos; p >= 0; p-- {
		switch text[p] {
		case close:
			if p != pos {
				depth++
			}
		case open:
			if depth == 0 {
				start = p
				goto found
			}
			depth--
		}
	}
found:
	if start < 0 {
		return 0, 0, false
	}
	depth = 0
	for p := start + 1; p < len(text); p++ {
		switch text[p] {
		case open:
			depth++
		case close:
			if depth == 0 {
				return start, p, true
			}
			depth--
		}
	}
	return 0, 0, false
}

// innerQuote and aroundQuote find the nearest quote pair on the current
// line surrounding pos (vim's quote text objects never cross lines).
func innerQuote(q byte) TextObjectFunc {
	return func(buf Buffer, pos int) (TextRange, bool) {
		s, e, ok := quotePair(buf, pos, q)
		if !ok {
			return TextRange{}, false
		}
		return TextRange{Start: s + 1, End: e}, true
	}
}

func aroundQuote(q byte) TextObjectFunc {
	return func(buf Buffer, pos int) (TextRange, bool) {
		s, e, ok := quotePair(buf, pos, q)
		if !ok {
			return TextRange{}, false
		}
		end := e + 1
		text := buf.Text()
		for end < len(text) && isBlank(text[end]) {
			end++
		}
		return TextRange{Start: s, End: end}, true
	}
}

func quotePair(buf Buffer, pos int, q byte) (start, end int, ok bool) {
	line := lineOf(buf, pos)
	lo, hi := lineBounds(buf, line)
	text := buf.Text()

	var quotes []int
	for p := lo; p < hi; p++ {
		if text[p] == q {
			quotes = append(quotes, p)
		}
	}
	for i := 0; i+1 < len(quotes); i += 2 {
		s, e := quotes[i], quotes[i+1]
		if pos >= s && pos <= e {
			return s, e, true
		}
	}
	return 0, 0, false
}

// innerTag and aroundTag select the content of, or the whole of, the
// nearest enclosing <tag>...</tag> span.
func innerTag(buf Buffer, pos int) (TextRange, bool) {
	openEnd, closeStart, _, _, ok := enclosingTag(buf, pos)
	if !ok {
		return TextRange{}, false
	}
	return TextRange{Start: openEnd, End: closeStart}, true
}

func aroundTag(buf Buffer, pos int) (TextRange, bool) {
	_, _, tagStart, tagEnd, ok := enclosingTag(buf, pos)
	if !ok {
		return TextRange{}, false
	}
	return TextRange{Start: tagStart, End: tagEnd}, true
}

// enclosingTag returns (innerStart, innerEnd, outerStart, outerEnd) for
// the nearest <tag>...</tag> pair enclosing pos: it scans backward for an
// opening tag and pairs it with the first matching closing tag after it.
// Nested tags of the same name are not counted.
func enclosingTag(buf Buffer, pos int) (innerStart, innerEnd, outerStart, outerEnd int, ok bool) {
	text := buf.Text()
	n := len(text)
	for p := pos; p >= 0; p-- {
		if text[p] != '<' || p+1 >= n || text[p+1] == '/' {
			continue
		}
		nameEnd := p + 1
		for nameEnd < n && text[nameEnd] != '>' && text[nameEnd] != ' ' {
			nameEnd++
		}
		name := text[p+1 : nameEnd]
		closeTagStart := p
		for closeTagStart < n && text[closeTagStart] != '>' {
			closeTagStart++
		}
		if closeTagStart >= n {
			continue
		}
		contentStart := closeTagStart + 1
		closing := "</" + name + ">"
		rel := strings.Index(text[contentStart:], closing)
		if rel < 0 {
			continue
		}
		idx := contentStart + rel
		if idx+len(closing) <= pos {
			continue
		}
		if contentStart > pos && idx+len(closing) < pos {
			continue
		}
		return contentStart, idx, p, idx + len(closing), true
	}
	return 0, 0, 0, 0, false
}
