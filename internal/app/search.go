package app

import (
	"regexp"
	"unicode"
)

// searchState tracks the pattern and direction of the last '/'/'?' search,
// so 'n'/'N'/'*'/'#' know what to repeat. The pattern itself also lives
// in vim.RegisterStore's '/' register (vim convention), which search.go
// uses as the source of truth; lastForward is app-local since the
// register store has no notion of search direction.
type searchState struct {
	lastForward bool
}

// runSearch compiles pattern as a stdlib regular expression and jumps
// the primary cursor to the next match in the given direction. An empty pattern repeats the stored '/' register content.
func (a *Application) runSearch(pattern string, forward bool) {
	if pattern == "" {
		pattern, _, _ = a.registers.Get('/')
	}
	if pattern == "" {
		return
	}
	a.registers.SetLastSearch(pattern)
	a.search.lastForward = forward
	a.jumpToMatch(pattern, forward, 1)
}

// searchNext implements 'n' (sameDirection=true) and 'N'
// (sameDirection=false): repeat the last search, count times, in the
// last search's direction or its opposite.
func (a *Application) searchNext(count int, sameDirection bool) {
	pattern, _, _ := a.registers.Get('/')
	if pattern == "" {
		return
	}
	forward := a.search.lastForward
	if !sameDirection {
		forward = !forward
	}
	if count <= 0 {
		count = 1
	}
	a.jumpToMatch(pattern, forward, count)
}

// searchWord implements '*' (forward) and '#' (backward): search for the
// whole word under the cursor.
func (a *Application) searchWord(forward bool) {
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	word := wordUnderCursor(win.File.Text.Text(), c.Pos)
	if word == "" {
		return
	}
	pattern := `\b` + regexp.QuoteMeta(word) + `\b`
	a.registers.SetLastSearch(pattern)
	a.search.lastForward = forward
	a.jumpToMatch(pattern, forward, 1)
}

// wordUnderCursor extracts the identifier-like run of runes containing
// byte offset pos in text.
func wordUnderCursor(text string, pos int) string {
	runes := []rune(text)
	// Map byte offset to rune index.
	idx, bytes := 0, 0
	for i, r := range runes {
		if bytes >= pos {
			idx = i
			break
		}
		bytes += len(string(r))
		idx = i + 1
	}
	if idx >= len(runes) {
		idx = len(runes) - 1
	}
	if idx < 0 {
		return ""
	}
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }
	if idx < len(runes) && !isWord(runes[idx]) {
		return ""
	}
	start, end := idx, idx
	for start > 0 && isWord(runes[start-1]) {
		start--
	}
	for end < len(runes)-1 && isWord(runes[end+1]) {
		end++
	}
	return string(runes[start : end+1])
}

// jumpToMatch finds the count-th next (or previous) match of pattern
// relative to the cursor, wrapping around the buffer, and moves the
// primary cursor to its start.
func (a *Application) jumpToMatch(pattern string, forward bool, count int) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		a.logger.Warn("search: %v", err)
		return
	}
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	text := win.File.Text.Text()
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return
	}

	if forward {
		idx := -1
		for i, m := range matches {
			if m[0] > c.Pos {
				idx = i
				break
			}
		}
		if idx == -1 {
			idx = 0
		}
		idx = (idx + count - 1) % len(matches)
		a.activeWindow().Jumplist.Push(c.Pos)
		a.moveCursorTo(matches[idx][0])
		return
	}

	idx := -1
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i][0] < c.Pos {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = len(matches) - 1
	}
	idx -= count - 1
	for idx < 0 {
		idx += len(matches)
	}
	a.activeWindow().Jumplist.Push(c.Pos)
	a.moveCursorTo(matches[idx][0])
}
