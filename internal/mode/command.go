package mode

import (
	"unicode"

	"github.com/arjunrao/modaltext/internal/key"
)

// CommandMode is COMMAND: the one readline buffer app.enterPrompt shares
// between ':' ex-entry and '/'/'?' incremental search (see
// app/modeswitch.go's enterPrompt). prompt records which of the two is
// open, which both drives rendering (mainloop.go's drawStatus shows
// Prompt()+Buffer() as the status line) and routes history: ':' and
// '/'+'?' keep separate rings, the way a real vi keeps ex-command recall
// from surfacing search patterns and vice versa.
type CommandMode struct {
	// buffer holds the line being typed.
	buffer []rune

	// cursorPos is the cursor position within buffer.
	cursorPos int

	// cmdHistory holds previous ':' lines; searchHistory holds previous
	// '/' and '?' patterns. Which one HistoryPrev/HistoryNext walk is
	// decided by prompt.
	cmdHistory    []string
	searchHistory []string

	// historyIndex is the current position in the active ring (-1 =
	// current input, not browsing history).
	historyIndex int

	// savedBuffer holds buffer as it stood before HistoryPrev first
	// moved off the current input.
	savedBuffer []rune

	// prompt is the character that opened this line: ':', '/', or '?'.
	prompt rune
}

// NewCommandMode creates a new command mode instance.
func NewCommandMode() *CommandMode {
	return &CommandMode{
		buffer:        make([]rune, 0, 64),
		cmdHistory:    make([]string, 0, 100),
		searchHistory: make([]string, 0, 100),
		historyIndex:  -1,
		prompt:        ':',
	}
}

// activeHistory returns the ring that AddToHistory/HistoryPrev/
// HistoryNext operate on for the current prompt.
func (m *CommandMode) activeHistory() *[]string {
	if m.prompt == ':' {
		return &m.cmdHistory
	}
	return &m.searchHistory
}

// Name returns the mode identifier.
func (m *CommandMode) Name() string {
	return ModeCommand
}

// DisplayName returns the human-readable mode name.
func (m *CommandMode) DisplayName() string {
	return "COMMAND"
}

// CursorStyle returns the cursor style for command mode.
func (m *CommandMode) CursorStyle() CursorStyle {
	return CursorBar
}

// Enter is called when entering command mode.
func (m *CommandMode) Enter(ctx *Context) error {
	m.buffer = m.buffer[:0]
	m.cursorPos = 0
	m.historyIndex = -1
	m.savedBuffer = nil
	return nil
}

// Exit is called when leaving command mode.
func (m *CommandMode) Exit(ctx *Context) error {
	return nil
}

// HandleUnmapped handles key events that have no explicit binding.
func (m *CommandMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	// Handle character input
	if event.IsRune() && !event.IsModified() {
		r := event.Rune
		if unicode.IsPrint(r) {
			m.insertRune(r)
			return &UnmappedResult{Consumed: true}
		}
	}

	// Space is printable
	if event.Key == key.KeySpace && !event.IsModified() {
		m.insertRune(' ')
		return &UnmappedResult{Consumed: true}
	}

	return &UnmappedResult{Consumed: false}
}

// insertRune inserts a character at the cursor position.
func (m *CommandMode) insertRune(r rune) {
	if m.cursorPos >= len(m.buffer) {
		m.buffer = append(m.buffer, r)
	} else {
		m.buffer = append(m.buffer[:m.cursorPos+1], m.buffer[m.cursorPos:]...)
		m.buffer[m.cursorPos] = r
	}
	m.cursorPos++
}

// Buffer returns the current command buffer content.
func (m *CommandMode) Buffer() string {
	return string(m.buffer)
}

// SetBuffer sets the command buffer content.
func (m *CommandMode) SetBuffer(s string) {
	m.buffer = []rune(s)
	m.cursorPos = len(m.buffer)
}

// CursorPos returns the cursor position in the command buffer.
func (m *CommandMode) CursorPos() int {
	return m.cursorPos
}

// SetCursorPos sets the cursor position in the command buffer.
func (m *CommandMode) SetCursorPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.buffer) {
		pos = len(m.buffer)
	}
	m.cursorPos = pos
}

// Prompt returns the command prompt character.
func (m *CommandMode) Prompt() rune {
	return m.prompt
}

// SetPrompt sets the command prompt character.
func (m *CommandMode) SetPrompt(r rune) {
	m.prompt = r
}

// Clear clears the command buffer.
func (m *CommandMode) Clear() {
	m.buffer = m.buffer[:0]
	m.cursorPos = 0
}

// Backspace deletes the character before the cursor.
func (m *CommandMode) Backspace() bool {
	if m.cursorPos == 0 {
		return false
	}
	m.buffer = append(m.buffer[:m.cursorPos-1], m.buffer[m.cursorPos:]...)
	m.cursorPos--
	return true
}

// Delete deletes the character at the cursor.
func (m *CommandMode) Delete() bool {
	if m.cursorPos >= len(m.buffer) {
		return false
	}
	m.buffer = append(m.buffer[:m.cursorPos], m.buffer[m.cursorPos+1:]...)
	return true
}

// MoveLeft moves the cursor left.
func (m *CommandMode) MoveLeft() bool {
	if m.cursorPos == 0 {
		return false
	}
	m.cursorPos--
	return true
}

// MoveRight moves the cursor right.
func (m *CommandMode) MoveRight() bool {
	if m.cursorPos >= len(m.buffer) {
		return false
	}
	m.cursorPos++
	return true
}

// MoveToStart moves the cursor to the start.
func (m *CommandMode) MoveToStart() {
	m.cursorPos = 0
}

// MoveToEnd moves the cursor to the end.
func (m *CommandMode) MoveToEnd() {
	m.cursorPos = len(m.buffer)
}

// AddToHistory adds a line to the ring for the current prompt (':'
// commands and '/'/'?' patterns are recalled separately).
func (m *CommandMode) AddToHistory(cmd string) {
	if cmd == "" {
		return
	}
	hist := m.activeHistory()
	if len(*hist) > 0 && (*hist)[len(*hist)-1] == cmd {
		return
	}
	*hist = append(*hist, cmd)
}

// HistoryPrev moves to the previous entry in the current prompt's ring.
func (m *CommandMode) HistoryPrev() bool {
	hist := *m.activeHistory()
	if len(hist) == 0 {
		return false
	}

	if m.historyIndex == -1 {
		// Save current buffer
		m.savedBuffer = make([]rune, len(m.buffer))
		copy(m.savedBuffer, m.buffer)
		m.historyIndex = len(hist) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	} else {
		return false
	}

	m.SetBuffer(hist[m.historyIndex])
	return true
}

// HistoryNext moves to the next entry in the current prompt's ring.
func (m *CommandMode) HistoryNext() bool {
	if m.historyIndex == -1 {
		return false
	}

	hist := *m.activeHistory()
	m.historyIndex++
	if m.historyIndex >= len(hist) {
		// Restore saved buffer
		m.historyIndex = -1
		if m.savedBuffer != nil {
			m.buffer = m.savedBuffer
			m.cursorPos = len(m.buffer)
			m.savedBuffer = nil
		} else {
			m.Clear()
		}
	} else {
		m.SetBuffer(hist[m.historyIndex])
	}
	return true
}

// History returns the history ring for the current prompt.
func (m *CommandMode) History() []string {
	return *m.activeHistory()
}

// OperatorPendingMode is pushed onto the mode graph while normalParser
// holds an operator (and optionally a count or text-object prefix) that
// still needs a motion to act on — after 'd', 'c', 'y', ... in NORMAL.
// The parser, not this struct, actually drives the wait: dispatch.go
// watches vim.Parser.State() and pushes/pops this mode around the
// transition so the status line and cursor style reflect it, filling
// pendingKeys from vim.Parser.PendingKeys() (e.g. "2d") on Enter. Counts
// typed while this mode is active are consumed by the parser itself
// (StateOperatorCount reports StatusPending, never StatusPassthrough),
// so this mode's own HandleUnmapped sees nothing to do with digits —
// it only participates in the cursor style and the Operator()/Count()
// accessors used by tests and any future status-line rendering.
type OperatorPendingMode struct {
	// pendingKeys is the operator (and any count/text-object prefix)
	// typed so far, as rendered by vim.Parser.PendingKeys(), e.g. "2d".
	pendingKeys string
}

// NewOperatorPendingMode creates a new operator-pending mode instance.
func NewOperatorPendingMode() *OperatorPendingMode {
	return &OperatorPendingMode{}
}

// Name returns the mode identifier.
func (m *OperatorPendingMode) Name() string {
	return ModeOperatorPending
}

// DisplayName returns the human-readable mode name.
func (m *OperatorPendingMode) DisplayName() string {
	return "OPERATOR"
}

// CursorStyle returns the cursor style for operator-pending mode.
func (m *OperatorPendingMode) CursorStyle() CursorStyle {
	return CursorUnderline
}

// Enter is called when entering operator-pending mode.
func (m *OperatorPendingMode) Enter(ctx *Context) error {
	if pk, ok := ctx.Extra["operator"].(string); ok {
		m.pendingKeys = pk
	}
	return nil
}

// Exit is called when leaving operator-pending mode.
func (m *OperatorPendingMode) Exit(ctx *Context) error {
	m.pendingKeys = ""
	return nil
}

// HandleUnmapped handles key events that have no explicit binding. Every
// key that actually continues or completes an operator sequence is
// resolved by vim.Parser before this is ever reached, so there is
// nothing left for this mode to consume.
func (m *OperatorPendingMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	return &UnmappedResult{Consumed: false}
}

// PendingKeys returns the operator/count/text-object prefix typed so far.
func (m *OperatorPendingMode) PendingKeys() string {
	return m.pendingKeys
}

// Operator returns the operator letters within pendingKeys, with any
// leading count prefix stripped (e.g. "d" for both "d" and "2d").
func (m *OperatorPendingMode) Operator() string {
	i := 0
	for i < len(m.pendingKeys) && m.pendingKeys[i] >= '0' && m.pendingKeys[i] <= '9' {
		i++
	}
	return m.pendingKeys[i:]
}

// Count returns the numeric prefix within pendingKeys, defaulting to 1
// when none was typed.
func (m *OperatorPendingMode) Count() int {
	n := 0
	for _, r := range m.pendingKeys {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return 1
	}
	return n
}

// ReplaceMode is REPLACE, pushed while normalParser holds StateReplaceChar
// waiting for the one key that follows 'r'. Like OperatorPendingMode, the
// parser resolves that key itself (vim.Parser.parseReplaceChar builds the
// editor.replaceChar command directly) — dispatch.go's
// syncReplacePendingMode only pushes/pops this mode around the wait so the
// cursor style reflects it; HandleUnmapped is never reached.
type ReplaceMode struct{}

// NewReplaceMode creates a new replace mode instance.
func NewReplaceMode() *ReplaceMode {
	return &ReplaceMode{}
}

// Name returns the mode identifier.
func (m *ReplaceMode) Name() string {
	return ModeReplace
}

// DisplayName returns the human-readable mode name.
func (m *ReplaceMode) DisplayName() string {
	return "REPLACE"
}

// CursorStyle returns the cursor style for replace mode.
func (m *ReplaceMode) CursorStyle() CursorStyle {
	return CursorUnderline
}

// Enter is called when entering replace mode.
func (m *ReplaceMode) Enter(ctx *Context) error {
	return nil
}

// Exit is called when leaving replace mode.
func (m *ReplaceMode) Exit(ctx *Context) error {
	return nil
}

// HandleUnmapped handles key events that have no explicit binding.
// dispatch.go never special-cases mode.ModeReplace (the same as
// mode.ModeOperatorPending), so every key while this mode is current
// still reaches vim.Parser.parseReplaceChar first.
func (m *ReplaceMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	return &UnmappedResult{Consumed: false}
}
