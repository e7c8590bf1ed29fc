package mode

import (
	"github.com/arjunrao/modaltext/internal/key"
)

// NormalMode implements Vim's normal mode. The bulk of normal-mode
// grammar (counts, operators, motions, text-objects) is owned by
// vim.Parser and run through internal/exec.Executor; HandleUnmapped
// only sees keys the parser passed through untouched — mode-switch
// letters the grammar has no opinion on, and raw terminal keys like
// arrows that have no vim.Parser motion entry.
type NormalMode struct {
	// pendingOperator holds the operator waiting for a motion/text object.
	pendingOperator string

	// count holds the numeric prefix for the next command.
	count int

	// pendingZ is true after a lone 'Z', waiting for the second key of
	// ZZ (save and close window) or ZQ (close window, discard changes).
	// vim.Parser has no opinion on 'Z' at all, so this two-key sequence
	// is tracked here rather than in the grammar.
	pendingZ bool
}

// NewNormalMode creates a new normal mode instance.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns the mode identifier.
func (m *NormalMode) Name() string {
	return ModeNormal
}

// DisplayName returns the human-readable mode name.
func (m *NormalMode) DisplayName() string {
	return "NORMAL"
}

// CursorStyle returns the cursor style for normal mode.
func (m *NormalMode) CursorStyle() CursorStyle {
	return CursorBlock
}

// Enter is called when entering normal mode.
func (m *NormalMode) Enter(ctx *Context) error {
	// Reset state
	m.pendingOperator = ""
	m.count = 0
	m.pendingZ = false
	return nil
}

// Exit is called when leaving normal mode.
func (m *NormalMode) Exit(ctx *Context) error {
	// Clear any pending state
	m.pendingOperator = ""
	m.count = 0
	m.pendingZ = false
	return nil
}

// HandleUnmapped handles key events that have no explicit binding.
func (m *NormalMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	// Handle Escape - clear any pending state
	if event.Key == key.KeyEscape {
		m.ResetState()
		return &UnmappedResult{Consumed: true}
	}

	// Handle Ctrl+C - also clear state (and potentially quit)
	if event.Key == key.KeyRune && event.Rune == 'c' && event.Modifiers.HasCtrl() {
		m.ResetState()
		return &UnmappedResult{Consumed: true}
	}

	// ZZ (write and close window) / ZQ (close window, discard changes).
	if m.pendingZ {
		m.pendingZ = false
		if event.IsRune() && !event.IsModified() {
			switch event.Rune {
			case 'Z':
				return &UnmappedResult{Consumed: true, Action: &Action{Name: "window.writeAndClose"}}
			case 'Q':
				return &UnmappedResult{Consumed: true, Action: &Action{Name: "window.closeDiscard"}}
			}
		}
		// Anything else cancels the pending Z and is otherwise unhandled.
	}
	if event.IsRune() && !event.IsModified() && event.Rune == 'Z' {
		m.pendingZ = true
		return &UnmappedResult{Consumed: true}
	}

	// Handle unmodified character keys
	if event.IsRune() && !event.IsModified() {
		r := event.Rune

		// Count digits. vim.Parser consumes digits itself, so in the
		// editor none arrive here; a digit that is passed in directly
		// accumulates into count ('0' only once a count has started).
		if (r >= '1' && r <= '9') || (r == '0' && m.count > 0) {
			m.count = m.count*10 + int(r-'0')
			return &UnmappedResult{Consumed: true}
		}

		// Mode switching. Operators and motions are vim.Parser's grammar
		// and reach HandleUnmapped only as StatusPassthrough, which never
		// happens for an operator or a bound motion key, so neither is
		// handled here.
		switch r {
		case 'i': // Enter insert mode
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.insert"},
			}
		case 'I': // Enter insert mode at beginning of line
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.insert", Args: map[string]any{"position": "line_start"}},
			}
		case 'a': // Enter insert mode after cursor
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.insert", Args: map[string]any{"position": "after"}},
			}
		case 'A': // Enter insert mode at end of line
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.insert", Args: map[string]any{"position": "line_end"}},
			}
		case 'o': // Open line below
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.insert", Args: map[string]any{"position": "new_line_below"}},
			}
		case 'O': // Open line above
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.insert", Args: map[string]any{"position": "new_line_above"}},
			}
		case 'v': // Enter visual mode
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.visual"},
			}
		case 'V': // Enter visual line mode
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.visual", Args: map[string]any{"type": "line"}},
			}
		case ':': // Enter command mode
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.command"},
			}
		case '/': // Enter forward search prompt
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.search", Args: map[string]any{"forward": true}},
			}
		case '?': // Enter backward search prompt
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "mode.search", Args: map[string]any{"forward": false}},
			}
		}
	}

	// Handle arrow keys
	switch event.Key {
	case key.KeyLeft:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "cursor.left", Args: map[string]any{"count": m.Count()}},
		}
	case key.KeyRight:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "cursor.right", Args: map[string]any{"count": m.Count()}},
		}
	case key.KeyUp:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "cursor.up", Args: map[string]any{"count": m.Count()}},
		}
	case key.KeyDown:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "cursor.down", Args: map[string]any{"count": m.Count()}},
		}
	case key.KeyHome:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "cursor.line_start"},
		}
	case key.KeyEnd:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "cursor.line_end"},
		}
	case key.KeyPageUp:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "view.page_up"},
		}
	case key.KeyPageDown:
		m.ResetState()
		return &UnmappedResult{
			Consumed: true,
			Action:   &Action{Name: "view.page_down"},
		}
	}

	// Handle Ctrl combinations
	if event.Modifiers.HasCtrl() && event.IsRune() {
		switch event.Rune {
		case 'r', 'R': // Redo
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "editor.redo"},
			}
		case 'f', 'F': // Page down
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "view.page_down"},
			}
		case 'b', 'B': // Page up
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "view.page_up"},
			}
		case 'd', 'D': // Half page down
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "view.half_page_down"},
			}
		case 'u', 'U': // Half page up
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "view.half_page_up"},
			}
		case 'o': // Jump to older position in jumplist
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "jumplist.back"},
			}
		case 'i': // Jump to newer position in jumplist
			m.ResetState()
			return &UnmappedResult{
				Consumed: true,
				Action:   &Action{Name: "jumplist.forward"},
			}
		}
	}

	// Unmapped keys in normal mode are ignored
	return &UnmappedResult{Consumed: false}
}

// PendingOperator returns the currently pending operator, if any.
func (m *NormalMode) PendingOperator() string {
	return m.pendingOperator
}

// SetPendingOperator sets the pending operator.
func (m *NormalMode) SetPendingOperator(op string) {
	m.pendingOperator = op
}

// ClearPendingOperator clears the pending operator.
func (m *NormalMode) ClearPendingOperator() {
	m.pendingOperator = ""
}

// Count returns the current count prefix.
func (m *NormalMode) Count() int {
	if m.count == 0 {
		return 1 // Default count is 1
	}
	return m.count
}

// SetCount sets the count prefix.
func (m *NormalMode) SetCount(count int) {
	m.count = count
}

// ClearCount clears the count prefix.
func (m *NormalMode) ClearCount() {
	m.count = 0
}

// ResetState clears all pending state (operator and count).
func (m *NormalMode) ResetState() {
	m.pendingOperator = ""
	m.count = 0
	m.pendingZ = false
}
