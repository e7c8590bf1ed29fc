package mode

import (
	"unicode"

	"github.com/arjunrao/modaltext/internal/key"
)

// InsertMode is INSERT. Undo grouping for a typing run (spec.md §4.2's
// "INSERT.idle snapshots the buffer so undo granularity is
// sentence-sized, not keystroke-sized") is driven by app.enterInsert /
// app.onIdle calling into File.Hist directly, not by anything tracked
// here — this mode only needs to say what it is and how unmapped keys
// behave.
type InsertMode struct{}

// NewInsertMode creates a new insert mode instance.
func NewInsertMode() *InsertMode {
	return &InsertMode{}
}

// Name returns the mode identifier.
func (m *InsertMode) Name() string {
	return ModeInsert
}

// DisplayName returns the human-readable mode name.
func (m *InsertMode) DisplayName() string {
	return "INSERT"
}

// CursorStyle returns the cursor style for insert mode.
func (m *InsertMode) CursorStyle() CursorStyle {
	return CursorBar
}

// Enter is called when entering insert mode.
func (m *InsertMode) Enter(ctx *Context) error {
	return nil
}

// Exit is called when leaving insert mode.
func (m *InsertMode) Exit(ctx *Context) error {
	return nil
}

// HandleUnmapped handles key events that have no explicit binding.
func (m *InsertMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	// In insert mode, unmodified character keys are typed as text
	if event.IsRune() && !event.IsModified() {
		r := event.Rune
		if unicode.IsPrint(r) || r == '\t' {
			return &UnmappedResult{
				Consumed:   true,
				InsertText: string(r),
				Action: &Action{
					Name: "editor.insertText",
					Args: map[string]any{"text": string(r)},
				},
			}
		}
	}

	// Space is a printable character
	if event.Key == key.KeySpace && !event.IsModified() {
		return &UnmappedResult{
			Consumed:   true,
			InsertText: " ",
			Action: &Action{
				Name: "editor.insertText",
				Args: map[string]any{"text": " "},
			},
		}
	}

	// Other unmapped keys are ignored in insert mode
	return &UnmappedResult{Consumed: false}
}
