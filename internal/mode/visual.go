package mode

import (
	"github.com/arjunrao/modaltext/internal/key"
)

// VisualMode is VISUAL (character-wise selection). The selection itself
// lives on each cursor.Sel, started by app.enterVisual's
// View.StartSelections before the switch into this mode and cleared by
// app.leaveVisual on the way back out — this mode is a thin marker for
// the mode graph plus the one thing that varies by the three visual
// flavors (SelectionMode, for anything that renders differently by
// granularity). Counts typed while here are consumed by the
// visual-family vim.Parser before HandleUnmapped is ever reached, the
// same way OPERATOR_PENDING's parser-owned counting works.
type VisualMode struct {
	selectMode SelectionMode
}

// NewVisualMode creates a new visual mode instance for character selection.
func NewVisualMode() *VisualMode {
	return &VisualMode{
		selectMode: SelectChar,
	}
}

// Name returns the mode identifier.
func (m *VisualMode) Name() string {
	return ModeVisual
}

// DisplayName returns the human-readable mode name.
func (m *VisualMode) DisplayName() string {
	return "VISUAL"
}

// CursorStyle returns the cursor style for visual mode.
func (m *VisualMode) CursorStyle() CursorStyle {
	return CursorBlock
}

// Enter is called when entering visual mode.
func (m *VisualMode) Enter(ctx *Context) error {
	return nil
}

// Exit is called when leaving visual mode.
func (m *VisualMode) Exit(ctx *Context) error {
	return nil
}

// HandleUnmapped handles key events that have no explicit binding.
// Nothing reaches here in practice: vim.Parser resolves every motion,
// operator, and count digit for the visual family before passthrough.
func (m *VisualMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	return &UnmappedResult{Consumed: false}
}

// SelectionMode returns the selection mode.
func (m *VisualMode) SelectionMode() SelectionMode {
	return m.selectMode
}

// VisualLineMode implements Vim's visual line mode (line-wise selection).
type VisualLineMode struct {
	VisualMode
}

// NewVisualLineMode creates a new visual line mode instance.
func NewVisualLineMode() *VisualLineMode {
	return &VisualLineMode{
		VisualMode: VisualMode{
			selectMode: SelectLine,
		},
	}
}

// Name returns the mode identifier.
func (m *VisualLineMode) Name() string {
	return ModeVisualLine
}

// DisplayName returns the human-readable mode name.
func (m *VisualLineMode) DisplayName() string {
	return "VISUAL LINE"
}

// VisualBlockMode implements Vim's visual block mode (column selection).
type VisualBlockMode struct {
	VisualMode
}

// NewVisualBlockMode creates a new visual block mode instance.
func NewVisualBlockMode() *VisualBlockMode {
	return &VisualBlockMode{
		VisualMode: VisualMode{
			selectMode: SelectBlock,
		},
	}
}

// Name returns the mode identifier.
func (m *VisualBlockMode) Name() string {
	return ModeVisualBlock
}

// DisplayName returns the human-readable mode name.
func (m *VisualBlockMode) DisplayName() string {
	return "VISUAL BLOCK"
}
