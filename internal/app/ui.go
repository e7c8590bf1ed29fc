package app

import (
	"time"

	"github.com/arjunrao/modaltext/internal/key"
)

// Ui is the narrow terminal collaborator the core drives: read a key (or
// time out so the mainloop can run idle work), draw the status line,
// show or hide the ':'/'/'/'?' prompt, react to a resize, and release
// the terminal (Suspend). Window layout and full-buffer rendering are not
// this interface's job.
type Ui interface {
	// PollKey blocks for up to timeout waiting for one key event. ok is
	// false on timeout; PollKey is called again immediately by the
	// mainloop in that case.
	PollKey(timeout time.Duration) (ev key.Event, ok bool)

	// DrawStatus renders the status line (mode name, file name, position).
	DrawStatus(text string)

	// ShowPrompt displays the ':'/'/'/'?' command line with its current
	// buffer content; HidePrompt removes it.
	ShowPrompt(prompt rune, buffer string)
	HidePrompt()

	// MarkDirty satisfies workspace.UI: a window's content changed and
	// should be redrawn on the next frame.
	MarkDirty()

	// Resize is called after a terminal resize has been observed.
	Resize()

	// Suspend releases terminal raw mode. It sends no signal to the
	// process, and this interface has no call that restores raw mode.
	Suspend() error

	// Close releases the terminal and restores the prior screen state.
	Close()
}
