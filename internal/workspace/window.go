package workspace

import (
	"github.com/google/uuid"

	"github.com/arjunrao/modaltext/internal/cursor"
)

// UI is the narrow slice of the Ui collaborator (spec §6) a Window needs
// for its own bookkeeping: redraw scheduling and a stable handle to pass
// back to the real terminal backend. The full draw/prompt/resize surface
// lives in internal/ui and is driven by internal/app, not by Window
// itself — Window only needs to know whether it owns a live UI handle
// and to mark itself dirty.
type UI interface {
	MarkDirty()
}

// Window pairs one File with one cursor View (spec §3). It owns a
// bounded jumplist and a changelist cursor into the file's edit history,
// and carries a stable ID (independent of its pointer identity) so
// external surfaces like a status line or future scripting layer can
// address it without aliasing on a reused pointer.
type Window struct {
	ID uuid.UUID

	File *File
	View *cursor.View

	Jumplist   *Jumplist
	Changelist *Changelist

	ui UI
}

// NewWindow opens a window onto file, positioning a single cursor at 0.
// jumplistCapacity bounds the window's jumplist ring; 0 takes
// defaultJumplistCapacity.
func NewWindow(file *File, jumplistCapacity int) *Window {
	file.Retain()
	return &Window{
		ID:         uuid.New(),
		File:       file,
		View:       cursor.NewView(0),
		Jumplist:   NewJumplist(file, jumplistCapacity),
		Changelist: NewChangelist(file),
	}
}

// SetUI attaches the terminal-facing handle.
func (w *Window) SetUI(ui UI) {
	w.ui = ui
}

// Editor returns the window's File wrapped for use as the executor's
// Text collaborator (internal/exec.Editor).
func (w *Window) Editor() FileEditor {
	return NewFileEditor(w.File)
}

// Redraw marks the window's UI handle dirty, if one is attached.
func (w *Window) Redraw() {
	if w.ui != nil {
		w.ui.MarkDirty()
	}
}

// Overlaps reports whether the window's view could be displaying any
// byte in [start, end) — used by the mainloop (§5, "every view whose
// visible range overlaps any edited byte range is redrawn") to decide
// which windows need a redraw after an edit. Since this core carries no
// scroll/layout state (§1 Non-goals: "window layout arithmetic"), every
// window sharing the edited File is conservatively considered to
// overlap.
func (w *Window) Overlaps(file *File, start, end int) bool {
	return w.File == file
}
