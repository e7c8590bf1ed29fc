// Package cursor implements the multi-cursor, multi-selection view model
// that sits between the mode/parser layer and a text buffer.
//
// A View owns zero or more Cursors positioned within a single buffer.
// Cursors carry an optional half-open byte-range Selection, a private
// register used only while the view has more than one cursor, and a
// desired-column cache used by vertical motions to "remember" the target
// column across short lines. Cursors are addressed by a stable ID that
// survives insertion, removal, and reordering of the underlying slice, so
// the executor can iterate and dispose cursors mid-pass without aliasing.
package cursor
