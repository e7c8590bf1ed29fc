package cursor

// EPos is the sentinel "no position" value returned by a motion,
// text-object, or operator that could not resolve a destination. It
// mirrors spec EPOS: callers must check for it before using a result as
// a byte offset.
const EPos = -1

// ID stably identifies a cursor across edits, additions, and removals of
// other cursors in the same View. Indices into View's cursor slice are
// not stable; IDs are.
type ID uint64

// Cursor is one insertion point (and optional selection) within a View.
// Pos is a byte offset and must remain a valid UTF-8 boundary.
type Cursor struct {
	id  ID
	Pos int

	// Sel is the cursor's selection, or nil if the cursor has none.
	Sel *Selection

	// DesiredCol caches the screen column a vertical motion (j/k) is
	// trying to reach, so that moving through a short line and back
	// returns to the original column rather than sticking to the short
	// line's width.
	DesiredCol int
}

// ID returns the cursor's stable identity.
func (c *Cursor) ID() ID {
	return c.id
}

// HasSelection reports whether the cursor carries a non-empty selection.
func (c *Cursor) HasSelection() bool {
	return c.Sel != nil && !c.Sel.Empty()
}

// ClearSelection drops the cursor's selection, if any.
func (c *Cursor) ClearSelection() {
	c.Sel = nil
}

// SetSelection replaces the cursor's selection.
func (c *Cursor) SetSelection(sel Selection) {
	s := sel
	c.Sel = &s
}

// SelectionOrEmpty returns the cursor's selection, or an empty selection
// at Pos if it has none.
func (c *Cursor) SelectionOrEmpty() Selection {
	if c.Sel != nil {
		return *c.Sel
	}
	return Selection{Start: c.Pos, End: c.Pos}
}
