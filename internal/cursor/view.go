package cursor

import "sort"

// View owns the set of cursors positioned within one File. Multiple Views
// may share a File (one per Window); each View's cursors are independent.
type View struct {
	cursors map[ID]*Cursor
	order   []ID // insertion order, used to pick a stable primary
	nextID  ID
}

// NewView creates a View with a single cursor at pos.
func NewView(pos int) *View {
	v := &View{cursors: make(map[ID]*Cursor, 1)}
	v.AddCursor(pos)
	return v
}

// AddCursor creates and returns a new cursor at pos.
func (v *View) AddCursor(pos int) *Cursor {
	v.nextID++
	id := v.nextID
	c := &Cursor{id: id, Pos: pos}
	v.cursors[id] = c
	v.order = append(v.order, id)
	return c
}

// Dispose removes the cursor with the given ID. If it is the last
// remaining cursor, a replacement cursor is created at pos 0 so that a
// View is never left without a cursor (the executor clamps this
// immediately afterward against the real buffer length).
func (v *View) Dispose(id ID) {
	delete(v.cursors, id)
	for i, oid := range v.order {
		if oid == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	if len(v.cursors) == 0 {
		v.AddCursor(0)
	}
}

// Count returns the number of cursors currently in the view.
func (v *View) Count() int {
	return len(v.cursors)
}

// IsMulti reports whether the view has more than one cursor.
func (v *View) IsMulti() bool {
	return len(v.cursors) > 1
}

// Get returns the cursor with the given ID, or nil.
func (v *View) Get(id ID) *Cursor {
	return v.cursors[id]
}

// Primary returns the oldest surviving cursor, used as the reference
// point for single-cursor-oriented queries (e.g. status line position).
func (v *View) Primary() *Cursor {
	if len(v.order) == 0 {
		return nil
	}
	if c, ok := v.cursors[v.order[0]]; ok {
		return c
	}
	// order[0] was disposed out of band; fall back to any cursor.
	for _, c := range v.cursors {
		return c
	}
	return nil
}

// Cursors returns a position-sorted snapshot of all cursors. Because the
// executor may dispose cursors while iterating, callers must iterate over
// this snapshot (keyed by ID) rather than re-querying the View live.
func (v *View) Cursors() []*Cursor {
	result := make([]*Cursor, 0, len(v.cursors))
	for _, c := range v.cursors {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Pos < result[j].Pos })
	return result
}

// ClearSelections drops every cursor's selection.
func (v *View) ClearSelections() {
	for _, c := range v.cursors {
		c.ClearSelection()
	}
}

// StartSelections begins a selection anchored at each cursor's current
// position, used when entering a visual mode.
func (v *View) StartSelections() {
	for _, c := range v.cursors {
		c.SetSelection(Selection{Start: c.Pos, End: c.Pos + 1})
	}
}

// CollapseToPrimary removes every cursor but the primary one.
func (v *View) CollapseToPrimary() {
	p := v.Primary()
	if p == nil {
		return
	}
	v.cursors = map[ID]*Cursor{p.id: p}
	v.order = []ID{p.id}
}

// ShiftFrom adjusts every cursor position and selection boundary that is
// at or after editPos by delta bytes, mirroring how stable marks react to
// an edit elsewhere in the buffer (spec §8: "every surviving mark with
// offset >= p ... shifts by delta"). skip, if non-zero, excludes that
// cursor (the one the executor is about to reposition explicitly from the
// operator's return value).
func (v *View) ShiftFrom(editPos, delta int, skip ID) {
	if delta == 0 {
		return
	}
	for id, c := range v.cursors {
		if id == skip {
			continue
		}
		if c.Pos >= editPos {
			c.Pos += delta
		}
		if c.Sel != nil {
			if c.Sel.Start >= editPos {
				c.Sel.Start += delta
			}
			if c.Sel.End >= editPos {
				c.Sel.End += delta
			}
		}
	}
}

// ClampAll clamps every cursor and selection into [0, max].
func (v *View) ClampAll(max int) {
	for _, c := range v.cursors {
		if c.Pos > max {
			c.Pos = max
		}
		if c.Pos < 0 {
			c.Pos = 0
		}
		if c.Sel != nil {
			clamped := c.Sel.Clamp(max)
			c.Sel = &clamped
		}
	}
}
