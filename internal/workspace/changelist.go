package workspace

// Changelist walks a File's edit history as recorded by File.changes
// (spec §4.8: "given the text's current state token, if changed since
// last walk, reset index to 0; each g;/g, steps the index and queries
// the text for the position of that historical change").
//
// File.ChangeCount acts as the "state token": if it has grown since the
// last walk, a new edit happened and the cursor resets to the newest
// entry before stepping.
type Changelist struct {
	file *File

	lastSeen int // File.ChangeCount() as of the last reset
	index    int // current position into file.changes, oldest-first
}

// NewChangelist creates a changelist over file.
func NewChangelist(file *File) *Changelist {
	return &Changelist{file: file}
}

// resetIfChanged reseats the walk at the newest change if new edits
// happened since the last call.
func (c *Changelist) resetIfChanged() {
	n := c.file.ChangeCount()
	if n != c.lastSeen {
		c.lastSeen = n
		c.index = n - 1
	}
}

// Older steps to the previous (g;) change and returns its position, or
// EPos ("past the end") once the oldest recorded change has been
// returned; the index then stays before the oldest change, so a
// following Newer() returns the change after it.
func (c *Changelist) Older() int {
	c.resetIfChanged()
	if c.index < 0 {
		c.index = -1
		return -1
	}
	pos, ok := c.file.ChangeAt(c.index)
	c.index--
	if !ok {
		return -1
	}
	return pos
}

// Newer steps to the next (g,) change and returns its position, or EPos
// if already at the newest.
func (c *Changelist) Newer() int {
	c.resetIfChanged()
	// c.index sits one below the change Older last returned.
	next := c.index + 2
	pos, ok := c.file.ChangeAt(next)
	if !ok {
		return -1
	}
	c.index = next - 1
	return pos
}
