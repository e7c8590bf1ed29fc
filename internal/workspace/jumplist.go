package workspace

// defaultJumplistCapacity bounds the ring per spec §3 ("a ring of at
// most N marks; adding past capacity evicts the oldest") when no
// configured size is supplied; vim's default is 100, but this core
// targets the smaller ~31-entry ring the spec names in §3's Window
// description.
const defaultJumplistCapacity = 31

// Jumplist is a per-window bounded ring of marks visited by motions
// tagged JUMP (spec §4.3, §4.8). Pushing past capacity evicts the
// oldest entry. A ring cursor tracks the current position for
// <C-o>/<C-i> (Back/Forward); any non-jump motion invalidates the
// cursor so the next Back() restarts from the newest entry.
type Jumplist struct {
	file     *File
	capacity int

	marks []MarkID // oldest first
	cur   int      // index into marks the next Back() will return; len(marks) means "at the end"
}

// NewJumplist creates an empty jumplist backed by file's mark table. A
// capacity of 0 falls back to defaultJumplistCapacity, so callers that
// don't carry a config.Config (tests, scratch windows) still get a
// sensible bound.
func NewJumplist(file *File, capacity int) *Jumplist {
	if capacity <= 0 {
		capacity = defaultJumplistCapacity
	}
	return &Jumplist{file: file, capacity: capacity, cur: 0}
}

// Push records pos as a jump origin. If the ring is at capacity the
// oldest mark is freed from the file's mark table before the new one is
// added.
func (j *Jumplist) Push(pos int) {
	if len(j.marks) >= j.capacity {
		j.file.FreeMark(j.marks[0])
		j.marks = j.marks[1:]
	}
	j.marks = append(j.marks, j.file.NewMark(pos))
	j.cur = len(j.marks)
}

// Invalidate resets the ring cursor to the newest end without altering
// the stored marks, mirroring how a plain (non-JUMP) motion "invalidates
// the next pointer... so <C-o>/<C-i> restart at the newest end" (§4.8).
func (j *Jumplist) Invalidate() {
	j.cur = len(j.marks)
}

// Back steps to the previous jump (<C-o>), returning EPos once the ring
// is exhausted. currentPos is recorded as a forward-jump target so that
// Forward() can return to it.
func (j *Jumplist) Back(currentPos int) int {
	if j.cur <= 0 {
		return -1
	}
	// On the first Back from the "live" position, stash where we were.
	if j.cur == len(j.marks) {
		j.marks = append(j.marks, j.file.NewMark(currentPos))
	}
	j.cur--
	pos, ok := j.file.MarkPos(j.marks[j.cur])
	if !ok {
		return -1
	}
	return pos
}

// Forward steps to the next jump (<C-i>), returning EPos if already at
// the newest end.
func (j *Jumplist) Forward() int {
	if j.cur >= len(j.marks)-1 {
		return -1
	}
	j.cur++
	pos, ok := j.file.MarkPos(j.marks[j.cur])
	if !ok {
		return -1
	}
	return pos
}

// Len returns the number of marks currently held.
func (j *Jumplist) Len() int {
	return len(j.marks)
}
