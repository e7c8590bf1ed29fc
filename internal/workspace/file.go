package workspace

import (
	"fmt"
	"os"
	"time"

	"github.com/arjunrao/modaltext/internal/text/buffer"
	"github.com/arjunrao/modaltext/internal/text/history"
)

// MarkID addresses one entry in a File's mark table. It stays valid
// across edits: File.adjust keeps every live mark's offset in sync with
// insertions and deletions elsewhere in the buffer.
type MarkID int

// Stat is the subset of on-disk file metadata the core cares about:
// whether the file has been modified behind our back, and its size as of
// the last Load or Save (compared by Watcher to detect an external write).
type Stat struct {
	ModTime time.Time
	Size    int64
	Exists  bool
}

// File is one text buffer shared by every Window opened on the same
// path. It owns the byte-stable mark table (including the selection
// marks '< and '>), the undo history, and the reference count that
// decides when the buffer and its history can be discarded.
type File struct {
	Name string // path, or "" for a scratch buffer
	Text *buffer.Buffer
	Hist *history.History

	refcount  int
	stat      Stat
	truncated bool
	changedOnDisk bool

	marks      map[MarkID]int
	named      map[rune]MarkID
	nextMarkID MarkID

	// changes records the position of every edit in order, the backing
	// store for the per-window Changelist (spec §4.8). The Text
	// collaborator is described as owning "history position by index"
	// lookup; this repository's history.History is a plain undo/redo
	// stack with no such index, so File keeps its own append-only log.
	changes []int

	// savedAt is the changes-log length as of the last successful Save,
	// so Modified can report dirtiness without a separate bool to keep
	// in sync by hand.
	savedAt int
}

// NewFile creates an empty file with the given name ("" for an unnamed
// scratch file).
func NewFile(name string) *File {
	return &File{
		Name:  name,
		Text:  buffer.NewBuffer(),
		Hist:  history.NewHistory(1000),
		marks: make(map[MarkID]int),
		named: make(map[rune]MarkID),
	}
}

// NewFileFromString creates a file pre-populated with content, as when
// loading from disk or from stdin. The line ending style is sniffed from
// content so a CRLF file round-trips through :w without Unix-izing it.
func NewFileFromString(name, content string) *File {
	f := NewFile(name)
	f.Text = buffer.NewBufferFromString(content, buffer.WithDetectedLineEnding(content))
	return f
}

// Load reads path from disk into a new File and records its stat.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	f := NewFileFromString(path, string(data))
	if info, statErr := os.Stat(path); statErr == nil {
		f.stat = Stat{ModTime: info.ModTime(), Size: info.Size(), Exists: true}
	}
	return f, nil
}

// Retain increments the reference count and returns f for chaining.
func (f *File) Retain() *File {
	f.refcount++
	return f
}

// Release decrements the reference count. It returns true once the count
// reaches zero, signalling that the caller (the Registry) should discard
// the File.
func (f *File) Release() bool {
	f.refcount--
	return f.refcount <= 0
}

// RefCount returns the current reference count.
func (f *File) RefCount() int {
	return f.refcount
}

// Truncated reports whether a SIGBUS on this file's backing mapping has
// been observed (see internal/app's signal handling).
func (f *File) Truncated() bool {
	return f.truncated
}

// MarkTruncated flags the file as truncated; Window closing logic uses
// this to decide whether to warn the user before the window is dropped.
func (f *File) MarkTruncated() {
	f.truncated = true
}

// Stat returns the last-known on-disk metadata for the file.
func (f *File) Stat() Stat {
	return f.stat
}

// ChangedOnDisk reports whether reload.go has observed a write to this
// file's backing path since it was last loaded or saved from here. This
// is the non-mmap analogue of spec.md §5's SIGBUS-on-mapped-file
// handling: the common case where the file isn't memory-mapped still
// needs a way to notice another process changed it underneath us.
func (f *File) ChangedOnDisk() bool {
	return f.changedOnDisk
}

// MarkChangedOnDisk flags the file as changed by an external write.
// AcknowledgeDisk clears it once the user has been warned.
func (f *File) MarkChangedOnDisk() {
	f.changedOnDisk = true
}

// AcknowledgeDisk clears the changed-on-disk flag, e.g. after the
// mainloop has surfaced the one-line warning for it.
func (f *File) AcknowledgeDisk() {
	f.changedOnDisk = false
}

// Modified reports whether the buffer has edits since the last Save (or,
// for a file never saved, since it was loaded).
func (f *File) Modified() bool {
	return len(f.changes) != f.savedAt
}

// Save writes the buffer's current contents to path, creating the file
// if it doesn't already exist. On success Name is updated to path (so an
// unnamed scratch buffer becomes a named file on its first `:w path`) and
// the dirty flag is cleared.
func (f *File) Save(path string) error {
	if path == "" {
		path = f.Name
	}
	if path == "" {
		return fmt.Errorf("save: no file name")
	}
	if err := os.WriteFile(path, []byte(f.Text.Text()), 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	f.Name = path
	f.savedAt = len(f.changes)
	if info, statErr := os.Stat(path); statErr == nil {
		f.stat = Stat{ModTime: info.ModTime(), Size: info.Size(), Exists: true}
	}
	return nil
}

// --- mark table -----------------------------------------------------------

// NewMark allocates a tracked mark at pos and returns its ID.
func (f *File) NewMark(pos int) MarkID {
	f.nextMarkID++
	id := f.nextMarkID
	f.marks[id] = pos
	return id
}

// FreeMark drops a tracked mark; it is safe to call on an already-freed
// or unknown ID.
func (f *File) FreeMark(id MarkID) {
	delete(f.marks, id)
}

// MarkPos returns the current offset of a tracked mark.
func (f *File) MarkPos(id MarkID) (int, bool) {
	pos, ok := f.marks[id]
	return pos, ok
}

// SetMarkPos forcibly repositions a tracked mark, e.g. when a named mark
// is re-set by the user at a new location.
func (f *File) SetMarkPos(id MarkID, pos int) {
	f.marks[id] = pos
}

// SetNamedMark binds a single-character mark name (a-z, A-Z, '<, '>, etc.)
// to a position, reusing the existing tracked mark if the name was
// already bound.
func (f *File) SetNamedMark(name rune, pos int) {
	if id, ok := f.named[name]; ok {
		f.marks[id] = pos
		return
	}
	f.named[name] = f.NewMark(pos)
}

// NamedMarkPos resolves a named mark to its current position.
func (f *File) NamedMarkPos(name rune) (int, bool) {
	id, ok := f.named[name]
	if !ok {
		return 0, false
	}
	return f.MarkPos(id)
}

// Adjust shifts every tracked mark with an offset >= at by delta bytes.
// Marks strictly before at are unchanged. The executor must call this
// after every edit that does not already go through Insert/Delete below.
func (f *File) Adjust(at, delta int) {
	if delta == 0 {
		return
	}
	for id, pos := range f.marks {
		if pos >= at {
			pos += delta
			if pos < at {
				pos = at
			}
			f.marks[id] = pos
		}
	}
}

// Insert inserts text at pos through the undo history and shifts marks.
func (f *File) Insert(pos int, text string) error {
	cmd := history.NewInsertCommand(history.ByteOffset(pos), text)
	if err := f.Hist.Execute(cmd, f.Text); err != nil {
		return err
	}
	f.Adjust(pos, len(text))
	f.changes = append(f.changes, pos)
	return nil
}

// Delete removes [start,end) through the undo history and shifts marks.
func (f *File) Delete(start, end int) error {
	cmd := history.NewDeleteCommand(history.NewRange(history.ByteOffset(start), history.ByteOffset(end)))
	if err := f.Hist.Execute(cmd, f.Text); err != nil {
		return err
	}
	f.Adjust(start, start-end)
	f.changes = append(f.changes, start)
	return nil
}

// Replace substitutes [start,end) with text through the undo history and
// shifts marks.
func (f *File) Replace(start, end int, text string) error {
	cmd := history.NewReplaceCommand(history.NewRange(history.ByteOffset(start), history.ByteOffset(end)), text)
	if err := f.Hist.Execute(cmd, f.Text); err != nil {
		return err
	}
	f.Adjust(start, len(text)-(end-start))
	f.changes = append(f.changes, start)
	return nil
}

// Undo reverts the most recent edit. Marks are not part of the undo
// record (vim-family editors don't roll marks back on 'u' either); only
// the buffer contents are restored.
func (f *File) Undo() error {
	return f.Hist.Undo(f.Text)
}

// Redo reapplies the most recently undone edit.
func (f *File) Redo() error {
	return f.Hist.Redo(f.Text)
}

// ChangeCount returns the number of edits recorded so far.
func (f *File) ChangeCount() int {
	return len(f.changes)
}

// ChangeAt returns the byte position of the i'th recorded edit (0-indexed,
// oldest first). ok is false if i is out of range.
func (f *File) ChangeAt(i int) (pos int, ok bool) {
	if i < 0 || i >= len(f.changes) {
		return 0, false
	}
	return f.changes[i], true
}
