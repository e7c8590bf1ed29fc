// Package workspace implements the File/Window registry described by the
// core spec: a File pairs one text buffer with a filename, a reference
// count, a stable-mark table, and on-disk stat bookkeeping; a Window pairs
// one File with one cursor View and owns a bounded jumplist and a
// changelist cursor into the File's log of edit positions. The Registry shares a
// File across every Window opened on the same path and frees it once the
// last referencing Window closes.
package workspace
