// Package history provides undo/redo functionality for the text editor engine.
//
// The history system uses the Command pattern to encapsulate edit operations,
// enabling them to be executed, undone, and redone. Key concepts:
//
// # Operations
//
// An Operation represents a single atomic edit with before/after state:
//   - The range that was modified
//   - The old and new text
//
// # Commands
//
// Commands implement the Command interface with Execute and Undo methods,
// operating purely on buffer content. Cursor/selection bookkeeping is the
// caller's responsibility; operators report the position they leave the
// cursor at directly. Built-in commands include:
//   - InsertCommand: insert text at a byte offset
//   - DeleteCommand: delete a byte range
//   - ReplaceCommand: replace a byte range with new text
//   - CompoundCommand: group multiple commands as one undo unit
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	history := NewHistory(1000) // Max 1000 undo entries
//
//	// Execute commands
//	history.Execute(cmd, buf)
//
//	// Undo/redo
//	history.Undo(buf)
//	history.Redo(buf)
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	history.BeginGroup("Find and Replace")
//	// ... multiple edits ...
//	history.EndGroup()
//
// Now all edits undo together with one undo command.
package history
