package history

import (
	"errors"
	"testing"

	"github.com/arjunrao/modaltext/internal/text/buffer"
)

// Operation Tests

func TestNewOperation(t *testing.T) {
	op := NewOperation(Range{Start: 5, End: 10}, "hello", "world")
	if op.Range.Start != 5 || op.Range.End != 10 {
		t.Error("wrong range")
	}
	if op.OldText != "hello" || op.NewText != "world" {
		t.Error("wrong text")
	}
	if op.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestOperationIsInsert(t *testing.T) {
	insert := NewInsertOperation(5, "hello")
	if !insert.IsInsert() {
		t.Error("should be insert")
	}
	if insert.IsDelete() || insert.IsReplace() {
		t.Error("should not be delete or replace")
	}
}

func TestOperationIsDelete(t *testing.T) {
	del := NewDeleteOperation(Range{Start: 5, End: 10}, "hello")
	if !del.IsDelete() {
		t.Error("should be delete")
	}
	if del.IsInsert() || del.IsReplace() {
		t.Error("should not be insert or replace")
	}
}

func TestOperationIsReplace(t *testing.T) {
	replace := NewReplaceOperation(Range{Start: 5, End: 10}, "hello", "world")
	if !replace.IsReplace() {
		t.Error("should be replace")
	}
	if replace.IsInsert() || replace.IsDelete() {
		t.Error("should not be insert or delete")
	}
}

func TestOperationBytesDelta(t *testing.T) {
	tests := []struct {
		name     string
		op       *Operation
		expected int
	}{
		{"insert", NewInsertOperation(0, "hello"), 5},
		{"delete", NewDeleteOperation(Range{Start: 0, End: 5}, "hello"), -5},
		{"replace longer", NewReplaceOperation(Range{Start: 0, End: 3}, "abc", "hello"), 2},
		{"replace shorter", NewReplaceOperation(Range{Start: 0, End: 5}, "hello", "hi"), -3},
		{"replace same", NewReplaceOperation(Range{Start: 0, End: 5}, "hello", "world"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.BytesDelta(); got != tt.expected {
				t.Errorf("BytesDelta() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestOperationInvert(t *testing.T) {
	op := NewReplaceOperation(Range{Start: 5, End: 10}, "hello", "world")

	inv := op.Invert()

	if inv.Range.Start != 5 || inv.Range.End != 10 {
		t.Error("inverted range wrong")
	}
	if inv.OldText != "world" || inv.NewText != "hello" {
		t.Error("inverted text wrong")
	}
}

func TestOperationClone(t *testing.T) {
	op := NewReplaceOperation(Range{Start: 5, End: 10}, "hello", "world")

	clone := op.Clone()

	// Modify original
	op.Range.Start = 100

	// Clone should be unchanged
	if clone.Range.Start != 5 {
		t.Error("clone range was modified")
	}
}

// InsertCommand Tests

func TestInsertCommandExecute(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewInsertCommand(5, " there")

	err := cmd.Execute(buf)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if buf.Text() != "hello there world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello there world")
	}

	if cmd.End() != 11 {
		t.Errorf("End() = %d, want 11", cmd.End())
	}
}

func TestInsertCommandUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewInsertCommand(5, " there")

	if err := cmd.Execute(buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	err := cmd.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello world")
	}
}

func TestInsertCommandDescription(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"\n", "Insert newline"},
		{"\t", "Insert tab"},
		{"hello", `Insert "hello"`},
		{"a very long string that exceeds the limit", "Insert 41 characters"},
	}

	for _, tt := range tests {
		cmd := NewInsertCommand(0, tt.text)
		if got := cmd.Description(); got != tt.expected {
			t.Errorf("Description for %q = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

// DeleteCommand Tests

func TestDeleteCommandExecute(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewDeleteCommand(Range{Start: 4, End: 5})

	err := cmd.Execute(buf)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if buf.Text() != "hell world" {
		t.Errorf("got %q, want %q", buf.Text(), "hell world")
	}
}

func TestDeleteCommandUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewDeleteCommand(Range{Start: 4, End: 5})

	if err := cmd.Execute(buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	err := cmd.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello world")
	}
}

func TestDeleteCommandRange(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewDeleteCommand(Range{Start: 0, End: 6})

	if err := cmd.Execute(buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if buf.Text() != "world" {
		t.Errorf("got %q, want %q", buf.Text(), "world")
	}
}

// ReplaceCommand Tests

func TestReplaceCommandExecute(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewReplaceCommand(Range{Start: 0, End: 5}, "hi")

	err := cmd.Execute(buf)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if buf.Text() != "hi world" {
		t.Errorf("got %q, want %q", buf.Text(), "hi world")
	}

	if cmd.End() != 2 {
		t.Errorf("End() = %d, want 2", cmd.End())
	}
}

func TestReplaceCommandUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewReplaceCommand(Range{Start: 0, End: 5}, "hi")

	if err := cmd.Execute(buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	err := cmd.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello world")
	}
}

// CompoundCommand Tests

func TestCompoundCommandExecute(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewCompoundCommand("test",
		NewInsertCommand(5, " there"),
		NewInsertCommand(11, "!"),
	)

	err := cmd.Execute(buf)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if buf.Text() != "hello there! world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello there! world")
	}
}

func TestCompoundCommandUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	cmd := NewCompoundCommand("test",
		NewInsertCommand(5, " there"),
		NewInsertCommand(11, "!"),
	)

	if err := cmd.Execute(buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	err := cmd.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Errorf("got %q, want %q", buf.Text(), "hello world")
	}
}

// History Tests

func TestHistoryPushAndUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	cmd := NewInsertCommand(5, " world")
	if err := h.Execute(cmd, buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Errorf("after execute: got %q", buf.Text())
	}

	err := h.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if buf.Text() != "hello" {
		t.Errorf("after undo: got %q", buf.Text())
	}
}

func TestHistoryRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	cmd := NewInsertCommand(5, " world")
	h.Execute(cmd, buf)
	h.Undo(buf)

	err := h.Redo(buf)
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}

	if buf.Text() != "hello world" {
		t.Errorf("after redo: got %q", buf.Text())
	}
}

func TestHistoryRedoClearedOnPush(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	h.Execute(NewInsertCommand(5, " world"), buf)
	h.Undo(buf)

	if !h.CanRedo() {
		t.Error("should be able to redo")
	}

	// New command clears redo stack
	h.Execute(NewInsertCommand(5, "!"), buf)

	if h.CanRedo() {
		t.Error("redo should be cleared after new command")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Execute(NewInsertCommand(buf.Len(), "x"), buf)
	}

	if h.UndoCount() != 3 {
		t.Errorf("undo count = %d, want 3", h.UndoCount())
	}
}

func TestHistoryCanUndoRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	if h.CanUndo() {
		t.Error("should not be able to undo initially")
	}
	if h.CanRedo() {
		t.Error("should not be able to redo initially")
	}

	h.Execute(NewInsertCommand(5, " world"), buf)

	if !h.CanUndo() {
		t.Error("should be able to undo after execute")
	}
	if h.CanRedo() {
		t.Error("should not be able to redo after execute")
	}

	h.Undo(buf)

	if h.CanUndo() {
		t.Error("should not be able to undo after undoing single command")
	}
	if !h.CanRedo() {
		t.Error("should be able to redo after undo")
	}
}

func TestHistoryErrors(t *testing.T) {
	h := NewHistory(100)
	buf := buffer.NewBufferFromString("hello")

	if err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}

	if err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryClear(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	h.Execute(NewInsertCommand(5, " world"), buf)
	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("history should be empty after clear")
	}
}

// Grouping Tests

func TestHistoryGrouping(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	h.BeginGroup("test group")
	h.Execute(NewInsertCommand(5, " "), buf)
	h.Execute(NewInsertCommand(6, "world"), buf)
	h.EndGroup()

	if buf.Text() != "hello world" {
		t.Errorf("got %q", buf.Text())
	}

	// Single undo should revert both commands
	h.Undo(buf)

	if buf.Text() != "hello" {
		t.Errorf("after undo: got %q, want %q", buf.Text(), "hello")
	}

	if h.CanUndo() {
		t.Error("should have only one undo entry for group")
	}
}

func TestHistoryCancelGroup(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	h.BeginGroup("test group")
	h.Execute(NewInsertCommand(5, " world"), buf)
	h.CancelGroup()

	// Buffer is modified but no undo entry created
	if buf.Text() != "hello world" {
		t.Errorf("got %q", buf.Text())
	}

	if h.CanUndo() {
		t.Error("canceled group should not create undo entry")
	}
}

func TestHistoryGroupScope(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	func() {
		scope := h.GroupScope("test")
		defer scope.End()

		h.Execute(NewInsertCommand(5, " "), buf)
		h.Execute(NewInsertCommand(6, "world"), buf)
	}()

	h.Undo(buf)

	if buf.Text() != "hello" {
		t.Errorf("after undo: got %q", buf.Text())
	}
}

func TestHistoryExecuteGrouped(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	err := h.ExecuteGrouped("test",
		buf,
		NewInsertCommand(5, " "),
		NewInsertCommand(6, "world"),
	)
	if err != nil {
		t.Fatalf("ExecuteGrouped failed: %v", err)
	}

	if h.UndoCount() != 1 {
		t.Errorf("undo count = %d, want 1", h.UndoCount())
	}
}

// Info Tests

func TestHistoryUndoInfo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	h.Execute(NewInsertCommand(5, " world"), buf)

	info := h.UndoInfo()
	if len(info) != 1 {
		t.Fatalf("got %d entries, want 1", len(info))
	}

	if info[0].Description != `Insert " world"` {
		t.Errorf("description = %q", info[0].Description)
	}

	if info[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestHistoryPeekUndo(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	_, ok := h.PeekUndo()
	if ok {
		t.Error("PeekUndo should return false when empty")
	}

	h.Execute(NewInsertCommand(5, " world"), buf)

	info, ok := h.PeekUndo()
	if !ok {
		t.Error("PeekUndo should return true")
	}
	if info.Description != `Insert " world"` {
		t.Errorf("description = %q", info.Description)
	}

	// Stack should be unchanged
	if h.UndoCount() != 1 {
		t.Error("PeekUndo should not modify stack")
	}
}

// Checkpoint Tests

func TestHistoryCheckpoint(t *testing.T) {
	buf := buffer.NewBufferFromString("hello")
	h := NewHistory(100)

	cp := h.CreateCheckpoint()

	h.Execute(NewInsertCommand(5, " "), buf)
	h.Execute(NewInsertCommand(6, "world"), buf)
	h.Execute(NewInsertCommand(11, "!"), buf)

	if buf.Text() != "hello world!" {
		t.Errorf("got %q", buf.Text())
	}

	err := h.UndoToCheckpoint(cp, buf)
	if err != nil {
		t.Fatalf("UndoToCheckpoint failed: %v", err)
	}

	if buf.Text() != "hello" {
		t.Errorf("after undo to checkpoint: got %q", buf.Text())
	}
}
