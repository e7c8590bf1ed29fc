package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/arjunrao/modaltext/internal/text/buffer"
)

// Command represents a composable edit action that can be executed and undone.
// Commands operate purely on buffer content; callers own cursor/selection
// state and reposition it themselves using the offsets a command reports.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// InsertCommand inserts text at a single offset.
type InsertCommand struct {
	Offset    ByteOffset
	Text      string
	operation *Operation
}

// NewInsertCommand creates a new insert command.
func NewInsertCommand(offset ByteOffset, text string) *InsertCommand {
	return &InsertCommand{Offset: offset, Text: text}
}

// Execute inserts text at the recorded offset.
func (c *InsertCommand) Execute(buf *buffer.Buffer) error {
	if len(c.Text) == 0 {
		c.operation = nil
		return nil
	}

	if _, err := buf.Insert(c.Offset, c.Text); err != nil {
		return fmt.Errorf("insert at offset %d: %w", c.Offset, err)
	}

	c.operation = NewInsertOperation(c.Offset, c.Text)
	return nil
}

// Undo removes the inserted text.
func (c *InsertCommand) Undo(buf *buffer.Buffer) error {
	if c.operation == nil {
		return nil
	}
	inv := c.operation.Invert()
	if _, err := buf.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
		return fmt.Errorf("undo insert: %w", err)
	}
	return nil
}

// End returns the offset immediately after the inserted text.
func (c *InsertCommand) End() ByteOffset {
	return c.Offset + ByteOffset(len(c.Text))
}

// Description returns a human-readable description.
func (c *InsertCommand) Description() string {
	if c.Text == "\n" {
		return "Insert newline"
	}
	if c.Text == "\t" {
		return "Insert tab"
	}
	if utf8.RuneCountInString(c.Text) <= 20 {
		return fmt.Sprintf("Insert \"%s\"", c.Text)
	}
	return fmt.Sprintf("Insert %d characters", utf8.RuneCountInString(c.Text))
}

// DeleteCommand deletes text in a range.
type DeleteCommand struct {
	Range     Range
	operation *Operation
}

// NewDeleteCommand creates a new delete command covering the given range.
func NewDeleteCommand(r Range) *DeleteCommand {
	return &DeleteCommand{Range: r}
}

// Execute deletes text in the recorded range.
func (c *DeleteCommand) Execute(buf *buffer.Buffer) error {
	if c.Range.IsEmpty() {
		c.operation = nil
		return nil
	}

	oldText := buf.TextRange(c.Range.Start, c.Range.End)
	if err := buf.Delete(c.Range.Start, c.Range.End); err != nil {
		return fmt.Errorf("delete range [%d,%d): %w", c.Range.Start, c.Range.End, err)
	}

	c.operation = NewDeleteOperation(c.Range, oldText)
	return nil
}

// Undo restores the deleted text.
func (c *DeleteCommand) Undo(buf *buffer.Buffer) error {
	if c.operation == nil {
		return nil
	}
	inv := c.operation.Invert()
	if _, err := buf.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
		return fmt.Errorf("undo delete: %w", err)
	}
	return nil
}

// Description returns a human-readable description.
func (c *DeleteCommand) Description() string {
	n := c.Range.End - c.Range.Start
	return fmt.Sprintf("Delete %d bytes", n)
}

// ReplaceCommand replaces text in a specific range.
type ReplaceCommand struct {
	Range     Range
	NewText   string
	operation *Operation
}

// NewReplaceCommand creates a new replace command.
func NewReplaceCommand(r Range, newText string) *ReplaceCommand {
	return &ReplaceCommand{
		Range:   r,
		NewText: newText,
	}
}

// Execute replaces text in the specified range.
func (c *ReplaceCommand) Execute(buf *buffer.Buffer) error {
	oldText := buf.TextRange(c.Range.Start, c.Range.End)

	if _, err := buf.Replace(c.Range.Start, c.Range.End, c.NewText); err != nil {
		return fmt.Errorf("replace range [%d,%d): %w", c.Range.Start, c.Range.End, err)
	}

	c.operation = NewReplaceOperation(c.Range, oldText, c.NewText)
	return nil
}

// Undo restores the original text.
func (c *ReplaceCommand) Undo(buf *buffer.Buffer) error {
	if c.operation == nil {
		return nil
	}
	inv := c.operation.Invert()
	if _, err := buf.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
		return fmt.Errorf("undo replace: %w", err)
	}
	return nil
}

// End returns the offset immediately after the replacement text.
func (c *ReplaceCommand) End() ByteOffset {
	return c.Range.Start + ByteOffset(len(c.NewText))
}

// Description returns a human-readable description.
func (c *ReplaceCommand) Description() string {
	oldLen := c.Range.End - c.Range.Start
	newLen := utf8.RuneCountInString(c.NewText)
	if oldLen == 0 {
		return fmt.Sprintf("Insert %d characters", newLen)
	}
	if newLen == 0 {
		return fmt.Sprintf("Delete %d characters", oldLen)
	}
	return fmt.Sprintf("Replace %d with %d characters", oldLen, newLen)
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(buf *buffer.Buffer) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(buf)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
