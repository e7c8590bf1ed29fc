package app

import (
	"path/filepath"
	"strings"

	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/workspace"
)

// windowEditorState adapts the active Window to mode.EditorState, the
// read-only view a Mode's Enter/Exit/HandleUnmapped gets of the world.
type windowEditorState struct {
	win *workspace.Window
}

func (s windowEditorState) CursorPosition() (line, col uint32) {
	c := s.win.View.Primary()
	if c == nil {
		return 0, 0
	}
	pt := s.win.File.Text.OffsetToPoint(int64(c.Pos))
	return pt.Line, pt.Column
}

func (s windowEditorState) HasSelection() bool {
	c := s.win.View.Primary()
	return c != nil && c.HasSelection()
}

func (s windowEditorState) CurrentLine() string {
	line, _ := s.CursorPosition()
	return s.win.File.Text.LineText(line)
}

func (s windowEditorState) LineCount() uint32 {
	return s.win.File.Text.LineCount()
}

func (s windowEditorState) FilePath() string {
	return s.win.File.Name
}

func (s windowEditorState) FileType() string {
	ext := filepath.Ext(s.win.File.Name)
	return strings.TrimPrefix(ext, ".")
}

func (s windowEditorState) IsModified() bool {
	return s.win.File.Modified()
}

var _ mode.EditorState = windowEditorState{}
