package exec_test

import (
	"testing"

	"github.com/arjunrao/modaltext/internal/cursor"
	"github.com/arjunrao/modaltext/internal/exec"
	"github.com/arjunrao/modaltext/internal/vim"
	"github.com/arjunrao/modaltext/internal/workspace"
)

func newFixture(content string) (workspace.FileEditor, *cursor.View, *exec.Executor, *workspace.Jumplist) {
	f := workspace.NewFileFromString("", content)
	ed := workspace.NewFileEditor(f)
	view := cursor.NewView(0)
	ex := exec.NewExecutor(vim.NewRegisterStore())
	jl := workspace.NewJumplist(f, 0)
	return ed, view, ex, jl
}

func cmdMotion(m *vim.Motion) *vim.Command {
	c := vim.NewCommand()
	c.Motion = m
	return c
}

func TestExecutorWordForward(t *testing.T) {
	ed, view, ex, jl := newFixture("foo bar baz")
	cmd := cmdMotion(&vim.MotionWordForward)
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})
	if got := view.Primary().Pos; got != 4 {
		t.Fatalf("pos after w = %d, want 4", got)
	}
}

func TestExecutorDeleteWord(t *testing.T) {
	ed, view, ex, jl := newFixture("foo bar baz")
	cmd := cmdMotion(&vim.MotionWordForward)
	cmd.Operator = &vim.OpDelete
	res := ex.Do(cmd, view, ed, jl, exec.ModeHint{})
	if !res.ChangedText {
		t.Fatal("expected ChangedText")
	}
	if got := ed.Text(); got != "bar baz" {
		t.Fatalf("buffer = %q, want %q", got, "bar baz")
	}
	if got := view.Primary().Pos; got != 0 {
		t.Fatalf("pos after dw = %d, want 0", got)
	}
}

func TestExecutorYankAndPut(t *testing.T) {
	ed, view, ex, jl := newFixture("foo bar")
	yank := cmdMotion(&vim.MotionWordForward)
	yank.Operator = &vim.OpYank
	ex.Do(yank, view, ed, jl, exec.ModeHint{})

	put := vim.NewCommand()
	put.Operator = &vim.OpPut
	put.Args["after"] = false
	ex.Do(put, view, ed, jl, exec.ModeHint{})

	if got := ed.Text(); got != "foo foo bar" {
		t.Fatalf("buffer = %q, want %q", got, "foo foo bar")
	}
}

func TestExecutorLinewiseDelete(t *testing.T) {
	ed, view, ex, jl := newFixture("one\ntwo\nthree\n")
	cmd := vim.NewCommand()
	cmd.Operator = &vim.OpDelete
	cmd.Linewise = true
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})

	if got := ed.Text(); got != "two\nthree\n" {
		t.Fatalf("buffer = %q, want %q", got, "two\nthree\n")
	}
}

func TestExecutorInnerWordTextObject(t *testing.T) {
	ed, view, ex, jl := newFixture("foo bar baz")
	view.Primary().Pos = 4 // on "bar"

	cmd := vim.NewCommand()
	cmd.Operator = &vim.OpDelete
	cmd.TextObject = &vim.TextObjWord
	cmd.TextObjectPrefix = vim.PrefixInner
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})

	if got := ed.Text(); got != "foo  baz" {
		t.Fatalf("buffer = %q, want %q", got, "foo  baz")
	}
}

func TestExecutorToggleCase(t *testing.T) {
	ed, view, ex, jl := newFixture("Hello")
	cmd := vim.NewCommand()
	cmd.Operator = &vim.OpToggleCase
	cmd.Motion = &vim.MotionLineEnd
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})

	if got := ed.Text(); got != "hELLO" {
		t.Fatalf("buffer = %q, want %q", got, "hELLO")
	}
}

func TestExecutorJumplistPushedOnG(t *testing.T) {
	ed, view, ex, jl := newFixture("a\nb\nc\nd\n")
	cmd := cmdMotion(&vim.MotionDocumentEnd)
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})

	if jl.Len() != 1 {
		t.Fatalf("jumplist len = %d, want 1", jl.Len())
	}
}

func TestExecutorMultiCursorDelete(t *testing.T) {
	ed, view, ex, jl := newFixture("aXbXcX")
	view.Primary().Pos = 1
	view.AddCursor(3)
	view.AddCursor(5)

	cmd := cmdMotion(&vim.MotionRight)
	cmd.Operator = &vim.OpDelete
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})

	if got := ed.Text(); got != "abc" {
		t.Fatalf("buffer = %q, want %q", got, "abc")
	}
}

func TestExecutorMultiCursorDeleteKeepsPerCursorRegisters(t *testing.T) {
	ed, view, ex, jl := newFixture("one two\none two\n")
	view.Primary().Pos = 0       // first "one"
	second := view.AddCursor(8)  // second "one"

	cmd := cmdMotion(&vim.MotionWordForward)
	cmd.Operator = &vim.OpDelete
	ex.Do(cmd, view, ed, jl, exec.ModeHint{})

	primaryContent, _, _, ok := ex.Private.Get(uint64(view.Primary().ID()))
	if !ok || primaryContent != "one " {
		t.Fatalf("primary cursor's private register = %q, %v, want %q, true", primaryContent, ok, "one ")
	}
	secondContent, _, _, ok := ex.Private.Get(uint64(second.ID()))
	if !ok || secondContent != "one " {
		t.Fatalf("second cursor's private register = %q, %v, want %q, true", secondContent, ok, "one ")
	}

	put := vim.NewCommand()
	put.Operator = &vim.OpPut
	put.Args["after"] = false
	ex.Do(put, view, ed, jl, exec.ModeHint{})

	if got := ed.Text(); got != "one two\none two\n" {
		t.Fatalf("buffer after put-back = %q, want %q", got, "one two\none two\n")
	}
}
