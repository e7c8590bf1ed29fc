package app

import (
	"strconv"
	"strings"
)

// evalEx interprets a completed ':' command line. The grammar covered is
// deliberately small: write/quit variants and a bare line number, which
// covers the core's explicit ex-command scope.
func (a *Application) evalEx(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		a.gotoLine(n)
		return false, nil
	}

	cmd, bang := line, false
	if strings.HasSuffix(cmd, "!") {
		bang = true
		cmd = strings.TrimSuffix(cmd, "!")
	}

	fields := strings.Fields(cmd)
	name := ""
	if len(fields) > 0 {
		name = fields[0]
	}

	switch name {
	case "w", "write":
		win := a.activeWindow()
		if err := win.File.Save(""); err != nil {
			a.logger.Warn("write: %v", err)
		}
		return false, nil
	case "q", "quit":
		return a.closeActive(bang)
	case "wq", "x":
		win := a.activeWindow()
		if err := win.File.Save(""); err != nil {
			a.logger.Warn("write: %v", err)
			return false, nil
		}
		return a.closeActive(true)
	case "qa", "qall":
		return true, nil
	}

	a.logger.Warn("unknown command: %s", line)
	return false, nil
}

// gotoLine moves the primary cursor to the start of the given 1-indexed
// line, clamped to the buffer's line range.
func (a *Application) gotoLine(n int) {
	win := a.activeWindow()
	c := win.View.Primary()
	if c == nil {
		return
	}
	count := int(win.File.Text.LineCount())
	line := n - 1
	if line < 0 {
		line = 0
	}
	if line >= count {
		line = count - 1
	}
	win.Jumplist.Push(c.Pos)
	a.moveCursorTo(int(win.File.Text.LineStartOffset(uint32(line))))
}
