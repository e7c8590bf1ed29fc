//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// reopenControllingTTY implements spec.md §6's "-" stdin mode: once
// standard input has been drained into a buffer, fd 0 is redirected to
// /dev/tty so the key reader can still read from the terminal.
func reopenControllingTTY() error {
	tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()
	return unix.Dup2(int(tty.Fd()), 0)
}
