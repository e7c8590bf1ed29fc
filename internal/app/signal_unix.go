//go:build unix

package app

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchSignals installs handlers for SIGWINCH (terminal resize) and
// SIGBUS (a memory-mapped file's backing storage shrank under us) and
// runs until the Application shuts down. Call it in a goroutine after
// SetBackend.
func (a *Application) watchSignals() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, unix.SIGWINCH, unix.SIGBUS)
	defer signal.Stop(ch)

	for {
		select {
		case <-a.done:
			return
		case sig := <-ch:
			switch sig {
			case unix.SIGWINCH:
				if a.ui != nil {
					a.ui.Resize()
				}
			case unix.SIGBUS:
				a.handleBusFault()
			}
		}
	}
}

// handleBusFault marks every open file truncated so further reads/writes
// are refused rather than faulting again, and raises the sigbus flag the
// mainloop polls after each select (DESIGN NOTES: "replace with a
// checked mainloop that polls a sigbus flag after each select"). The
// actual window-closing happens on the mainloop's goroutine in
// recoverFromSigbus, since a.windows is not safe to mutate from here.
func (a *Application) handleBusFault() {
	a.logger.Error("SIGBUS: backing file truncated")
	for _, win := range a.windows {
		win.File.MarkTruncated()
	}
	a.sigbus.Store(true)
}
