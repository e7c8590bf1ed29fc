//go:build !unix

package app

// watchSignals is a no-op outside unix: SIGWINCH/SIGBUS handling is
// unix-specific terminal/mmap behavior with no portable equivalent.
func (a *Application) watchSignals() {
	<-a.done
}
