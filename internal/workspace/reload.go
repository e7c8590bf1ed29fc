package workspace

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches every open on-disk File's backing path and flags a
// File as ChangedOnDisk when a write lands that didn't come from this
// process's own Save. It is the non-mmap analogue of spec.md §5's
// SIGBUS-on-mapped-file handling for the common case where the file
// isn't memory-mapped.
type Watcher struct {
	fsw *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]*File
}

// NewWatcher starts an fsnotify watcher with no paths registered yet.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fsw: fsw, files: make(map[string]*File)}
	go w.loop()
	return w, nil
}

// Add starts watching f's backing path. A no-op for scratch files.
func (w *Watcher) Add(f *File) {
	if f.Name == "" {
		return
	}
	w.mu.Lock()
	w.files[f.Name] = f
	w.mu.Unlock()
	_ = w.fsw.Add(f.Name) // best-effort; a deleted/unwatchable path just never fires
}

// Remove stops watching path, e.g. once the last window on it closes.
func (w *Watcher) Remove(path string) {
	if path == "" {
		return
	}
	w.mu.Lock()
	delete(w.files, path)
	w.mu.Unlock()
	_ = w.fsw.Remove(path)
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for ev := range w.fsw.Events {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			continue
		}
		w.mu.Lock()
		f, ok := w.files[ev.Name]
		w.mu.Unlock()
		if !ok {
			continue
		}
		w.checkChanged(f)
	}
}

// checkChanged compares the on-disk mtime against the File's
// last-known stat (set at Load/Save time) so a write this process just
// performed via Save doesn't mark itself as an external change.
func (w *Watcher) checkChanged(f *File) {
	info, err := os.Stat(f.Name)
	if err != nil {
		return
	}
	known := f.Stat()
	if !known.Exists || !info.ModTime().Equal(known.ModTime) || info.Size() != known.Size {
		f.MarkChangedOnDisk()
	}
}
