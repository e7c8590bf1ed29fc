package workspace

import "fmt"

// Registry owns every open File and Window. Files are keyed by path so
// that opening the same path from two windows shares one buffer and one
// undo history (spec §3: "a file's refcount equals the number of
// windows whose file is that file plus internal holders"); scratch
// buffers (no path) are never shared and are not entered in that map.
type Registry struct {
	files   map[string]*File // path -> file, for on-disk files only
	Windows []*Window

	// jumplistCapacity is passed to every Window this registry creates.
	jumplistCapacity int

	// watcher flags files changed by another process; nil if fsnotify
	// failed to initialize (e.g. inotify watch limit), in which case
	// ChangedOnDisk simply never fires.
	watcher *Watcher
}

// NewRegistry creates an empty registry. jumplistCapacity bounds the
// jumplist ring of every window the registry opens; 0 takes the
// built-in default.
func NewRegistry(jumplistCapacity int) *Registry {
	r := &Registry{files: make(map[string]*File), jumplistCapacity: jumplistCapacity}
	if w, err := NewWatcher(); err == nil {
		r.watcher = w
	}
	return r
}

// Open returns the window onto path, loading and registering the file
// from disk on first use and sharing it on subsequent calls. A fresh
// Window (with its own View/Jumplist/Changelist) is always created.
func (r *Registry) Open(path string) (*Window, error) {
	f, ok := r.files[path]
	if !ok {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		f = loaded
		r.files[path] = f
		if r.watcher != nil {
			r.watcher.Add(f)
		}
	}
	win := NewWindow(f, r.jumplistCapacity)
	r.Windows = append(r.Windows, win)
	return win, nil
}

// OpenScratch creates a window onto a brand-new, unnamed buffer that no
// other window can share.
func (r *Registry) OpenScratch() *Window {
	win := NewWindow(NewFile(""), r.jumplistCapacity)
	r.Windows = append(r.Windows, win)
	return win
}

// OpenStdin creates an unnamed window pre-populated with content read
// from standard input (the trailing "-" CLI argument from spec.md §6).
// Like a scratch buffer, it is never shared by path.
func (r *Registry) OpenStdin(content []byte) *Window {
	win := NewWindow(NewFileFromString("", string(content)), r.jumplistCapacity)
	r.Windows = append(r.Windows, win)
	return win
}

// Close releases win's reference to its File, removing the File from
// the registry once its refcount reaches zero, and drops win from the
// window list. Close returns an error if win is not a window this
// registry opened.
func (r *Registry) Close(win *Window) error {
	idx := -1
	for i, w := range r.Windows {
		if w == win {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("close window %s: not open in this registry", win.ID)
	}
	r.Windows = append(r.Windows[:idx], r.Windows[idx+1:]...)

	if win.File.Release() {
		if win.File.Name != "" {
			delete(r.files, win.File.Name)
			if r.watcher != nil {
				r.watcher.Remove(win.File.Name)
			}
		}
	}
	return nil
}

// CloseWatcher releases the fsnotify watcher backing ChangedOnDisk tracking.
// Call once, during application shutdown.
func (r *Registry) CloseWatcher() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}

// ByPath returns the already-open File for path, if any, without
// loading it.
func (r *Registry) ByPath(path string) (*File, bool) {
	f, ok := r.files[path]
	return f, ok
}

// WindowsOn returns every window currently viewing f, used to decide
// which windows need a redraw after an edit to a shared file.
func (r *Registry) WindowsOn(f *File) []*Window {
	var result []*Window
	for _, w := range r.Windows {
		if w.File == f {
			result = append(result, w)
		}
	}
	return result
}
