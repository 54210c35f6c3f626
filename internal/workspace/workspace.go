package workspace

import (
	"path/filepath"
	"sync"
)

// Workspace is a per-request scratch directory. Release is safe to call
// any number of times; the directory is removed at most once.
type Workspace struct {
	dir      string
	registry *Registry
	once     sync.Once
}

func (w *Workspace) Dir() string {
	return w.dir
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *Workspace) Release() {
	w.once.Do(func() {
		w.registry.remove(w.dir)
	})
}
