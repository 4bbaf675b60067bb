package internal

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher observes the todo directory and reports changes to the active
// file as unit events on Changes. Bursts of writes within the debounce
// window collapse into one event.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
}

func NewWatcher(dir, todoPath string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{fsw: fsw, changes: make(chan struct{}, 1)}
	go w.loop(filepath.Base(todoPath))
	return w, nil
}

// Changes delivers one event per debounced change to the active file.
// The channel closes when the watcher is closed.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(name string) {
	defer close(w.changes)
	var last time.Time
	for event := range w.fsw.Events {
		if filepath.Base(event.Name) != name {
			continue
		}
		// Atomic rewrites land as Create+Rename, plain saves as Write.
		if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
			continue
		}
		if time.Since(last) < watchDebounce {
			continue
		}
		last = time.Now()
		select {
		case w.changes <- struct{}{}:
		default:
		}
	}
}
