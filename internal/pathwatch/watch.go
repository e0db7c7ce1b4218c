// Package pathwatch provides file system change notifications.
package pathwatch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// A Watcher keeps track of a set of paths and sends notifications on user-provided
// channels whenever the file at one of them is created, written, replaced or removed.
// The specific nature of the change is not reported; it is up to the user to determine
// what happened.
//
// Files are watched through their parent directory, so that a file replaced by a rename
// (as atomicwrite does) keeps being watched. The parent directory must exist.
//
// Notifications are dropped rather than queued when an observer's channel is full, so
// a channel with a buffer of one is enough to learn that something changed.
//
// Any errors that the Watcher encounters while monitoring the paths are delivered on the
// channel returned by Errors.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string][]chan<- struct{}
	dirs    map[string]int
	errors  chan error
	control chan func()
	done    chan struct{}
}

// NewWatcher starts a new watcher.
// When no longer in use, the user should call Close to release resources associated with it.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "starting file watcher")
	}
	w := &Watcher{
		fsw:     fsw,
		files:   map[string][]chan<- struct{}{},
		dirs:    map[string]int{},
		errors:  make(chan error, 10),
		control: make(chan func()),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Add begins sending change notifications for a path on the given channel.
// Multiple calls to Add for the same path, but different channels, are permitted;
// in that case, the notifications will be sent on all of them.
func (w *Watcher) Add(path string, ch chan<- struct{}) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	result := make(chan error, 1)
	w.control <- func() {
		if w.dirs[dir] == 0 {
			if err := w.fsw.Add(dir); err != nil {
				result <- errors.Wrapf(err, "watching %s", path)
				return
			}
		}
		w.dirs[dir]++
		w.files[path] = append(w.files[path], ch)
		result <- nil
	}
	return <-result
}

// Errors returns a channel on which the Watcher delivers errors it encounters.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops delivering change notifications for any paths and releases all resources
// associated with the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			for _, ob := range w.files[filepath.Clean(ev.Name)] {
				select {
				case ob <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case f := <-w.control:
			f()
		case <-w.done:
			return
		}
	}
}
