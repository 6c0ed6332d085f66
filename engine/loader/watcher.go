package loader

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeated events for the same path; editors often write a file in several steps.
const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to model and config files in a set of directories.
// Events and Errors are closed once the watcher stops.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the given directories. Subdirectories are not watched.
//
// Parameters:
//   - dirs: the directories to watch
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if a directory cannot be watched
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and waits for its goroutine to exit. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	d := newDebouncer(watchDebounce)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isWatchedFile(event.Name) || !d.allow(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// An undrained error is already pending.
			}
		case <-w.closeCh:
			return
		}
	}
}

// debouncer suppresses events for a path seen less than window ago.
type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, last: make(map[string]time.Time)}
}

func (d *debouncer) allow(path string, now time.Time) bool {
	if t, ok := d.last[path]; ok && now.Sub(t) < d.window {
		return false
	}
	d.last[path] = now
	return true
}

// isWatchedFile reports whether a path is a model, an external buffer or a config file.
func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb", ".bin", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
