// Package watcher reports debounced changes to a set of files and keeps
// their highlights current.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before a change is
// reported.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoPaths is returned by New when there is nothing to watch.
var ErrNoPaths = errors.New("watcher: no paths")

// Config holds watcher configuration options.
type Config struct {
	Paths    []string
	Debounce time.Duration
}

// DefaultConfig returns a config watching paths with DefaultDebounce.
func DefaultConfig(paths ...string) Config {
	return Config{Paths: paths, Debounce: DefaultDebounce}
}

// Watcher monitors files and sends the path of each one that changed.
// Parent directories are watched rather than the files themselves, so
// editors that save by renaming a temporary file over the original are
// still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]struct{}
	debounce  time.Duration
	changes   chan string
	errs      chan error
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a watcher for cfg.Paths. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, ErrNoPaths
	}

	files := make(map[string]struct{}, len(cfg.Paths))
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		files:     files,
		debounce:  debounce,
		changes:   make(chan string),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. Changed paths arrive on the first channel, in
// sorted order when several settle together; watch errors arrive on the
// second. Both are closed after Stop.
func (w *Watcher) Start() (<-chan string, <-chan error, error) {
	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go w.loop()

	return w.changes, w.errs, nil
}

// Stop terminates the watcher and releases resources. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// Files returns the absolute paths being watched, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// loop collects events until the files have been quiet for the debounce
// window, then reports each pending path.
func (w *Watcher) loop() {
	defer close(w.changes)
	defer close(w.errs)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, relevant := w.relevant(event)
			if !relevant {
				continue
			}
			pending[path] = struct{}{}
			// Go 1.23 timers need no draining before Reset.
			timer.Reset(w.debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			for _, p := range paths {
				select {
				case w.changes <- p:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}

// relevant reports whether event touches a watched file's content.
func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	path := filepath.Clean(event.Name)
	_, ok := w.files[path]
	return path, ok
}
