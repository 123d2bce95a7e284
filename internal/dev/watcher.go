package dev

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change represents a detected file change.
type Change struct {
	Path string
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the directories to watch, recursively.
	Paths []string

	// Ignore lists path fragments to skip.
	Ignore []string

	// Debounce is the delay before triggering on change; rapid saves
	// collapse into one rebuild.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"dist",
	".redwood",
	".swp",
	"~",
}

// Watcher monitors files for changes.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{config: config}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.onChange = fn
}

// Start begins watching. It returns once the watch is established; events
// are delivered on a background goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, root := range w.config.Paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if w.ignored(path) {
				return filepath.SkipDir
			}
			return fsw.Add(path)
		})
		if err != nil {
			fsw.Close()
			return err
		}
	}

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.running = true

	go w.loop(fsw, w.stopCh)
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopCh)
	w.fsw.Close()
	w.running = false
}

// loop collects fsnotify events, debounces them, and fires the callback
// with the last path seen in a burst.
func (w *Watcher) loop(fsw *fsnotify.Watcher, stop chan struct{}) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		last    string
	)

	for {
		select {
		case <-stop:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories join the watch so nested creates are seen.
			if event.Op&fsnotify.Create != 0 {
				fsw.Add(event.Name)
			}

			last = event.Name
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.config.Debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if w.onChange != nil {
				w.onChange(Change{Path: last})
			}

		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// ignored reports whether a path matches the ignore list.
func (w *Watcher) ignored(path string) bool {
	for _, fragment := range w.config.Ignore {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}
