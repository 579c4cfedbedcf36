// Package watch provides the debounced file watcher behind `plugforge watch`.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is a debounced source change.
type Event struct {
	Path      string
	Op        string
	Timestamp time.Time
}

// Config contains configuration for the file watcher.
type Config struct {
	// Dir is the workspace root to watch
	Dir string

	// Patterns are glob patterns to match (e.g. "*.rs", "Cargo.toml")
	Patterns []string

	// IgnorePatterns are directory/file patterns to ignore
	IgnorePatterns []string

	// Debounce is the debounce duration for rapid events
	Debounce time.Duration
}

// DefaultConfig returns the watcher configuration for a plugin crate.
func DefaultConfig(dir string) *Config {
	return &Config{
		Dir:      dir,
		Patterns: []string{"*.rs", "Cargo.toml", "plugforge.yaml"},
		IgnorePatterns: []string{
			".git",
			"target",
			"node_modules",
			".idea",
			".vscode",
		},
		Debounce: 300 * time.Millisecond,
	}
}

// Watcher watches a crate for source changes and emits debounced events.
type Watcher struct {
	config  *Config
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	mu      sync.Mutex
	running bool

	// Debouncing
	pending   map[string]*time.Timer
	pendingMu sync.Mutex
}

// New creates a new file watcher.
func New(config *Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:  config,
		watcher: fsWatcher,
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addRecursive(w.config.Dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)

	return w.watcher.Close()
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// addRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			for _, pattern := range w.config.IgnorePatterns {
				if matched, _ := filepath.Match(pattern, info.Name()); matched {
					return filepath.SkipDir
				}
			}
			return w.watcher.Add(path)
		}

		return nil
	})
}

// processEvents forwards fsnotify events as debounced Events.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// handleEvent filters and debounces a single fsnotify event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}

	// New directories need to be added to the watch set
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return
		}
	}

	if !w.matchesPattern(event.Name) {
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.debounce(Event{
		Path:      event.Name,
		Op:        event.Op.String(),
		Timestamp: time.Now(),
	})
}

// debounce collapses rapid successive events on the same path.
func (w *Watcher) debounce(event Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if timer, ok := w.pending[event.Path]; ok {
		timer.Stop()
	}

	w.pending[event.Path] = time.AfterFunc(w.config.Debounce, func() {
		w.pendingMu.Lock()
		delete(w.pending, event.Path)
		w.pendingMu.Unlock()

		select {
		case w.events <- event:
		default:
			// Channel full, drop event
		}
	})
}

// matchesPattern checks if a file matches any of the watch patterns.
func (w *Watcher) matchesPattern(path string) bool {
	if len(w.config.Patterns) == 0 {
		return true
	}

	base := filepath.Base(path)
	for _, pattern := range w.config.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// shouldIgnore checks if any path component matches an ignore pattern.
func (w *Watcher) shouldIgnore(path string) bool {
	parts := strings.Split(path, string(filepath.Separator))
	for _, part := range parts {
		for _, pattern := range w.config.IgnorePatterns {
			if matched, _ := filepath.Match(pattern, part); matched {
				return true
			}
		}
	}

	return false
}
