// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     watch
// Description: Debounced file watcher that reports changed source files
// Author:      msto63
// Created:     2025-02-20
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	llog "github.com/msto63/lumen/foundation/core/log"
	"github.com/msto63/lumen/pkg/core/logging"
)

// Op is the kind of change reported for a file
type Op int

const (
	// Changed means the file was created or written
	Changed Op = iota
	// Removed means the file was deleted or renamed away
	Removed
)

// String returns the string representation of the op
func (o Op) String() string {
	switch o {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports one settled change of a watched file
type Event struct {
	Path string
	Op   Op
}

// Handler receives events. It runs on the watcher goroutine, so a slow
// handler delays later events.
type Handler func(Event)

// Options configures a Watcher
type Options struct {
	// Debounce is the quiet period after the last raw event of a file
	// before it is reported. Zero reports every raw event.
	Debounce time.Duration

	// Extensions restricts files found in watched directories. Files added
	// by name are always reported.
	Extensions []string

	// Logger defaults to llog.GetDefault()
	Logger *llog.Logger
}

// Watcher reports changes of source files and directories
type Watcher struct {
	mu      sync.RWMutex
	opts    Options
	handler Handler
	logger  *logging.Logger
	watcher *fsnotify.Watcher
	files   map[string]bool // absolute file path -> watched
	dirs    map[string]bool // absolute directory -> watched for extensions
	watched map[string]bool // directories registered with fsnotify
	stopCh  chan struct{}
	done    chan struct{}
	running bool
}

// New creates a watcher that calls handler for every settled change
func New(opts Options, handler Handler) *Watcher {
	base := opts.Logger
	if base == nil {
		base = llog.GetDefault()
	}
	return &Watcher{
		opts:    opts,
		handler: handler,
		logger:  logging.Wrap(base, "watch"),
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		watched: make(map[string]bool),
	}
}

// Add registers a file or a directory. A file is watched through its
// parent directory so editors that save by renaming are still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dir := abs
	if info.IsDir() {
		w.dirs[abs] = true
	} else {
		w.files[abs] = true
		dir = filepath.Dir(abs)
	}

	if w.watcher != nil && !w.watched[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory: %w", err)
		}
	}
	w.watched[dir] = true
	return nil
}

// Files returns the watched file paths in sorted order
func (w *Watcher) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Running reports whether the watch loop is active
func (w *Watcher) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Start begins watching in a background goroutine. The loop ends when ctx
// is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	for dir := range w.watched {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory: %w", err)
		}
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	w.running = true
	w.logger.Info("Started watching for source changes", "dirs", len(w.watched), "files", len(w.files))

	go w.watchLoop(ctx, watcher, w.stopCh, w.done)
	return nil
}

// Stop ends the watch loop and waits for it to finish
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	stopCh, done := w.stopCh, w.done
	w.running = false
	w.mu.Unlock()

	close(stopCh)
	<-done
}

// pendingChange is the latest operation seen for a file. gen identifies
// the debounce timer allowed to report it.
type pendingChange struct {
	op  Op
	gen uint64
}

type dueChange struct {
	name string
	gen  uint64
}

// debouncer coalesces bursts of events per file. It is owned by the watch
// loop and not safe for concurrent use; only its timers send on due.
type debouncer struct {
	delay   time.Duration
	pending map[string]pendingChange
	timers  map[string]*time.Timer
	gen     uint64
	due     chan dueChange
	done    <-chan struct{}
}

func newDebouncer(delay time.Duration, done <-chan struct{}) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]pendingChange),
		timers:  make(map[string]*time.Timer),
		due:     make(chan dueChange),
		done:    done,
	}
}

// touch records op for name and restarts its timer. A timer that already
// fired may still be blocked on due; the new generation makes its
// delivery stale.
func (d *debouncer) touch(name string, op Op) {
	if t, exists := d.timers[name]; exists {
		t.Stop()
	}
	d.gen++
	d.pending[name] = pendingChange{op: op, gen: d.gen}
	fire := dueChange{name: name, gen: d.gen}
	d.timers[name] = time.AfterFunc(d.delay, func() {
		select {
		case d.due <- fire:
		case <-d.done:
		}
	})
}

// settle returns the event a timer delivery stands for, or false when a
// later touch superseded it
func (d *debouncer) settle(c dueChange) (Event, bool) {
	change, ok := d.pending[c.name]
	if !ok || change.gen != c.gen {
		return Event{}, false
	}
	delete(d.pending, c.name)
	delete(d.timers, c.name)
	return Event{Path: c.name, Op: change.op}, true
}

func (d *debouncer) stop() {
	for _, t := range d.timers {
		t.Stop()
	}
}

// watchLoop handles file system events
func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, stopCh, done chan struct{}) {
	debounce := newDebouncer(w.opts.Debounce, done)

	defer func() {
		debounce.stop()
		watcher.Close()
		w.mu.Lock()
		w.running = false
		w.watcher = nil
		w.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping file watcher (context cancelled)")
			return

		case <-stopCh:
			w.logger.Info("Stopping file watcher (stop signal)")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			op, relevant := classify(event.Op)
			if !relevant || !w.matches(event.Name) {
				continue
			}
			w.logger.Debug("File event", "file", event.Name, "op", event.Op.String())

			if w.opts.Debounce <= 0 {
				w.emit(Event{Path: event.Name, Op: op})
				continue
			}
			debounce.touch(event.Name, op)

		case c := <-debounce.due:
			if ev, ok := debounce.settle(c); ok {
				w.emit(ev)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.ErrorWithErr("Watcher error", err)
		}
	}
}

func (w *Watcher) emit(event Event) {
	w.logger.Info("Source file "+event.Op.String(), "file", filepath.Base(event.Path))
	if w.handler != nil {
		w.handler(event)
	}
}

// matches reports whether path is a watched file or lies directly in a
// watched directory with an accepted extension
func (w *Watcher) matches(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.files[path] {
		return true
	}
	if !w.dirs[filepath.Dir(path)] {
		return false
	}
	return hasExtension(path, w.opts.Extensions)
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// classify maps raw fsnotify operations onto reported ops; chmod-only
// events are dropped
func classify(op fsnotify.Op) (Op, bool) {
	switch {
	case op&fsnotify.Remove == fsnotify.Remove || op&fsnotify.Rename == fsnotify.Rename:
		return Removed, true
	case op&fsnotify.Create == fsnotify.Create || op&fsnotify.Write == fsnotify.Write:
		return Changed, true
	default:
		return 0, false
	}
}
