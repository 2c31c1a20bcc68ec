// Package watch reports changes to individual files, coalescing bursts of
// filesystem events into one callback per file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/pixart"
)

// DefaultDelay is the quiet period after the last event before a change is
// reported.
const DefaultDelay = 200 * time.Millisecond

// debouncer coalesces rapid event bursts into a single callback per file.
type debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	onFire func(path string)
}

func newDebouncer(delay time.Duration, onFire func(path string)) *debouncer {
	return &debouncer{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		onFire: onFire,
	}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onFire(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}

// Watcher calls a function after a watched file changes.
//
// Files are watched through their parent directory, so replacing a file by
// renaming another one over it is seen as a change. Callbacks never run
// concurrently with each other.
type Watcher struct {
	w     *fsnotify.Watcher
	db    *debouncer
	mu    sync.Mutex // serializes onChange
	files map[string]bool
	dirs  map[string]bool
}

// New returns a watcher that calls onChange with the cleaned absolute path
// of a file once delay has passed without further events for it. A
// non-positive delay means DefaultDelay.
func New(delay time.Duration, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	wt := &Watcher{
		w:     fw,
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
	wt.db = newDebouncer(delay, func(path string) {
		wt.mu.Lock()
		defer wt.mu.Unlock()
		onChange(path)
	})
	return wt, nil
}

// Add starts watching path. The file does not need to exist yet, but its
// directory does. Add must not be called once Run has started.
func (wt *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if !wt.dirs[dir] {
		if err := wt.w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		wt.dirs[dir] = true
	}
	wt.files[abs] = true
	pixart.Logger().Debug("watching file", "path", abs)
	return nil
}

// Run dispatches events until ctx is done or the watcher fails, then
// closes the watcher. Pending callbacks are dropped.
func (wt *Watcher) Run(ctx context.Context) error {
	defer wt.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-wt.w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !wt.files[name] {
				continue
			}
			wt.db.trigger(name)

		case err, ok := <-wt.w.Errors:
			if !ok {
				return nil
			}
			pixart.Logger().Warn("watcher error", "err", err)
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (wt *Watcher) Close() error {
	wt.db.stop()
	return wt.w.Close()
}
