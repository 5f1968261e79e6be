// Package watch runs a callback whenever files in watched directories
// change. By default only hand-written Go sources count.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
)

// DefaultDebounce collapses bursts of editor writes into one regeneration.
const DefaultDebounce = 500 * time.Millisecond

// RegenerateFunc is called after a debounced change.
type RegenerateFunc func(ctx context.Context) error

// Watcher watches source directories and triggers regeneration.
type Watcher struct {
	watcher    *fsnotify.Watcher
	regenerate RegenerateFunc
	debounce   time.Duration
	// generated files end with this suffix and never trigger a run
	ignoreSuffix string
	match        func(path string) bool

	mu            sync.Mutex
	debounceTimer *time.Timer
	running       sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithIgnoreSuffix sets the suffix of generated files.
func WithIgnoreSuffix(suffix string) Option {
	return func(w *Watcher) { w.ignoreSuffix = suffix }
}

// WithMatch replaces the default Go source filter.
func WithMatch(match func(path string) bool) Option {
	return func(w *Watcher) { w.match = match }
}

// New watches dirs and calls regenerate after changes settle.
func New(dirs []string, regenerate RegenerateFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:      fw,
		regenerate:   regenerate,
		debounce:     DefaultDebounce,
		ignoreSuffix: "_observe.go",
	}
	w.match = w.goSource
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
		logger.Debugw("Watching directory", "dir", dir)
	}
	return w, nil
}

// Run processes events until ctx is canceled, then stops the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debugw("Change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.match(event.Name)
}

// goSource reports whether path is a hand-written, non-test Go source.
func (w *Watcher) goSource(path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go") {
		return false
	}
	if w.ignoreSuffix != "" && strings.HasSuffix(base, w.ignoreSuffix) {
		return false
	}
	return !strings.HasPrefix(base, ".")
}

// schedule debounces rapid changes into one regeneration.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.running.Lock()
		defer w.running.Unlock()

		if err := w.regenerate(ctx); err != nil {
			logger.Errorw("Regeneration failed", logger.FieldError, err)
		}
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		logger.Debugw("Failed to close watcher", logger.FieldError, err)
	}
}
