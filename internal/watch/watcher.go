// Package watch re-runs the calculator whenever an input file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"rmscalc/internal/input"
	"rmscalc/internal/logging"
	"rmscalc/internal/runner"
)

// Watcher watches one input file. The containing directory is watched rather
// than the file itself so editors that save by rename are still seen.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	runner      *runner.Runner
	path        string
	dir         string
	load        func(string) ([]float64, error)
	debounceDur time.Duration
	pending     time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	// OnError, if set, receives load and display failures. The watcher keeps
	// running either way.
	OnError func(error)

	stats Stats
}

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Runs          int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// New creates a Watcher for path. debounce collapses bursts of writes into a
// single run; zero uses 200ms.
func New(path string, r *runner.Runner, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{
		watcher:     fw,
		runner:      r,
		path:        abs,
		dir:         filepath.Dir(abs),
		load:        input.LoadFile,
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. It does not block; call Stop or cancel ctx to end.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logging.Get(logging.CategoryWatch).Info("watching", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		select {
		case <-w.stopCh:
		default:
			close(w.stopCh)
		}
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher", zap.Error(err))
	}
}

// Stats returns a copy of the current counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// RunOnce loads the file and runs it through the runner immediately.
func (w *Watcher) RunOnce(ctx context.Context) error {
	numbers, err := w.load(w.path)
	if err == nil {
		_, err = w.runner.Run(ctx, w.path, numbers)
	}

	w.mu.Lock()
	if err != nil {
		w.stats.Errors++
	} else {
		w.stats.Runs++
	}
	w.mu.Unlock()

	if err != nil {
		logging.Get(logging.CategoryWatch).Warn("run failed", zap.String("path", w.path), zap.Error(err))
		if w.OnError != nil {
			w.OnError(err)
		}
	}
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.Get(logging.CategoryWatch)

	tick := w.debounceDur / 4
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("context cancelled")
			return

		case <-w.stopCh:
			log.Debug("stop signal received")
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
			log.Error("watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			if w.due() {
				_ = w.RunOnce(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	default:
		return // Removal leaves nothing to read; chmod changes nothing.
	}

	logging.Get(logging.CategoryWatch).Debug("event", zap.String("type", eventType), zap.String("path", event.Name))

	w.mu.Lock()
	now := time.Now()
	w.stats.Events++
	w.stats.LastEventTime = now
	w.stats.LastEventType = eventType
	w.pending = now
	w.mu.Unlock()
}

// due reports whether a pending change has been quiet for the debounce
// period, clearing it if so.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
		return false
	}
	w.pending = time.Time{}
	return true
}
