// Package watcher monitors the uploads directory and feeds new PDF files to
// the ingestion queue.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/foxest/faqdex/internal/logger"
	"github.com/foxest/faqdex/internal/queue"
)

// defaultDebounce covers editors and browsers that write a file in several
// bursts; the last write wins.
const defaultDebounce = 500 * time.Millisecond

// Enqueuer accepts files for background ingestion.
type Enqueuer interface {
	Enqueue(path, name string) (queue.Status, error)
}

// Watcher tails a directory for new or rewritten PDF files.
type Watcher struct {
	dir      string
	queue    Enqueuer
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a path must stay quiet before it is enqueued.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher over dir feeding q.
func New(dir string, q Enqueuer, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		queue:    q,
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for new PDFs", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[event.Name]; ok {
		timer.Reset(w.debounce)
		return
	}
	path := event.Name
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		status, err := w.queue.Enqueue(path, filepath.Base(path))
		if err != nil {
			logger.Warn("enqueue %s: %v", path, err)
			return
		}
		logger.Debug("Enqueued %s: %s", path, status)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}
