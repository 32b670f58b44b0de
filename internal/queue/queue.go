// Package queue dispatches ingestion work to a bounded pool of background
// workers, with retry for transient backend failures.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/logger"
)

// Status is the immediate outcome of an Enqueue call.
type Status string

const (
	// StatusAccepted means the file was queued for ingestion.
	StatusAccepted Status = "accepted"

	// StatusDuplicate means the same path is already queued or in flight.
	StatusDuplicate Status = "duplicate"

	// StatusRejected means the queue was full or closed.
	StatusRejected Status = "rejected"
)

const (
	defaultWorkers  = 2
	defaultCapacity = 64
	defaultRetries  = 3
	defaultBackoff  = 2 * time.Second
)

type task struct {
	path string
	name string
}

// Queue is a bounded background ingestion dispatcher. Work is not
// cancellable mid-flight; a failed pipeline run cleans up after itself.
type Queue struct {
	ingest driving.IngestService

	workers  int
	capacity int
	retries  int
	backoff  time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	tasks   chan task
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// Option configures a Queue.
type Option func(*Queue)

// WithWorkers sets the number of concurrent ingest workers.
func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

// WithCapacity sets how many tasks may wait before Enqueue rejects.
func WithCapacity(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// WithBackoff sets the base delay between retries of transient failures.
func WithBackoff(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.backoff = d
		}
	}
}

// New creates a queue dispatching to the given ingest service.
func New(ingest driving.IngestService, opts ...Option) *Queue {
	q := &Queue{
		ingest:   ingest,
		workers:  defaultWorkers,
		capacity: defaultCapacity,
		retries:  defaultRetries,
		backoff:  defaultBackoff,
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.tasks = make(chan task, q.capacity)
	return q
}

// Start launches the worker pool. The context bounds all in-flight
// pipeline runs.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
}

// Enqueue submits a file for background ingestion and returns immediately.
// The same path is never queued twice concurrently.
func (q *Queue) Enqueue(path, name string) (Status, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return StatusRejected, domain.ErrQueueClosed
	}
	if _, inFlight := q.pending[path]; inFlight {
		return StatusDuplicate, nil
	}

	select {
	case q.tasks <- task{path: path, name: name}:
		q.pending[path] = struct{}{}
		return StatusAccepted, nil
	default:
		logger.Warn("ingest queue full, rejecting %s", path)
		return StatusRejected, nil
	}
}

// Close stops accepting work and waits for queued tasks to drain.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for t := range q.tasks {
		q.process(ctx, t)

		q.mu.Lock()
		delete(q.pending, t.path)
		q.mu.Unlock()
	}
}

func (q *Queue) process(ctx context.Context, t task) {
	for attempt := 0; ; attempt++ {
		_, err := q.ingest.Ingest(ctx, t.path, t.name)
		if err == nil {
			return
		}
		if !transient(err) {
			logger.Error("ingest of %s failed: %v", t.name, err)
			return
		}
		if attempt >= q.retries {
			logger.Error("ingest of %s failed after %d retries: %v", t.name, q.retries, err)
			return
		}

		delay := q.backoff << attempt
		logger.Warn("ingest of %s failed (%v), retrying in %s", t.name, err, delay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// transient reports whether an ingest failure is worth retrying. Extraction
// faults and duplicates are properties of the file; backend outages are not.
func transient(err error) bool {
	return errors.Is(err, domain.ErrEmbeddingFailed) ||
		errors.Is(err, domain.ErrModelUnavailable)
}
