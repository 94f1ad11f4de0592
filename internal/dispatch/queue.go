package dispatch

import (
	"context"
	"errors"
	"sync"

	"adaptui/internal/logging"

	"go.uber.org/zap"
)

// ErrClosed is returned by Run once the queue has been closed and drained.
var ErrClosed = errors.New("dispatch: queue closed")

// Queue is an unbounded FIFO logic loop. Post never blocks; Run executes
// tasks one at a time on the calling goroutine.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	closed bool
	log    *zap.Logger
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
		log:  logging.Get(logging.CategoryDispatch),
	}
}

// Post appends fn. Tasks posted after Close are dropped.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.log.Debug("task dropped after close")
		return
	}
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close stops intake. Tasks already queued still run.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len reports the current backlog.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Run drains tasks until ctx is done or the queue is closed and empty.
// On context cancellation the remaining backlog is discarded.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.mu.Lock()
		batch := q.tasks
		q.tasks = nil
		closed := q.closed
		q.mu.Unlock()

		for i, fn := range batch {
			if err := ctx.Err(); err != nil {
				q.log.Debug("discarding backlog", zap.Int("tasks", len(batch)-i))
				return err
			}
			fn()
		}

		if len(batch) > 0 {
			continue
		}
		if closed {
			return ErrClosed
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}
