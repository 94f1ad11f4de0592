package gesture

import (
	"context"
	"errors"
	"sync"

	"adaptui/internal/logging"

	"go.uber.org/zap"
)

// ErrSamplerClosed is returned by Submit after Close.
var ErrSamplerClosed = errors.New("gesture: sampler closed")

// DefaultBuffer is the sample backlog a Sampler accepts before Submit
// blocks.
const DefaultBuffer = 256

// Sampler is the continuous sampling channel. Derivation closures run in
// submission order on the goroutine that calls Run, independently of how
// far behind the logic loop is.
type Sampler struct {
	in        chan func()
	done      chan struct{}
	closeOnce sync.Once
	log       *zap.Logger
}

// NewSampler creates a sampler with the given backlog. A non-positive
// buffer uses DefaultBuffer.
func NewSampler(buffer int) *Sampler {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Sampler{
		in:   make(chan func(), buffer),
		done: make(chan struct{}),
		log:  logging.Get(logging.CategoryGesture),
	}
}

// Submit queues fn. It blocks only while the backlog is full.
func (s *Sampler) Submit(ctx context.Context, fn func()) error {
	select {
	case <-s.done:
		return ErrSamplerClosed
	default:
	}
	select {
	case s.in <- fn:
		return nil
	case <-s.done:
		return ErrSamplerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues fn without blocking and reports whether it was taken.
func (s *Sampler) TrySubmit(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.in <- fn:
		return true
	default:
		s.log.Debug("sample dropped: backlog full")
		return false
	}
}

// Close stops intake. Run finishes the queued samples and returns.
func (s *Sampler) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Run executes samples until ctx ends or the sampler is closed and
// drained. It returns nil after a clean Close.
func (s *Sampler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.in:
			fn()
		case <-s.done:
			for {
				select {
				case fn := <-s.in:
					fn()
				default:
					return nil
				}
			}
		}
	}
}
