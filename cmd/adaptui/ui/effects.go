package ui

import (
	"context"
	"errors"

	"adaptui/internal/dispatch"

	tea "github.com/charmbracelet/bubbletea"
)

// EffectMsg carries a control task posted from the sampling goroutine. It
// runs inside Update, which makes the bubbletea event loop the logic
// channel.
type EffectMsg func()

// FrameMsg advances springs and wheel momentum by one frame.
type FrameMsg struct{}

// Relay is a dispatch.Dispatcher that forwards tasks to a running program
// as EffectMsg. Posts land on a dispatch.Queue, so the sampling goroutine
// never waits on the program; tasks posted before Run wait in the queue.
type Relay struct {
	queue *dispatch.Queue
	out   dispatch.Dispatcher // owned by the Run goroutine
}

// NewRelay creates an idle relay.
func NewRelay() *Relay {
	return &Relay{queue: dispatch.NewQueue()}
}

// Post implements dispatch.Dispatcher.
func (r *Relay) Post(fn func()) {
	r.queue.Post(func() { r.out.Post(fn) })
}

// Run forwards posted tasks to send, typically (*tea.Program).Send, in
// post order. It returns nil once the relay is closed and drained.
func (r *Relay) Run(ctx context.Context, send func(tea.Msg)) error {
	r.out = dispatch.Func(func(fn func()) { send(EffectMsg(fn)) })
	if err := r.queue.Run(ctx); !errors.Is(err, dispatch.ErrClosed) {
		return err
	}
	return nil
}

// Close stops intake. Tasks already posted are still forwarded.
func (r *Relay) Close() {
	r.queue.Close()
}
