// Package dispatch marshals host-observable effects onto a single logic
// context. Gesture derivation may run anywhere; change callbacks, pulses
// and visible-state writes are always posted through a Dispatcher so the
// host sees one total order of mutations.
package dispatch

// Dispatcher schedules fn on the primary logic context. Post must not
// block on fn itself, and tasks posted from one goroutine run in post
// order.
type Dispatcher interface {
	Post(fn func())
}

// Immediate runs every task inline. It is the right choice when gestures
// are already delivered on the logic context.
type Immediate struct{}

func (Immediate) Post(fn func()) { fn() }

// Func adapts a function to a Dispatcher. The terminal host uses it to
// forward tasks as messages into the bubbletea program.
type Func func(fn func())

func (f Func) Post(fn func()) { f(fn) }
