package dispatch

import "sync"

// Manual is a fake scheduler for tests. Posted tasks wait until Drain or
// Step runs them on the caller's goroutine.
type Manual struct {
	mu    sync.Mutex
	tasks []func()
}

func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.tasks = append(m.tasks, fn)
	m.mu.Unlock()
}

// Len reports how many tasks are waiting.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Step runs the oldest waiting task. It reports false when nothing was
// waiting.
func (m *Manual) Step() bool {
	m.mu.Lock()
	if len(m.tasks) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.tasks[0]
	m.tasks = m.tasks[1:]
	m.mu.Unlock()

	fn()
	return true
}

// Drain runs waiting tasks, including ones they post, until none remain.
// It returns how many ran.
func (m *Manual) Drain() int {
	n := 0
	for m.Step() {
		n++
	}
	return n
}

// Discard drops waiting tasks without running them.
func (m *Manual) Discard() {
	m.mu.Lock()
	m.tasks = nil
	m.mu.Unlock()
}
