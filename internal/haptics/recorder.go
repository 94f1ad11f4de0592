package haptics

import "sync"

// Recorder is a Pulser that remembers every pulse. It is safe for
// concurrent use.
type Recorder struct {
	mu     sync.Mutex
	pulses []Intensity
	Err    error // returned from every Pulse when set
}

func (r *Recorder) Pulse(i Intensity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses = append(r.pulses, i)
	return r.Err
}

// Pulses returns a copy of the recorded pulses in delivery order.
func (r *Recorder) Pulses() []Intensity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Intensity, len(r.pulses))
	copy(out, r.pulses)
	return out
}

// Count returns how many pulses were recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pulses)
}

// Reset forgets recorded pulses.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses = nil
}
