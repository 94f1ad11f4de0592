package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig tunes a damped spring. Damping below 1 overshoots.
type SpringConfig struct {
	FPS       int
	Frequency float64
	Damping   float64
}

// DefaultSpring is a lively, slightly underdamped spring for pulses.
func DefaultSpring() SpringConfig {
	return SpringConfig{FPS: 60, Frequency: 7.0, Damping: 0.45}
}

// SettleSpring is critically damped, for release snaps and colour fades.
func SettleSpring() SpringConfig {
	return SpringConfig{FPS: 60, Frequency: 9.0, Damping: 1.0}
}

const (
	restPos = 1e-3
	restVel = 1e-2
)

// Value is one animated scalar.
type Value struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewValue creates a value resting at pos.
func NewValue(cfg SpringConfig, pos float64) *Value {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	return &Value{
		spring: harmonica.NewSpring(harmonica.FPS(fps), cfg.Frequency, cfg.Damping),
		pos:    pos,
		target: pos,
	}
}

// Pos returns the current position.
func (v *Value) Pos() float64 { return v.pos }

// Target returns where the value is heading.
func (v *Value) Target() float64 { return v.target }

// Set jumps to pos with no animation.
func (v *Value) Set(pos float64) {
	v.pos, v.vel, v.target = pos, 0, pos
}

// Kick restarts the animation at from, heading to to.
func (v *Value) Kick(from, to float64) {
	v.pos, v.vel, v.target = from, 0, to
}

// AnimateTo heads for to from the current position and velocity.
func (v *Value) AnimateTo(to float64) {
	v.target = to
}

// Done reports whether the value is at rest on its target.
func (v *Value) Done() bool {
	return math.Abs(v.pos-v.target) < restPos && math.Abs(v.vel) < restVel
}

// Step advances one frame and returns the new position.
func (v *Value) Step() float64 {
	if v.Done() {
		v.pos, v.vel = v.target, 0
		return v.pos
	}
	v.pos, v.vel = v.spring.Update(v.pos, v.vel, v.target)
	if v.Done() {
		v.pos, v.vel = v.target, 0
	}
	return v.pos
}

// Pulse shapes used by the controls. Each starts away from 1 and springs
// back to it.
const (
	ChipPulseFrom   = 0.9  // chip toggle: dip then overshoot back
	SelectDipFrom   = 0.95 // radio / multi-select: dip and recover
	CounterBumpFrom = 1.2  // counter value bounce
)

// Set is a keyed group of animated values, one per option or part.
type Set struct {
	cfg    SpringConfig
	rest   float64
	values map[string]*Value
}

// NewSet creates a group whose members start at rest.
func NewSet(cfg SpringConfig, rest float64) *Set {
	return &Set{cfg: cfg, rest: rest, values: make(map[string]*Value)}
}

// Get returns the value for key, creating it at rest.
func (s *Set) Get(key string) *Value {
	v, ok := s.values[key]
	if !ok {
		v = NewValue(s.cfg, s.rest)
		s.values[key] = v
	}
	return v
}

// Pos returns key's position, or the rest position if it never moved.
func (s *Set) Pos(key string) float64 {
	if v, ok := s.values[key]; ok {
		return v.pos
	}
	return s.rest
}

// Step advances every member one frame and reports whether any is still
// moving.
func (s *Set) Step() bool {
	active := false
	for _, v := range s.values {
		v.Step()
		if !v.Done() {
			active = true
		}
	}
	return active
}

// Active reports whether any member is moving.
func (s *Set) Active() bool {
	for _, v := range s.values {
		if !v.Done() {
			return true
		}
	}
	return false
}
