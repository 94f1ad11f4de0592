package gesture

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

type phase int

const (
	phaseIdle phase = iota
	phaseDragging
	phaseCoasting
	phaseSnapping
)

// MomentumConfig tunes the scroll model. Offsets are in the same units as
// ItemExtent.
type MomentumConfig struct {
	ItemExtent   float64 // distance between item rest positions
	Items        int     // number of items; scroll extent is (Items-1)*ItemExtent
	FPS          int     // frames per second Step is called at
	Decay        float64 // fraction of velocity lost per second while coasting, in (0,1)
	RestVelocity float64 // below this speed (units/s) coasting hands over to the snap spring
	Frequency    float64 // snap spring angular frequency
	Damping      float64 // snap spring damping ratio
}

// DefaultMomentumConfig returns the tuning used by the terminal host.
func DefaultMomentumConfig(items int, extent float64) MomentumConfig {
	return MomentumConfig{
		ItemExtent:   extent,
		Items:        items,
		FPS:          60,
		Decay:        0.95,
		RestVelocity: 2 * extent,
		Frequency:    8.0,
		Damping:      1.0,
	}
}

// Momentum models post-release scroll deceleration and the final snap to
// the nearest item. It is advanced one frame at a time by Step and reports
// the settle point exactly once per motion.
type Momentum struct {
	cfg      MomentumConfig
	spring   harmonica.Spring
	frame    float64
	keep     float64 // velocity multiplier per frame
	offset   float64
	velocity float64
	target   float64
	phase    phase
}

// NewMomentum creates an idle model resting at offset.
func NewMomentum(cfg MomentumConfig, offset float64) *Momentum {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	frame := harmonica.FPS(cfg.FPS)
	m := &Momentum{
		cfg:    cfg,
		spring: harmonica.NewSpring(frame, cfg.Frequency, cfg.Damping),
		frame:  frame,
		keep:   math.Pow(1-cfg.Decay, frame),
	}
	m.offset = m.clamp(offset)
	m.target = m.offset
	return m
}

// MaxOffset is the largest reachable offset.
func (m *Momentum) MaxOffset() float64 {
	if m.cfg.Items <= 1 {
		return 0
	}
	return float64(m.cfg.Items-1) * m.cfg.ItemExtent
}

func (m *Momentum) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, m.MaxOffset()))
}

// Offset returns the current scroll offset.
func (m *Momentum) Offset() float64 { return m.offset }

// Velocity returns the current speed in units per second.
func (m *Momentum) Velocity() float64 { return m.velocity }

// Active reports whether frames still need to be stepped.
func (m *Momentum) Active() bool {
	return m.phase == phaseCoasting || m.phase == phaseSnapping
}

// Dragging reports whether a direct drag is in progress.
func (m *Momentum) Dragging() bool { return m.phase == phaseDragging }

// Drag moves the offset directly, as when a finger holds the list. Any
// coasting or snapping is interrupted.
func (m *Momentum) Drag(delta float64) float64 {
	m.phase = phaseDragging
	m.velocity = 0
	m.offset = m.clamp(m.offset + delta)
	return m.offset
}

// Release ends a drag, handing the list over to momentum with the given
// release velocity.
func (m *Momentum) Release(velocity float64) {
	m.velocity = velocity
	m.phase = phaseCoasting
}

// Impulse adds velocity, as a wheel notch does, and starts coasting.
func (m *Momentum) Impulse(velocity float64) {
	if m.phase == phaseSnapping {
		m.velocity = 0
	}
	m.velocity += velocity
	m.phase = phaseCoasting
}

// Jump places the list at offset and stops all motion. It does not count
// as a settle.
func (m *Momentum) Jump(offset float64) {
	m.offset = m.clamp(offset)
	m.target = m.offset
	m.velocity = 0
	m.phase = phaseIdle
}

// Step advances one frame. settled is true on the single frame the motion
// comes to rest on an item position.
func (m *Momentum) Step() (offset float64, settled bool) {
	switch m.phase {
	case phaseCoasting:
		m.velocity *= m.keep
		next := m.offset + m.velocity*m.frame
		m.offset = m.clamp(next)
		if m.offset != next {
			m.velocity = 0
		}
		if math.Abs(m.velocity) < m.cfg.RestVelocity {
			m.target = m.nearest(m.offset)
			m.phase = phaseSnapping
		}
	case phaseSnapping:
		m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, m.target)
		if math.Abs(m.offset-m.target) < 1e-3 && math.Abs(m.velocity) < 1e-2 {
			m.offset = m.target
			m.velocity = 0
			m.phase = phaseIdle
			return m.offset, true
		}
	}
	return m.offset, false
}

func (m *Momentum) nearest(offset float64) float64 {
	if m.cfg.ItemExtent <= 0 {
		return 0
	}
	return m.clamp(math.Round(offset/m.cfg.ItemExtent) * m.cfg.ItemExtent)
}
