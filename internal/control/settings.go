package control

import (
	"adaptui/internal/dispatch"
	"adaptui/internal/haptics"
	"adaptui/internal/logging"
	"adaptui/internal/motion"

	"go.uber.org/zap"
)

// Setting customizes a control at construction.
type Setting func(*settings)

type settings struct {
	dispatch dispatch.Dispatcher
	pulser   haptics.Pulser
	log      *zap.Logger
	pulse    motion.SpringConfig
	settle   motion.SpringConfig
}

func newSettings(opts []Setting) settings {
	s := settings{
		dispatch: dispatch.Immediate{},
		pulser:   haptics.Nop{},
		pulse:    motion.DefaultSpring(),
		settle:   motion.SettleSpring(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logging.Get(logging.CategoryControl)
	}
	return s
}

// WithDispatcher routes callbacks, pulses and visible-state writes
// through d. The default runs them inline.
func WithDispatcher(d dispatch.Dispatcher) Setting {
	return func(s *settings) {
		if d != nil {
			s.dispatch = d
		}
	}
}

// WithPulser sets the feedback service. The default discards pulses.
func WithPulser(p haptics.Pulser) Setting {
	return func(s *settings) {
		if p != nil {
			s.pulser = p
		}
	}
}

// WithLogger overrides the control logger.
func WithLogger(l *zap.Logger) Setting {
	return func(s *settings) { s.log = l }
}

// WithSprings overrides the pulse and settle spring tuning.
func WithSprings(pulse, settle motion.SpringConfig) Setting {
	return func(s *settings) {
		s.pulse = pulse
		s.settle = settle
	}
}

func (s *settings) post(fn func()) {
	s.dispatch.Post(fn)
}

// buzz delivers one pulse. Failures never reach the commit path.
func (s *settings) buzz(i haptics.Intensity) {
	if err := s.pulser.Pulse(i); err != nil {
		s.log.Debug("haptic pulse failed", zap.Stringer("intensity", i), zap.Error(err))
	}
}
