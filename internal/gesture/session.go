// Package gesture holds the ephemeral side of drag and scroll input: the
// per-interaction session, the sampling goroutine that runs numeric
// derivation off the logic loop, and the scroll momentum model.
package gesture

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session captures one drag or scroll interaction. It exists from gesture
// start to gesture end and is never reused.
type Session struct {
	ID        uuid.UUID
	Reference float64 // offset captured at start, in track or scroll units
	Started   time.Time
}

// NewSession starts a session anchored at reference.
func NewSession(reference float64) *Session {
	return &Session{
		ID:        uuid.New(),
		Reference: reference,
		Started:   time.Now(),
	}
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.Started)
}

// Fields returns log fields identifying the session.
func (s *Session) Fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("session", s.ID),
		zap.Float64("reference", s.Reference),
	}
}
