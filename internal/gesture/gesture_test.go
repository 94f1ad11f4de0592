package gesture

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewSession(t *testing.T) {
	a := NewSession(12.5)
	b := NewSession(0)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 12.5, a.Reference)
	assert.GreaterOrEqual(t, a.Elapsed(), time.Duration(0))
	assert.Len(t, a.Fields(), 2)
}

func TestSamplerRunsInOrder(t *testing.T) {
	s := NewSampler(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Submit(ctx, func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	s.Close()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 50)
	for i := range got {
		assert.Equal(t, i, got[i])
	}
}

func TestSamplerClosedRejects(t *testing.T) {
	s := NewSampler(0)
	s.Close()
	s.Close()

	assert.ErrorIs(t, s.Submit(context.Background(), func() {}), ErrSamplerClosed)
	assert.False(t, s.TrySubmit(func() {}))
	assert.NoError(t, s.Run(context.Background()))
}

func TestSamplerTrySubmitFull(t *testing.T) {
	s := NewSampler(1)
	assert.True(t, s.TrySubmit(func() {}))
	assert.False(t, s.TrySubmit(func() {}))
	s.Close()
	require.NoError(t, s.Run(context.Background()))
}

func TestSamplerSubmitHonoursContext(t *testing.T) {
	s := NewSampler(1)
	require.True(t, s.TrySubmit(func() {}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Submit(ctx, func() {}), context.DeadlineExceeded)
	s.Close()
	require.NoError(t, s.Run(context.Background()))
}

func TestSamplerRunStopsOnCancel(t *testing.T) {
	s := NewSampler(1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func runUntilSettled(t *testing.T, m *Momentum) (float64, int) {
	t.Helper()
	settles := 0
	var offset float64
	for i := 0; i < 60*10; i++ {
		var settled bool
		offset, settled = m.Step()
		if settled {
			settles++
		}
		if !m.Active() {
			break
		}
	}
	require.False(t, m.Active(), "momentum never came to rest")
	return offset, settles
}

func TestMomentumSettlesOnItem(t *testing.T) {
	m := NewMomentum(DefaultMomentumConfig(20, 1), 0)
	m.Impulse(12)

	offset, settles := runUntilSettled(t, m)
	assert.Equal(t, 1, settles)
	assert.Greater(t, offset, 0.0)
	assert.Equal(t, math.Round(offset), offset, "rest offset must sit on an item")

	// Further frames never settle again.
	_, settled := m.Step()
	assert.False(t, settled)
}

func TestMomentumClampsAtEnds(t *testing.T) {
	m := NewMomentum(DefaultMomentumConfig(5, 2), 0)
	m.Impulse(-50)
	offset, _ := runUntilSettled(t, m)
	assert.Equal(t, 0.0, offset)

	m.Impulse(1000)
	offset, _ = runUntilSettled(t, m)
	assert.Equal(t, 8.0, offset)
	assert.Equal(t, 8.0, m.MaxOffset())
}

func TestMomentumDragAndRelease(t *testing.T) {
	m := NewMomentum(DefaultMomentumConfig(10, 1), 3)
	assert.InDelta(t, 3.4, m.Drag(0.4), 1e-9)
	assert.True(t, m.Dragging())
	assert.False(t, m.Active())

	_, settled := m.Step()
	assert.False(t, settled, "dragging never settles")

	m.Release(0)
	offset, settles := runUntilSettled(t, m)
	assert.Equal(t, 1, settles)
	assert.Equal(t, 3.0, offset)
}

func TestMomentumJumpIsNotASettle(t *testing.T) {
	m := NewMomentum(DefaultMomentumConfig(10, 1), 0)
	m.Jump(42)
	assert.Equal(t, 9.0, m.Offset())
	assert.False(t, m.Active())
	_, settled := m.Step()
	assert.False(t, settled)
}
