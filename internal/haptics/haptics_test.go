package haptics

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIntensityString(t *testing.T) {
	assert.Equal(t, "light", Light.String())
	assert.Equal(t, "medium", Medium.String())
	assert.Equal(t, "heavy", Heavy.String())
	assert.Equal(t, "unknown", Intensity(9).String())
}

func TestRecorderConcurrent(t *testing.T) {
	var rec Recorder
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = rec.Pulse(Light)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, rec.Count())

	rec.Reset()
	assert.Empty(t, rec.Pulses())
}

func TestLoggedReportsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	boom := errors.New("no actuator")
	p := Logged{Next: Func(func(Intensity) error { return boom }), Logger: zap.New(core)}

	err := p.Pulse(Medium)
	assert.ErrorIs(t, err, boom)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "pulse failed", logs.All()[0].Message)
}

func TestThrottle(t *testing.T) {
	var rec Recorder
	clock := time.Unix(0, 0)
	th := NewThrottle(&rec, 20*time.Millisecond)
	th.now = func() time.Time { return clock }

	require.NoError(t, th.Pulse(Light))
	clock = clock.Add(5 * time.Millisecond)
	require.NoError(t, th.Pulse(Light)) // dropped
	clock = clock.Add(5 * time.Millisecond)
	require.NoError(t, th.Pulse(Medium)) // stronger, delivered
	clock = clock.Add(30 * time.Millisecond)
	require.NoError(t, th.Pulse(Light))

	assert.Equal(t, []Intensity{Light, Medium, Light}, rec.Pulses())
}

func TestBell(t *testing.T) {
	t.Run("rings at or above min", func(t *testing.T) {
		var buf bytes.Buffer
		b := NewBell(&buf, Medium)
		require.NoError(t, b.Pulse(Light))
		require.NoError(t, b.Pulse(Medium))
		require.NoError(t, b.Pulse(Heavy))
		assert.Equal(t, "\a\a", buf.String())
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out"))
		require.NoError(t, err)
		defer f.Close()

		b := NewBell(f, Light)
		assert.ErrorIs(t, b.Pulse(Light), ErrNoTerminal)
	})
}

func TestFanoutDeliversToAll(t *testing.T) {
	var a, b Recorder
	boom := errors.New("unplugged")
	f := Fanout{&a, Func(func(Intensity) error { return boom }), &b}

	err := f.Pulse(Heavy)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []Intensity{Heavy}, a.Pulses())
	assert.Equal(t, []Intensity{Heavy}, b.Pulses(), "a failing pulser does not stop the rest")
	assert.NoError(t, Fanout{}.Pulse(Light))
}
