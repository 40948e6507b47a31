package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerZeroBeforeStart(t *testing.T) {
	var tm Timer
	assert.False(t, tm.Started())
	assert.Equal(t, time.Duration(0), tm.Elapsed(time.Now()))
}

func TestTimerElapsedFromAnchor(t *testing.T) {
	var tm Timer
	t0 := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	tm.Start(t0)

	assert.Equal(t, 42*time.Second, tm.Elapsed(t0.Add(42*time.Second)))
	assert.Equal(t, 90*time.Second, tm.Elapsed(t0.Add(90*time.Second+300*time.Millisecond)))
}

func TestTimerStartIsIdempotent(t *testing.T) {
	var tm Timer
	t0 := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	tm.Start(t0)
	tm.Start(t0.Add(30 * time.Second)) // later start must not move the anchor

	assert.Equal(t, time.Minute, tm.Elapsed(t0.Add(time.Minute)))
}

func TestTimerFreezeCapturesFirstValueOnly(t *testing.T) {
	var tm Timer
	t0 := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	tm.Start(t0)

	final := tm.Freeze(t0.Add(17 * time.Second))
	assert.Equal(t, 17*time.Second, final)

	// A later freeze (a second termination trigger) must not overwrite it.
	assert.Equal(t, 17*time.Second, tm.Freeze(t0.Add(99*time.Second)))
	assert.Equal(t, 17*time.Second, tm.Elapsed(t0.Add(5*time.Minute)))
	assert.True(t, tm.Frozen())
}
