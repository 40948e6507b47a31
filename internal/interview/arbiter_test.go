package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArbiterFirstTriggerWins(t *testing.T) {
	a := NewArbiter()
	assert.Equal(t, StateActive, a.State())

	assert.True(t, a.Resolve(TriggerInline))
	assert.Equal(t, StateEnded, a.State())
	assert.Equal(t, TriggerInline, a.Cause())

	// Every later trigger is a no-op and must not rewrite the cause.
	assert.False(t, a.Resolve(TriggerManual))
	assert.False(t, a.Resolve(TriggerPolled))
	assert.Equal(t, TriggerInline, a.Cause())
}

func TestArbiterRequestEndOnlyFromActive(t *testing.T) {
	a := NewArbiter()
	assert.True(t, a.RequestEnd())
	assert.Equal(t, StateEnding, a.State())

	// A second manual request while one is in flight must not issue again.
	assert.False(t, a.RequestEnd())

	// The in-flight manual end can still resolve.
	assert.True(t, a.Resolve(TriggerManual))
	assert.False(t, a.RequestEnd())
}

func TestArbiterPolledCompletionBeatsPendingManualEnd(t *testing.T) {
	a := NewArbiter()
	assert.True(t, a.RequestEnd())

	// A status poll reports completion while the terminate request is in
	// flight; the poll wins and the manual resolution becomes a no-op.
	assert.True(t, a.Resolve(TriggerPolled))
	assert.False(t, a.Resolve(TriggerManual))
	assert.Equal(t, TriggerPolled, a.Cause())
}

func TestArbiterCancelEndAllowsRetry(t *testing.T) {
	a := NewArbiter()
	assert.True(t, a.RequestEnd())

	// The terminate request failed; the session must return to a retryable
	// state.
	a.CancelEnd()
	assert.Equal(t, StateActive, a.State())
	assert.True(t, a.RequestEnd())

	// Once ended, CancelEnd is a no-op.
	assert.True(t, a.Resolve(TriggerManual))
	a.CancelEnd()
	assert.Equal(t, StateEnded, a.State())
}

func TestStateAndTriggerNames(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "ending", StateEnding.String())
	assert.Equal(t, "ended", StateEnded.String())
	assert.Equal(t, "manual", TriggerManual.String())
	assert.Equal(t, "inline", TriggerInline.String())
	assert.Equal(t, "polled", TriggerPolled.String())
}
