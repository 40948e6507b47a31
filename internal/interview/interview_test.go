package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a clock function and a way to advance it.
func fakeClock(start time.Time) (now func() time.Time, advance func(time.Duration)) {
	current := start
	return func() time.Time { return current },
		func(d time.Duration) { current = current.Add(d) }
}

func newTestInterview(t *testing.T) (*Interview, func(time.Duration)) {
	t.Helper()
	now, advance := fakeClock(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC))
	return NewWithClock("sess-1", now), advance
}

func TestNonEmptyHistoryActivatesWithoutStart(t *testing.T) {
	iv, advance := newTestInterview(t)
	iv.LoadHistory([]Message{
		{Role: RoleAssistant, Content: "Welcome back. Question 3:"},
	})

	assert.True(t, iv.Active())
	advance(10 * time.Second)
	assert.Equal(t, 10*time.Second, iv.Elapsed())
}

func TestEmptyHistoryRequiresExplicitStart(t *testing.T) {
	iv, advance := newTestInterview(t)
	iv.LoadHistory(nil)
	assert.False(t, iv.Started())
	advance(time.Minute)
	assert.Equal(t, time.Duration(0), iv.Elapsed())

	iv.Begin("Hello! Tell me about yourself.")
	assert.True(t, iv.Active())
	require.Len(t, iv.Snapshot(), 1)
	assert.Equal(t, RoleAssistant, iv.Snapshot()[0].Role)
}

func TestFirstSendActivatesSession(t *testing.T) {
	iv, _ := newTestInterview(t)
	assert.False(t, iv.Started())
	iv.AppendUser("Hello")
	assert.True(t, iv.Active())
}

func TestApplyStatusReplacesCacheWholesale(t *testing.T) {
	iv, _ := newTestInterview(t)
	iv.Begin("Hi")

	ended := iv.ApplyStatus(Status{
		QuestionCount:      3,
		CurrentPhase:       PhaseEasy,
		TotalQuestions:     19,
		ProgressPercentage: 15.8,
	})
	assert.False(t, ended)
	require.NotNil(t, iv.Status())
	assert.Equal(t, PhaseEasy, iv.Status().CurrentPhase)

	// A later fetch replaces every field, never merges.
	iv.ApplyStatus(Status{QuestionCount: 4, CurrentPhase: PhaseModerate, TotalQuestions: 19})
	assert.Equal(t, PhaseModerate, iv.Status().CurrentPhase)
	assert.Equal(t, 0.0, iv.Status().ProgressPercentage)
}

func TestPolledCompletionEndsSessionExactlyOnce(t *testing.T) {
	iv, advance := newTestInterview(t)
	iv.Begin("Hi")
	advance(30 * time.Second)

	completed := Status{InterviewCompleted: true, CurrentPhase: PhaseCompleted}
	assert.True(t, iv.ApplyStatus(completed))
	assert.True(t, iv.Ended())
	assert.False(t, iv.CanSend())

	// Redundant refreshes reporting the same completion are no-ops.
	assert.False(t, iv.ApplyStatus(completed))

	final, ok := iv.FinalElapsed()
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, final)
}

func TestFinalElapsedFrozenAtFirstTransition(t *testing.T) {
	iv, advance := newTestInterview(t)
	iv.Begin("Hi")
	advance(45 * time.Second)

	require.True(t, iv.Resolve(TriggerInline))
	advance(2 * time.Minute)

	// A straggling trigger after Ended must not re-record the final time.
	assert.False(t, iv.Resolve(TriggerPolled))
	final, ok := iv.FinalElapsed()
	require.True(t, ok)
	assert.Equal(t, 45*time.Second, final)
	assert.Equal(t, 45*time.Second, iv.Elapsed())
}

func TestManualAndPolledRaceAppendsOneClosingMessage(t *testing.T) {
	iv, _ := newTestInterview(t)
	iv.Begin("Hi")
	before := iv.Messages()

	// User requests termination; while the terminate request is in flight a
	// status poll reports completion and wins the transition.
	require.True(t, iv.RequestEnd())
	require.True(t, iv.ApplyStatus(Status{InterviewCompleted: true}))

	// The terminate response arrives late with a closing message. The
	// append is gated on Resolve, so it must not happen.
	if iv.Resolve(TriggerManual) {
		iv.AppendAssistant("Thanks for your time!")
	}
	assert.Equal(t, before, iv.Messages())
	assert.Equal(t, TriggerPolled, iv.EndCause())
}

func TestManualEndAppendsClosingMessageWhenItWins(t *testing.T) {
	iv, _ := newTestInterview(t)
	iv.Begin("Hi")

	require.True(t, iv.RequestEnd())
	require.True(t, iv.Resolve(TriggerManual))
	iv.AppendAssistant("Thanks for your time!")

	msgs := iv.Snapshot()
	assert.Equal(t, "Thanks for your time!", msgs[len(msgs)-1].Content)
	assert.Equal(t, TriggerManual, iv.EndCause())
}

func TestInlineCompletionRejectsFurtherSends(t *testing.T) {
	iv, _ := newTestInterview(t)
	iv.AppendUser("my final answer")
	iv.AppendAssistant("Final answer noted.")
	require.True(t, iv.Resolve(TriggerInline))

	assert.False(t, iv.CanSend())
	assert.True(t, iv.Ended())
}
