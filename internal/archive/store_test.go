package archive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intervu-dev/intervu/internal/interview"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(Record{
		SessionID:     "sess-42",
		RoleID:        "copywriter",
		Phase:         interview.PhaseCompleted,
		QuestionCount: 19,
		Cause:         "inline",
		ElapsedSec:    754,
		Messages: []interview.Message{
			{Role: interview.RoleAssistant, Content: "Welcome!"},
			{Role: interview.RoleUser, Content: "Hi, ready to start."},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := store.Get(saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sess-42", got.SessionID)
	assert.Equal(t, interview.PhaseCompleted, got.Phase)
	assert.Equal(t, 754, got.ElapsedSec)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, interview.RoleUser, got.Messages[1].Role)
	assert.Equal(t, "Hi, ready to start.", got.Messages[1].Content)
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Get("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestListNewestFirstWithMessageCounts(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(Record{
		SessionID: "sess-1",
		RoleID:    "backend",
		Phase:     interview.PhaseCompleted,
		Cause:     "polled",
		Messages: []interview.Message{
			{Role: interview.RoleAssistant, Content: "Q1"},
		},
	})
	require.NoError(t, err)

	second, err := store.Save(Record{
		SessionID: "sess-2",
		RoleID:    "copywriter",
		Phase:     interview.PhaseHard,
		Cause:     "manual",
		Messages: []interview.Message{
			{Role: interview.RoleAssistant, Content: "Q1"},
			{Role: interview.RoleUser, Content: "A1"},
			{Role: interview.RoleAssistant, Content: "Q2"},
		},
	})
	require.NoError(t, err)

	summaries, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// created_at resolution can collapse to the same instant, so accept
	// either order and check by id.
	byID := map[string]Summary{}
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	assert.Equal(t, 1, byID[first.ID].MessageCount)
	assert.Equal(t, 3, byID[second.ID].MessageCount)
	assert.Equal(t, "manual", byID[second.ID].Cause)
}

func TestListHonorsLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.Save(Record{SessionID: "sess", RoleID: "r", Phase: interview.PhaseEasy, Cause: "manual"})
		require.NoError(t, err)
	}

	summaries, err := store.List(3)
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}
