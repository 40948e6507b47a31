package tui

import (
	"time"

	"github.com/intervu-dev/intervu/internal/engine"
	"github.com/intervu-dev/intervu/internal/interview"
)

// Every message carrying the result of an asynchronous engine call includes
// the session handle it belongs to. The update loop drops any result whose
// handle does not match the live session, so a teardown followed by a new
// session can never apply a stale result.

// SessionInitMsg carries the engine-assigned session handle for a new
// session, or the error that prevented its creation.
type SessionInitMsg struct {
	SessionID string
	RoleID    string
	Err       error
}

// HistoryLoadedMsg carries the recorded transcript for a session.
type HistoryLoadedMsg struct {
	SessionID string
	Messages  []interview.Message
	Err       error
}

// StatusMsg carries a fresh engine status snapshot.
type StatusMsg struct {
	SessionID string
	Status    *interview.Status
	Err       error
}

// StartedMsg carries the engine's first assistant message after an explicit
// interview start.
type StartedMsg struct {
	SessionID string
	First     string
	Err       error
}

// SendResultMsg carries the outcome of an atomic (non-streamed) send.
type SendResultMsg struct {
	SessionID string
	Result    *engine.SendResult
	Err       error
}

// StreamOpenedMsg carries a live response assembler for a streamed send, or
// the error that prevented the stream from opening.
type StreamOpenedMsg struct {
	SessionID string
	Assembler *interview.Assembler
	Err       error
}

// StreamChunkMsg reports progress of an in-flight response stream. One chunk
// message is delivered per pull; Done marks exhaustion of the stream. On a
// mid-stream error the partial text already folded stays in place.
type StreamChunkMsg struct {
	SessionID string
	Text      string
	Done      bool
	Err       error
}

// EndedMsg carries the engine's confirmation of a manual terminate request,
// with its optional closing message.
type EndedMsg struct {
	SessionID string
	Closing   string
	Err       error
}

// ArchiveSavedMsg reports the outcome of archiving a finished transcript.
type ArchiveSavedMsg struct {
	SessionID string
	RecordID  string
	Err       error
}

// TimerTickMsg drives the elapsed-time display. It is re-issued only while
// the session is started and not ended.
type TimerTickMsg struct {
	Time time.Time
}

// CtrlCResetMsg clears the Ctrl+C confirmation state after its timeout.
type CtrlCResetMsg struct{}

// EscResetMsg clears the Esc confirmation state after its timeout.
type EscResetMsg struct{}
