// Package engine is the HTTP client for the remote interview engine.
// The engine owns question generation, scoring, and phase advancement; this
// client only consumes its surface and never reimplements its logic.
package engine

import "fmt"

// initRequest is the body of POST /api/sessions/init.
type initRequest struct {
	RoleID string `json:"role_id"`
}

// initResponse is the body returned by POST /api/sessions/init.
type initResponse struct {
	SessionID string `json:"session_id"`
}

// sessionRequest is the body of the start and end endpoints.
type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// startResponse carries the engine's first assistant message.
type startResponse struct {
	Response string `json:"response"`
}

// chatRequest is the body of the send and stream endpoints.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// sendResponse is the body returned by POST /api/chat/send. Exactly one of
// Response or Error is meaningful; InterviewCompleted may accompany Response.
type sendResponse struct {
	Response           string `json:"response"`
	InterviewCompleted bool   `json:"interview_completed"`
	Error              string `json:"error"`
}

// endResponse optionally carries a closing assistant message.
type endResponse struct {
	Response string `json:"response"`
}

// SendResult is the outcome of an atomic send.
type SendResult struct {
	Response string
	// InterviewCompleted is the inline completion flag: the engine decided
	// this exchange finished the interview.
	InterviewCompleted bool
}

// AppError is an application-level error payload returned by the engine with
// an otherwise successful response. It is non-fatal: the failed attempt's
// response is simply not appended to the transcript.
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("engine: %s", e.Message)
}
