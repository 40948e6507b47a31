package interview

// State is the arbiter's view of the session lifecycle.
type State int

const (
	// StateActive means the session accepts interactions.
	StateActive State = iota
	// StateEnding means a manual terminate request is in flight.
	StateEnding
	// StateEnded is terminal.
	StateEnded
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateEnding:
		return "ending"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Trigger identifies which signal requested the transition to Ended.
// Three independent signals exist and may race; the arbiter lets the first
// one win and makes the rest no-ops.
type Trigger int

const (
	// TriggerManual is an explicit user termination, confirmed by the
	// engine's response to the terminate request.
	TriggerManual Trigger = iota
	// TriggerInline is a completion flag carried inline on a non-streamed
	// send response.
	TriggerInline
	// TriggerPolled is a status refresh reporting the interview completed.
	TriggerPolled
)

// String returns the trigger name used in log events.
func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerInline:
		return "inline"
	case TriggerPolled:
		return "polled"
	default:
		return "unknown"
	}
}

// Arbiter is the single authority over the Active -> Ended transition.
// All three triggers funnel through Resolve; whichever fires first takes the
// transition and every later firing is a no-op.
type Arbiter struct {
	state State
	cause Trigger
}

// NewArbiter creates an Arbiter in the Active state.
func NewArbiter() *Arbiter {
	return &Arbiter{state: StateActive}
}

// State returns the current lifecycle state.
func (a *Arbiter) State() State {
	return a.state
}

// RequestEnd moves Active to Ending, marking a manual terminate request in
// flight. Returns false if the session is already Ending or Ended, in which
// case no terminate request should be issued.
func (a *Arbiter) RequestEnd() bool {
	if a.state != StateActive {
		return false
	}
	a.state = StateEnding
	return true
}

// CancelEnd reverts Ending to Active after a failed terminate request, so
// the user can retry. It is a no-op in any other state.
func (a *Arbiter) CancelEnd() {
	if a.state == StateEnding {
		a.state = StateActive
	}
}

// Resolve takes the transition to Ended on behalf of the given trigger.
// It returns true only for the first call to reach the terminal state; the
// caller performs first-transition side effects (closing-message append,
// final-time capture) exactly when Resolve returns true.
func (a *Arbiter) Resolve(trigger Trigger) bool {
	if a.state == StateEnded {
		return false
	}
	a.state = StateEnded
	a.cause = trigger
	return true
}

// Cause returns the trigger that won the transition. Meaningful only once
// State is StateEnded.
func (a *Arbiter) Cause() Trigger {
	return a.cause
}
