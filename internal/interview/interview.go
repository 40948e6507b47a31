package interview

import "time"

// Interview is the session client state machine. It composes the lifecycle
// flags, the message ledger, the timer, the status cache, and the
// termination arbiter behind one façade driven from the single-threaded
// event loop. It performs no I/O of its own.
type Interview struct {
	session *Session
	ledger  *Ledger
	timer   *Timer
	arbiter *Arbiter
	status  *Status

	now func() time.Time
}

// New creates the state machine for an engine-assigned session handle.
func New(handle string) *Interview {
	return &Interview{
		session: NewSession(handle),
		ledger:  NewLedger(),
		timer:   &Timer{},
		arbiter: NewArbiter(),
		now:     time.Now,
	}
}

// NewWithClock creates an Interview with an injected clock for tests.
func NewWithClock(handle string, now func() time.Time) *Interview {
	iv := New(handle)
	iv.now = now
	return iv
}

// Handle returns the opaque session identifier.
func (iv *Interview) Handle() string {
	return iv.session.Handle()
}

// Started reports whether the session has had at least one exchange or an
// explicit start.
func (iv *Interview) Started() bool {
	return iv.session.Started()
}

// Active reports whether the session is started and not ended.
func (iv *Interview) Active() bool {
	return iv.session.Active()
}

// Ended reports whether the session has reached its terminal state.
func (iv *Interview) Ended() bool {
	return iv.session.Ended()
}

// CanSend reports whether a further send may be issued. Once the session is
// ended (by any trigger, including a polled interview_completed) no send is
// ever issued again.
func (iv *Interview) CanSend() bool {
	return !iv.session.Ended() && iv.arbiter.State() == StateActive
}

// LoadHistory replaces the ledger with a previously recorded transcript.
// A non-empty history confirms the session active and anchors the timer at
// the moment of resumption; an empty one leaves the session waiting for an
// explicit start.
func (iv *Interview) LoadHistory(msgs []Message) {
	iv.ledger.Replace(msgs)
	if len(msgs) > 0 {
		iv.session.Begin()
		iv.timer.Start(iv.now())
	}
}

// Begin records an explicit start action: the session becomes active, the
// timer anchors, and the engine's first assistant message is appended.
func (iv *Interview) Begin(first string) {
	iv.session.Begin()
	iv.timer.Start(iv.now())
	if first != "" {
		iv.ledger.Append(RoleAssistant, first)
	}
}

// AppendUser appends the user's outbound message. The first send also flips
// the session to started and anchors the timer.
func (iv *Interview) AppendUser(content string) int {
	iv.session.Begin()
	iv.timer.Start(iv.now())
	return iv.ledger.Append(RoleUser, content)
}

// AppendAssistant appends an immutable assistant entry (atomic responses and
// closing messages).
func (iv *Interview) AppendAssistant(content string) int {
	return iv.ledger.Append(RoleAssistant, content)
}

// ExtendAssistant folds streamed text into the trailing assistant entry.
func (iv *Interview) ExtendAssistant(content string) {
	iv.ledger.AppendOrExtendAssistant(content)
}

// FinishStream releases stream ownership of the trailing assistant entry.
func (iv *Interview) FinishStream() {
	iv.ledger.FinishStream()
}

// Snapshot returns an immutable copy of the transcript.
func (iv *Interview) Snapshot() []Message {
	return iv.ledger.Snapshot()
}

// Messages returns the number of ledger entries.
func (iv *Interview) Messages() int {
	return iv.ledger.Len()
}

// ApplyStatus replaces the cached status wholesale with the fetched value
// and feeds the polled-completion trigger to the arbiter. It returns true
// when this particular refresh is the one that ended the session.
func (iv *Interview) ApplyStatus(st Status) bool {
	iv.status = &st
	if st.InterviewCompleted {
		return iv.Resolve(TriggerPolled)
	}
	return false
}

// Status returns the last cached engine status, or nil before the first
// successful fetch. The cache is stale between fetches.
func (iv *Interview) Status() *Status {
	return iv.status
}

// RequestEnd marks a manual terminate request in flight. Returns false if
// the session is already ending or ended, in which case no request should
// be issued.
func (iv *Interview) RequestEnd() bool {
	return iv.arbiter.RequestEnd()
}

// CancelEnd reverts a failed manual terminate request so it can be retried.
func (iv *Interview) CancelEnd() {
	iv.arbiter.CancelEnd()
}

// Resolve routes a termination trigger through the arbiter. On the first
// transition to Ended it flips the session flag and freezes the final
// elapsed time; every later call is a no-op returning false.
func (iv *Interview) Resolve(trigger Trigger) bool {
	if !iv.arbiter.Resolve(trigger) {
		return false
	}
	iv.session.end()
	iv.timer.Freeze(iv.now())
	return true
}

// EndCause returns the trigger that ended the session. Meaningful only once
// Ended reports true.
func (iv *Interview) EndCause() Trigger {
	return iv.arbiter.Cause()
}

// Elapsed returns the current derived elapsed time: zero before activation,
// live while active, frozen once ended.
func (iv *Interview) Elapsed() time.Duration {
	return iv.timer.Elapsed(iv.now())
}

// FinalElapsed returns the frozen final time and whether it has been
// captured yet.
func (iv *Interview) FinalElapsed() (time.Duration, bool) {
	if !iv.timer.Frozen() {
		return 0, false
	}
	return iv.timer.Elapsed(iv.now()), true
}
