// Package interview implements the client-side state machine for one
// interview session: identity and lifecycle flags, the message ledger,
// streaming-response assembly, status synchronization, timer derivation,
// and termination arbitration.
package interview

// Message is a single entry in the conversation transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles. The engine only ever produces these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session holds the opaque session handle and the started/ended lifecycle
// flags. It is a pure flag holder: every other component consults it before
// allowing a server interaction, and only Begin and the termination arbiter
// mutate it.
type Session struct {
	handle  string
	started bool
	ended   bool
}

// NewSession creates a Session for the given engine-assigned handle.
func NewSession(handle string) *Session {
	return &Session{handle: handle}
}

// Handle returns the opaque session identifier assigned by the engine.
func (s *Session) Handle() string {
	return s.handle
}

// Begin marks the session as started. It is idempotent: only the first call
// has any effect.
func (s *Session) Begin() {
	s.started = true
}

// Started reports whether at least one exchange has occurred (or an explicit
// start action was taken).
func (s *Session) Started() bool {
	return s.started
}

// Active reports whether the session is started and not yet ended.
func (s *Session) Active() bool {
	return s.started && !s.ended
}

// Ended reports whether the session has reached its terminal state.
func (s *Session) Ended() bool {
	return s.ended
}

// end flips the terminal flag. Only the termination arbiter calls this.
func (s *Session) end() {
	s.ended = true
}
