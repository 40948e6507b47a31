package interview

// Ledger is the append-only ordered message history for one session.
// Entries are immutable once appended, with a single exception: while a
// response stream is in flight, the most recent assistant entry is replaced
// wholesale on each chunk so the visible transcript grows in place instead
// of spawning a new bubble per chunk. The ledger never reorders or deletes.
type Ledger struct {
	entries   []Message
	streaming bool // last entry is an assistant entry owned by an in-flight stream
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds one immutable entry and returns its index. Appending through
// this path closes any streaming ownership of the previous entry.
func (l *Ledger) Append(role, content string) int {
	l.streaming = false
	l.entries = append(l.entries, Message{Role: role, Content: content})
	return len(l.entries) - 1
}

// AppendOrExtendAssistant folds streamed text into the transcript. If the
// last entry is an assistant entry under active streaming, its content is
// replaced wholesale with content (a monotonically growing prefix);
// otherwise a new assistant entry is appended and marked as stream-owned.
func (l *Ledger) AppendOrExtendAssistant(content string) {
	if l.streaming && len(l.entries) > 0 && l.entries[len(l.entries)-1].Role == RoleAssistant {
		l.entries[len(l.entries)-1].Content = content
		return
	}
	l.entries = append(l.entries, Message{Role: RoleAssistant, Content: content})
	l.streaming = true
}

// FinishStream releases stream ownership of the trailing assistant entry.
// Called when the stream ends, successfully or not; the entry becomes
// immutable like every other.
func (l *Ledger) FinishStream() {
	l.streaming = false
}

// Replace swaps the full contents of the ledger. Used once, when loading
// the history of a resumed session.
func (l *Ledger) Replace(msgs []Message) {
	l.streaming = false
	l.entries = append([]Message(nil), msgs...)
}

// Snapshot returns an immutable ordered copy of the transcript for
// rendering. Mutating the returned slice does not affect the ledger.
func (l *Ledger) Snapshot() []Message {
	return append([]Message(nil), l.entries...)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}
