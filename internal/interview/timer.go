package interview

import "time"

// Timer derives elapsed time from a local anchor timestamp. The anchor is
// set once, at the moment the session is first confirmed active; once the
// session ends the last computed value is frozen and surfaced as the final
// time.
//
// For a resumed session the anchor is the moment of resumption, not the true
// original start: elapsed time measures the current client attachment, not
// cumulative session age. This mirrors the engine's reference client and is
// a documented limitation, not a bug.
type Timer struct {
	anchor time.Time
	final  time.Duration
	frozen bool
}

// Start sets the anchor. Only the first call has any effect.
func (t *Timer) Start(now time.Time) {
	if t.anchor.IsZero() {
		t.anchor = now
	}
}

// Started reports whether the anchor has been set.
func (t *Timer) Started() bool {
	return !t.anchor.IsZero()
}

// Elapsed returns the time since the anchor, truncated to whole seconds.
// Before Start it returns zero; after Freeze it returns the frozen final
// value regardless of now.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.frozen {
		return t.final
	}
	if t.anchor.IsZero() {
		return 0
	}
	return now.Sub(t.anchor).Truncate(time.Second)
}

// Freeze captures the final elapsed value. Idempotent: later calls return
// the value captured by the first and never overwrite it.
func (t *Timer) Freeze(now time.Time) time.Duration {
	if !t.frozen {
		t.final = t.Elapsed(now)
		t.frozen = true
	}
	return t.final
}

// Frozen reports whether the final time has been captured.
func (t *Timer) Frozen() bool {
	return t.frozen
}
