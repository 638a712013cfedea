package engine

import "time"

// DefaultFadeWindow is how long a resolved entity stays visible (and stays
// in the ledger) before it is removed.
const DefaultFadeWindow = 500 * time.Millisecond

// Ledger records which entities are currently being processed after an
// accepted collision or hit.
//
// A resolved entity keeps overlapping the actor for several frames while it
// fades out, and a pointer may report the same click twice. The first
// Accept for an ID wins; every later Accept for that ID returns false until
// the entry expires at the end of the fade window.
type Ledger struct {
	window  time.Duration
	entries map[EntityID]time.Time
}

// NewLedger creates a ledger whose entries live for window.
func NewLedger(window time.Duration) *Ledger {
	if window <= 0 {
		window = DefaultFadeWindow
	}
	return &Ledger{
		window:  window,
		entries: make(map[EntityID]time.Time),
	}
}

// Window returns the lifetime of an entry.
func (l *Ledger) Window() time.Duration {
	return l.window
}

// Accept claims id at now. It returns false if id is already claimed.
func (l *Ledger) Accept(id EntityID, now time.Time) bool {
	if _, busy := l.entries[id]; busy {
		return false
	}
	l.entries[id] = now.Add(l.window)
	return true
}

// Busy reports whether id is currently claimed.
func (l *Ledger) Busy(id EntityID) bool {
	_, busy := l.entries[id]
	return busy
}

// Release drops the claim on id.
func (l *Ledger) Release(id EntityID) {
	delete(l.entries, id)
}

// Expire drops every claim whose window ended at or before now and returns
// how many were dropped.
func (l *Ledger) Expire(now time.Time) int {
	n := 0
	for id, until := range l.entries {
		if !until.After(now) {
			delete(l.entries, id)
			n++
		}
	}
	return n
}

// Len returns the number of claimed IDs.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Clear drops every claim.
func (l *Ledger) Clear() {
	clear(l.entries)
}
