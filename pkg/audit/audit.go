// Package audit records a non-authoritative, in-memory trail of
// accepted chain operations. Each event is stamped with an
// attestation-ID pattern built on github.com/google/uuid, giving every
// recorded event a globally unique (random, version 4) identifier alongside its
// observed timestamp. Nothing in this package is consulted by any
// invariant check: it exists purely so an embedder can answer "what
// happened, in what order, and when was it observed" without the core
// taking on logging or persistence concerns itself.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one recorded, already-accepted state transition.
type Event struct {
	ID        uuid.UUID
	Kind      string // e.g. "identity.created", "identity.evolved"
	Subject   string // e.g. a UDI, a registry topic id
	Detail    string
	Recorded  time.Time
}

// Log is an append-only, concurrency-safe event log. Its zero value is
// usable. Recording is independent of the synchronous core state
// machines it observes; a caller that never touches Log incurs no cost
// beyond the pointer check at each call site.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Record appends a new Event, stamping it with a fresh correlation ID
// and the current wall-clock time. Safe to call with a nil *Log.
func (l *Log) Record(kind, subject, detail string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, Event{
		ID:       uuid.New(),
		Kind:     kind,
		Subject:  subject,
		Detail:   detail,
		Recorded: time.Now(),
	})
}

// Events returns a copy of the recorded events in append order.
func (l *Log) Events() []Event {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
