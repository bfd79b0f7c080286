package semabook

import (
	"fmt"
	"io"
)

// NoCycle is the Cycle of events that do not belong to a barrier cycle.
const NoCycle = -1

// Event is one recorded progress step.
type Event struct {
	// Seq is the position of the event in the trace, starting at 0.
	Seq     int
	Pattern string
	Actor   string
	Cycle   int
	Text    string
}

// String renders the event as a progress line, e.g.
// "Rendezvous: Executing A1".
func (e Event) String() string {
	return e.Pattern + ": " + e.Text
}

// Trace is an ordered log of progress events shared by the participants
// of a pattern. Records are totally ordered: if one Record returns before
// another starts, it gets the smaller Seq.
//
// If a writer is attached, each event is also written to it as one line,
// in Seq order.
type Trace struct {
	_      noCopy
	mu     *Mutex
	w      io.Writer
	events []Event
}

// NewTrace creates an empty Trace mirrored to w. w may be nil.
func NewTrace(w io.Writer) *Trace {
	return &Trace{mu: NewMutex(), w: w}
}

// Record appends an event and returns it.
func (t *Trace) Record(pattern, actor string, cycle int, format string, args ...any) Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := Event{
		Seq:     len(t.events),
		Pattern: pattern,
		Actor:   actor,
		Cycle:   cycle,
		Text:    fmt.Sprintf(format, args...),
	}
	t.events = append(t.events, e)
	if t.w != nil {
		// Progress output is best effort.
		_, _ = fmt.Fprintln(t.w, e.String())
	}
	return e
}

// Events returns a copy of every event recorded so far.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Filter returns the events of one pattern, in order.
func (t *Trace) Filter(pattern string) []Event {
	var out []Event
	for _, e := range t.Events() {
		if e.Pattern == pattern {
			out = append(out, e)
		}
	}
	return out
}

// Index returns the Seq of the first event matching pred, or -1.
func (t *Trace) Index(pred func(Event) bool) int {
	for _, e := range t.Events() {
		if pred(e) {
			return e.Seq
		}
	}
	return -1
}
