package semabook

// Rendezvous makes two goroutines, A and B, meet once.
//
// Each side runs a first and a second step. A's second step starts only
// after B's first step has finished, and B's second step only after A's
// first step has finished. Nothing else is ordered: A1 and B1 may run in
// either order or at the same time, and so may A2 and B2.
//
// Usage:
//
//	r := NewRendezvous()
//	go r.A(a1, a2)
//	r.B(b1, b2)
//
// A Rendezvous is one-shot. Its semaphores are drained by the meeting and
// never reset, so a second A or B call on the same instance blocks forever.
type Rendezvous struct {
	_     noCopy
	aDone *Semaphore
	bDone *Semaphore
}

// NewRendezvous creates a Rendezvous with both sides not yet arrived.
func NewRendezvous() *Rendezvous {
	return &Rendezvous{
		aDone: NewBinarySemaphore(0),
		bDone: NewBinarySemaphore(0),
	}
}

// A runs side A. first and second may be nil.
func (r *Rendezvous) A(first, second func()) {
	meet(first, second, r.aDone, r.bDone)
}

// B runs side B. first and second may be nil.
func (r *Rendezvous) B(first, second func()) {
	meet(first, second, r.bDone, r.aDone)
}

// meet signals mine before waiting on theirs. Release never blocks, so
// the two sides cannot deadlock whatever the scheduling.
func meet(first, second func(), mine, theirs *Semaphore) {
	if first != nil {
		first()
	}
	mine.Release(1)
	theirs.Acquire()
	if second != nil {
		second()
	}
}
