package semabook

import "math"

// Latch is a one-way door: Wait blocks until Open is called, and once it
// has been, every current and future Wait returns immediately.
//
// It is the "signal everyone" use of a semaphore: a guarded waiter count
// plus a gate that Open releases once per parked waiter.
type Latch struct {
	_       noCopy
	mu      *Semaphore
	gate    *Semaphore
	open    bool
	waiters int64
}

// NewLatch creates a closed Latch.
func NewLatch() *Latch {
	return &Latch{
		mu:   NewBinarySemaphore(1),
		gate: NewSemaphore(0, math.MaxInt64),
	}
}

// Open opens the door and wakes every parked waiter.
// Open is idempotent.
func (l *Latch) Open() {
	l.mu.Acquire()
	if !l.open {
		l.open = true
		l.gate.Release(l.waiters)
		l.waiters = 0
	}
	l.mu.Release(1)
}

// Wait blocks until Open has been called.
func (l *Latch) Wait() {
	l.mu.Acquire()
	if l.open {
		l.mu.Release(1)
		return
	}
	l.waiters++
	l.mu.Release(1)
	l.gate.Acquire()
}

// IsOpen reports whether Open has been called.
func (l *Latch) IsOpen() bool {
	l.mu.Acquire()
	defer l.mu.Release(1)
	return l.open
}
