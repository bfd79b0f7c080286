package semabook

import (
	"fmt"
	"sync/atomic"

	"github.com/llxisdsh/semabook/internal/opt"
)

// Semaphore is a counting semaphore with a capacity fixed at construction.
// A binary semaphore is a Semaphore with capacity 1.
//
// Acquire takes one permit, parking the caller until one is available.
// Release adds any number of permits at once and wakes up to that many
// parked acquirers, which is what the Barrier turnstiles rely on.
//
// There is no fairness among parked acquirers, and the capacity is a
// documented bound rather than an enforced one: releasing past it is a
// caller error and is not checked.
//
// A Release happens before the Acquire it satisfies.
type Semaphore struct {
	_ noCopy
	// permits is the number of available permits.
	// Positive: Available permits.
	// Negative: Number of parked acquirers.
	permits  atomic.Int64
	capacity int64

	sema opt.Sema
}

// NewSemaphore creates a Semaphore holding permits of capacity permits.
//
// panic if capacity <= 0 or permits is outside [0, capacity].
func NewSemaphore(permits, capacity int64) *Semaphore {
	if capacity <= 0 {
		panic("semabook: semaphore capacity must be positive")
	}
	if permits < 0 || permits > capacity {
		panic(fmt.Sprintf("semabook: initial permits %d outside [0, %d]", permits, capacity))
	}
	s := &Semaphore{capacity: capacity}
	s.permits.Store(permits)
	return s
}

// NewBinarySemaphore creates a Semaphore of capacity 1.
// permits must be 0 (taken) or 1 (free).
func NewBinarySemaphore(permits int64) *Semaphore {
	return NewSemaphore(permits, 1)
}

// Acquire takes one permit, blocking until one is available.
func (s *Semaphore) Acquire() {
	// Strict Dijkstra semaphore: take the permit first, park if we went
	// into debt. The matching Release hands us the permit directly.
	if s.permits.Add(-1) < 0 {
		s.sema.Acquire()
	}
}

// TryAcquire takes one permit if it can do so without blocking.
func (s *Semaphore) TryAcquire() bool {
	for {
		p := s.permits.Load()
		if p <= 0 {
			return false
		}
		if s.permits.CompareAndSwap(p, p-1) {
			return true
		}
	}
}

// Release adds n permits and wakes up to n parked acquirers.
// n <= 0 is a no-op.
func (s *Semaphore) Release(n int64) {
	if n <= 0 {
		return
	}

	v := s.permits.Add(n)

	// Waiters exist if the value before the add was negative; each one
	// is owed exactly one of the n permits.
	//
	//   P = -5, Release(2): P becomes -3, wake 2.
	//   P = -1, Release(5): P becomes 4, wake 1, bank 4.
	valBefore := v - n
	if valBefore < 0 {
		toWake := min(-valBefore, n)
		for range toWake {
			s.sema.Release()
		}
	}
}

// Available returns the number of permits that can be taken without
// blocking. It is zero while acquirers are parked.
func (s *Semaphore) Available() int64 {
	return max(s.permits.Load(), 0)
}

// Waiting returns the number of acquirers currently owed a permit.
func (s *Semaphore) Waiting() int64 {
	return max(-s.permits.Load(), 0)
}

// Capacity returns the capacity fixed at construction.
func (s *Semaphore) Capacity() int64 {
	return s.capacity
}
