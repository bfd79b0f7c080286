package semabook

import "fmt"

// Barrier is a reusable synchronization point for a fixed party of n
// goroutines.
//
// Each Wait blocks until all n parties have called Wait for the current
// cycle, then releases them together. The barrier is cyclic: the same
// parties may call Wait again for the next cycle, and no party can start
// arriving at cycle i+1 before every party has left cycle i.
//
// A cycle moves through two phases, each with its own turnstile:
//
//	Idle -> Arriving -> Released-1 -> Departing -> Released-2 -> Idle
//
// Arriving: count goes up under mutex. The last arriver releases n
// permits into turnstile, and every party (the last one included) then
// takes exactly one, which drains turnstile back to zero.
//
// Departing: count goes down under mutex. The last departer releases n
// permits into turnstile2, drained the same way.
//
// With turnstile alone, a fast party could leave, loop around and
// re-enter arrival while a slow party has not yet taken its permit from
// the previous release, and the stale permit would let it through early.
// turnstile2 holds everyone until count is back to zero.
//
// Calling Wait from a number of goroutines other than n blocks some of
// them forever. This is not detected.
type Barrier struct {
	_ noCopy
	n int

	// count is only touched while holding mutex. Range [0, n].
	count int
	mutex *Semaphore

	turnstile  *Semaphore
	turnstile2 *Semaphore
}

// NewBarrier creates a Barrier for n parties.
//
// panic if n <= 0.
func NewBarrier(n int) *Barrier {
	if n <= 0 {
		panic(fmt.Sprintf("semabook: barrier parties %d must be positive", n))
	}
	return &Barrier{
		n:          n,
		mutex:      NewBinarySemaphore(1),
		turnstile:  NewSemaphore(0, int64(n)),
		turnstile2: NewSemaphore(0, int64(n)),
	}
}

// Parties returns n.
func (b *Barrier) Parties() int {
	return b.n
}

// Wait blocks until all n parties have called Wait for this cycle.
// It is Arrive followed by Depart.
func (b *Barrier) Wait() {
	b.Arrive()
	b.Depart()
}

// Arrive is the first phase of Wait: it returns once all n parties have
// arrived. Code placed between Arrive and Depart runs while every party
// is known to be past arrival and none has started the next cycle.
//
// Each Arrive must be followed by exactly one Depart before the same
// party arrives again.
func (b *Barrier) Arrive() {
	b.mutex.Acquire()
	b.count++
	if b.count == b.n {
		b.turnstile.Release(int64(b.n))
	}
	b.mutex.Release(1)

	b.turnstile.Acquire()
}

// Depart is the second phase of Wait: it returns once all n parties have
// departed, leaving the barrier ready for the next cycle.
func (b *Barrier) Depart() {
	b.mutex.Acquire()
	b.count--
	if b.count == 0 {
		b.turnstile2.Release(int64(b.n))
	}
	b.mutex.Release(1)

	b.turnstile2.Acquire()
}
