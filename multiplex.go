package semabook

import "fmt"

// Multiplex admits at most k goroutines into a region at once.
// Further arrivals park until someone leaves; they are admitted in no
// particular order.
type Multiplex struct {
	_   noCopy
	sem *Semaphore
}

// NewMultiplex creates a Multiplex of capacity k, initially empty.
//
// panic if k <= 0.
func NewMultiplex(k int) *Multiplex {
	if k <= 0 {
		panic(fmt.Sprintf("semabook: multiplex capacity %d must be positive", k))
	}
	return &Multiplex{sem: NewSemaphore(int64(k), int64(k))}
}

// Enter blocks until there is room in the region, then takes a seat.
func (m *Multiplex) Enter() {
	m.sem.Acquire()
}

// Leave gives the seat back. Every Enter must be paired with one Leave.
func (m *Multiplex) Leave() {
	m.sem.Release(1)
}

// Do runs fn inside the region.
func (m *Multiplex) Do(fn func()) {
	m.Enter()
	defer m.Leave()
	fn()
}

// Capacity returns k.
func (m *Multiplex) Capacity() int {
	return int(m.sem.Capacity())
}

// Free returns the number of seats currently free.
func (m *Multiplex) Free() int {
	return int(m.sem.Available())
}
