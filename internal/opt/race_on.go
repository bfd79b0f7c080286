//go:build race

package opt

import (
	"sync"
)

const Race_ = true

// Sema is a parking semaphore.
// Under the race detector the runtime semaphore is invisible to the
// happens-before analysis, so it is rebuilt from a guarded counter and a
// condition variable, which the detector understands.
type Sema struct {
	mu    sync.Mutex
	cond  sync.Cond
	count uint32
}

func (s *Sema) Acquire() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

func (s *Sema) Release() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	s.count++
	s.cond.Signal()
	s.mu.Unlock()
}
