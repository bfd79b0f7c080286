package semabook

import (
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"
)

func TestRendezvous_CrossOrdering(t *testing.T) {
	for run := range 200 {
		var seq atomic.Int32
		var a1, a2, b1, b2 int32
		step := func(dst *int32) func() {
			return func() {
				if rand.IntN(4) == 0 {
					time.Sleep(time.Duration(rand.IntN(200)) * time.Microsecond)
				}
				*dst = seq.Add(1)
			}
		}

		r := NewRendezvous()
		task := Spawn(func() { r.A(step(&a1), step(&a2)) })
		r.B(step(&b1), step(&b2))
		task.Join()

		if a2 <= b1 {
			t.Fatalf("run %d: A2 (%d) did not follow B1 (%d)", run, a2, b1)
		}
		if b2 <= a1 {
			t.Fatalf("run %d: B2 (%d) did not follow A1 (%d)", run, b2, a1)
		}
	}
}

func TestRendezvous_NilSteps(t *testing.T) {
	r := NewRendezvous()
	task := Spawn(func() { r.A(nil, nil) })
	r.B(nil, nil)
	task.Join()
}

func TestRendezvous_OneShot(t *testing.T) {
	r := NewRendezvous()
	task := Spawn(func() { r.A(nil, nil) })
	r.B(nil, nil)
	task.Join()

	// Both semaphores are drained; a second meeting has nobody to meet.
	done := make(chan struct{})
	go func() {
		r.A(nil, nil)
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("a spent Rendezvous let A through again")
	case <-time.After(50 * time.Millisecond):
	}
	// Unblock the stray goroutine.
	r.bDone.Release(1)
	<-done
}
