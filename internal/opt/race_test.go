package opt

import (
	"sync"
	"testing"
	"time"
)

func TestSema_BlocksUntilRelease(t *testing.T) {
	var s Sema

	done := make(chan struct{})
	go func() {
		s.Acquire()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Acquire returned before Release")
	case <-time.After(50 * time.Millisecond):
	}

	s.Release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after Release")
	}
}

func TestSema_ReleaseBeforeAcquire(t *testing.T) {
	var s Sema
	s.Release()
	s.Release()

	// Both releases are banked; neither acquire may park.
	done := make(chan struct{})
	go func() {
		s.Acquire()
		s.Acquire()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("banked releases were lost")
	}
}

func TestSema_MultipleWaiters(t *testing.T) {
	var s Sema
	var wg sync.WaitGroup
	n := 10
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			s.Acquire()
		}()
	}

	// Give them time to block
	time.Sleep(50 * time.Millisecond)

	for range n {
		s.Release()
	}

	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Not all waiters woke up")
	}
}
