package semabook

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLatchBasic(t *testing.T) {
	l := NewLatch()

	start := time.Now()
	time.AfterFunc(100*time.Millisecond, func() {
		l.Open()
	})

	l.Wait()
	dur := time.Since(start)
	if dur < 100*time.Millisecond {
		t.Errorf("Wait returned too early: %v", dur)
	}
}

func TestLatchBroadcast(t *testing.T) {
	l := NewLatch()
	var count atomic.Int32
	const n = 10

	tasks := make([]*Task, n)
	for i := range tasks {
		tasks[i] = Spawn(func() {
			l.Wait()
			count.Add(1)
		})
	}

	// Ensure they are waiting
	time.Sleep(50 * time.Millisecond)
	if c := count.Load(); c != 0 {
		t.Errorf("Waiters passed early: %d", c)
	}
	if l.IsOpen() {
		t.Error("latch open before Open")
	}

	l.Open()
	for _, task := range tasks {
		task.Join()
	}

	if c := count.Load(); c != n {
		t.Errorf("Not all waiters woke up: %d / %d", c, n)
	}
}

func TestLatchOpenBeforeWait(t *testing.T) {
	l := NewLatch()
	l.Open()

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Errorf("Wait blocked even though Open was called before")
	}
}

func TestLatchDoubleOpen(t *testing.T) {
	l := NewLatch()
	l.Open()
	l.Open() // Should be safe
	l.Wait()
	if !l.IsOpen() {
		t.Error("latch closed after Open")
	}
}
