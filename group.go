package semabook

import (
	"golang.org/x/sync/errgroup"
)

// Group spawns participant goroutines and joins them all.
// It is a thin wrapper around errgroup.Group: Wait returns the first
// non-nil error, after every task has finished.
//
// The zero value is ready to use.
type Group struct {
	g errgroup.Group
}

// Go spawns fn.
func (g *Group) Go(fn func() error) {
	g.g.Go(fn)
}

// Wait joins every spawned task.
func (g *Group) Wait() error {
	return g.g.Wait()
}

// Fork spawns n tasks, task i running fn(i), and joins them all.
func Fork(n int, fn func(i int) error) error {
	var g Group
	for i := range n {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}

// Task is the join handle of a single spawned goroutine.
type Task struct {
	done *Latch
}

// Spawn runs fn on a new goroutine.
func Spawn(fn func()) *Task {
	t := &Task{done: NewLatch()}
	go func() {
		defer t.done.Open()
		fn()
	}()
	return t
}

// Join blocks until the task's function has returned.
// It may be called any number of times, from any goroutine.
func (t *Task) Join() {
	t.done.Wait()
}
