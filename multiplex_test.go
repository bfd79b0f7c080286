package semabook

import (
	"testing"
	"time"
)

func TestMultiplex_Capacity(t *testing.T) {
	cases := []struct{ k, n int }{
		{1, 4},
		{3, 3},
		{5, 10},
		{4, 32},
	}
	for _, c := range cases {
		m := NewMultiplex(c.k)
		g := NewGauge()
		err := Fork(c.n, func(id int) error {
			m.Do(func() {
				if active := g.Enter(id); active > c.k {
					t.Errorf("k=%d: %d tasks inside", c.k, active)
				}
				time.Sleep(2 * time.Millisecond)
				g.Leave(id)
			})
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if p := g.Peak(); p > c.k || p < 1 {
			t.Fatalf("k=%d n=%d: peak = %d", c.k, c.n, p)
		}
		if f := m.Free(); f != c.k {
			t.Fatalf("k=%d: %d seats free after the run", c.k, f)
		}
	}
}

func TestMultiplex_BlocksWhenFull(t *testing.T) {
	m := NewMultiplex(2)
	m.Enter()
	m.Enter()

	entered := make(chan struct{})
	go func() {
		m.Enter()
		close(entered)
	}()

	select {
	case <-entered:
		t.Fatal("third task entered a full region")
	case <-time.After(50 * time.Millisecond):
	}

	m.Leave()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("waiting task was not admitted after Leave")
	}
	m.Leave()
	m.Leave()
	if m.Capacity() != 2 || m.Free() != 2 {
		t.Fatalf("capacity %d free %d, want 2 and 2", m.Capacity(), m.Free())
	}
}

func TestMultiplex_PanicNonPositive(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for zero capacity")
		}
	}()
	NewMultiplex(0)
}
