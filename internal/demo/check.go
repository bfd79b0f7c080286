package demo

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/llxisdsh/semabook"
)

var (
	// ErrOrdering means a trace broke the ordering its pattern promises.
	ErrOrdering = errors.New("ordering violated")
	// ErrLostUpdate means the mutex counter missed increments.
	ErrLostUpdate = errors.New("lost update")
	// ErrOverCapacity means more tasks than seats were inside a multiplex.
	ErrOverCapacity = errors.New("multiplex over capacity")
)

// CheckRendezvous verifies that A2 follows B1 and B2 follows A1.
func CheckRendezvous(events []semabook.Event) error {
	seq := map[string]int{}
	for _, e := range events {
		if e.Pattern == PatternRendezvous {
			seq[strings.TrimPrefix(e.Text, "Executing ")] = e.Seq
		}
	}
	for _, step := range []string{"A1", "A2", "B1", "B2"} {
		if _, ok := seq[step]; !ok {
			return errors.Wrapf(ErrOrdering, "rendezvous step %s missing", step)
		}
	}
	if seq["A2"] < seq["B1"] {
		return errors.Wrapf(ErrOrdering, "A2 at %d before B1 at %d", seq["A2"], seq["B1"])
	}
	if seq["B2"] < seq["A1"] {
		return errors.Wrapf(ErrOrdering, "B2 at %d before A1 at %d", seq["B2"], seq["A1"])
	}
	return nil
}

// CheckBarrier verifies that every cycle was logged by all parties and
// that each cycle's events all precede the next cycle's.
func CheckBarrier(events []semabook.Event, parties, cycles int) error {
	first := make([]int, cycles)
	last := make([]int, cycles)
	seen := make([]int, cycles)
	for i := range first {
		first[i] = -1
	}
	for _, e := range events {
		if e.Pattern != PatternBarrier {
			continue
		}
		if e.Cycle < 0 || e.Cycle >= cycles {
			return errors.Wrapf(ErrOrdering, "barrier event in unknown cycle %d", e.Cycle)
		}
		if first[e.Cycle] < 0 {
			first[e.Cycle] = e.Seq
		}
		last[e.Cycle] = e.Seq
		seen[e.Cycle]++
	}
	for i := range cycles {
		if seen[i] != parties {
			return errors.Wrapf(ErrOrdering, "cycle %d logged by %d of %d parties", i, seen[i], parties)
		}
		if i+1 < cycles && last[i] > first[i+1] {
			return errors.Wrapf(ErrOrdering, "cycle %d still running at %d after cycle %d began at %d",
				i, last[i], i+1, first[i+1])
		}
	}
	return nil
}
