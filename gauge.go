package semabook

import (
	"slices"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/llxisdsh/pb"

	"github.com/llxisdsh/semabook/internal/opt"
)

// Gauge instruments a guarded region: it counts how many participants
// are inside right now, remembers the highest count ever seen, and keeps
// track of who is inside.
//
// Call Enter right after being admitted and Leave right before giving
// the seat back, so the gauge never sees more than the region allows.
// Ids must be unique among the participants inside at the same time.
type Gauge struct {
	_      noCopy
	active atomic.Int64
	_      [(opt.CacheLineSize_ - unsafe.Sizeof(atomic.Int64{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte
	peak   atomic.Int64
	_      [(opt.CacheLineSize_ - unsafe.Sizeof(atomic.Int64{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte

	// occupants maps participant id to the time it entered.
	occupants *pb.MapOf[int, time.Time]
}

// NewGauge creates an empty Gauge.
func NewGauge() *Gauge {
	return &Gauge{occupants: pb.NewMapOf[int, time.Time]()}
}

// Enter records participant id as inside and returns the new occupancy.
// Entering an id that is already inside changes nothing.
func (g *Gauge) Enter(id int) int {
	now := time.Now()
	_, loaded := g.occupants.ProcessEntry(
		id,
		func(l *pb.EntryOf[int, time.Time]) (*pb.EntryOf[int, time.Time], time.Time, bool) {
			if l != nil {
				return l, l.Value, true
			}
			return &pb.EntryOf[int, time.Time]{Value: now}, now, false
		},
	)
	if loaded {
		return g.Active()
	}

	n := g.active.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return int(n)
}

// Leave records participant id as gone and returns how long it was inside.
// Leaving an id that is not inside changes nothing and returns 0.
func (g *Gauge) Leave(id int) time.Duration {
	var entered time.Time
	_, removed := g.occupants.ProcessEntry(
		id,
		func(l *pb.EntryOf[int, time.Time]) (*pb.EntryOf[int, time.Time], time.Time, bool) {
			if l == nil {
				return nil, time.Time{}, false
			}
			entered = l.Value
			return nil, l.Value, true
		},
	)
	if !removed {
		return 0
	}
	g.active.Add(-1)
	return time.Since(entered)
}

// Active returns the current occupancy.
func (g *Gauge) Active() int {
	return int(g.active.Load())
}

// Peak returns the highest occupancy seen so far.
func (g *Gauge) Peak() int {
	return int(g.peak.Load())
}

// Occupants returns the ids currently inside, sorted.
func (g *Gauge) Occupants() []int {
	var ids []int
	g.occupants.Range(func(id int, _ time.Time) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}
