// Package demo runs the semaphore patterns as small demonstrations.
//
// Each demonstration spawns its participants, waits for all of them, and
// then checks its own trace for the guarantee the pattern makes. Progress
// lines go to the Runner's Trace; diagnostics go to its logger.
package demo

import (
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/llxisdsh/semabook"
)

const (
	PatternRendezvous = "Rendezvous"
	PatternMutex      = "Mutex"
	PatternMultiplex  = "Multiplex"
	PatternBarrier    = "Barrier"
)

// Step is one named demonstration.
type Step struct {
	Pattern string
	Run     func() error
}

// Runner holds what the demonstrations share.
type Runner struct {
	Config Config
	Log    logrus.FieldLogger
	Trace  *semabook.Trace

	// Announce, if set, is called before each step runs.
	Announce func(Step)
}

// NewRunner creates a Runner. The trace is mirrored to nothing and the
// logger discards when log is nil.
func NewRunner(cfg Config, log logrus.FieldLogger, tr *semabook.Trace) *Runner {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if tr == nil {
		tr = semabook.NewTrace(nil)
	}
	return &Runner{Config: cfg, Log: log, Trace: tr}
}

// Steps returns the demonstrations in their running order.
func (r *Runner) Steps() []Step {
	return []Step{
		{PatternRendezvous, r.Rendezvous},
		{PatternMutex, r.Mutex},
		{PatternMultiplex, r.Multiplex},
		{PatternBarrier, r.Barrier},
	}
}

// All validates the configuration and runs every demonstration in
// order, stopping at the first failure.
func (r *Runner) All() error {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	for _, s := range r.Steps() {
		if err := r.run(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) run(s Step) error {
	if r.Announce != nil {
		r.Announce(s)
	}
	log := r.Log.WithField("pattern", s.Pattern)
	log.Debug("starting")
	start := time.Now()
	if err := s.Run(); err != nil {
		return errors.Wrap(err, s.Pattern)
	}
	log.WithField("elapsed", time.Since(start)).Debug("finished")
	return nil
}

// Rendezvous runs two tasks through a Rendezvous and checks that A2
// followed B1 and B2 followed A1.
func (r *Runner) Rendezvous() error {
	rv := semabook.NewRendezvous()
	mark := len(r.Trace.Events())
	step := func(actor, name string) func() {
		return func() {
			r.Trace.Record(PatternRendezvous, actor, semabook.NoCycle, "Executing %s", name)
		}
	}

	a := semabook.Spawn(func() { rv.A(step("A", "A1"), step("A", "A2")) })
	b := semabook.Spawn(func() { rv.B(step("B", "B1"), step("B", "B2")) })
	a.Join()
	b.Join()

	return CheckRendezvous(r.Trace.Events()[mark:])
}

// Mutex has MutexThreads tasks increment a shared counter once each and
// checks that no increment was lost.
func (r *Runner) Mutex() error {
	threads := r.Config.MutexThreads
	counter := semabook.NewGuarded(0)

	err := semabook.Fork(threads, func(id int) error {
		counter.Do(func(v *int) {
			*v += 1
			r.Trace.Record(PatternMutex, strconv.Itoa(id), semabook.NoCycle, "Incremented count to %d", *v)
		})
		return nil
	})
	if err != nil {
		return err
	}

	if got := counter.Load(); got != threads {
		return errors.Wrapf(ErrLostUpdate, "count = %d, want %d", got, threads)
	}
	return nil
}

// Multiplex admits MultiplexThreads tasks through a region of
// MultiplexCapacity seats and checks that it never held more.
func (r *Runner) Multiplex() error {
	k := r.Config.MultiplexCapacity
	m := semabook.NewMultiplex(k)
	g := semabook.NewGauge()

	err := semabook.Fork(r.Config.MultiplexThreads, func(id int) error {
		actor := strconv.Itoa(id)
		m.Do(func() {
			active := g.Enter(id)
			r.Trace.Record(PatternMultiplex, actor, semabook.NoCycle, "Entering Critical Region")
			r.Log.WithFields(logrus.Fields{
				"pattern":   PatternMultiplex,
				"task":      id,
				"occupancy": active,
			}).Debug("entered")
			time.Sleep(r.Config.MultiplexHold)
			r.Trace.Record(PatternMultiplex, actor, semabook.NoCycle, "Leaving Critical Region")
			g.Leave(id)
		})
		return nil
	})
	if err != nil {
		return err
	}

	r.Log.WithFields(logrus.Fields{"pattern": PatternMultiplex, "peak": g.Peak()}).Info("peak occupancy")
	if p := g.Peak(); p > k {
		return errors.Wrapf(ErrOverCapacity, "peak %d over capacity %d", p, k)
	}
	return nil
}

// Barrier runs BarrierParties tasks through BarrierCycles cycles of one
// Barrier and checks that the cycles did not interleave.
func (r *Runner) Barrier() error {
	parties, cycles := r.Config.BarrierParties, r.Config.BarrierCycles
	b := semabook.NewBarrier(parties)
	mark := len(r.Trace.Events())

	err := semabook.Fork(parties, func(id int) error {
		actor := strconv.Itoa(id)
		for i := range cycles {
			if w := r.Config.BarrierWork; w > 0 {
				time.Sleep(rand.N(w))
			}
			r.Trace.Record(PatternBarrier, actor, i, "Doing work on iteration %d", i)
			b.Wait()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return CheckBarrier(r.Trace.Events()[mark:], parties, cycles)
}
