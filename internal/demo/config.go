package demo

import (
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config sizes the demonstrations.
type Config struct {
	// MutexThreads is the number of increment tasks.
	MutexThreads int

	// MultiplexThreads participants share a region of MultiplexCapacity
	// seats, each staying MultiplexHold.
	MultiplexThreads  int
	MultiplexCapacity int
	MultiplexHold     time.Duration

	// BarrierParties run BarrierCycles cycles, each doing up to
	// BarrierWork of random work before the barrier.
	BarrierParties int
	BarrierCycles  int
	BarrierWork    time.Duration
}

// DefaultConfig returns the classic sizes: two incrementers, ten tasks
// through a five-seat multiplex, ten parties for five barrier cycles.
func DefaultConfig() Config {
	return Config{
		MutexThreads:      2,
		MultiplexThreads:  10,
		MultiplexCapacity: 5,
		MultiplexHold:     5 * time.Second,
		BarrierParties:    10,
		BarrierCycles:     5,
		BarrierWork:       10 * time.Millisecond,
	}
}

// Validate rejects sizes the patterns cannot run with.
func (c Config) Validate() error {
	switch {
	case c.MutexThreads < 1:
		return errors.Wrapf(ErrInvalidConfig, "mutex threads %d must be at least 1", c.MutexThreads)
	case c.MultiplexCapacity < 1:
		return errors.Wrapf(ErrInvalidConfig, "multiplex capacity %d must be at least 1", c.MultiplexCapacity)
	case c.MultiplexThreads < c.MultiplexCapacity:
		return errors.Wrapf(ErrInvalidConfig, "multiplex threads %d below capacity %d",
			c.MultiplexThreads, c.MultiplexCapacity)
	case c.MultiplexHold < 0:
		return errors.Wrapf(ErrInvalidConfig, "multiplex hold %s is negative", c.MultiplexHold)
	case c.BarrierParties < 1:
		return errors.Wrapf(ErrInvalidConfig, "barrier parties %d must be at least 1", c.BarrierParties)
	case c.BarrierCycles < 0:
		return errors.Wrapf(ErrInvalidConfig, "barrier cycles %d is negative", c.BarrierCycles)
	case c.BarrierWork < 0:
		return errors.Wrapf(ErrInvalidConfig, "barrier work %s is negative", c.BarrierWork)
	}
	return nil
}
