// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/message"

	"code.hybscloud.com/ringq"
)

// Default run shape.
const (
	DefaultProducers       = 2
	DefaultConsumers       = 2
	DefaultCapacity        = 1024
	DefaultIterations      = 10
	DefaultOpsPerIteration = 10_000

	// MaxProducers bounds producer IDs to the 8-bit tag field of a payload.
	MaxProducers = 1 << (32 - tagShift)
)

// Configuration errors. Run checks them before allocating anything.
var (
	ErrCapacity       = errors.New("bench: queue capacity must be a power of two > 1")
	ErrThreadCount    = errors.New("bench: producer and consumer counts must be positive")
	ErrUnbalanced     = errors.New("bench: producer and consumer counts must be equal")
	ErrTooManyThreads = errors.New("bench: more threads than logical CPUs")
	ErrOps            = errors.New("bench: iterations and ops per iteration must be positive")
)

// Config describes one benchmark run.
type Config struct {
	Producers       int
	Consumers       int
	Capacity        int
	Iterations      int
	OpsPerIteration int

	Kind    ringq.Kind
	Backoff ringq.Backoff

	// ClockHz overrides the counter's calibrated tick rate when > 0.
	ClockHz float64

	// Pin binds worker i to the i-th allowed logical CPU.
	Pin bool

	// Verify tags and counts every payload. It adds a few instructions per
	// dequeue to the timed region.
	Verify bool
}

// DefaultConfig returns 2 producers and 2 consumers on a 1024-slot lock-free
// queue, 10 iterations of 10000 operations each, pinned.
func DefaultConfig() Config {
	return Config{
		Producers:       DefaultProducers,
		Consumers:       DefaultConsumers,
		Capacity:        DefaultCapacity,
		Iterations:      DefaultIterations,
		OpsPerIteration: DefaultOpsPerIteration,
		Kind:            ringq.KindLockFree,
		Pin:             true,
	}
}

// Threads returns the total worker count.
func (c Config) Threads() int {
	return c.Producers + c.Consumers
}

// OpsPerThread returns the operations each worker issues across the run.
func (c Config) OpsPerThread() uint64 {
	return uint64(c.Iterations) * uint64(c.OpsPerIteration)
}

// Validate checks c against the platform's logical CPU count.
//
// Producer and consumer counts must match: both roles issue the same number
// of operations, so any imbalance leaves the surplus side spinning forever.
func (c Config) Validate(cpus int) error {
	if !ringq.IsPow2(c.Capacity) {
		return fmt.Errorf("%w: got %d", ErrCapacity, c.Capacity)
	}
	if c.Producers <= 0 || c.Consumers <= 0 {
		return fmt.Errorf("%w: got %d producers, %d consumers", ErrThreadCount, c.Producers, c.Consumers)
	}
	if c.Producers > MaxProducers {
		return fmt.Errorf("%w: at most %d producers, got %d", ErrThreadCount, MaxProducers, c.Producers)
	}
	if c.Producers != c.Consumers {
		return fmt.Errorf("%w: got %d producers, %d consumers", ErrUnbalanced, c.Producers, c.Consumers)
	}
	if c.Threads() > cpus {
		return fmt.Errorf("%w: %d threads, %d CPUs", ErrTooManyThreads, c.Threads(), cpus)
	}
	if c.Iterations <= 0 || c.OpsPerIteration <= 0 {
		return fmt.Errorf("%w: got %d x %d", ErrOps, c.Iterations, c.OpsPerIteration)
	}
	return nil
}

// Fprint writes the one-line configuration summary.
func (c Config) Fprint(w io.Writer, p *message.Printer) error {
	_, err := p.Fprintf(w, "Total threads: %d, Producers: %d, Consumers: %d, Queue Size: %d, Variant: %s, Backoff: %s\n",
		c.Threads(), c.Producers, c.Consumers, c.Capacity, c.Kind, c.Backoff)
	return err
}
