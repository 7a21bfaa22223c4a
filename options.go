// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "fmt"

// Kind names a synchronization strategy.
type Kind uint8

const (
	// KindLockFree selects CASQueue: FAA index claim, per-slot CAS flag.
	KindLockFree Kind = iota
	// KindSpinlock selects SpinQueue: lock-serialized index claim.
	KindSpinlock
)

func (k Kind) String() string {
	switch k {
	case KindLockFree:
		return "cas"
	case KindSpinlock:
		return "spin"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses a variant name. It accepts the String form and the
// long names "lockfree" and "spinlock".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cas", "lockfree", "lock-free":
		return KindLockFree, nil
	case "spin", "spinlock":
		return KindSpinlock, nil
	}
	return KindLockFree, fmt.Errorf("ringq: unknown queue variant %q", s)
}

// Options configures queue creation and variant selection.
type Options struct {
	kind     Kind
	backoff  Backoff
	observe  Observer
	capacity int // Rounds up to next power of 2
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Lock-free queue (default)
//	q := ringq.Build[uint32](ringq.New(1024))
//
//	// Spinlock queue with CPU pause hints in wait loops
//	q := ringq.Build[uint32](ringq.New(1024).Spinlock().Backoff(ringq.BackoffPause))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity rounds up to the next power of 2.
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Kind selects the variant by value.
func (b *Builder) Kind(k Kind) *Builder {
	b.opts.kind = k
	return b
}

// Spinlock selects the spinlock-serialized variant.
func (b *Builder) Spinlock() *Builder {
	return b.Kind(KindSpinlock)
}

// LockFree selects the CAS variant.
func (b *Builder) LockFree() *Builder {
	return b.Kind(KindLockFree)
}

// Backoff sets the pacing of every wait loop in the queue.
func (b *Builder) Backoff(bo Backoff) *Builder {
	b.opts.backoff = bo
	return b
}

// Observe installs a slot transition observer. Intended for verification
// runs; it adds a call per transition to the hot path.
func (b *Builder) Observe(fn Observer) *Builder {
	b.opts.observe = fn
	return b
}

// Build creates a Queue[T] of the configured variant.
func Build[T any](b *Builder) Queue[T] {
	switch b.opts.kind {
	case KindSpinlock:
		return newSpin[T](b.opts)
	case KindLockFree:
		return newCAS[T](b.opts)
	default:
		panic(fmt.Sprintf("ringq: unknown queue variant %d", b.opts.kind))
	}
}

// BuildSpin creates a SpinQueue regardless of the selected kind.
func BuildSpin[T any](b *Builder) *SpinQueue[T] {
	return newSpin[T](b.opts)
}

// BuildCAS creates a CASQueue regardless of the selected kind.
func BuildCAS[T any](b *Builder) *CASQueue[T] {
	return newCAS[T](b.opts)
}
