// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides two bounded multi-producer multi-consumer ring
// buffers that differ only in how they synchronize.
//
//   - SpinQueue: a binary spinlock serializes index allocation; payload
//     transfer happens outside the lock, gated by a per-slot turn sequence.
//   - CASQueue: indices are claimed with Fetch-And-Add; a tri-state
//     EMPTY/BUSY/FULL flag per slot, advanced by CAS, gates the payload.
//
// Both implement [Queue] and are meant to be compared head to head by the
// bench package and the ringbench command.
//
// # Quick Start
//
// Direct constructors:
//
//	q := ringq.NewCAS[uint32](1024)
//	q := ringq.NewSpin[uint32](1024)
//
// Builder API selects the variant at construction time:
//
//	q := ringq.Build[uint32](ringq.New(1024))                  // → CASQueue
//	q := ringq.Build[uint32](ringq.New(1024).Spinlock())       // → SpinQueue
//	q := ringq.Build[uint32](ringq.New(1024).Kind(kind))       // from a flag
//
// # Spinning Semantics
//
// Enqueue and Dequeue never fail. Each call claims a position first and then
// waits for its slot, so a claim is never abandoned. A queue that is full
// stalls producers until consumers arrive, and vice versa:
//
//	q := ringq.NewCAS[int](4)
//
//	go func() {
//	    for i := range 100 {
//	        q.Enqueue(&i) // spins whenever 4 items are outstanding
//	    }
//	}()
//
//	for range 100 {
//	    _ = q.Dequeue() // spins until a producer fills the claimed slot
//	}
//
// Total enqueues and dequeues must match. With 3 producers and 1 consumer
// issuing the same number of operations each, the producers livelock once
// the consumer stops; there is no timeout and no error.
//
// # Wait Pacing
//
// Wait loops are raw busy spins by default. [Builder.Backoff] selects CPU
// pause hints ([BackoffPause], via code.hybscloud.com/spin) or an adaptive
// pause-then-yield strategy ([BackoffAdaptive], via code.hybscloud.com/iox):
//
//	q := ringq.Build[uint32](ringq.New(1024).Backoff(ringq.BackoffAdaptive))
//
// # Capacity
//
// Capacity rounds up to the next power of 2 and is fixed for the lifetime of
// the queue. Minimum capacity is 2. Panic if capacity < 2.
//
// Head and tail are 32-bit counters that wrap. Only the masked low bits
// address slots, so wrapping is harmless as long as fewer than 2^32
// operations are in flight at once.
//
// # Memory Layout
//
// Each slot is padded to a 64-byte cache line for word-sized payloads, and
// slot 0 is placed on a page boundary where the allocator permits. Head,
// tail and the lock word live on their own cache lines, away from the
// slots. Buffers are ordinary Go memory released by the garbage collector.
//
// # Observing Slots
//
// [Builder.Observe] installs an [Observer] called on every slot transition
// while the caller owns the slot. Tests use it to check that each slot
// cycles EMPTY → BUSY → FULL → BUSY → EMPTY and that no two goroutines own
// a slot at once.
//
// # Race Detection
//
// Slot payloads are plain fields protected by acquire-release orderings on
// the slot flag or sequence. Go's race detector cannot observe that
// happens-before edge and reports false positives, so concurrent tests skip
// when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions, and [code.hybscloud.com/iox] for adaptive backoff.
package ringq
