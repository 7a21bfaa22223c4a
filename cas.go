// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// CASQueue is a lock-free multi-producer multi-consumer ring.
//
// Producers and consumers claim positions with Fetch-And-Add on tail and
// head, so the only global contention is the atomic increment. Each slot
// carries a tri-state occupancy flag that is the sole synchronization point
// for its payload:
//
//	EMPTY ─CAS→ BUSY (producer writes) ─store→ FULL
//	FULL  ─CAS→ BUSY (consumer reads)  ─store→ EMPTY
//
// Only the goroutine whose CAS moved the slot into BUSY performs the next
// transition. Two claimants can target the same slot only after the
// counters wrap a full round; the flag serializes them, and whichever wins
// first is served first.
//
// Memory: one cache line per slot for word-sized payloads.
type CASQueue[T any] struct {
	_        pad
	tail     atomix.Uint32 // Producer index (FAA)
	_        pad
	head     atomix.Uint32 // Consumer index (FAA)
	_        pad
	slots    []casSlot[T]
	mask     uint32
	capacity uint32
	backoff  Backoff
	observe  Observer
}

type casSlot[T any] struct {
	state atomix.Int32
	data  T
	_     padShort
}

// NewCAS creates a lock-free queue with raw busy waiting.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewCAS[T any](capacity int) *CASQueue[T] {
	return newCAS[T](Options{capacity: capacity})
}

func newCAS[T any](opts Options) *CASQueue[T] {
	if opts.capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}

	n := uint32(roundToPow2(opts.capacity))
	return &CASQueue[T]{
		slots:    alignedSlots[casSlot[T]](int(n)),
		mask:     n - 1,
		capacity: n,
		backoff:  opts.backoff,
		observe:  opts.observe,
	}
}

// Enqueue claims the next tail position and stores a copy of elem once the
// slot drains.
func (q *CASQueue[T]) Enqueue(elem *T) {
	idx := (q.tail.AddAcqRel(1) - 1) & q.mask
	slot := &q.slots[idx]

	w := q.backoff.Waiter()
	for !slot.state.CompareAndSwapAcqRel(int32(SlotEmpty), int32(SlotBusy)) {
		w.Wait()
	}

	if q.observe != nil {
		q.observe(int(idx), SlotEmpty, SlotBusy)
	}
	slot.data = *elem
	if q.observe != nil {
		q.observe(int(idx), SlotBusy, SlotFull)
	}
	slot.state.StoreRelease(int32(SlotFull))
}

// Dequeue claims the next head position and returns its element once a
// producer has filled the slot.
func (q *CASQueue[T]) Dequeue() T {
	idx := (q.head.AddAcqRel(1) - 1) & q.mask
	slot := &q.slots[idx]

	w := q.backoff.Waiter()
	for !slot.state.CompareAndSwapAcqRel(int32(SlotFull), int32(SlotBusy)) {
		w.Wait()
	}

	if q.observe != nil {
		q.observe(int(idx), SlotFull, SlotBusy)
	}
	elem := slot.data
	var zero T
	slot.data = zero
	if q.observe != nil {
		q.observe(int(idx), SlotBusy, SlotEmpty)
	}
	slot.state.StoreRelease(int32(SlotEmpty))
	return elem
}

// Cap returns the queue capacity.
func (q *CASQueue[T]) Cap() int {
	return int(q.capacity)
}
