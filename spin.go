// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// SpinQueue is a spinlock-serialized multi-producer multi-consumer ring.
//
// A single lock word guards index allocation only: a producer takes the
// lock, claims tail and increments it, and releases the lock before touching
// the slot. Payload transfer happens outside the critical section, gated by
// a per-slot turn sequence:
//
//	seq == ticket      slot is free for the producer holding ticket
//	seq == ticket+1    slot holds the payload for the consumer holding ticket
//	seq == ticket+cap  slot is free for the next round
//
// Counters are 32-bit and wrap; capacity is a power of two, so it divides
// 2^32 and masked indices and turn comparisons stay consistent across the
// wrap.
//
// Memory: one cache line per slot for word-sized payloads.
type SpinQueue[T any] struct {
	_        pad
	lock     spinlock
	tail     uint32 // Producer index, guarded by lock
	head     uint32 // Consumer index, guarded by lock
	_        padLock
	slots    []spinSlot[T]
	mask     uint32
	capacity uint32
	backoff  Backoff
	observe  Observer
}

type spinSlot[T any] struct {
	seq  atomix.Uint32
	data T
	_    padShort
}

// NewSpin creates a spinlock-serialized queue with raw busy waiting.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewSpin[T any](capacity int) *SpinQueue[T] {
	return newSpin[T](Options{capacity: capacity})
}

func newSpin[T any](opts Options) *SpinQueue[T] {
	if opts.capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}

	n := uint32(roundToPow2(opts.capacity))
	q := &SpinQueue[T]{
		slots:    alignedSlots[spinSlot[T]](int(n)),
		mask:     n - 1,
		capacity: n,
		backoff:  opts.backoff,
		observe:  opts.observe,
	}
	for i := uint32(0); i < n; i++ {
		q.slots[i].seq.StoreRelaxed(i)
	}
	return q
}

// Enqueue claims the next tail slot under the lock, then waits outside the
// lock for the slot's turn and publishes elem.
func (q *SpinQueue[T]) Enqueue(elem *T) {
	q.lock.lock(q.backoff)
	ticket := q.tail
	q.tail++
	q.lock.unlock()

	idx := ticket & q.mask
	slot := &q.slots[idx]
	w := q.backoff.Waiter()
	for slot.seq.LoadAcquire() != ticket {
		w.Wait()
	}

	if q.observe != nil {
		q.observe(int(idx), SlotEmpty, SlotBusy)
	}
	slot.data = *elem
	if q.observe != nil {
		q.observe(int(idx), SlotBusy, SlotFull)
	}
	slot.seq.StoreRelease(ticket + 1)
}

// Dequeue claims the next head slot under the lock, then waits outside the
// lock for the producer's publication and takes the element.
func (q *SpinQueue[T]) Dequeue() T {
	q.lock.lock(q.backoff)
	ticket := q.head
	q.head++
	q.lock.unlock()

	idx := ticket & q.mask
	slot := &q.slots[idx]
	w := q.backoff.Waiter()
	for slot.seq.LoadAcquire() != ticket+1 {
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
	slot.seq.StoreRelease(ticket + q.capacity)
	return elem
}

// Cap returns the queue capacity.
func (q *SpinQueue[T]) Cap() int {
	return int(q.capacity)
}
