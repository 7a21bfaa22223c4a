// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Queue is the combined producer-consumer interface for a bounded MPMC ring.
//
// Queue provides spinning Enqueue and Dequeue operations. Neither operation
// reports a full or empty queue: both wait until their claimed slot becomes
// available. Callers must keep total enqueues and dequeues balanced, or the
// surplus side spins forever.
//
// The interface intentionally excludes length because accurate counts in
// concurrent ring buffers require expensive cross-core synchronization.
//
// Example:
//
//	q := ringq.NewCAS[uint32](1024)
//
//	v := uint32(42)
//	q.Enqueue(&v)
//
//	fmt.Println(q.Dequeue())
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The queue
// stores a copy of the pointed-to value, so the original can be modified
// after Enqueue returns.
type Producer[T any] interface {
	// Enqueue claims the next tail slot and stores a copy of elem in it.
	// Spins while the claimed slot is still occupied.
	Enqueue(elem *T)
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value. The slot is cleared to allow garbage
// collection of referenced objects.
type Consumer[T any] interface {
	// Dequeue claims the next head slot and returns its element.
	// Spins while the claimed slot has not been filled.
	Dequeue() T
}

// SlotState is the occupancy of a ring slot.
//
// A slot cycles EMPTY → BUSY (producer) → FULL → BUSY (consumer) → EMPTY.
// Only the goroutine that moved a slot into BUSY may move it out.
type SlotState int32

const (
	SlotEmpty SlotState = iota
	SlotFull
	SlotBusy
)

func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "EMPTY"
	case SlotFull:
		return "FULL"
	case SlotBusy:
		return "BUSY"
	default:
		return "SlotState(?)"
	}
}

// Observer receives slot transitions.
//
// Both queue variants call the observer while the calling goroutine owns the
// slot, so calls for one slot index are totally ordered. Calls for distinct
// slots run concurrently. The observer runs on the hot path and must not
// touch the queue.
type Observer func(slot int, from, to SlotState)
