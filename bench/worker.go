// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"

	"code.hybscloud.com/ringq"
)

// Role is what a worker does to the queue.
type Role uint8

const (
	Producer Role = iota
	Consumer
)

func (r Role) String() string {
	if r == Producer {
		return "producer"
	}
	return "consumer"
}

// Phase is a worker lifecycle state.
type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseBarrierWait
	PhaseRun
	PhaseRecord
	PhaseFinalBarrier
	PhaseReduce
	PhaseReport
	PhaseDone
)

var phaseNames = [...]string{
	PhaseInit:         "INIT",
	PhaseBarrierWait:  "BARRIER_WAIT",
	PhaseRun:          "RUN",
	PhaseRecord:       "RECORD",
	PhaseFinalBarrier: "FINAL_BARRIER",
	PhaseReduce:       "REDUCE",
	PhaseReport:       "REPORT",
	PhaseDone:         "DONE",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

type trigger uint8

const (
	triggerArrive trigger = iota
	triggerRelease
	triggerRecord
	triggerNext
	triggerFinish
	triggerReduce
	triggerReport
	triggerDone
)

// PhaseHook observes worker phase transitions. It runs on the worker's
// goroutine, outside the timed region.
type PhaseHook func(worker int, from, to Phase)

// Payload tagging: the top 8 bits carry the producer ID, the low 24 bits a
// per-producer sequence that wraps.
const (
	tagShift   = 24
	tagSeqMask = 1<<tagShift - 1
)

// Tag builds the payload a producer sends for sequence number seq.
func Tag(producer int, seq uint32) uint32 {
	return uint32(producer)<<tagShift | seq&tagSeqMask
}

// TagProducer extracts the producer ID from a payload.
func TagProducer(v uint32) int {
	return int(v >> tagShift)
}

// Worker is one benchmark thread: identity, role, the shared barrier, and
// private accumulators that only its own goroutine writes until the final
// barrier.
type Worker struct {
	_       pad
	ID      int
	Role    Role
	barrier *Barrier
	fsm     *stateless.StateMachine

	elapsed uint64 // Ticks summed over all timed bursts
	seq     uint32 // Next producer sequence

	// Verification accumulators
	sum   uint64   // Sum of payloads sent or received
	seen  []uint64 // Consumer: payloads received per producer tag
	stray uint64   // Consumer: payloads with an out-of-range tag
	_     pad
}

func newWorker(id int, role Role, barrier *Barrier, producers int, hook PhaseHook) *Worker {
	w := &Worker{ID: id, Role: role, barrier: barrier}
	if role == Consumer {
		w.seen = make([]uint64, producers)
	}

	sm := stateless.NewStateMachine(PhaseInit)
	sm.Configure(PhaseInit).
		Permit(triggerArrive, PhaseBarrierWait)
	sm.Configure(PhaseBarrierWait).
		Permit(triggerRelease, PhaseRun)
	sm.Configure(PhaseRun).
		Permit(triggerRecord, PhaseRecord)
	sm.Configure(PhaseRecord).
		Permit(triggerNext, PhaseBarrierWait).
		Permit(triggerFinish, PhaseFinalBarrier)
	sm.Configure(PhaseFinalBarrier).
		Permit(triggerReduce, PhaseReduce).
		Permit(triggerDone, PhaseDone)
	sm.Configure(PhaseReduce).
		Permit(triggerReport, PhaseReport)
	sm.Configure(PhaseReport).
		Permit(triggerDone, PhaseDone)

	if hook != nil {
		sm.OnTransitioned(func(_ context.Context, t stateless.Transition) {
			hook(id, t.Source.(Phase), t.Destination.(Phase))
		})
	}
	w.fsm = sm
	return w
}

// Phase returns the worker's current lifecycle state.
func (w *Worker) Phase() Phase {
	return w.fsm.MustState().(Phase)
}

// Elapsed returns the ticks accumulated over all timed bursts.
func (w *Worker) Elapsed() uint64 {
	return w.elapsed
}

func (w *Worker) fire(t trigger) error {
	if err := w.fsm.Fire(t); err != nil {
		return fmt.Errorf("bench: worker %d in %s: %w", w.ID, w.Phase(), err)
	}
	return nil
}

// burst issues ops operations of the worker's role against q.
func (w *Worker) burst(q ringq.Queue[uint32], ops int, verify bool) {
	if w.Role == Producer {
		w.produce(q, ops, verify)
		return
	}
	w.consume(q, ops, verify)
}

func (w *Worker) produce(q ringq.Producer[uint32], ops int, verify bool) {
	for range ops {
		v := Tag(w.ID, w.seq)
		w.seq++
		q.Enqueue(&v)
		if verify {
			w.sum += uint64(v)
		}
	}
}

func (w *Worker) consume(q ringq.Consumer[uint32], ops int, verify bool) {
	if !verify {
		for range ops {
			q.Dequeue()
		}
		return
	}
	for range ops {
		v := q.Dequeue()
		w.sum += uint64(v)
		if p := TagProducer(v); p < len(w.seen) {
			w.seen[p]++
		} else {
			w.stray++
		}
	}
}
