// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/ringq"
	"code.hybscloud.com/ringq/internal/affinity"
	"code.hybscloud.com/ringq/internal/cycles"
)

// ErrPayloadMismatch is returned by Result.Check when payloads were lost,
// duplicated or corrupted.
var ErrPayloadMismatch = errors.New("bench: dequeued payloads differ from enqueued payloads")

// Result is the outcome of a run.
type Result struct {
	Config  Config
	Counter string  // Tick source name
	Hz      float64 // Reference clock used for Stats
	Elapsed []uint64
	Stats   Stats

	// Populated when Config.Verify is set.
	Sent        uint64
	Received    uint64
	SentSum     uint64
	ReceivedSum uint64
	PerProducer []uint64
	Stray       uint64
}

// Check compares what producers sent with what consumers received.
// It is a no-op unless the run had Config.Verify set.
func (r *Result) Check() error {
	if !r.Config.Verify {
		return nil
	}
	if r.Stray != 0 {
		return fmt.Errorf("%w: %d payloads with unknown producer tag", ErrPayloadMismatch, r.Stray)
	}
	if r.Received != r.Sent {
		return fmt.Errorf("%w: sent %d, received %d", ErrPayloadMismatch, r.Sent, r.Received)
	}
	if r.ReceivedSum != r.SentSum {
		return fmt.Errorf("%w: checksum sent %d, received %d", ErrPayloadMismatch, r.SentSum, r.ReceivedSum)
	}
	want := r.Config.OpsPerThread()
	for p, n := range r.PerProducer {
		if n != want {
			return fmt.Errorf("%w: producer %d: received %d, want %d", ErrPayloadMismatch, p, n, want)
		}
	}
	return nil
}

type harness struct {
	cfg     Config
	log     *zap.Logger
	counter cycles.Counter
	cpus    []int
	queue   ringq.Queue[uint32]
	workers []*Worker
	result  *Result // Written by worker 0 after the final barrier

	failOnce sync.Once
	cause    error // First worker failure; peers only see ErrBarrierBroken
}

// Run executes one benchmark: it validates cfg, builds the queue, spawns
// one goroutine per worker locked to its own OS thread, runs
// cfg.Iterations timed bursts separated by barriers, and returns the
// statistics reduced by worker 0.
//
// Configuration errors are reported before anything is allocated. A worker
// that fails to pin breaks the barrier so its peers unwind; Run returns that
// worker's error rather than the peers' ErrBarrierBroken.
func Run(cfg Config, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	if err := cfg.Validate(len(o.cpus)); err != nil {
		return nil, err
	}

	barrier, err := NewBarrier(cfg.Threads(), cfg.Backoff)
	if err != nil {
		return nil, err
	}

	h := &harness{
		cfg:     cfg,
		log:     o.log,
		counter: cycles.Fixed(o.counter, cfg.ClockHz),
		cpus:    o.cpus,
		queue: ringq.Build[uint32](ringq.New(cfg.Capacity).
			Kind(cfg.Kind).
			Backoff(cfg.Backoff).
			Observe(o.observe)),
	}
	h.workers = make([]*Worker, cfg.Threads())
	for i := range h.workers {
		role := Producer
		if i >= cfg.Producers {
			role = Consumer
		}
		h.workers[i] = newWorker(i, role, barrier, cfg.Producers, o.phase)
	}

	h.log.Debug("starting run",
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.Int("capacity", h.queue.Cap()),
		zap.Stringer("variant", cfg.Kind),
		zap.Stringer("backoff", cfg.Backoff),
		zap.String("counter", h.counter.Name()),
		zap.Float64("hz", h.counter.Hz()),
	)

	var g errgroup.Group
	for _, w := range h.workers {
		g.Go(func() error { return h.run(w) })
	}
	if err := g.Wait(); err != nil {
		if h.cause != nil {
			return nil, h.cause
		}
		return nil, err
	}
	return h.result, nil
}

func (h *harness) run(w *Worker) (err error) {
	log := h.log.With(zap.Int("worker", w.ID), zap.Stringer("role", w.Role))
	defer func() {
		if err != nil && !errors.Is(err, ErrBarrierBroken) {
			h.failOnce.Do(func() { h.cause = err })
			w.barrier.Break()
			log.Error("worker failed", zap.Error(err))
		}
	}()

	if h.cfg.Pin {
		cpu, err := affinity.Nth(h.cpus, w.ID)
		if err != nil {
			return fmt.Errorf("bench: worker %d: %w", w.ID, err)
		}
		if err := affinity.Pin(cpu); err != nil {
			return fmt.Errorf("bench: worker %d: %w", w.ID, err)
		}
		log.Debug("pinned", zap.Int("cpu", cpu))
	}

	if err := w.fire(triggerArrive); err != nil {
		return err
	}
	if _, err := w.barrier.Wait(); err != nil {
		return err
	}

	ops := h.cfg.OpsPerIteration
	for j := range h.cfg.Iterations {
		if _, err := w.barrier.Wait(); err != nil {
			return err
		}
		if err := w.fire(triggerRelease); err != nil {
			return err
		}

		start := h.counter.Now()
		w.burst(h.queue, ops, h.cfg.Verify)
		stop := h.counter.Now()

		if err := w.fire(triggerRecord); err != nil {
			return err
		}
		w.elapsed += stop - start

		if j+1 < h.cfg.Iterations {
			if err := w.fire(triggerNext); err != nil {
				return err
			}
		}
	}

	if err := w.fire(triggerFinish); err != nil {
		return err
	}
	if _, err := w.barrier.Wait(); err != nil {
		return err
	}

	if w.ID == 0 {
		if err := w.fire(triggerReduce); err != nil {
			return err
		}
		h.result = h.reduce()
		if err := w.fire(triggerReport); err != nil {
			return err
		}
		log.Debug("run complete",
			zap.Uint64("cycles_per_op", h.result.Stats.CyclesPerOp),
			zap.Float64("total_ops_per_sec", h.result.Stats.TotalOpsPerSec),
		)
	}
	return w.fire(triggerDone)
}

// reduce merges every worker's accumulators. Called by worker 0 only, after
// the final barrier has ordered all other workers' writes before it.
func (h *harness) reduce() *Result {
	r := &Result{
		Config:  h.cfg,
		Counter: h.counter.Name(),
		Hz:      h.counter.Hz(),
		Elapsed: make([]uint64, len(h.workers)),
	}
	for i, w := range h.workers {
		r.Elapsed[i] = w.elapsed
	}
	r.Stats = Reduce(r.Elapsed, h.cfg.OpsPerThread(), r.Hz)

	if !h.cfg.Verify {
		return r
	}
	r.Sent = uint64(h.cfg.Producers) * h.cfg.OpsPerThread()
	r.PerProducer = make([]uint64, h.cfg.Producers)
	for _, w := range h.workers {
		if w.Role == Producer {
			r.SentSum += w.sum
			continue
		}
		r.ReceivedSum += w.sum
		r.Stray += w.stray
		r.Received += w.stray
		for p, n := range w.seen {
			r.PerProducer[p] += n
			r.Received += n
		}
	}
	return r
}
