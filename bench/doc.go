// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench drives producer and consumer threads against one shared
// ringq queue and measures throughput.
//
// A run spawns Producers+Consumers workers. Worker i is locked to an OS
// thread and pinned to the i-th allowed logical CPU; workers with
// i < Producers enqueue, the rest dequeue. Every worker issues the same
// fixed burst of operations per iteration, so producer and consumer counts
// must be equal.
//
// Each worker walks the phases
//
//	INIT → BARRIER_WAIT → RUN → RECORD → (BARRIER_WAIT → RUN → RECORD)… →
//	FINAL_BARRIER → DONE
//
// and worker 0 additionally passes REDUCE and REPORT after the final barrier,
// where it averages all workers' tick totals into [Stats].
//
// All waiting is busy spinning: in the queue, and in the [Barrier] between
// iterations. Nothing times out; an unbalanced run hangs by design.
//
// Example:
//
//	cfg := bench.DefaultConfig()
//	cfg.Kind = ringq.KindSpinlock
//	res, err := bench.Run(cfg, bench.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	res.Stats.Fprint(os.Stdout, message.NewPrinter(language.English))
package bench
