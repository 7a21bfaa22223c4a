// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"io"

	"golang.org/x/text/message"
)

// Stats summarizes per-worker tick totals.
type Stats struct {
	Threads      int
	OpsPerThread uint64

	// AvgTicks is the mean of the per-worker totals, truncated.
	AvgTicks uint64
	// CyclesPerOp is AvgTicks / OpsPerThread, truncated.
	CyclesPerOp uint64
	// MicrosPerOp is the mean operation latency at the reference clock.
	MicrosPerOp float64
	// OpsPerSec is the throughput of one worker in one direction.
	OpsPerSec float64
	// TotalOpsPerSec is OpsPerSec across all workers, both directions.
	TotalOpsPerSec float64
}

// Reduce averages the per-worker tick totals and converts them to rates
// using hz, the reference clock frequency in ticks per second.
func Reduce(elapsed []uint64, opsPerThread uint64, hz float64) Stats {
	s := Stats{Threads: len(elapsed), OpsPerThread: opsPerThread}
	if len(elapsed) == 0 || opsPerThread == 0 {
		return s
	}

	var sum uint64
	for _, e := range elapsed {
		sum += e
	}
	s.AvgTicks = sum / uint64(len(elapsed))
	s.CyclesPerOp = s.AvgTicks / opsPerThread

	if hz <= 0 || s.AvgTicks == 0 {
		return s
	}
	secs := float64(s.AvgTicks) / hz
	s.MicrosPerOp = 1e6 * secs / float64(opsPerThread)
	s.OpsPerSec = float64(opsPerThread) / secs
	s.TotalOpsPerSec = s.OpsPerSec * float64(s.Threads)
	return s
}

// Fprint writes the one-line statistics summary. Numbers are grouped
// according to the printer's language.
func (s Stats) Fprint(w io.Writer, p *message.Printer) error {
	_, err := p.Fprintf(w, "cycles/op: %d, time/op(us): %f, ops/sec: %.0f, total-ops/sec: %.0f\n",
		s.CyclesPerOp, s.MicrosPerOp, s.OpsPerSec, s.TotalOpsPerSec)
	return err
}
