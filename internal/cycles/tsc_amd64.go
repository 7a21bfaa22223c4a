// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64

package cycles

import "time"

// rdtsc reads the processor's Time Stamp Counter.
// Implemented in tsc_amd64.s.
//
//go:noescape
func rdtsc() uint64

// TSC reads the x86 Time Stamp Counter.
//
// The tick rate comes from a short calibration against the monotonic clock
// and drifts with frequency scaling on CPUs without an invariant TSC. Pin
// the frequency governor to "performance" for stable numbers.
type TSC struct {
	hz float64
}

// NewTSC calibrates and returns a TSC counter. It blocks for about 10ms.
func NewTSC() (*TSC, error) {
	return &TSC{hz: Calibrate(calibrationWindow)}, nil
}

// Calibrate measures TSC ticks per second over window.
func Calibrate(window time.Duration) float64 {
	// Warm up the read path
	rdtsc()
	rdtsc()

	start := rdtsc()
	t1 := time.Now()
	time.Sleep(window)
	end := rdtsc()
	elapsed := time.Since(t1)

	return float64(end-start) / elapsed.Seconds()
}

// Now returns the raw counter value.
func (t *TSC) Now() uint64 { return rdtsc() }

// Hz returns the calibrated tick rate.
func (t *TSC) Hz() float64 { return t.hz }

// Name returns "tsc".
func (t *TSC) Name() string { return "tsc" }
