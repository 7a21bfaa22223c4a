// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cycles

import "time"

// Counter is a monotonically increasing high-resolution tick source.
type Counter interface {
	// Now returns the current tick. Only differences are meaningful.
	Now() uint64
	// Hz returns ticks per second.
	Hz() float64
	// Name identifies the source in reports.
	Name() string
}

// New returns the best counter available on this architecture.
func New() Counter {
	if c, err := NewTSC(); err == nil {
		return c
	}
	return NewMonotonic()
}

// Fixed overrides the tick rate reported by c, for machines whose reference
// frequency is known better than a short calibration can measure it.
// A non-positive hz returns c unchanged.
func Fixed(c Counter, hz float64) Counter {
	if hz <= 0 {
		return c
	}
	return fixed{Counter: c, hz: hz}
}

type fixed struct {
	Counter
	hz float64
}

func (f fixed) Hz() float64 { return f.hz }

// Monotonic counts nanoseconds on the runtime's monotonic clock.
type Monotonic struct {
	epoch time.Time
}

// NewMonotonic creates a Monotonic counter anchored at the current instant.
func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

// Now returns nanoseconds since the counter was created.
func (m *Monotonic) Now() uint64 {
	return uint64(time.Since(m.epoch))
}

// Hz returns 1e9.
func (m *Monotonic) Hz() float64 { return 1e9 }

// Name returns "monotonic".
func (m *Monotonic) Name() string { return "monotonic" }

// calibrationWindow is how long NewTSC samples the counter against the wall
// clock.
const calibrationWindow = 10 * time.Millisecond
