// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package affinity binds goroutines to logical CPUs.
//
// Pin locks the calling goroutine to its OS thread and never unlocks it.
// When the goroutine returns, the runtime terminates that thread instead of
// handing a CPU-restricted thread back to the scheduler.
package affinity

import (
	"errors"
	"fmt"
)

// ErrNoCPU is returned by Nth when the set has no i-th CPU.
var ErrNoCPU = errors.New("affinity: not enough logical CPUs")

// Count returns the number of logical CPUs the process may run on.
func Count() int {
	return len(CPUs())
}

// Nth returns the CPU worker i runs on: the i-th entry of cpus, usually the
// result of CPUs.
func Nth(cpus []int, i int) (int, error) {
	if i < 0 || i >= len(cpus) {
		return -1, fmt.Errorf("%w: want index %d of %d", ErrNoCPU, i, len(cpus))
	}
	return cpus[i], nil
}
