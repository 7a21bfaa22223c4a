// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package affinity

import "runtime"

// CPUs returns 0..NumCPU-1.
func CPUs() []int {
	cpus := make([]int, runtime.NumCPU())
	for i := range cpus {
		cpus[i] = i
	}
	return cpus
}

// Pin locks the calling goroutine to its OS thread. Thread placement is left
// to the OS scheduler on this platform.
func Pin(cpu int) error {
	runtime.LockOSThread()
	return nil
}
