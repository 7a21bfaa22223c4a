// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"fmt"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Backoff selects how a spin-wait loop paces its retries.
//
// The zero value, BackoffNone, is a raw busy loop: the benchmark measures
// the cost of contention itself. The other strategies trade latency for
// less pressure on the contended cache line.
type Backoff uint8

const (
	// BackoffNone retries immediately.
	BackoffNone Backoff = iota
	// BackoffPause issues CPU pause hints between retries (spin.Wait).
	BackoffPause
	// BackoffAdaptive escalates from pausing to yielding (iox.Backoff).
	BackoffAdaptive
)

func (b Backoff) String() string {
	switch b {
	case BackoffNone:
		return "none"
	case BackoffPause:
		return "pause"
	case BackoffAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Backoff(%d)", uint8(b))
	}
}

// ParseBackoff parses the String form of a Backoff.
func ParseBackoff(s string) (Backoff, error) {
	switch s {
	case "none", "":
		return BackoffNone, nil
	case "pause":
		return BackoffPause, nil
	case "adaptive":
		return BackoffAdaptive, nil
	}
	return BackoffNone, fmt.Errorf("ringq: unknown backoff %q", s)
}

// Waiter is the retry state of one wait loop. Create one per loop with
// Backoff.Waiter; it lives on the caller's stack.
type Waiter struct {
	mode Backoff
	sw   spin.Wait
	bo   iox.Backoff
}

// Waiter returns fresh retry state paced by b.
func (b Backoff) Waiter() Waiter {
	return Waiter{mode: b}
}

// Wait paces one failed attempt.
func (w *Waiter) Wait() {
	switch w.mode {
	case BackoffPause:
		w.sw.Once()
	case BackoffAdaptive:
		w.bo.Wait()
	}
}
