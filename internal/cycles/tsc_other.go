// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64

package cycles

import (
	"errors"
	"time"
)

// ErrTSCNotSupported is returned when no timestamp counter reader exists
// for this architecture.
var ErrTSCNotSupported = errors.New("cycles: TSC requires amd64")

// TSC is a stub on architectures without a counter reader.
type TSC struct{}

// NewTSC returns ErrTSCNotSupported.
func NewTSC() (*TSC, error) {
	return nil, ErrTSCNotSupported
}

// Calibrate returns 0.
func Calibrate(window time.Duration) float64 { return 0 }

// Now returns 0.
func (t *TSC) Now() uint64 { return 0 }

// Hz returns 0.
func (t *TSC) Hz() float64 { return 0 }

// Name returns "tsc".
func (t *TSC) Name() string { return "tsc" }
