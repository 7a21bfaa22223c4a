// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cycles provides low-overhead interval counters for timing bursts.
//
// Selection contract:
// [New] returns the hardware timestamp counter on architectures that have
// an assembly reader (amd64) and the monotonic wall clock elsewhere. Every
// counter reports its own tick rate through Hz, so callers convert ticks to
// time without knowing which source they got.
package cycles
