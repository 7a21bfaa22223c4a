// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ringq

// RaceEnabled is true when the race detector is active.
// Concurrent tests skip under it: slot payloads are plain fields ordered by
// acquire/release on the slot flag, which the detector cannot observe.
const RaceEnabled = true
