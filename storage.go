// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "unsafe"

const (
	// CacheLineSize is the assumed coherence granule. Slots and queue
	// header fields are padded to it.
	CacheLineSize = 64

	// PageSize is the preferred alignment of slot 0.
	PageSize = 4096
)

// alignedSlots returns n zeroed elements whose first element sits on a page
// boundary when the allocator allows it, else on a cache line boundary.
//
// The backing array carries enough slack to reach the next page. The
// returned slice keeps the whole array alive, so the buffer is released by
// the garbage collector together with the queue.
func alignedSlots[E any](n int) []E {
	var e E
	size := unsafe.Sizeof(e)
	if size == 0 {
		return make([]E, n)
	}
	slack := int((PageSize + size - 1) / size)
	buf := make([]E, n+slack)
	for _, align := range [...]uintptr{PageSize, CacheLineSize} {
		for i := 0; i <= slack; i++ {
			if uintptr(unsafe.Pointer(&buf[i]))%align == 0 {
				return buf[i : i+n : i+n]
			}
		}
	}
	return buf[:n:n]
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// IsPow2 reports whether n is a power of two greater than one.
func IsPow2(n int) bool {
	return n > 1 && n&(n-1) == 0
}

// pad is cache line padding to prevent false sharing.
type pad [CacheLineSize]byte

// padShort fills a cache line after an 8-byte slot header (4-byte state
// plus a 4-byte payload).
type padShort [CacheLineSize - 8]byte

// padLock fills a cache line after the spinlock word and both counters.
type padLock [CacheLineSize - 12]byte
