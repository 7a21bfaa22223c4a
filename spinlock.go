// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// spinlock is a binary test-and-test-and-set lock word.
//
// Waiters spin on a relaxed load and only attempt the CAS once the word
// reads unlocked, so a held lock costs waiters a shared cache line rather
// than a stream of exclusive ownership requests.
type spinlock struct {
	word atomix.Uint32
}

func (l *spinlock) lock(mode Backoff) {
	w := mode.Waiter()
	for {
		if l.word.LoadRelaxed() == 0 && l.word.CompareAndSwapAcqRel(0, 1) {
			return
		}
		w.Wait()
	}
}

func (l *spinlock) unlock() {
	l.word.StoreRelease(0)
}
