// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/ringq"
)

var (
	// ErrBarrierParties is returned by NewBarrier for a non-positive size.
	ErrBarrierParties = errors.New("bench: barrier needs at least one party")
	// ErrBarrierBroken is returned by Wait after Break.
	ErrBarrierBroken = errors.New("bench: barrier broken")
)

type pad [ringq.CacheLineSize]byte

// Barrier is a reusable spinning rendezvous for a fixed number of parties.
//
// Each generation completes when the last party arrives; that party resets
// the arrival count and then advances the generation with a release store.
// Waiters spin on the generation with acquire loads, so everything a party
// wrote before Wait is visible to every party after Wait.
type Barrier struct {
	_       pad
	arrived atomix.Int32
	_       pad
	gen     atomix.Uint32
	_       pad
	broken  atomix.Bool
	_       pad
	parties int32
	backoff ringq.Backoff
}

// NewBarrier creates a barrier for parties goroutines.
func NewBarrier(parties int, backoff ringq.Backoff) (*Barrier, error) {
	if parties < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBarrierParties, parties)
	}
	return &Barrier{parties: int32(parties), backoff: backoff}, nil
}

// Wait blocks until all parties have called Wait for the current
// generation. Exactly one caller per generation gets serial == true.
// Returns ErrBarrierBroken if the barrier is broken before or while waiting.
func (b *Barrier) Wait() (serial bool, err error) {
	gen := b.gen.LoadAcquire()
	if b.broken.LoadAcquire() {
		return false, ErrBarrierBroken
	}

	if b.arrived.AddAcqRel(1) == b.parties {
		b.arrived.StoreRelaxed(0)
		b.gen.StoreRelease(gen + 1)
		return true, nil
	}

	w := b.backoff.Waiter()
	for b.gen.LoadAcquire() == gen {
		if b.broken.LoadAcquire() {
			return false, ErrBarrierBroken
		}
		w.Wait()
	}
	return false, nil
}

// Break releases current and future waiters with ErrBarrierBroken.
// Used when a party fails and will never arrive.
func (b *Barrier) Break() {
	b.broken.StoreRelease(true)
}

// Parties returns the barrier size.
func (b *Barrier) Parties() int {
	return int(b.parties)
}
