// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// Examples here hand payloads between goroutines through atomix slot flags,
// which the race detector cannot see.

package ringq_test

import (
	"fmt"
	"slices"
	"sync"

	"code.hybscloud.com/ringq"
)

// ExampleCASQueue demonstrates balanced producers and consumers. Each side
// issues the same number of operations, so every call eventually returns.
func ExampleCASQueue() {
	q := ringq.BuildCAS[int](ringq.New(8).Backoff(ringq.BackoffAdaptive))

	var wg sync.WaitGroup
	for p := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 3 {
				v := p*10 + i
				q.Enqueue(&v)
			}
		}()
	}

	var mu sync.Mutex
	var got []int
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 3 {
				v := q.Dequeue()
				mu.Lock()
				got = append(got, v)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	slices.Sort(got)
	fmt.Println(got)

	// Output:
	// [0 1 2 10 11 12]
}
