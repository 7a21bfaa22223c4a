// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"testing"
	"time"

	"code.hybscloud.com/ringq"
)

// =============================================================================
// Interface Compliance
// =============================================================================

var (
	_ ringq.Queue[int]    = (*ringq.SpinQueue[int])(nil)
	_ ringq.Queue[int]    = (*ringq.CASQueue[int])(nil)
	_ ringq.Producer[int] = (*ringq.SpinQueue[int])(nil)
	_ ringq.Consumer[int] = (*ringq.CASQueue[int])(nil)
)

// variants builds one queue of each kind for table-driven tests.
func variants[T any](capacity int, bo ringq.Backoff) map[string]ringq.Queue[T] {
	return map[string]ringq.Queue[T]{
		"spin": ringq.Build[T](ringq.New(capacity).Spinlock().Backoff(bo)),
		"cas":  ringq.Build[T](ringq.New(capacity).LockFree().Backoff(bo)),
	}
}

// =============================================================================
// Single-Threaded Semantics
// =============================================================================

func TestFIFO(t *testing.T) {
	for name, q := range variants[int](8, ringq.BackoffNone) {
		t.Run(name, func(t *testing.T) {
			for i := range 8 {
				v := i + 100
				q.Enqueue(&v)
			}
			for i := range 8 {
				if got := q.Dequeue(); got != i+100 {
					t.Fatalf("Dequeue(%d): got %d, want %d", i, got, i+100)
				}
			}
		})
	}
}

func TestWraparound(t *testing.T) {
	for name, q := range variants[int](4, ringq.BackoffNone) {
		t.Run(name, func(t *testing.T) {
			// Interleave so head and tail lap the ring many times.
			next, want := 0, 0
			for round := range 100 {
				n := round%4 + 1
				for range n {
					v := next
					q.Enqueue(&v)
					next++
				}
				for range n {
					if got := q.Dequeue(); got != want {
						t.Fatalf("round %d: got %d, want %d", round, got, want)
					}
					want++
				}
			}
		})
	}
}

func TestDequeueClearsSlot(t *testing.T) {
	for name, q := range variants[*int](2, ringq.BackoffNone) {
		t.Run(name, func(t *testing.T) {
			x := 7
			p := &x
			q.Enqueue(&p)
			if got := q.Dequeue(); got != &x {
				t.Fatalf("Dequeue: got %p, want %p", got, &x)
			}
			// The slot must not retain the pointer; the next round's
			// value is the only thing visible.
			var nilp *int
			q.Enqueue(&nilp)
			q.Enqueue(&nilp)
			if got := q.Dequeue(); got != nil {
				t.Fatalf("Dequeue: got %p, want nil", got)
			}
		})
	}
}

func TestEnqueueCopies(t *testing.T) {
	q := ringq.NewCAS[[4]int](2)
	v := [4]int{1, 2, 3, 4}
	q.Enqueue(&v)
	v[0] = 99
	if got := q.Dequeue(); got != [4]int{1, 2, 3, 4} {
		t.Fatalf("Dequeue: got %v, want [1 2 3 4]", got)
	}
}

// =============================================================================
// Spin-Wait Semantics
// =============================================================================

func TestDequeueWaitsForProducer(t *testing.T) {
	if ringq.RaceEnabled {
		t.Skip("skip: spinning handoff is not visible to the race detector")
	}

	for name, q := range variants[int](4, ringq.BackoffAdaptive) {
		t.Run(name, func(t *testing.T) {
			got := make(chan int, 1)
			go func() { got <- q.Dequeue() }()

			select {
			case v := <-got:
				t.Fatalf("Dequeue on empty returned %d", v)
			case <-time.After(20 * time.Millisecond):
			}

			v := 42
			q.Enqueue(&v)
			select {
			case v := <-got:
				if v != 42 {
					t.Fatalf("Dequeue: got %d, want 42", v)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("Dequeue not released by Enqueue")
			}
		})
	}
}

func TestEnqueueWaitsForConsumer(t *testing.T) {
	if ringq.RaceEnabled {
		t.Skip("skip: spinning handoff is not visible to the race detector")
	}

	for name, q := range variants[int](2, ringq.BackoffAdaptive) {
		t.Run(name, func(t *testing.T) {
			for i := range 2 {
				v := i
				q.Enqueue(&v)
			}

			done := make(chan struct{})
			go func() {
				v := 2
				q.Enqueue(&v)
				close(done)
			}()

			select {
			case <-done:
				t.Fatal("Enqueue on full queue returned")
			case <-time.After(20 * time.Millisecond):
			}

			if got := q.Dequeue(); got != 0 {
				t.Fatalf("Dequeue: got %d, want 0", got)
			}
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("Enqueue not released by Dequeue")
			}
			for want := 1; want <= 2; want++ {
				if got := q.Dequeue(); got != want {
					t.Fatalf("Dequeue: got %d, want %d", got, want)
				}
			}
		})
	}
}

// =============================================================================
// Construction
// =============================================================================

func TestCapacityRounding(t *testing.T) {
	tests := []struct{ in, want int }{
		{2, 2}, {3, 4}, {4, 4}, {5, 8}, {1000, 1024}, {1024, 1024},
	}
	for _, tt := range tests {
		if got := ringq.NewSpin[int](tt.in).Cap(); got != tt.want {
			t.Errorf("NewSpin(%d).Cap(): got %d, want %d", tt.in, got, tt.want)
		}
		if got := ringq.NewCAS[int](tt.in).Cap(); got != tt.want {
			t.Errorf("NewCAS(%d).Cap(): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCapacityPanics(t *testing.T) {
	tests := map[string]func(){
		"New":     func() { ringq.New(1) },
		"NewSpin": func() { ringq.NewSpin[int](1) },
		"NewCAS":  func() { ringq.NewCAS[int](0) },
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic for capacity < 2")
				}
			}()
			f()
		})
	}
}

func TestBuilderSelectsKind(t *testing.T) {
	if _, ok := ringq.Build[int](ringq.New(4)).(*ringq.CASQueue[int]); !ok {
		t.Error("default Build: want *CASQueue")
	}
	if _, ok := ringq.Build[int](ringq.New(4).Spinlock()).(*ringq.SpinQueue[int]); !ok {
		t.Error("Spinlock Build: want *SpinQueue")
	}
	if _, ok := ringq.Build[int](ringq.New(4).Kind(ringq.KindSpinlock).LockFree()).(*ringq.CASQueue[int]); !ok {
		t.Error("LockFree Build: want *CASQueue")
	}
	if q := ringq.BuildSpin[int](ringq.New(5)); q.Cap() != 8 {
		t.Errorf("BuildSpin Cap: got %d, want 8", q.Cap())
	}
	if q := ringq.BuildCAS[int](ringq.New(5).Spinlock()); q.Cap() != 8 {
		t.Errorf("BuildCAS Cap: got %d, want 8", q.Cap())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want ringq.Kind
		ok   bool
	}{
		{"cas", ringq.KindLockFree, true},
		{"lockfree", ringq.KindLockFree, true},
		{"lock-free", ringq.KindLockFree, true},
		{"spin", ringq.KindSpinlock, true},
		{"spinlock", ringq.KindSpinlock, true},
		{"mutex", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ringq.ParseKind(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseKind(%q): err %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseKind(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := ringq.KindSpinlock.String(); got != "spin" {
		t.Errorf("KindSpinlock.String(): got %q", got)
	}
}

func TestParseBackoff(t *testing.T) {
	for _, bo := range []ringq.Backoff{ringq.BackoffNone, ringq.BackoffPause, ringq.BackoffAdaptive} {
		got, err := ringq.ParseBackoff(bo.String())
		if err != nil || got != bo {
			t.Errorf("ParseBackoff(%q): got %v, %v", bo.String(), got, err)
		}
	}
	if _, err := ringq.ParseBackoff("sleep"); err == nil {
		t.Error("ParseBackoff(sleep): want error")
	}
}

func TestWaiterModes(t *testing.T) {
	// Every mode returns promptly; none may block on its own.
	for _, bo := range []ringq.Backoff{ringq.BackoffNone, ringq.BackoffPause, ringq.BackoffAdaptive} {
		w := bo.Waiter()
		for range 10 {
			w.Wait()
		}
	}
}

func TestSlotStateString(t *testing.T) {
	tests := map[ringq.SlotState]string{
		ringq.SlotEmpty: "EMPTY",
		ringq.SlotFull:  "FULL",
		ringq.SlotBusy:  "BUSY",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String(): got %q, want %q", s, got, want)
		}
	}
}
