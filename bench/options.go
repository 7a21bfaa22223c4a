// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"go.uber.org/zap"

	"code.hybscloud.com/ringq"
	"code.hybscloud.com/ringq/internal/affinity"
	"code.hybscloud.com/ringq/internal/cycles"
)

// Option customizes Run.
type Option func(*options)

type options struct {
	log     *zap.Logger
	counter cycles.Counter
	cpus    []int
	observe ringq.Observer
	phase   PhaseHook
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.counter == nil {
		o.counter = cycles.New()
	}
	if o.cpus == nil {
		o.cpus = affinity.CPUs()
	}
	return o
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCounter sets the tick source. Defaults to cycles.New().
func WithCounter(c cycles.Counter) Option {
	return func(o *options) { o.counter = c }
}

// WithCPUs restricts the logical CPUs workers may be pinned to. Worker i
// runs on cpus[i]. Defaults to the process affinity mask.
func WithCPUs(cpus []int) Option {
	return func(o *options) { o.cpus = cpus }
}

// WithObserver installs a slot transition observer on the queue.
func WithObserver(fn ringq.Observer) Option {
	return func(o *options) { o.observe = fn }
}

// WithPhaseHook installs a worker phase transition hook.
func WithPhaseHook(fn PhaseHook) Option {
	return func(o *options) { o.phase = fn }
}
