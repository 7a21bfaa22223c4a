// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"code.hybscloud.com/ringq"
	"code.hybscloud.com/ringq/bench"
)

func TestDefaultConfig(t *testing.T) {
	cfg := bench.DefaultConfig()

	assert.Equal(t, 2, cfg.Producers)
	assert.Equal(t, 2, cfg.Consumers)
	assert.Equal(t, 1024, cfg.Capacity)
	assert.Equal(t, 10, cfg.Iterations)
	assert.Equal(t, 10_000, cfg.OpsPerIteration)
	assert.Equal(t, ringq.KindLockFree, cfg.Kind)
	assert.Equal(t, ringq.BackoffNone, cfg.Backoff)
	assert.True(t, cfg.Pin)
	assert.Equal(t, 4, cfg.Threads())
	assert.Equal(t, uint64(100_000), cfg.OpsPerThread())
	require.NoError(t, cfg.Validate(4))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bench.Config)
		cpus   int
		want   error
	}{
		{"capacity one", func(c *bench.Config) { c.Capacity = 1 }, 8, bench.ErrCapacity},
		{"capacity zero", func(c *bench.Config) { c.Capacity = 0 }, 8, bench.ErrCapacity},
		{"capacity not pow2", func(c *bench.Config) { c.Capacity = 1000 }, 8, bench.ErrCapacity},
		{"zero producers", func(c *bench.Config) { c.Producers = 0 }, 8, bench.ErrThreadCount},
		{"negative consumers", func(c *bench.Config) { c.Consumers = -1 }, 8, bench.ErrThreadCount},
		{"too many producers", func(c *bench.Config) {
			c.Producers = bench.MaxProducers + 1
			c.Consumers = bench.MaxProducers + 1
		}, 1024, bench.ErrThreadCount},
		{"unbalanced", func(c *bench.Config) { c.Producers = 3; c.Consumers = 1 }, 8, bench.ErrUnbalanced},
		{"too many threads", func(c *bench.Config) { c.Producers = 4; c.Consumers = 4 }, 4, bench.ErrTooManyThreads},
		{"zero iterations", func(c *bench.Config) { c.Iterations = 0 }, 8, bench.ErrOps},
		{"zero ops", func(c *bench.Config) { c.OpsPerIteration = 0 }, 8, bench.ErrOps},
		{"capacity two", func(c *bench.Config) { c.Capacity = 2 }, 8, nil},
		{"exact fit", func(c *bench.Config) { c.Producers = 4; c.Consumers = 4 }, 8, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bench.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate(tt.cpus)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfigFprint(t *testing.T) {
	cfg := bench.DefaultConfig()
	cfg.Kind = ringq.KindSpinlock
	cfg.Backoff = ringq.BackoffPause

	var buf bytes.Buffer
	require.NoError(t, cfg.Fprint(&buf, message.NewPrinter(language.English)))
	assert.Equal(t,
		"Total threads: 4, Producers: 2, Consumers: 2, Queue Size: 1,024, Variant: spin, Backoff: pause\n",
		buf.String())
}
