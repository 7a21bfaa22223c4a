// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"code.hybscloud.com/ringq"
	"code.hybscloud.com/ringq/bench"
)

const envPrefix = "RINGBENCH"

// Flag names double as viper keys, config file keys and, upper-cased with
// dashes turned to underscores, environment variable suffixes.
const (
	flagProducers  = "producers"
	flagConsumers  = "consumers"
	flagQueueSize  = "queue-size"
	flagVariant    = "variant"
	flagIterations = "iterations"
	flagOps        = "ops"
	flagBackoff    = "backoff"
	flagClockKHz   = "clock-khz"
	flagPin        = "pin"
	flagVerify     = "verify"
	flagLogLevel   = "log-level"
	flagConfig     = "config"
)

type cli struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
	helped bool
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{v: viper.New(), stdout: stdout, stderr: stderr}
}

func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ringbench",
		Short: "Benchmark a bounded MPMC ring buffer",
		Long: `ringbench pins producer and consumer threads to distinct cores, has every
thread issue a fixed number of operations against one shared ring buffer,
and reports cycles per operation and throughput.

Producer and consumer counts must be equal: every operation spins until it
succeeds, so an unbalanced run never finishes.

Examples:
  ringbench                          # 2 producers, 2 consumers, lock-free
  ringbench -p 4 -c 4 -v spin        # spinlock variant
  ringbench -q 64 --backoff pause    # small ring, CPU pause hints
  RINGBENCH_VERIFY=true ringbench    # count every payload`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return c.runBench()
		},
	}

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		c.helped = true
		defaultHelp(cmd, args)
	})
	cmd.SetOut(c.stderr)
	cmd.SetErr(c.stderr)

	f := cmd.Flags()
	defineFlags(f, bench.DefaultConfig())

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	// Only fails on a nil flag set.
	_ = c.v.BindPFlags(f)

	return cmd
}

func defineFlags(f *pflag.FlagSet, d bench.Config) {
	f.IntP(flagProducers, "p", d.Producers, "producer threads")
	f.IntP(flagConsumers, "c", d.Consumers, "consumer threads, must equal producers")
	f.IntP(flagQueueSize, "q", d.Capacity, "queue capacity, a power of two > 1")
	f.StringP(flagVariant, "v", d.Kind.String(), "queue variant: spin or cas")
	f.IntP(flagIterations, "i", d.Iterations, "timed iterations")
	f.IntP(flagOps, "n", d.OpsPerIteration, "operations per thread per iteration")
	f.String(flagBackoff, d.Backoff.String(), "wait pacing: none, pause or adaptive")
	f.Float64(flagClockKHz, 0, "reference clock in kHz; 0 uses the calibrated counter")
	f.Bool(flagPin, d.Pin, "bind each thread to its own logical CPU")
	f.Bool(flagVerify, d.Verify, "count payloads and fail on loss or duplication")
	f.String(flagLogLevel, "warn", "log level: debug, info, warn or error")
	f.String(flagConfig, "", "config file (yaml, toml or json)")
}

// config resolves flags, environment and config file into a bench.Config.
// Flags set on the command line win over the environment, which wins over
// the config file.
func (c *cli) config() (bench.Config, error) {
	if path := c.v.GetString(flagConfig); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return bench.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	kind, err := ringq.ParseKind(c.v.GetString(flagVariant))
	if err != nil {
		return bench.Config{}, err
	}
	backoff, err := ringq.ParseBackoff(c.v.GetString(flagBackoff))
	if err != nil {
		return bench.Config{}, err
	}
	khz := c.v.GetFloat64(flagClockKHz)
	if khz < 0 {
		return bench.Config{}, fmt.Errorf("%s must not be negative, got %g", flagClockKHz, khz)
	}

	return bench.Config{
		Producers:       c.v.GetInt(flagProducers),
		Consumers:       c.v.GetInt(flagConsumers),
		Capacity:        c.v.GetInt(flagQueueSize),
		Iterations:      c.v.GetInt(flagIterations),
		OpsPerIteration: c.v.GetInt(flagOps),
		Kind:            kind,
		Backoff:         backoff,
		ClockHz:         khz * 1e3,
		Pin:             c.v.GetBool(flagPin),
		Verify:          c.v.GetBool(flagVerify),
	}, nil
}

// newLogger builds a console logger on w at the named level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flagLogLevel, err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core).Named("ringbench"), nil
}

// newPrinter groups digits the way the process locale does.
func newPrinter() *message.Printer {
	return message.NewPrinter(localeTag(os.Getenv("LC_ALL"), os.Getenv("LC_NUMERIC"), os.Getenv("LANG")))
}

// localeTag parses the first non-empty POSIX locale name, such as
// "de_DE.UTF-8", into a language tag. C, POSIX and unparsable names fall
// back to English.
func localeTag(names ...string) language.Tag {
	for _, name := range names {
		if name == "" {
			continue
		}
		if i := strings.IndexAny(name, ".@"); i >= 0 {
			name = name[:i]
		}
		if name == "C" || name == "POSIX" {
			return language.English
		}
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			return language.English
		}
		return tag
	}
	return language.English
}
