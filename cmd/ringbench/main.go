// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command ringbench measures the throughput of a bounded MPMC ring shared
// by pinned producer and consumer threads.
//
// Usage:
//
//	ringbench [-p producers] [-c consumers] [-q queue-size] [-v spin|cas]
//
// Every flag can also come from the environment (RINGBENCH_QUEUE_SIZE=64)
// or from a config file passed with --config. The binary prints one
// configuration line and one statistics line, and exits 1 on any error,
// including a request for help.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"code.hybscloud.com/ringq/bench"
	"code.hybscloud.com/ringq/internal/affinity"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	c := newCLI(stdout, stderr)
	cmd := c.command()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if c.log != nil {
			c.log.Error("ringbench failed", zap.Error(err))
			_ = c.log.Sync()
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	if c.helped {
		return 1
	}
	return 0
}

// runBench runs one configured benchmark and prints its report.
func (c *cli) runBench() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if c.log, err = newLogger(c.v.GetString(flagLogLevel), c.stderr); err != nil {
		return err
	}
	undo, err := maxprocs.Set(maxprocs.Logger(c.log.Sugar().Debugf))
	defer undo()
	if err != nil {
		c.log.Warn("maxprocs", zap.Error(err))
	}

	if err := cfg.Validate(affinity.Count()); err != nil {
		return err
	}
	if err := checkProcs(cfg, runtime.GOMAXPROCS(0)); err != nil {
		return err
	}

	p := newPrinter()
	if err := cfg.Fprint(c.stdout, p); err != nil {
		return err
	}
	res, err := bench.Run(cfg, bench.WithLogger(c.log))
	if err != nil {
		return err
	}
	if err := res.Stats.Fprint(c.stdout, p); err != nil {
		return err
	}
	if err := res.Check(); err != nil {
		return err
	}
	c.log.Info("done",
		zap.String("counter", res.Counter),
		zap.Float64("hz", res.Hz),
		zap.Uint64s("elapsed", res.Elapsed),
	)
	return nil
}

// checkProcs rejects runs with more spinning workers than Ps. maxprocs can
// set GOMAXPROCS below the CPU count under a container CPU quota, and the
// surplus workers would then advance only when preempted.
func checkProcs(cfg bench.Config, procs int) error {
	if cfg.Threads() > procs {
		return fmt.Errorf("%w: %d threads, GOMAXPROCS %d", bench.ErrTooManyThreads, cfg.Threads(), procs)
	}
	return nil
}
