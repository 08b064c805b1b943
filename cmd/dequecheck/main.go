// Command dequecheck replays random operation traces against deq.Deque and a reference slice and
// reports every trace where they diverge.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/ogier/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/deq/internal/trace"
)

var (
	optTraces   = pflag.IntP("traces", "t", 1000, "Number of traces to replay")
	optOps      = pflag.IntP("ops", "n", 10000, "Number of operations in every trace")
	optSeed     = pflag.IntP("seed", "s", 0, "Seed of the first trace, 0 means random")
	optWorkers  = pflag.IntP("workers", "w", runtime.GOMAXPROCS(0), "Number of traces replayed in parallel")
	optLogLevel = pflag.StringP("log-level", "l", "info", "Log level: debug, info, warn or error")
)

func main() {
	pflag.Usage = usage
	pflag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*optLogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *optLogLevel)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config{
		traces:  *optTraces,
		ops:     *optOps,
		seed:    uint64(*optSeed),
		workers: *optWorkers,
	}
	if cfg.seed == 0 {
		cfg.seed = rand.Uint64()
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, cfg); err != nil {
		log.Error("Check failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: dequecheck [options]\n\n")
	pflag.PrintDefaults()
}

type config struct {
	traces  int
	ops     int
	seed    uint64
	workers int
}

func (c config) validate() error {
	switch {
	case c.traces < 1:
		return errors.New("traces can't be < 1")
	case c.ops < 1:
		return errors.New("ops can't be < 1")
	case c.workers < 1:
		return errors.New("workers can't be < 1")
	}
	return nil
}

// run replays cfg.traces traces with seeds cfg.seed, cfg.seed+1 and so on. A diverging trace
// doesn't stop the others; all mismatches are joined into the returned error.
func run(ctx context.Context, log *slog.Logger, cfg config) error {
	log.Info("Starting check",
		"traces", cfg.traces,
		"ops", cfg.ops,
		"seed", cfg.seed,
		"workers", cfg.workers,
	)

	var (
		start      = time.Now()
		mu         sync.Mutex
		mismatches []error
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.workers)

	for i := range cfg.traces {
		if groupCtx.Err() != nil {
			break
		}

		seed := cfg.seed + uint64(i)
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			steps := trace.Generate(rand.New(rand.NewPCG(seed, seed)), cfg.ops)
			err := trace.Replay(steps)
			if err == nil {
				log.Debug("Trace passed", "seed", seed)
				return nil
			}

			log.Warn("Trace diverged", "seed", seed, "error", err)
			mu.Lock()
			mismatches = append(mismatches, fmt.Errorf("seed %d: %w", seed, err))
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	log.Info("Finished check",
		"traces", cfg.traces,
		"mismatches", len(mismatches),
		"duration", time.Since(start),
	)

	return errors.Join(mismatches...)
}
