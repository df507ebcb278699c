package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"terrasim/internal/sims/terrarium"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("terra-sweep", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML file with the base settings")
	size := fs.Int("size", 96, "world width and height")
	steps := fs.Int("steps", 600, "ticks to simulate per scenario")
	seeds := fs.Int("seeds", 2, "world seeds per parameter set")
	workers := fs.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := fs.Int("top", 5, "results to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	base := terrarium.DefaultConfig()
	if *configPath != "" {
		loaded, err := terrarium.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		base = loaded
	}
	base.Width, base.Height = *size, *size

	jobs := scenarios(defaultGrid(), *seeds)
	fmt.Fprintf(stdout, "Sweeping %d scenarios (%d workers, %d steps, %dx%d)\n", len(jobs), *workers, *steps, *size, *size)

	start := time.Now()
	results, err := sweep(ctx, base, jobs, *steps, *workers)
	if err != nil {
		return err
	}
	ranked := rank(results)

	fmt.Fprintf(stdout, "\nTop %d parameter sets (elapsed %s):\n", min(*top, len(ranked)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(ranked) && i < *top; i++ {
		r := ranked[i]
		fmt.Fprintf(stdout, "%2d) score=%.1f germinations=%.1f sprouts=%.1f deaths=%.1f peakPlants=%.1f barren=%.1f %s\n",
			i+1, r.score(), r.germinations, r.sprouts, r.deaths, r.peakPlants, r.barren, r.params)
	}
	return nil
}
