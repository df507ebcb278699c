package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"

	"terrasim/internal/app"
	"terrasim/internal/metrics"
	"terrasim/internal/sims/terrarium"
	"terrasim/internal/term"
)

type options struct {
	configPath  string
	speciesPath string
	width       int
	height      int
	ticks       int
	seed        int64
	logLevel    string
	metricsAddr string
	view        bool
	interval    time.Duration
	checkEvery  int
	reseedAfter int
	reportEvery int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("terra-headless", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML file with simulation settings")
	fs.StringVar(&opts.speciesPath, "species", "", "YAML species catalog (defaults to the built-in one)")
	fs.IntVar(&opts.width, "w", 0, "grid width (0 keeps the configured value)")
	fs.IntVar(&opts.height, "h", 0, "grid height (0 keeps the configured value)")
	fs.IntVar(&opts.ticks, "ticks", 1000, "ticks to run (0 runs until interrupted)")
	fs.Int64Var(&opts.seed, "seed", 0, "world seed (0 keeps the configured seed)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&opts.metricsAddr, "metrics", "", "serve Prometheus metrics on this address, e.g. :2112")
	fs.BoolVar(&opts.view, "view", false, "draw the world in the terminal")
	fs.DurationVar(&opts.interval, "interval", 50*time.Millisecond, "tick interval in -view mode")
	fs.IntVar(&opts.checkEvery, "check", 0, "validate grid invariants every N ticks (0 disables)")
	fs.IntVar(&opts.reseedAfter, "reseed-after", 0, "drop a new seed after N barren ticks (0 disables)")
	fs.IntVar(&opts.reportEvery, "report", 250, "log a progress line every N ticks (0 disables)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}
	env, species, err := buildWorld(opts, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	exporter := metrics.NewExporter(reg, "terrasim")
	if opts.metricsAddr != "" {
		srv := &http.Server{Addr: opts.metricsAddr, Handler: metrics.Handler(reg)}
		go func() {
			logger.Info("metrics endpoint listening", "addr", opts.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics endpoint failed", "err", err)
			}
		}()
		defer srv.Close()
	}

	r := &runner{env: env, opts: opts, log: logger, exporter: exporter, species: species}
	if opts.view {
		err = r.view(ctx)
	} else {
		err = r.loop(ctx)
	}
	r.summary()
	return err
}

// buildWorld creates and generates the world, returning it with the species
// names available for reseeding.
func buildWorld(opts options, logger *slog.Logger) (*terrarium.Environment, []string, error) {
	cfg := terrarium.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := terrarium.LoadConfig(opts.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	catalog := terrarium.DefaultCatalog()
	if opts.speciesPath != "" {
		loaded, err := terrarium.LoadCatalog(opts.speciesPath)
		if err != nil {
			return nil, nil, err
		}
		catalog = loaded
	}
	env := terrarium.NewWithConfig(cfg)
	env.SetLogger(logger)
	env.SetTraitSource(catalog)
	env.Reset(opts.seed)
	return env, catalog.Species(), nil
}

type runner struct {
	env      *terrarium.Environment
	opts     options
	log      *slog.Logger
	exporter *metrics.Exporter
	species  []string
	reseeds  int
}

func (r *runner) loop(ctx context.Context) error {
	for r.opts.ticks == 0 || int(r.env.Tick()) < r.opts.ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.step(); err != nil {
			return err
		}
	}
	return nil
}

// step advances one tick and runs the per-tick bookkeeping.
func (r *runner) step() error {
	start := time.Now()
	r.env.Step()
	r.exporter.ObserveTick(time.Since(start))
	return r.afterTick()
}

func (r *runner) afterTick() error {
	r.exporter.Observe(r.env)
	tick := int(r.env.Tick())
	if r.opts.checkEvery > 0 && tick%r.opts.checkEvery == 0 {
		if err := r.env.Validate(); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}
	if r.opts.reseedAfter > 0 && r.env.BarrenTicks() >= r.opts.reseedAfter {
		if x, y, ok := r.env.AddSeed(r.nextSpecies()); ok {
			r.reseeds++
			r.log.Info("reseeded barren world", "tick", tick, "x", x, "y", y)
		}
	}
	if r.opts.reportEvery > 0 && tick%r.opts.reportEvery == 0 {
		r.progress()
	}
	return nil
}

func (r *runner) nextSpecies() string {
	if len(r.species) == 0 {
		return ""
	}
	return r.species[r.reseeds%len(r.species)]
}

func (r *runner) view(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	v := term.NewViewer(screen, r.env, r.env.Config().Seed)
	err = v.Run(ctx, r.opts.interval, func() {
		if err := r.afterTick(); err != nil {
			cancel(err)
		}
	})
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return err
}

func (r *runner) progress() {
	census := r.env.Census()
	r.log.Info("progress",
		"tick", r.env.Tick(),
		"plants", census[terrarium.KindRoot]+census[terrarium.KindStem]+census[terrarium.KindShoot],
		"seeds", census[terrarium.KindSeed],
		"water", census[terrarium.KindWater],
		"clouds", census[terrarium.KindCloud],
		"light", r.env.Light(),
	)
}

func (r *runner) summary() {
	stats := r.env.Stats()
	r.log.Info("run finished",
		"ticks", stats.Ticks,
		"germinations", stats.Germinations,
		"sprouts", stats.Sprouts,
		"plant_deaths", stats.PlantDeaths,
		"seeds_dropped", stats.SeedsDropped,
		"evaporations", stats.Evaporations,
		"rain_drops", stats.RainDrops,
		"reseeds", r.reseeds,
	)
}
