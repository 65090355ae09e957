package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/logger"
	"github.com/rileyhilliard/ptop/internal/monitor"
	"github.com/rileyhilliard/ptop/internal/proctable"
	"github.com/rileyhilliard/ptop/internal/render"
	"github.com/rileyhilliard/ptop/internal/sampler"
	"github.com/rileyhilliard/ptop/internal/terminal"
	"github.com/rileyhilliard/ptop/internal/util"
	"go.uber.org/automaxprocs/maxprocs"
)

// probeTimeout bounds the startup sample that checks the counters are readable.
const probeTimeout = 5 * time.Second

// dashboardCommand starts the TUI dashboard and blocks until the user quits
// or SIGINT/SIGTERM arrives.
func dashboardCommand(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	applyColor(cfg.Color)

	log, closeLog := openLog(cfg.Log, os.Stderr)
	defer closeLog()

	// Sampler workers default to GOMAXPROCS, so honor a container CPU quota.
	undoProcs, err := maxprocs.Set(maxprocs.Logger(log.Debug))
	if err != nil {
		log.Warn("leaving GOMAXPROCS as is: %v", err)
	}
	defer undoProcs()

	opts, err := monitorOptions(cfg, log)
	if err != nil {
		return err
	}

	smp, err := sampler.New(sampler.Options{
		Backend:    cfg.Sampler.Backend,
		ProcessNet: cfg.Sampler.ProcessNet,
	})
	if err != nil {
		return err
	}
	if err := probe(parent, smp); err != nil {
		return err
	}

	table, err := newTable(cfg)
	if err != nil {
		return err
	}

	session, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting: interval=%v sort=%s backend=%s", cfg.Interval, cfg.Sort, cfg.Sampler.Backend)

	return session.Guard(func() error {
		final, err := monitor.Run(monitor.NewModel(ctx, smp, table, opts), os.Stdin, os.Stdout)
		ticks := final.Tick().Number
		log.Info("stopped after %d %s (%d dropped, %d skipped)",
			ticks, util.Pluralize(int(ticks), "tick", "ticks"), final.Dropped(), final.Skipped())
		return err
	})
}

// applyColor sets the lipgloss profile for the color mode. "auto" leaves
// terminal detection alone.
func applyColor(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		if termenv.EnvColorProfile() == termenv.Ascii {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
	}
}

// openLog opens the log file behind a non-blocking sink. If the file can't
// be opened, ptop still runs: a warning goes to warnTo and logs are discarded.
func openLog(cfg config.LogConfig, warnTo *os.File) (*logger.Async, func()) {
	path := cfg.File
	if path == "" {
		path = logger.DefaultPath()
	}

	base, closeFile, err := logger.OpenFile(path, cfg.Level)
	if err != nil {
		if warnTo != nil {
			fmt.Fprintf(warnTo, "ptop: logging disabled, can't open %s: %v\n", path, err)
		}
		base, closeFile = logger.Noop(), func() error { return nil }
	}

	async := logger.NewAsync(base, logger.DefaultAsyncBuffer)
	logger.SetDefault(async)
	return async, func() {
		async.Close()
		_ = closeFile()
	}
}

// monitorOptions translates the config into dashboard options.
func monitorOptions(cfg *config.Config, log logger.Logger) (monitor.Options, error) {
	key, err := proctable.ParseSortKey(cfg.Sort)
	if err != nil {
		return monitor.Options{}, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a sort key", cfg.Sort),
			"Use one of: cpu, memory, pid, name.")
	}
	return monitor.Options{
		Interval:   cfg.Interval,
		SortKey:    key,
		Descending: !cfg.Reverse,
		Limit:      cfg.Limit,
		Thresholds: render.Thresholds{
			Warning:  cfg.Thresholds.Warning,
			Critical: cfg.Thresholds.Critical,
		},
		Logger: log,
	}, nil
}

// newTable builds the process table with the configured eviction and filter.
func newTable(cfg *config.Config) (*proctable.Table, error) {
	minMem, err := cfg.MinMemoryBytes()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("filter.min_memory '%s' isn't a size", cfg.Filter.MinMemory),
			"Try something like 512KB, 10MB, or 1GB.")
	}
	table := proctable.New(cfg.EvictAfter)
	table.SetFilter(proctable.Filter{Name: cfg.Filter.Name, MinMemory: minMem})
	return table, nil
}

// probe takes one sample before the terminal is touched, so an unreadable
// /proc or missing permission fails with a normal error message.
func probe(ctx context.Context, s sampler.Sampler) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	snap, err := s.Sample(ctx)
	if err != nil {
		if errors.IsCode(err, errors.ErrSample) {
			return err
		}
		return errors.NewSampleError(err, "the process list")
	}
	if snap == nil || len(snap.Processes) == 0 {
		return errors.NewSampleError(nil, "any processes")
	}
	return nil
}
