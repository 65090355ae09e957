package sampler

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/logger"
)

// Backend names accepted by New.
const (
	BackendGopsutil = "gopsutil"
	BackendProcfs   = "procfs"
)

// processReader enumerates processes and reads their counters.
// Read returns ok=false when the process vanished or its required
// counters could not be read; such processes are left out of the snapshot.
type processReader interface {
	Pids(ctx context.Context) ([]int32, error)
	Read(ctx context.Context, pid int32) (RawSample, bool)
}

// Options configures a Collector.
type Options struct {
	// Backend is BackendGopsutil (default) or BackendProcfs.
	Backend string

	// ProcessNet fills per-process network counters (gopsutil backend only).
	ProcessNet bool

	// Workers bounds concurrent per-process reads. 0 uses GOMAXPROCS.
	Workers int

	// Clock stamps snapshots. Defaults to time.Now.
	Clock func() time.Time

	// Logger receives per-tick diagnostics. Defaults to logger.Default().
	Logger logger.Logger
}

// Collector implements Sampler on top of a process reader and the shared system reader.
type Collector struct {
	procs   processReader
	system  systemReader
	clock   func() time.Time
	workers int
	log     logger.Logger
}

// New builds a Collector for the configured backend.
func New(opts Options) (*Collector, error) {
	var procs processReader
	switch opts.Backend {
	case BackendGopsutil, "":
		procs = &gopsutilReader{processNet: opts.ProcessNet}
	case BackendProcfs:
		r, err := newProcfsReader()
		if err != nil {
			return nil, err
		}
		procs = r
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown sampler backend: "+opts.Backend,
			"Use 'gopsutil' or 'procfs'.")
	}
	return newCollector(procs, readSystem, opts), nil
}

func newCollector(procs processReader, system systemReader, opts Options) *Collector {
	c := &Collector{
		procs:   procs,
		system:  system,
		clock:   opts.Clock,
		workers: opts.Workers,
		log:     opts.Logger,
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	if c.log == nil {
		c.log = logger.Default()
	}
	return c
}

// Sample captures one snapshot. The timestamp is taken after enumeration so
// that it sits close to the moment the counters were actually read.
func (c *Collector) Sample(ctx context.Context) (*Snapshot, error) {
	pids, err := c.procs.Pids(ctx)
	if err != nil {
		return nil, errors.NewSampleError(err, "process list")
	}

	ts := c.clock()
	processes := c.readAll(ctx, pids)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sys, err := c.system(ctx)
	if err != nil {
		return nil, err
	}

	c.log.Debug("sampled %d of %d processes", len(processes), len(pids))

	return &Snapshot{
		Timestamp: ts,
		Processes: processes,
		System:    sys,
	}, nil
}

// readAll fans per-process reads out to a bounded set of workers.
func (c *Collector) readAll(ctx context.Context, pids []int32) map[int32]RawSample {
	out := make(map[int32]RawSample, len(pids))
	if len(pids) == 0 {
		return out
	}

	jobs := make(chan int32)
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := c.workers
	if workers > len(pids) {
		workers = len(pids)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pid := range jobs {
				s, ok := c.procs.Read(ctx, pid)
				if !ok {
					continue
				}
				mu.Lock()
				out[pid] = s
				mu.Unlock()
			}
		}()
	}

feed:
	for _, pid := range pids {
		select {
		case jobs <- pid:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return out
}
