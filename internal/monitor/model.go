package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/logger"
	"github.com/rileyhilliard/ptop/internal/proctable"
	"github.com/rileyhilliard/ptop/internal/rates"
	"github.com/rileyhilliard/ptop/internal/render"
	"github.com/rileyhilliard/ptop/internal/sampler"
)

// State is where the refresh loop is in its cycle.
type State int

const (
	StateIdle State = iota
	StateSampling
	StateRendering
	StateWaitingForInterval
	StateTerminated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	case StateRendering:
		return "rendering"
	case StateWaitingForInterval:
		return "waiting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// TickContext describes the last tick that was applied to the table.
type TickContext struct {
	Number    uint64
	Timestamp time.Time
	// Previous is the baseline the next sample is diffed against.
	Previous *sampler.Snapshot
}

// minSampleTimeout bounds how long one sample may run before it counts as failed.
const minSampleTimeout = 10 * time.Second

// Options configures the dashboard.
type Options struct {
	Interval    time.Duration
	SortKey     proctable.SortKey
	Descending  bool
	Limit       int
	Thresholds  render.Thresholds
	CoresPerRow int
	Paused      bool

	// Logger receives skipped-tick warnings. It must not block; the CLI
	// hands in a logger.Async.
	Logger logger.Logger
}

// Model is the Bubble Tea model for the process dashboard. It owns the
// refresh cycle: tick, sample, compute rates, update the table, render.
type Model struct {
	ctx     context.Context
	sampler sampler.Sampler
	table   *proctable.Table
	log     logger.Logger

	interval    time.Duration
	limit       int
	thresholds  render.Thresholds
	coresPerRow int

	state   State
	tick    TickContext
	summary rates.Summary
	history *History
	frame   string

	size        render.Size
	pendingSize *render.Size

	sortKey    proctable.SortKey
	descending bool
	paused     bool
	showHelp   bool

	coalesced uint64
	skipped   uint64

	keys KeyMap
	help help.Model
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// sampleMsg carries the result of one Sampler call back to the model goroutine.
type sampleMsg struct {
	snapshot *sampler.Snapshot
	err      error
}

// cancelMsg signals that the program context was cancelled (SIGINT/SIGTERM).
type cancelMsg struct{}

// NewModel creates a dashboard model. ctx cancels in-flight samples and, once
// done, terminates the loop.
func NewModel(ctx context.Context, s sampler.Sampler, table *proctable.Table, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	return Model{
		ctx:         ctx,
		sampler:     s,
		table:       table,
		log:         opts.Logger,
		interval:    opts.Interval,
		limit:       opts.Limit,
		thresholds:  opts.Thresholds,
		coresPerRow: opts.CoresPerRow,
		state:       StateIdle,
		history:     NewHistory(DefaultHistorySize),
		sortKey:     opts.SortKey,
		descending:  opts.Descending,
		paused:      opts.Paused,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

// Init fires the first tick right away and starts watching for cancellation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return tickMsg(time.Now()) },
		m.waitForCancel(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateTerminated {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		// Applied at the next render, never mid-frame.
		size := render.Size{Rows: msg.Height, Cols: msg.Width}
		m.pendingSize = &size
		m.help.Width = msg.Width

	case tickMsg:
		return m, m.onTick()

	case sampleMsg:
		m.onSample(msg)

	case cancelMsg:
		m.state = StateTerminated
		return m, tea.Quit
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.state == StateTerminated {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.frame == "" {
		return render.MutedStyle.Render("ptop: waiting for the first sample...")
	}
	return m.frame
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForCancel returns a command that blocks until the program context is done.
func (m Model) waitForCancel() tea.Cmd {
	done := m.ctx.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return cancelMsg{}
	}
}

// sampleCmd runs the sampler off the model goroutine.
func (m Model) sampleCmd() tea.Cmd {
	ctx, s := m.ctx, m.sampler
	timeout := m.sampleTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		snap, err := s.Sample(ctx)
		return sampleMsg{snapshot: snap, err: err}
	}
}

func (m Model) sampleTimeout() time.Duration {
	if t := 5 * m.interval; t > minSampleTimeout {
		return t
	}
	return minSampleTimeout
}

// onTick schedules the next tick and starts a sample unless paused.
func (m *Model) onTick() tea.Cmd {
	next := m.tickCmd()
	if m.state == StateWaitingForInterval {
		m.state = StateIdle
	}
	if m.paused {
		return next
	}
	if cmd := m.startSample("tick"); cmd != nil {
		return tea.Batch(next, cmd)
	}
	return next
}

// startSample moves Idle to Sampling. At most one sample is ever in flight:
// a request that arrives while one is outstanding is dropped, not queued.
func (m *Model) startSample(reason string) tea.Cmd {
	switch {
	case m.state == StateTerminated, m.paused:
		return nil
	case m.state == StateSampling:
		m.coalesced++
		m.log.Debug("%s dropped, sample still in flight (%d dropped so far)", reason, m.coalesced)
		return nil
	}
	m.state = StateSampling
	return m.sampleCmd()
}

// onSample applies a finished sample. Any failure skips the tick: the previous
// frame and baseline snapshot stay as they were. A sample that lands while
// paused is dropped the same way, without counting as skipped.
func (m *Model) onSample(msg sampleMsg) {
	if m.paused {
		// Paused while this sample was in flight: the table, history and
		// frame stay as they were when the user paused.
		m.log.Debug("sample discarded while paused")
		m.state = StateIdle
		return
	}
	if msg.err != nil {
		m.skip(msg.err)
		return
	}
	if msg.snapshot == nil {
		m.skip(errors.NewSampleError(nil, "a snapshot (sampler returned nothing)"))
		return
	}
	if err := m.apply(msg.snapshot); err != nil {
		m.skip(err)
		return
	}

	m.state = StateRendering
	m.renderFrame()
	m.state = StateWaitingForInterval
}

// apply computes rates against the previous snapshot and updates the table.
func (m *Model) apply(snap *sampler.Snapshot) error {
	var (
		computed map[int32]rates.ProcessRates
		summary  rates.Summary
	)

	if prev := m.tick.Previous; prev == nil {
		computed = rates.Fresh(snap.Processes)
		summary = rates.Baseline(snap.System, len(snap.Processes))
	} else {
		elapsed, err := rates.Elapsed(snap.Timestamp, prev.Timestamp)
		if err != nil {
			return err
		}
		computed, err = rates.Compute(snap.Processes, prev.Processes, elapsed)
		if err != nil {
			return err
		}
		summary, err = rates.Summarize(snap.System, prev.System, elapsed, len(snap.Processes))
		if err != nil {
			return err
		}
		// The baseline tick has no CPU reading yet, so only real ones are kept.
		m.history.Push(summary.CPUPercent)
	}

	m.tick = TickContext{
		Number:    m.tick.Number + 1,
		Timestamp: snap.Timestamp,
		Previous:  snap,
	}
	m.table.Update(computed, snap.Processes, m.tick.Number)
	m.summary = summary
	return nil
}

func (m *Model) skip(err error) {
	m.skipped++
	m.log.Warn("tick skipped: %s", errors.Summary(err))
	m.state = StateWaitingForInterval
}

// redraw re-renders from the current table after a display parameter change.
func (m *Model) redraw() {
	if m.tick.Number == 0 {
		return
	}
	m.renderFrame()
}

// renderFrame applies any queued resize and draws the current table.
func (m *Model) renderFrame() {
	if m.pendingSize != nil {
		m.size = *m.pendingSize
		m.pendingSize = nil
	}

	opts := render.Options{
		SortKey:     m.sortKey,
		Descending:  m.descending,
		Paused:      m.paused,
		Thresholds:  m.thresholds,
		CoresPerRow: m.coresPerRow,
		Notice:      "? help",
		CPUHistory:  m.history.Last(render.SparklineWidth),
	}

	limit := m.limit
	if limit <= 0 {
		limit = m.size.Rows - render.HeaderRows(m.summary, m.size, opts)
		if limit < 1 {
			limit = 1
		}
	}

	procs := m.table.Snapshot(m.sortKey, m.descending, limit)
	m.frame = render.Render(m.summary, procs, m.size, opts)
}

// State returns the current loop state.
func (m Model) State() State { return m.state }

// Tick returns the last applied tick.
func (m Model) Tick() TickContext { return m.tick }

// Summary returns the summary behind the current frame.
func (m Model) Summary() rates.Summary { return m.summary }

// Frame returns the last rendered frame.
func (m Model) Frame() string { return m.frame }

// Size returns the size the current frame was drawn at.
func (m Model) Size() render.Size { return m.size }

// SortKey returns the active sort column.
func (m Model) SortKey() proctable.SortKey { return m.sortKey }

// Descending reports whether the list is sorted high to low.
func (m Model) Descending() bool { return m.descending }

// Paused reports whether sampling is suspended.
func (m Model) Paused() bool { return m.paused }

// CPUHistory returns the recorded total CPU readings, oldest first.
func (m Model) CPUHistory() []float64 { return m.history.Last(m.history.Len()) }

// Dropped returns how many ticks were dropped because a sample was still running.
func (m Model) Dropped() uint64 { return m.coalesced }

// Skipped returns how many ticks failed with a sample or clock error.
func (m Model) Skipped() uint64 { return m.skipped }
