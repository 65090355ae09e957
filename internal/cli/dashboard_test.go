package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/logger"
	"github.com/rileyhilliard/ptop/internal/proctable"
	"github.com/rileyhilliard/ptop/internal/sampler"
	samplertest "github.com/rileyhilliard/ptop/internal/sampler/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyColor(t *testing.T) {
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })

	lipgloss.SetColorProfile(termenv.TrueColor)
	applyColor("auto")
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile(), "auto leaves detection alone")

	applyColor("never")
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
}

func TestOpenLog(t *testing.T) {
	t.Cleanup(func() { logger.SetDefault(logger.Noop()) })
	path := filepath.Join(t.TempDir(), "state", "ptop.log")

	log, closeLog := openLog(config.LogConfig{File: path, Level: "info"}, nil)
	log.Warn("tick skipped: %s", "[SAMPLE] Couldn't read the process list")
	log.Debug("below the level")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick skipped")
	assert.NotContains(t, string(data), "below the level")
	assert.Same(t, log, logger.Default())
}

func TestOpenLog_UnwritablePathFallsBack(t *testing.T) {
	t.Cleanup(func() { logger.SetDefault(logger.Noop()) })
	warn, err := os.Create(filepath.Join(t.TempDir(), "stderr"))
	require.NoError(t, err)
	defer warn.Close()

	// A regular file can't be a parent directory.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	log, closeLog := openLog(config.LogConfig{File: filepath.Join(blocker, "ptop.log")}, warn)
	log.Warn("dropped on the floor")
	closeLog()

	data, err := os.ReadFile(warn.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "logging disabled")
}

func TestMonitorOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sort = "mem"
	cfg.Reverse = true
	cfg.Limit = 12
	cfg.Interval = 3 * time.Second
	cfg.Thresholds = config.ThresholdsConfig{Warning: 50, Critical: 75}

	log := logger.NewBufferLogger()
	opts, err := monitorOptions(cfg, log)
	require.NoError(t, err)

	assert.Equal(t, proctable.SortByMemory, opts.SortKey)
	assert.False(t, opts.Descending)
	assert.Equal(t, 12, opts.Limit)
	assert.Equal(t, 3*time.Second, opts.Interval)
	assert.Equal(t, 50, opts.Thresholds.Warning)
	assert.Equal(t, 75, opts.Thresholds.Critical)
	assert.Same(t, log, opts.Logger)
}

func TestMonitorOptions_DefaultIsDescendingCPU(t *testing.T) {
	opts, err := monitorOptions(config.DefaultConfig(), logger.Noop())
	require.NoError(t, err)

	assert.Equal(t, proctable.SortByCPU, opts.SortKey)
	assert.True(t, opts.Descending)
}

func TestMonitorOptions_BadSort(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sort = "threads"

	_, err := monitorOptions(cfg, logger.Noop())
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestNewTable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Filter = config.FilterConfig{Name: "postgres", MinMemory: "1MB"}

	table, err := newTable(cfg)
	require.NoError(t, err)
	assert.Equal(t, proctable.Filter{Name: "postgres", MinMemory: 1 << 20}, table.Filter())
}

func TestNewTable_BadSize(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Filter.MinMemory = "huge"

	_, err := newTable(cfg)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestProbe(t *testing.T) {
	ok := samplertest.Snapshot(time.Now(), sampler.SystemSample{}, sampler.RawSample{PID: 1, Name: "init"})

	tests := []struct {
		name    string
		fake    func() *samplertest.FakeSampler
		wantErr bool
	}{
		{
			name:    "readable",
			fake:    func() *samplertest.FakeSampler { return samplertest.NewFakeSampler(ok) },
			wantErr: false,
		},
		{
			name: "structured sample error",
			fake: func() *samplertest.FakeSampler {
				f := samplertest.NewFakeSampler()
				f.FailNext(errors.NewSampleError(fmt.Errorf("EACCES"), "/proc"))
				return f
			},
			wantErr: true,
		},
		{
			name: "plain error is wrapped",
			fake: func() *samplertest.FakeSampler {
				f := samplertest.NewFakeSampler()
				f.FailNext(fmt.Errorf("boom"))
				return f
			},
			wantErr: true,
		},
		{
			name:    "no processes",
			fake:    func() *samplertest.FakeSampler { return samplertest.NewFakeSampler() },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := probe(context.Background(), tt.fake())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrSample))
		})
	}
}

func TestProbe_Timeout(t *testing.T) {
	f := samplertest.NewFakeSampler()
	f.Block = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := probe(ctx, f)
	assert.True(t, errors.IsCode(err, errors.ErrSample))
}
