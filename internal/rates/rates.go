// Package rates turns two consecutive samples into per-second rates.
package rates

import (
	"time"

	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/sampler"
)

// ProcessRates holds the per-second rates of one process over one tick.
// CPUPercent ranges from 0 to 100 times the core count.
type ProcessRates struct {
	CPUPercent float64
	ReadRate   float64
	WriteRate  float64
	RecvRate   float64
	SendRate   float64
}

// Summary holds the host-wide figures shown in the header.
type Summary struct {
	CorePercents []float64
	CPUPercent   float64

	MemUsed  uint64
	MemTotal uint64

	DiskReadRate  float64
	DiskWriteRate float64
	NetRecvRate   float64
	NetSendRate   float64

	ProcessCount int
}

// MemPercent returns used memory as a percentage of total.
func (s Summary) MemPercent() float64 {
	if s.MemTotal == 0 {
		return 0
	}
	return float64(s.MemUsed) / float64(s.MemTotal) * 100
}

// Elapsed returns the seconds between two sample timestamps, or a ClockError
// when the clock stood still or went backwards.
func Elapsed(cur, prev time.Time) (float64, error) {
	elapsed := cur.Sub(prev).Seconds()
	if elapsed <= 0 {
		return 0, errors.NewClockError(elapsed)
	}
	return elapsed, nil
}

// Compute derives rates for every process in current.
//
// A pid present in both maps gets (current - previous) / elapsed, clamped
// at zero. A pid only in current is new this tick and gets all-zero rates.
// A pid only in previous has exited and is not emitted.
func Compute(current, previous map[int32]sampler.RawSample, elapsed float64) (map[int32]ProcessRates, error) {
	if elapsed <= 0 {
		return nil, errors.NewClockError(elapsed)
	}

	out := make(map[int32]ProcessRates, len(current))
	for pid, cur := range current {
		prev, ok := previous[pid]
		if !ok {
			out[pid] = ProcessRates{}
			continue
		}
		out[pid] = ProcessRates{
			CPUPercent: clampFloat(cur.CPUSeconds-prev.CPUSeconds) / elapsed * 100,
			ReadRate:   counterRate(cur.ReadBytes, prev.ReadBytes, elapsed),
			WriteRate:  counterRate(cur.WriteBytes, prev.WriteBytes, elapsed),
			RecvRate:   counterRate(cur.RecvBytes, prev.RecvBytes, elapsed),
			SendRate:   counterRate(cur.SentBytes, prev.SentBytes, elapsed),
		}
	}
	return out, nil
}

// Summarize derives host-wide figures. Per-core percentages are busy/total
// over the tick and read 0 without a baseline. Overall CPU is the mean of the cores.
func Summarize(cur, prev sampler.SystemSample, elapsed float64, processCount int) (Summary, error) {
	if elapsed <= 0 {
		return Summary{}, errors.NewClockError(elapsed)
	}

	s := Summary{
		CorePercents:  make([]float64, len(cur.Cores)),
		MemUsed:       cur.MemUsed,
		MemTotal:      cur.MemTotal,
		DiskReadRate:  counterRate(cur.DiskRead, prev.DiskRead, elapsed),
		DiskWriteRate: counterRate(cur.DiskWrite, prev.DiskWrite, elapsed),
		NetRecvRate:   counterRate(cur.NetRecv, prev.NetRecv, elapsed),
		NetSendRate:   counterRate(cur.NetSent, prev.NetSent, elapsed),
		ProcessCount:  processCount,
	}

	var sum float64
	for i, core := range cur.Cores {
		if i < len(prev.Cores) {
			s.CorePercents[i] = corePercent(core, prev.Cores[i])
		}
		sum += s.CorePercents[i]
	}
	if len(cur.Cores) > 0 {
		s.CPUPercent = sum / float64(len(cur.Cores))
	}

	return s, nil
}

// Baseline builds the summary for the very first tick, when there is nothing
// to diff against: memory and process count only, every rate zero.
func Baseline(cur sampler.SystemSample, processCount int) Summary {
	return Summary{
		CorePercents: make([]float64, len(cur.Cores)),
		MemUsed:      cur.MemUsed,
		MemTotal:     cur.MemTotal,
		ProcessCount: processCount,
	}
}

// Fresh returns all-zero rates for every process in current, for the first tick.
func Fresh(current map[int32]sampler.RawSample) map[int32]ProcessRates {
	out := make(map[int32]ProcessRates, len(current))
	for pid := range current {
		out[pid] = ProcessRates{}
	}
	return out
}

func corePercent(cur, prev sampler.CoreTimes) float64 {
	total := cur.Total - prev.Total
	if total <= 0 {
		return 0
	}
	busy := clampFloat(cur.Busy - prev.Busy)
	pct := busy / total * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// counterRate clamps counter resets and wraps to zero.
func counterRate(cur, prev uint64, elapsed float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / elapsed
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
