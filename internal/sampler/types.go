// Package sampler reads raw OS counters for every running process and for the
// host as a whole, once per tick.
//
// Counters are cumulative (CPU seconds, bytes read); turning them into rates
// is the rates package's job. A process that exits between enumeration and
// its per-process reads is silently left out of the snapshot. Only a failed
// enumeration, or a failed read of the host-wide counters, is reported as an
// error.
package sampler

import (
	"context"
	"time"
)

// RawSample holds the cumulative counters of one process at one instant.
type RawSample struct {
	PID  int32
	PPID int32
	Name string

	// CPUSeconds is user+system CPU time consumed since the process started.
	CPUSeconds float64
	RSSBytes   uint64

	ReadBytes  uint64
	WriteBytes uint64
	RecvBytes  uint64
	SentBytes  uint64
}

// CoreTimes holds the cumulative busy and total seconds of one CPU core.
type CoreTimes struct {
	Busy  float64
	Total float64
}

// SystemSample holds host-wide counters captured in the same tick as the processes.
type SystemSample struct {
	Cores []CoreTimes

	MemUsed  uint64
	MemTotal uint64

	DiskRead  uint64
	DiskWrite uint64
	NetRecv   uint64
	NetSent   uint64
}

// Snapshot is the result of one Sample call. It is never mutated after capture.
type Snapshot struct {
	Timestamp time.Time
	Processes map[int32]RawSample
	System    SystemSample
}

// Sampler captures a Snapshot of the host.
type Sampler interface {
	Sample(ctx context.Context) (*Snapshot, error)
}
