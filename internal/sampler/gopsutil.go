package sampler

import (
	"context"

	"github.com/shirou/gopsutil/process"
)

// gopsutilReader reads per-process counters through gopsutil. Works on linux,
// darwin, windows and the BSDs.
type gopsutilReader struct {
	processNet bool
}

func (r *gopsutilReader) Pids(ctx context.Context) ([]int32, error) {
	return process.PidsWithContext(ctx)
}

func (r *gopsutilReader) Read(ctx context.Context, pid int32) (RawSample, bool) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return RawSample{}, false
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return RawSample{}, false
	}
	times, err := p.TimesWithContext(ctx)
	if err != nil {
		return RawSample{}, false
	}
	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return RawSample{}, false
	}

	s := RawSample{
		PID:        pid,
		Name:       name,
		CPUSeconds: times.User + times.System,
		RSSBytes:   mem.RSS,
	}

	if ppid, err := p.PpidWithContext(ctx); err == nil {
		s.PPID = ppid
	}

	// I/O counters need elevated privileges for other users' processes.
	// Unreadable counters are reported as zero and the process is kept.
	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		s.ReadBytes = io.ReadBytes
		s.WriteBytes = io.WriteBytes
	}

	if r.processNet {
		if ifaces, err := p.NetIOCountersWithContext(ctx, true); err == nil {
			s.RecvBytes, s.SentBytes = sumInterfaces(ifaces)
		}
	}

	return s, true
}
