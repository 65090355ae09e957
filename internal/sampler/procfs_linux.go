//go:build linux

package sampler

import (
	"context"

	"github.com/prometheus/procfs"
	"github.com/rileyhilliard/ptop/internal/errors"
)

// procfsReader reads per-process counters straight from /proc. Only the
// stat and io files are touched, which makes it cheaper than gopsutil on
// hosts with thousands of processes.
type procfsReader struct {
	fs procfs.FS
}

func newProcfsReader() (*procfsReader, error) {
	return newProcfsReaderAt(procfs.DefaultMountPoint)
}

func newProcfsReaderAt(mount string) (*procfsReader, error) {
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSample,
			"Can't open "+mount,
			"The procfs backend needs a mounted /proc. Try --backend gopsutil.")
	}
	return &procfsReader{fs: fs}, nil
}

func (r *procfsReader) Pids(ctx context.Context) ([]int32, error) {
	procs, err := r.fs.AllProcs()
	if err != nil {
		return nil, err
	}
	pids := make([]int32, 0, len(procs))
	for _, p := range procs {
		pids = append(pids, int32(p.PID))
	}
	return pids, nil
}

func (r *procfsReader) Read(ctx context.Context, pid int32) (RawSample, bool) {
	p, err := r.fs.Proc(int(pid))
	if err != nil {
		return RawSample{}, false
	}
	stat, err := p.Stat()
	if err != nil {
		return RawSample{}, false
	}

	s := RawSample{
		PID:        pid,
		PPID:       int32(stat.PPID),
		Name:       stat.Comm,
		CPUSeconds: stat.CPUTime(),
		RSSBytes:   uint64(stat.ResidentMemory()),
	}

	// /proc/<pid>/io is root-only for foreign processes.
	if io, err := p.IO(); err == nil {
		s.ReadBytes = io.ReadBytes
		s.WriteBytes = io.WriteBytes
	}

	return s, true
}
