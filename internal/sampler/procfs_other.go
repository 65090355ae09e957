//go:build !linux

package sampler

import (
	"context"
	"runtime"

	"github.com/rileyhilliard/ptop/internal/errors"
)

type procfsReader struct{}

func newProcfsReader() (*procfsReader, error) {
	return nil, errors.New(errors.ErrConfig,
		"The procfs backend only works on linux (this is "+runtime.GOOS+")",
		"Use --backend gopsutil.")
}

func (r *procfsReader) Pids(ctx context.Context) ([]int32, error) { return nil, nil }

func (r *procfsReader) Read(ctx context.Context, pid int32) (RawSample, bool) {
	return RawSample{}, false
}
