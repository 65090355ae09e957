// Package testing provides test doubles for the sampler package.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/ptop/internal/sampler"
)

// Step is one scripted Sample result.
type Step struct {
	Snapshot *sampler.Snapshot
	Err      error
}

// FakeSampler returns scripted snapshots in order. Once the script runs out
// it keeps returning the last step.
type FakeSampler struct {
	mu sync.Mutex

	// Configuration
	Steps []Step
	Delay time.Duration // Simulated sampling time
	Block chan struct{} // If set, Sample waits for a receive (or ctx) before returning

	// Call tracking
	Calls int
}

// NewFakeSampler creates a sampler that returns the given snapshots in order.
func NewFakeSampler(snapshots ...*sampler.Snapshot) *FakeSampler {
	f := &FakeSampler{}
	for _, s := range snapshots {
		f.Steps = append(f.Steps, Step{Snapshot: s})
	}
	return f
}

// FailNext appends a step that returns err.
func (f *FakeSampler) FailNext(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Steps = append(f.Steps, Step{Err: err})
}

// Push appends a snapshot step.
func (f *FakeSampler) Push(s *sampler.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Steps = append(f.Steps, Step{Snapshot: s})
}

// Sample implements sampler.Sampler.
func (f *FakeSampler) Sample(ctx context.Context) (*sampler.Snapshot, error) {
	f.mu.Lock()
	idx := f.Calls
	f.Calls++
	delay := f.Delay
	block := f.Block
	var step Step
	if len(f.Steps) > 0 {
		if idx >= len(f.Steps) {
			idx = len(f.Steps) - 1
		}
		step = f.Steps[idx]
	}
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if step.Err != nil {
		return nil, step.Err
	}
	if step.Snapshot == nil {
		return &sampler.Snapshot{Processes: map[int32]sampler.RawSample{}}, nil
	}
	return step.Snapshot, nil
}

// CallCount returns the number of Sample calls so far.
func (f *FakeSampler) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// Snapshot builds a snapshot at ts from the given processes. Handy for scripting steps.
func Snapshot(ts time.Time, sys sampler.SystemSample, procs ...sampler.RawSample) *sampler.Snapshot {
	m := make(map[int32]sampler.RawSample, len(procs))
	for _, p := range procs {
		m[p.PID] = p
	}
	return &sampler.Snapshot{Timestamp: ts, Processes: m, System: sys}
}
