// Package monitor implements the ptop dashboard: a Bubble Tea program that
// samples the host on a fixed interval and redraws the process table.
//
// # Refresh Loop
//
// The model walks one cycle per tick:
//
//	Idle -> Sampling -> Rendering -> WaitingForInterval -> Idle
//
//  1. tickMsg fires at the configured interval (default 2s)
//  2. sampleCmd() runs the Sampler off the model goroutine
//  3. sampleMsg arrives; rates are computed against the previous snapshot
//     and the process table is updated for the new tick
//  4. the frame is rendered at the current terminal size
//
// Only one sample is ever in flight. A tick or forced refresh that arrives
// while a sample is running is dropped and counted (see Model.Dropped).
//
// A failed sample, or a snapshot whose timestamp does not move forward,
// skips the tick. The previous frame stays on screen and the previous
// snapshot stays the baseline for the next tick.
//
// Window resizes are queued and take effect at the next render. Sort,
// reverse and pause redraw from the current table without sampling.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	s           - Cycle sort column (cpu/memory/pid/name)
//	r           - Reverse sort order
//	p, Space    - Pause / resume sampling
//	f           - Refresh now
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
