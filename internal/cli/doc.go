// Package cli implements the ptop command-line interface.
//
// The root command runs the dashboard; there is nothing to type after
// "ptop" in normal use. A few helper subcommands hang off it:
//
//	ptop                 - Live process dashboard
//	ptop config          - Print the effective config as YAML
//	ptop version         - Print build information
//	ptop completion SH   - Shell completion script
//
// # Startup
//
// The dashboard path runs these phases before the terminal is touched, so
// that every startup failure prints a plain error and exits 1:
//
//  1. Load and validate config (defaults, file, PTOP_* env, flags)
//  2. Open the log file behind a non-blocking sink
//  3. Build the sampler and take one probe sample
//  4. Capture the terminal state
//
// Then the Bubble Tea program runs until q, Ctrl+C, or SIGTERM.
//
// # Flag Handling
//
// Config-backed flags are persistent on the root command and bound into
// viper, so "ptop config --sort memory" shows exactly what "ptop --sort
// memory" would run with.
package cli
