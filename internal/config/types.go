package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinInterval is the shortest refresh interval allowed.
const MinInterval = 250 * time.Millisecond

// Config represents the complete ptop configuration, after file, env, and flags are merged.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval between samples.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Sort is the initial sort key: cpu, memory, pid, or name.
	Sort string `yaml:"sort" mapstructure:"sort"`

	// Reverse flips the initial order (ascending instead of descending).
	Reverse bool `yaml:"reverse" mapstructure:"reverse"`

	// Limit caps the number of process rows. 0 fits the terminal height.
	Limit int `yaml:"limit" mapstructure:"limit"`

	// EvictAfter is how many consecutive missed ticks remove a process from the table.
	EvictAfter int `yaml:"evict_after" mapstructure:"evict_after"`

	Filter     FilterConfig     `yaml:"filter" mapstructure:"filter"`
	Sampler    SamplerConfig    `yaml:"sampler" mapstructure:"sampler"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`

	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`

	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// FilterConfig hides processes from the list without touching the table.
type FilterConfig struct {
	// Name is a case-insensitive substring the command name must contain.
	Name string `yaml:"name" mapstructure:"name"`

	// MinMemory hides processes with a smaller resident set (e.g. "10MB").
	MinMemory string `yaml:"min_memory" mapstructure:"min_memory"`
}

// SamplerConfig selects and tunes the OS counter source.
type SamplerConfig struct {
	// Backend is "gopsutil" (any OS) or "procfs" (linux only).
	Backend string `yaml:"backend" mapstructure:"backend"`

	// ProcessNet reads per-process network counters from the process's
	// network namespace. These are namespace-wide on most hosts.
	ProcessNet bool `yaml:"process_net" mapstructure:"process_net"`
}

// ThresholdsConfig holds the percentages where bars turn yellow and red.
type ThresholdsConfig struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	// File is where warnings (skipped ticks, clock anomalies) go. Empty uses the default path.
	File string `yaml:"file" mapstructure:"file"`

	// Level is a logrus level name: debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
}

// Backend names.
const (
	BackendGopsutil = "gopsutil"
	BackendProcfs   = "procfs"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		Interval:   2 * time.Second,
		Sort:       "cpu",
		Reverse:    false,
		Limit:      0,
		EvictAfter: 1,
		Sampler: SamplerConfig{
			Backend: BackendGopsutil,
		},
		Thresholds: ThresholdsConfig{
			Warning:  70,
			Critical: 90,
		},
		Color: "auto",
		Log: LogConfig{
			Level: "info",
		},
	}
}
