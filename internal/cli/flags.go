package cli

import (
	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DashboardFlags holds the flags that don't map onto a config key.
type DashboardFlags struct {
	ConfigPath string
}

// flagKeys maps each config-backed flag to its viper key.
var flagKeys = map[string]string{
	"interval":    "interval",
	"sort":        "sort",
	"reverse":     "reverse",
	"limit":       "limit",
	"evict-after": "evict_after",
	"filter":      "filter.name",
	"min-memory":  "filter.min_memory",
	"backend":     "sampler.backend",
	"process-net": "sampler.process_net",
	"color":       "color",
	"log-file":    "log.file",
	"log-level":   "log.level",
}

// AddDashboardFlags registers the dashboard flags on a command. Defaults
// mirror config.DefaultConfig so --help shows what you get.
func AddDashboardFlags(cmd *cobra.Command, flags *DashboardFlags) {
	d := config.DefaultConfig()
	f := cmd.PersistentFlags()

	f.StringVar(&flags.ConfigPath, "config", "", "config file (default ~/.config/ptop/config.yaml)")

	f.DurationP("interval", "n", d.Interval, "time between samples (e.g. 500ms, 2s)")
	f.StringP("sort", "s", d.Sort, "initial sort column: cpu, memory, pid, name")
	f.Bool("reverse", d.Reverse, "sort ascending instead of descending")
	f.Int("limit", d.Limit, "max process rows (0 fits the terminal)")
	f.Int("evict-after", d.EvictAfter, "ticks a process may be missing before it leaves the table")
	f.String("filter", d.Filter.Name, "only show commands containing this text")
	f.String("min-memory", d.Filter.MinMemory, "hide processes using less memory than this (e.g. 10MB)")
	f.String("backend", d.Sampler.Backend, "counter source: gopsutil or procfs (linux)")
	f.Bool("process-net", d.Sampler.ProcessNet, "read per-process network counters")
	f.String("color", d.Color, "color output: auto, always, never")
	f.String("log-file", d.Log.File, "log file for skipped ticks (default ~/.local/state/ptop/ptop.log)")
	f.String("log-level", d.Log.Level, "log level: debug, info, warn, error")
}

// BindDashboardFlags wires the config-backed flags into v so that flags
// override env, which overrides the config file.
func BindDashboardFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
