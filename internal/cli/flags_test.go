package cli

import (
	"testing"
	"time"

	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDashboardFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	AddDashboardFlags(cmd, &DashboardFlags{})

	for name := range flagKeys {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag --%s", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("n"))
	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("s"))
}

func TestAddDashboardFlags_DefaultsMatchConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	AddDashboardFlags(cmd, &DashboardFlags{})
	d := config.DefaultConfig()

	f := cmd.PersistentFlags()
	assert.Equal(t, d.Interval.String(), f.Lookup("interval").DefValue)
	assert.Equal(t, d.Sort, f.Lookup("sort").DefValue)
	assert.Equal(t, "1", f.Lookup("evict-after").DefValue)
	assert.Equal(t, d.Sampler.Backend, f.Lookup("backend").DefValue)
}

func TestBindDashboardFlags(t *testing.T) {
	isolateConfig(t)
	v := config.NewViper()
	flags := &DashboardFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddDashboardFlags(cmd, flags)
	require.NoError(t, BindDashboardFlags(cmd, v))

	require.NoError(t, cmd.PersistentFlags().Parse([]string{
		"-n", "500ms",
		"-s", "memory",
		"--reverse",
		"--limit", "10",
		"--evict-after", "3",
		"--filter", "sshd",
		"--min-memory", "20MB",
		"--process-net",
		"--color", "never",
		"--log-level", "debug",
		"--config", "/tmp/somewhere.yaml",
	}))

	cfg, err := config.Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, "memory", cfg.Sort)
	assert.True(t, cfg.Reverse)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, 3, cfg.EvictAfter)
	assert.Equal(t, "sshd", cfg.Filter.Name)
	assert.Equal(t, "20MB", cfg.Filter.MinMemory)
	assert.True(t, cfg.Sampler.ProcessNet)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/somewhere.yaml", flags.ConfigPath)
}

func TestBindDashboardFlags_UnsetFlagsKeepDefaults(t *testing.T) {
	isolateConfig(t)
	v := config.NewViper()
	cmd := &cobra.Command{Use: "test"}
	AddDashboardFlags(cmd, &DashboardFlags{})
	require.NoError(t, BindDashboardFlags(cmd, v))
	require.NoError(t, cmd.PersistentFlags().Parse(nil))

	cfg, err := config.Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}
