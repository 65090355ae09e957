package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "ptop"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yaml"
	// EnvPrefix prefixes environment overrides (PTOP_INTERVAL, PTOP_SORT, ...).
	EnvPrefix = "PTOP"
)

// NewViper returns a viper instance with defaults and env bindings installed.
// Callers bind CLI flags onto it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (if any) into v and returns the merged config.
// An empty path means "use defaults, env, and flags only".
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Check the path, or drop --config to use defaults")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $XDG_CONFIG_HOME/ptop/config.yaml
// 3. ~/.config/ptop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}

func searchPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, ConfigDirName, ConfigFileName))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, ConfigFileName))
	}
	return paths
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your config"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Sort = strings.ToLower(strings.TrimSpace(cfg.Sort))
	cfg.Sampler.Backend = strings.ToLower(strings.TrimSpace(cfg.Sampler.Backend))

	return cfg, nil
}

// setDefaults mirrors DefaultConfig into viper so env and flag lookups see them.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("interval", d.Interval.String())
	v.SetDefault("sort", d.Sort)
	v.SetDefault("reverse", d.Reverse)
	v.SetDefault("limit", d.Limit)
	v.SetDefault("evict_after", d.EvictAfter)
	v.SetDefault("filter.name", d.Filter.Name)
	v.SetDefault("filter.min_memory", d.Filter.MinMemory)
	v.SetDefault("sampler.backend", d.Sampler.Backend)
	v.SetDefault("sampler.process_net", d.Sampler.ProcessNet)
	v.SetDefault("thresholds.warning", d.Thresholds.Warning)
	v.SetDefault("thresholds.critical", d.Thresholds.Critical)
	v.SetDefault("color", d.Color)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// displayConfig is the YAML shape printed by `ptop config`.
type displayConfig struct {
	Version    int              `yaml:"version"`
	Interval   string           `yaml:"interval"`
	Sort       string           `yaml:"sort"`
	Reverse    bool             `yaml:"reverse"`
	Limit      int              `yaml:"limit"`
	EvictAfter int              `yaml:"evict_after"`
	Filter     FilterConfig     `yaml:"filter"`
	Sampler    SamplerConfig    `yaml:"sampler"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Color      string           `yaml:"color"`
	Log        LogConfig        `yaml:"log"`
}

// Marshal renders the effective config as YAML, with durations as strings.
func Marshal(cfg *Config) ([]byte, error) {
	out := displayConfig{
		Version:    cfg.Version,
		Interval:   cfg.Interval.String(),
		Sort:       cfg.Sort,
		Reverse:    cfg.Reverse,
		Limit:      cfg.Limit,
		EvictAfter: cfg.EvictAfter,
		Filter:     cfg.Filter,
		Sampler:    cfg.Sampler,
		Thresholds: cfg.Thresholds,
		Color:      cfg.Color,
		Log:        cfg.Log,
	}
	return yaml.Marshal(out)
}
