package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/proctable"
	"github.com/rileyhilliard/ptop/internal/util"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try running ptop again.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ptop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest ptop release.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %v is too short", cfg.Interval),
			fmt.Sprintf("Use at least %v, like 1s or 2s.", MinInterval))
	}

	if _, err := proctable.ParseSortKey(cfg.Sort); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a sort key", cfg.Sort),
			sortSuggestion(cfg.Sort))
	}

	if cfg.Limit < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("limit can't be negative (got %d)", cfg.Limit),
			"Use 0 to fit the terminal, or a positive row count.")
	}

	if cfg.EvictAfter < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("evict_after needs to be at least 1 (got %d)", cfg.EvictAfter),
			"1 removes a process on the first tick it's missing.")
	}

	if _, err := cfg.MinMemoryBytes(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("filter.min_memory '%s' isn't a size", cfg.Filter.MinMemory),
			"Try something like 512KB, 10MB, or 1GB.")
	}

	if err := validateSampler(cfg.Sampler); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sampler' section in your config.")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your config.")
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[cfg.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("color '%s' isn't valid", cfg.Color),
			"Use 'auto', 'always', or 'never'.")
	}

	return nil
}

// sortSuggestion points at the closest sort key names, if any are close.
func sortSuggestion(got string) string {
	names := proctable.SortKeyNames()
	use := "Use one of: " + util.JoinOrDefault(names, "cpu") + "."
	if similar := util.SuggestSimilar(got, names, 1); len(similar) > 0 {
		return fmt.Sprintf("Did you mean '%s'? %s", similar[0], use)
	}
	return use
}

// MinMemoryBytes parses filter.min_memory. An empty value means no threshold.
func (c *Config) MinMemoryBytes() (uint64, error) {
	s := strings.TrimSpace(c.Filter.MinMemory)
	if s == "" {
		return 0, nil
	}
	size, err := datasize.ParseString(s)
	if err != nil {
		return 0, err
	}
	return size.Bytes(), nil
}

// validateSampler checks the sampler backend choice.
func validateSampler(s SamplerConfig) error {
	switch s.Backend {
	case BackendGopsutil, "":
		return nil
	case BackendProcfs:
		if runtime.GOOS != "linux" {
			return fmt.Errorf("sampler.backend 'procfs' only works on linux (this is %s)", runtime.GOOS)
		}
		return nil
	default:
		return fmt.Errorf("sampler.backend '%s' isn't valid - use 'gopsutil' or 'procfs'", s.Backend)
	}
}

// validateThresholds checks the bar color thresholds.
func validateThresholds(thresh ThresholdsConfig) error {
	if thresh.Warning < 0 || thresh.Warning > 100 {
		return fmt.Errorf("thresholds.warning needs to be 0-100 (got %d)", thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > 100 {
		return fmt.Errorf("thresholds.critical needs to be 0-100 (got %d)", thresh.Critical)
	}
	// Both zero means the built-in thresholds. One zero would color every value.
	if thresh.Critical > 0 && thresh.Warning < 1 {
		return fmt.Errorf("thresholds.warning needs to be at least 1 when critical is set (got %d)", thresh.Warning)
	}
	if thresh.Warning > 0 && thresh.Critical < 1 {
		return fmt.Errorf("thresholds.critical needs to be at least 1 when warning is set (got %d)", thresh.Critical)
	}
	if thresh.Warning > 0 && thresh.Critical > 0 && thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.warning (%d%%) is higher than critical (%d%%) - should be the other way around", thresh.Warning, thresh.Critical)
	}
	return nil
}
