package configloader

import (
	"maps"

	"github.com/yaklabco/gomdhl/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Merge: override wins whenever it is set, so false can be restored
//   - Theme: merged per kind, a kind in override replaces its whole style
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Window != "" {
		result.Window = override.Window
	}
	if override.Merge != nil {
		result.Merge = config.Bool(*override.Merge)
	}

	if override.Debug {
		result.Debug = true
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	result.Theme = mergeTheme(base.Theme, override.Theme)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeTheme overlays override onto a copy of base.
func mergeTheme(base, override map[string]config.Style) map[string]config.Style {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]config.Style, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
