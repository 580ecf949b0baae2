package configloader

import "github.com/yaklabco/gojot/pkg/config"

// merge combines two configurations, with override taking precedence:
//   - scalars: a non-zero override wins
//   - pointers: a non-nil override wins, so a layer can switch a default off
//   - macros: override's macros are appended; later triggers replace
//     earlier ones when the macro set is built
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.NotesDir != "" {
		result.NotesDir = override.NotesDir
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.History.Capacity != 0 {
		result.History.Capacity = override.History.Capacity
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}

	if override.BuiltinMacros != nil {
		result.BuiltinMacros = config.Bool(*override.BuiltinMacros)
	}
	if len(override.Macros) > 0 {
		result.Macros = append(result.Macros, override.Macros...)
	}

	if override.Export.Flavor != "" {
		result.Export.Flavor = override.Export.Flavor
	}
	if override.Export.DetectLanguages != nil {
		result.Export.DetectLanguages = config.Bool(*override.Export.DetectLanguages)
	}

	if override.Debug {
		result.Debug = true
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
