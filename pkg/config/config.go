// Package config defines the gojot configuration types.
// These are plain data; discovery and layering live in internal/configloader.
package config

// Flavor is the Markdown flavor used by export.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Backup modes, matching the fsutil backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// Defaults.
const (
	DefaultNotesDir        = "~/gojot"
	DefaultLogLevel        = "info"
	DefaultHistoryCapacity = 500
)

// HistoryConfig sizes the undo history used by edit scripts.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// BackupsConfig controls backups taken before a document is overwritten.
type BackupsConfig struct {
	// Enabled is a pointer so a config layer can switch backups off.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode"`
}

// MacroConfig is a user-defined text macro.
type MacroConfig struct {
	Trigger     string `yaml:"trigger"`
	Expansion   string `yaml:"expansion"`
	Description string `yaml:"description,omitempty"`
}

// ExportConfig controls HTML export.
type ExportConfig struct {
	Flavor          Flavor `yaml:"flavor"`
	DetectLanguages *bool  `yaml:"detect_languages,omitempty"`
}

// Config is the root configuration.
type Config struct {
	// NotesDir is where new documents are created. A leading "~" is the
	// home directory.
	NotesDir string `yaml:"notes_dir"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	Color ColorMode `yaml:"color"`

	History HistoryConfig `yaml:"history"`
	Backups BackupsConfig `yaml:"backups"`

	// Macros are added to the built-in set. A macro with the trigger of a
	// built-in one replaces it.
	Macros []MacroConfig `yaml:"macros,omitempty"`

	// BuiltinMacros enables the built-in macro set. Nil means enabled.
	BuiltinMacros *bool `yaml:"builtin_macros,omitempty"`

	Export ExportConfig `yaml:"export"`

	// CLI-level options (not persisted to config files).

	// Debug forces debug logging.
	Debug bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		NotesDir: DefaultNotesDir,
		LogLevel: DefaultLogLevel,
		Color:    ColorAuto,
		History:  HistoryConfig{Capacity: DefaultHistoryCapacity},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    BackupModeSidecar,
		},
		BuiltinMacros: Bool(true),
		Export: ExportConfig{
			Flavor:          FlavorGFM,
			DetectLanguages: Bool(true),
		},
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// BackupsEnabled reports whether backups are on. Unset means on.
func (c *Config) BackupsEnabled() bool {
	return boolOr(c.Backups.Enabled, true)
}

// DetectLanguages reports whether export labels unlabelled code fences.
func (c *Config) DetectLanguages() bool {
	return boolOr(c.Export.DetectLanguages, true)
}

// UseBuiltinMacros reports whether the built-in macros are active.
func (c *Config) UseBuiltinMacros() bool {
	return boolOr(c.BuiltinMacros, true)
}
