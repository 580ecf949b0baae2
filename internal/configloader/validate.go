package configloader

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/config"
)

// ValidationError is a configuration validation finding.
type ValidationError struct {
	// Field is the path to the invalid field, e.g. "macros[2].trigger".
	Field string

	Value any

	Message string

	// FilePath is the config file the finding came from, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects validation findings.
type ValidationResult struct {
	// Errors prevent loading.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if strings.TrimSpace(cfg.NotesDir) == "" {
		result.errorf("notes_dir", cfg.NotesDir, "notes_dir must not be empty")
	}
	if cfg.LogLevel != "" && !logging.ValidLevel(cfg.LogLevel) {
		result.errorf("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.errorf("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.History.Capacity < 1 {
		result.errorf("history.capacity", cfg.History.Capacity, "history capacity must be >= 1")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.errorf("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.Export.Flavor != "" && !knownFlavors[cfg.Export.Flavor] {
		result.errorf("export.flavor", cfg.Export.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Export.Flavor)
	}

	validateMacros(cfg, result)
	return result
}

func validateMacros(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Macros))
	for i, m := range cfg.Macros {
		field := fmt.Sprintf("macros[%d]", i)
		switch {
		case m.Trigger == "":
			result.errorf(field+".trigger", m.Trigger, "macro trigger must not be empty")
			continue
		case strings.IndexFunc(m.Trigger, unicode.IsSpace) >= 0:
			result.errorf(field+".trigger", m.Trigger, "macro trigger %q must not contain whitespace", m.Trigger)
			continue
		}
		if strings.Count(m.Expansion, "{{cursor}}") > 1 {
			result.warnf(field+".expansion", m.Expansion, "only the first {{cursor}} is used")
		}
		if prev, ok := seen[m.Trigger]; ok {
			result.warnf(field+".trigger", m.Trigger,
				"trigger %q also defined at macros[%d]; the later definition wins", m.Trigger, prev)
		}
		seen[m.Trigger] = i
	}
}

// ValidateWithFile validates cfg and attributes findings to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
