package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/gojot/pkg/config"
)

// EnvVarPrefix is the prefix of all gojot environment variables.
const EnvVarPrefix = "GOJOT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"NOTES_DIR":               {"notes_dir", envTypeString, "Directory for new entries"},
	"LOG_LEVEL":               {"log_level", envTypeString, "Log level: debug, info, warn or error"},
	"COLOR":                   {"color", envTypeString, "Styled output: auto, always or never"},
	"HISTORY_CAPACITY":        {"history.capacity", envTypeInt, "Undo history depth"},
	"BACKUPS_ENABLED":         {"backups.enabled", envTypeBool, "Keep the previous version when saving: true or false"},
	"BACKUPS_MODE":            {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"BUILTIN_MACROS":          {"builtin_macros", envTypeBool, "Enable built-in macros: true or false"},
	"EXPORT_FLAVOR":           {"export.flavor", envTypeString, "Export flavor: commonmark or gfm"},
	"EXPORT_DETECT_LANGUAGES": {"export.detect_languages", envTypeBool, "Label unlabelled code fences: true or false"},
}

// LoadFromEnv applies GOJOT_* overrides to cfg. A nil getenv reads the
// process environment.
func LoadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	for suffix, mapping := range envMappings {
		envVar := EnvVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "notes_dir":
		cfg.NotesDir = value
	case "log_level":
		cfg.LogLevel = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "export.flavor":
		cfg.Export.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	case "builtin_macros":
		cfg.BuiltinMacros = config.Bool(value)
	case "export.detect_languages":
		cfg.Export.DetectLanguages = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "history.capacity":
		cfg.History.Capacity = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        EnvVarPrefix + suffix,
			Field:       mapping.field,
			Description: mapping.description,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
