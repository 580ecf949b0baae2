package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// template is a commented sketch.
	Full bool
}

// DefaultTemplateHeader is the comment written at the top of generated
// configuration files.
const DefaultTemplateHeader = `# gojot configuration
# See: https://github.com/yaklabco/gojot`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		content, err := NewConfig().ToYAMLWithHeader(DefaultTemplateHeader)
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader + "\n\n")
	buf.WriteString(`# Directory for new entries ("~" is your home directory)
# notes_dir: ~/gojot

# Log level: debug, info, warn or error
# log_level: info

# Styled output: auto, always or never
# color: auto

# Undo history depth for edit scripts
# history:
#   capacity: 500

# Keep a copy of the previous version when saving
# backups:
#   enabled: true
#   mode: sidecar

# Extra macros. {{cursor}} marks where the cursor lands; {{date}},
# {{time}}, {{datetime}} and {{weekday}} are filled in when expanding.
# macros:
#   - trigger: /sig
#     expansion: "-- me, {{date}}"
#     description: signature

# Set to false to drop /date, /time, /todo, /timer and /hr
# builtin_macros: true

# HTML export
# export:
#   flavor: gfm
#   detect_languages: true
`)
	return buf.Bytes(), nil
}
