package export

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageText is returned when no language could be determined.
const LanguageText = "text"

//nolint:gochecknoglobals // Read-only classifier candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown",
}

// languageHint is a cheap check that settles the common cases before the
// classifier runs.
type languageHint struct {
	lang  string
	match func(trimmed []byte, s string) bool
}

//nolint:gochecknoglobals // Read-only hint table, tried in order.
var languageHints = []languageHint{
	{"go", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package ")) || bytes.HasPrefix(trimmed, []byte("func "))
	}},
	{"python", func(_ []byte, s string) bool {
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__")
	}},
	{"html", func(trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"sql", func(_ []byte, s string) bool {
		upper := strings.ToUpper(strings.TrimSpace(s))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"yaml", func(_ []byte, s string) bool {
		keys := 0
		for line := range strings.Lines(s) {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "- ") ||
				(strings.Contains(line, ": ") && !strings.ContainsAny(line, "({\"")) {
				keys++
			}
		}
		return keys >= 2
	}},
}

// DetectLanguage guesses the fence tag for a code block. A shebang wins,
// then the hint table, then go-enry's classifier when it is confident.
func DetectLanguage(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LanguageText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	trimmed := bytes.TrimSpace(content)
	s := string(content)
	for _, hint := range languageHints {
		if hint.match(trimmed, s) {
			return hint.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}
	return LanguageText
}

// fenceTag converts a go-enry language name to a fence info string.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
