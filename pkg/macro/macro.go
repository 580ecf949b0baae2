// Package macro expands trigger words typed at the cursor, such as /date,
// into their replacement text.
package macro

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/textcol"
)

// CursorPlaceholder marks where the cursor lands after expansion.
const CursorPlaceholder = "{{cursor}}"

//nolint:gochecknoglobals // Compiled pattern is read-only.
var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Macro maps a trigger to its expansion. The expansion may contain
// {{name}} placeholders filled from Vars and one {{cursor}} marker.
type Macro struct {
	Trigger     string `yaml:"trigger"`
	Expansion   string `yaml:"expansion"`
	Description string `yaml:"description,omitempty"`
}

// Vars supplies placeholder values. The editing core has no clock, so the
// host fills date and time values.
type Vars map[string]string

// DefaultVars returns the date and time placeholders for now.
func DefaultVars(now time.Time) Vars {
	return Vars{
		"date":     now.Format(time.DateOnly),
		"time":     now.Format("15:04"),
		"datetime": now.Format("2006-01-02 15:04"),
		"weekday":  now.Weekday().String(),
	}
}

// Defaults returns the built-in macros.
func Defaults() []Macro {
	return []Macro{
		{Trigger: "/date", Expansion: "{{date}}", Description: "Insert today's date"},
		{Trigger: "/time", Expansion: "{{time}}", Description: "Insert the current time"},
		{Trigger: "/todo", Expansion: "- [ ] {{cursor}}", Description: "Start a task item"},
		{Trigger: "/timer", Expansion: "{{{JSX:<Timer duration={300} />}}}", Description: "Insert a five minute timer"},
		{Trigger: "/hr", Expansion: "---", Description: "Insert a horizontal rule"},
	}
}

// Set is an ordered collection of macros, longest trigger first so that a
// trigger that extends another one wins.
type Set struct {
	macros []Macro
}

// NewSet builds a set from macros. When triggers repeat, the last definition
// wins. Macros with an empty trigger are ignored.
func NewSet(macros ...Macro) *Set {
	byTrigger := make(map[string]int, len(macros))
	var out []Macro
	for _, m := range macros {
		if m.Trigger == "" {
			continue
		}
		if i, ok := byTrigger[m.Trigger]; ok {
			out[i] = m
			continue
		}
		byTrigger[m.Trigger] = len(out)
		out = append(out, m)
	}
	slices.SortStableFunc(out, func(a, b Macro) int {
		return cmp.Compare(len(b.Trigger), len(a.Trigger))
	})
	return &Set{macros: out}
}

// Macros returns the macros in match order.
func (s *Set) Macros() []Macro {
	return slices.Clone(s.macros)
}

// Match finds a macro whose trigger ends at col on line and starts the line
// or follows whitespace. It returns the trigger's start column.
func (s *Set) Match(line string, col int) (Macro, int, bool) {
	col = textcol.Clamp(line, col)
	before := textcol.To(line, col)

	for _, m := range s.macros {
		if len(before) < len(m.Trigger) || before[len(before)-len(m.Trigger):] != m.Trigger {
			continue
		}
		head := before[:len(before)-len(m.Trigger)]
		if head != "" {
			r, _ := utf8.DecodeLastRuneInString(head)
			if !unicode.IsSpace(r) {
				continue
			}
		}
		return m, textcol.Len(head), true
	}
	return Macro{}, 0, false
}

// Expand replaces a trigger ending at the cursor with its expansion. It
// reports false, returning s, when there is a selection or no trigger.
func (s *Set) Expand(st *editor.State, vars Vars) (*editor.State, bool) {
	if editor.HasSelection(st) {
		return st, false
	}
	cur := st.ClampPosition(st.Cursor)
	m, start, ok := s.Match(st.Lines[cur.Line], cur.Col)
	if !ok {
		return st, false
	}

	text := Render(m.Expansion, vars)
	head, tail := text, ""
	if i := strings.Index(text, CursorPlaceholder); i >= 0 {
		head, tail = text[:i], text[i+len(CursorPlaceholder):]
	}

	trigger := editor.SetSelection(st, editor.Pos(cur.Line, start), cur)
	out := editor.InsertText(trigger, head)
	mark := out.Cursor
	if tail != "" {
		out = editor.InsertText(out, tail)
		out = editor.SetCursor(out, mark.Line, mark.Col)
	}
	return out, true
}

// Render fills the {{name}} placeholders of expansion from vars. The cursor
// marker and unknown names are left in place.
func Render(expansion string, vars Vars) string {
	return placeholderPattern.ReplaceAllStringFunc(expansion, func(match string) string {
		name := match[2 : len(match)-2]
		if v, ok := vars[name]; ok && match != CursorPlaceholder {
			return v
		}
		return match
	})
}
