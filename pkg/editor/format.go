package editor

import (
	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/textcol"
)

// Inline format markers accepted by ToggleInlineFormat.
const (
	MarkerBold          = "**"
	MarkerItalic        = "*"
	MarkerUnderline     = "__"
	MarkerStrikethrough = "~~"
)

// IsFormatMarker reports whether marker is one of the inline format markers.
func IsFormatMarker(marker string) bool {
	switch marker {
	case MarkerBold, MarkerItalic, MarkerUnderline, MarkerStrikethrough:
		return true
	default:
		return false
	}
}

// ToggleInlineFormat wraps or unwraps the selection in marker.
//
// Without a selection an empty marker pair is inserted with the cursor
// between the halves. A single-line selection that is already wrapped in
// marker, either just outside or at its own edges, is unwrapped; otherwise
// the markers are added and the selection covers the wrapped content.
// Multi-line selections and unknown markers return s unchanged.
func ToggleInlineFormat(s *State, marker string) *State {
	if !IsFormatMarker(marker) {
		return s
	}
	if !HasSelection(s) {
		cur := s.ClampPosition(s.Cursor)
		line := s.Lines[cur.Line]
		lines := replaceLines(s.Lines, cur.Line, cur.Line+1, textcol.Splice(line, cur.Col, cur.Col, marker+marker))
		return s.withLines(lines, Position{Line: cur.Line, Col: cur.Col + len(marker)})
	}

	start, end := Bounds(s)
	if start.Line != end.Line {
		return s
	}

	idx := start.Line
	line := s.Lines[idx]
	m := len(marker)
	from, to := start.Col, end.Col

	switch {
	case wrappedOutside(line, from, to, marker):
		text := textcol.To(line, from-m) + textcol.Slice(line, from, to) + textcol.From(line, to+m)
		return reselect(s, idx, text, from-m, to-m)
	case wrappedInside(line, from, to, marker):
		text := textcol.To(line, from) + textcol.Slice(line, from+m, to-m) + textcol.From(line, to)
		return reselect(s, idx, text, from, to-2*m)
	default:
		text := textcol.To(line, from) + marker + textcol.Slice(line, from, to) + marker + textcol.From(line, to)
		return reselect(s, idx, text, from+m, to+m)
	}
}

// wrappedOutside reports whether marker sits directly around [from, to).
func wrappedOutside(line string, from, to int, marker string) bool {
	m := len(marker)
	if from < m || to+m > textcol.Len(line) {
		return false
	}
	if textcol.Slice(line, from-m, from) != marker || textcol.Slice(line, to, to+m) != marker {
		return false
	}
	if marker == MarkerItalic {
		// A star that belongs to a bold pair is not an italic marker.
		if from-m > 0 && textcol.Slice(line, from-m-1, from-m) == MarkerItalic {
			return false
		}
		if textcol.Slice(line, to+m, to+m+1) == MarkerItalic {
			return false
		}
	}
	return true
}

// wrappedInside reports whether [from, to) itself begins and ends with marker.
func wrappedInside(line string, from, to int, marker string) bool {
	m := len(marker)
	if to-from < 2*m+1 {
		return false
	}
	inner := textcol.Slice(line, from, to)
	if inner[:m] != marker || inner[len(inner)-m:] != marker {
		return false
	}
	if marker == MarkerItalic && (inner[1] == '*' || inner[len(inner)-2] == '*') {
		return false
	}
	return true
}

// reselect replaces line idx with text and selects [from, to) on it, keeping
// the direction of the original selection.
func reselect(s *State, idx int, text string, from, to int) *State {
	lines := replaceLines(s.Lines, idx, idx+1, text)
	anchor, focus := Position{Line: idx, Col: from}, Position{Line: idx, Col: to}
	if s.Cursor.Before(*s.Anchor) {
		anchor, focus = focus, anchor
	}
	out := s.withLines(lines, focus)
	anchor = out.ClampPosition(anchor)
	out.Anchor = &anchor
	return out
}

// ToggleCollapse adds or removes the collapse marker of the heading at the
// cursor. The cursor stays on the same character. Non-heading lines return s.
func ToggleCollapse(s *State) *State {
	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]
	info, ok := outline.ParseHeading(line)
	if !ok {
		return s
	}

	toggled := outline.ToggleCollapsed(line)
	at := info.PrefixLength - info.Level - 1
	if info.Collapsed {
		at -= len(outline.CollapseMarker)
	}
	delta := len(toggled) - len(line)

	col := cur.Col
	if col >= at {
		col = max(col+delta, at)
	}
	lines := replaceLines(s.Lines, cur.Line, cur.Line+1, toggled)
	return s.withLines(lines, Position{Line: cur.Line, Col: col})
}
