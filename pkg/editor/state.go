package editor

import (
	"slices"
	"strings"

	"github.com/yaklabco/gojot/pkg/textcol"
)

// State is an immutable snapshot of the buffer, cursor and selection.
//
// Lines always holds at least one element. Cursor and Anchor, when set, are
// valid positions within Lines. A selection exists when Anchor is set and
// differs from Cursor; the anchor is the fixed end and the cursor the moving
// end.
type State struct {
	Lines  []string
	Cursor Position
	Anchor *Position

	// CursorVisible is toggled by the host's blink timer.
	CursorVisible bool
}

// New returns an empty buffer with the cursor at the origin.
func New() *State {
	return &State{
		Lines:         []string{""},
		CursorVisible: true,
	}
}

// FromLines returns a state holding a copy of lines with the cursor at the
// origin. An empty slice yields an empty buffer.
func FromLines(lines []string) *State {
	if len(lines) == 0 {
		return New()
	}
	return &State{
		Lines:         slices.Clone(lines),
		CursorVisible: true,
	}
}

// FromText splits text on newlines into a state. CRLF line endings are
// normalised to LF.
func FromText(text string) *State {
	return FromLines(SplitLines(text))
}

// SplitLines splits text into buffer lines, normalising CRLF to LF.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// Text joins the buffer lines with newlines.
func (s *State) Text() string {
	return strings.Join(s.Lines, "\n")
}

// LineCount returns the number of lines in the buffer.
func (s *State) LineCount() int {
	return len(s.Lines)
}

// Line returns the text of line i, or "" when i is out of range.
func (s *State) Line(i int) string {
	if i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

// CurrentLine returns the text of the cursor line.
func (s *State) CurrentLine() string {
	return s.Line(s.Cursor.Line)
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := *s
	out.Lines = slices.Clone(s.Lines)
	if s.Anchor != nil {
		anchor := *s.Anchor
		out.Anchor = &anchor
	}
	return &out
}

// SameContent reports whether s and other hold identical lines.
func (s *State) SameContent(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.Equal(s.Lines, other.Lines)
}

// ClampPosition bounds p to a valid position in s.
func (s *State) ClampPosition(p Position) Position {
	if len(s.Lines) == 0 {
		return Position{}
	}
	line := min(max(p.Line, 0), len(s.Lines)-1)
	return Position{Line: line, Col: textcol.Clamp(s.Lines[line], p.Col)}
}

// lineEnd returns the position at the end of line i.
func (s *State) lineEnd(i int) Position {
	return Position{Line: i, Col: textcol.Len(s.Lines[i])}
}

// docEnd returns the position at the end of the last line.
func (s *State) docEnd() Position {
	return s.lineEnd(len(s.Lines) - 1)
}

// withLines builds a new state from lines and a cursor, dropping the
// selection. The lines slice is owned by the new state.
func (s *State) withLines(lines []string, cursor Position) *State {
	if len(lines) == 0 {
		lines = []string{""}
	}
	out := &State{Lines: lines, CursorVisible: s.CursorVisible}
	out.Cursor = out.ClampPosition(cursor)
	return out
}

// withCursor returns a copy of s sharing its lines, with a new cursor and
// anchor. A nil anchor clears the selection.
func (s *State) withCursor(cursor Position, anchor *Position) *State {
	out := &State{Lines: s.Lines, CursorVisible: s.CursorVisible}
	out.Cursor = s.ClampPosition(cursor)
	if anchor != nil {
		a := s.ClampPosition(*anchor)
		out.Anchor = &a
	}
	return out
}

// HasSelection reports whether s has a non-empty selection.
func HasSelection(s *State) bool {
	return s.Anchor != nil && !s.Anchor.Equal(s.Cursor)
}

// Bounds returns the ordered selection bounds of s. Without a selection both
// bounds are the cursor.
func Bounds(s *State) (Position, Position) {
	if s.Anchor == nil {
		return s.Cursor, s.Cursor
	}
	return SelectionBounds(*s.Anchor, s.Cursor)
}

// SelectedText returns the selected text of s, or "" without a selection.
func SelectedText(s *State) string {
	if !HasSelection(s) {
		return ""
	}
	start, end := Bounds(s)
	if start.Line == end.Line {
		return textcol.Slice(s.Lines[start.Line], start.Col, end.Col)
	}

	parts := make([]string, 0, end.Line-start.Line+1)
	parts = append(parts, textcol.From(s.Lines[start.Line], start.Col))
	parts = append(parts, s.Lines[start.Line+1:end.Line]...)
	parts = append(parts, textcol.To(s.Lines[end.Line], end.Col))
	return strings.Join(parts, "\n")
}

// SetCursor moves the cursor to the clamped position and clears the selection.
func SetCursor(s *State, line, col int) *State {
	return s.withCursor(Position{Line: line, Col: col}, nil)
}

// SetSelection selects from anchor to focus, clamping both.
func SetSelection(s *State, anchor, focus Position) *State {
	return s.withCursor(focus, &anchor)
}

// SelectAll selects the whole buffer with the cursor at the end.
func SelectAll(s *State) *State {
	return SetSelection(s, Position{}, s.docEnd())
}

// ClearSelection drops the anchor, leaving the cursor in place.
func ClearSelection(s *State) *State {
	if s.Anchor == nil {
		return s
	}
	return s.withCursor(s.Cursor, nil)
}

// SetCursorVisible sets the blink state of the cursor.
func SetCursorVisible(s *State, visible bool) *State {
	if s.CursorVisible == visible {
		return s
	}
	out := *s
	out.CursorVisible = visible
	return &out
}

// ToggleCursorVisible flips the blink state of the cursor.
func ToggleCursorVisible(s *State) *State {
	return SetCursorVisible(s, !s.CursorVisible)
}

// replaceLines returns a copy of lines with lines[from:to] replaced by repl.
func replaceLines(lines []string, from, to int, repl ...string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}
