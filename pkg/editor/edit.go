package editor

import (
	"strings"

	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/textcol"
)

// DeleteSelection removes the selected text and places the cursor at the
// selection start. Without an anchor it returns s itself.
func DeleteSelection(s *State) *State {
	if s.Anchor == nil {
		return s
	}
	if !HasSelection(s) {
		return s.withCursor(s.Cursor, nil)
	}

	start, end := Bounds(s)
	joined := textcol.To(s.Lines[start.Line], start.Col) + textcol.From(s.Lines[end.Line], end.Col)
	lines := replaceLines(s.Lines, start.Line, end.Line+1, joined)
	return s.withLines(lines, start)
}

// Backspace deletes the character before the cursor, joining with the
// previous line at column 0. An active selection is deleted instead.
func Backspace(s *State) *State {
	if HasSelection(s) {
		return DeleteSelection(s)
	}

	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]
	if cur.Col > 0 {
		prev := textcol.Prev(line, cur.Col)
		lines := replaceLines(s.Lines, cur.Line, cur.Line+1, textcol.Splice(line, prev, cur.Col, ""))
		return s.withLines(lines, Position{Line: cur.Line, Col: prev})
	}
	if cur.Line == 0 {
		return s
	}

	above := s.Lines[cur.Line-1]
	lines := replaceLines(s.Lines, cur.Line-1, cur.Line+1, above+line)
	return s.withLines(lines, Position{Line: cur.Line - 1, Col: textcol.Len(above)})
}

// DeleteForward deletes the character after the cursor, joining with the
// next line at the end of a line. An active selection is deleted instead.
func DeleteForward(s *State) *State {
	if HasSelection(s) {
		return DeleteSelection(s)
	}

	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]
	if cur.Col < textcol.Len(line) {
		next := textcol.Next(line, cur.Col)
		lines := replaceLines(s.Lines, cur.Line, cur.Line+1, textcol.Splice(line, cur.Col, next, ""))
		return s.withLines(lines, cur)
	}
	if cur.Line == len(s.Lines)-1 {
		return s
	}

	lines := replaceLines(s.Lines, cur.Line, cur.Line+2, line+s.Lines[cur.Line+1])
	return s.withLines(lines, cur)
}

// replaceSelection deletes any selection and drops a collapsed anchor, so the
// result always has no anchor.
func replaceSelection(s *State) *State {
	if HasSelection(s) {
		return DeleteSelection(s)
	}
	if s.Anchor != nil {
		return s.withCursor(s.Cursor, nil)
	}
	return s
}

// InsertCharacter types ch at the cursor, replacing any selection.
//
// A space typed directly after a line consisting of optional tabs and a dash
// turns the line into a bullet prefix.
func InsertCharacter(s *State, ch string) *State {
	if ch == "" {
		return s
	}
	if strings.ContainsAny(ch, "\r\n") {
		return InsertText(s, ch)
	}

	base := replaceSelection(s)
	cur := base.ClampPosition(base.Cursor)
	line := base.Lines[cur.Line]

	if ch == " " && cur.Col == textcol.Len(line) {
		if level, ok := pendingBullet(line); ok {
			prefix := outline.BulletPrefix(level)
			lines := replaceLines(base.Lines, cur.Line, cur.Line+1, prefix)
			return base.withLines(lines, Position{Line: cur.Line, Col: textcol.Len(prefix)})
		}
	}

	lines := replaceLines(base.Lines, cur.Line, cur.Line+1, textcol.Splice(line, cur.Col, cur.Col, ch))
	return base.withLines(lines, Position{Line: cur.Line, Col: cur.Col + textcol.Len(ch)})
}

// pendingBullet reports whether line is tabs followed by a single dash, and
// the bullet level a following space would produce.
func pendingBullet(line string) (int, bool) {
	tabs := strings.TrimRight(line, "-")
	if len(line)-len(tabs) != 1 || strings.Trim(tabs, "\t") != "" {
		return 0, false
	}
	return min(max(len(tabs), 1), outline.MaxBulletIndent), true
}

// InsertTab inserts a literal tab at the cursor.
func InsertTab(s *State) *State {
	return InsertCharacter(s, "\t")
}

// InsertNewline splits the cursor line.
//
// On a bullet line the new line continues the bullet prefix. Pressing Enter
// on a bullet with no content clears the line instead, ending the list.
func InsertNewline(s *State) *State {
	base := replaceSelection(s)
	cur := base.ClampPosition(base.Cursor)
	line := base.Lines[cur.Line]

	if info, ok := outline.ParseBullet(line); ok {
		if line[info.PrefixLength:] == "" {
			lines := replaceLines(base.Lines, cur.Line, cur.Line+1, "")
			return base.withLines(lines, Position{Line: cur.Line})
		}
		prefix := line[:info.PrefixLength]
		split := max(cur.Col, info.PrefixLength)
		lines := replaceLines(base.Lines, cur.Line, cur.Line+1,
			textcol.To(line, split), prefix+textcol.From(line, split))
		return base.withLines(lines, Position{Line: cur.Line + 1, Col: info.PrefixLength})
	}

	lines := replaceLines(base.Lines, cur.Line, cur.Line+1,
		textcol.To(line, cur.Col), textcol.From(line, cur.Col))
	return base.withLines(lines, Position{Line: cur.Line + 1})
}

// InsertText inserts possibly multi-line text at the cursor, replacing any
// selection. The cursor ends up after the inserted text.
func InsertText(s *State, text string) *State {
	if text == "" {
		return replaceSelection(s)
	}
	base := replaceSelection(s)
	cur := base.ClampPosition(base.Cursor)
	line := base.Lines[cur.Line]
	before, after := textcol.To(line, cur.Col), textcol.From(line, cur.Col)

	parts := SplitLines(text)
	if len(parts) == 1 {
		lines := replaceLines(base.Lines, cur.Line, cur.Line+1, before+text+after)
		return base.withLines(lines, Position{Line: cur.Line, Col: cur.Col + textcol.Len(text)})
	}

	last := len(parts) - 1
	repl := make([]string, 0, len(parts))
	repl = append(repl, before+parts[0])
	repl = append(repl, parts[1:last]...)
	repl = append(repl, parts[last]+after)

	lines := replaceLines(base.Lines, cur.Line, cur.Line+1, repl...)
	return base.withLines(lines, Position{Line: cur.Line + last, Col: textcol.Len(parts[last])})
}

// Indent handles Tab. On a bullet line below the maximum depth it adds one
// level of indentation; otherwise it inserts a literal tab.
func Indent(s *State) *State {
	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]

	info, ok := outline.ParseBullet(line)
	if !ok || info.IndentLevel >= outline.MaxBulletIndent {
		return InsertTab(s)
	}
	return shiftLine(s, cur.Line, "\t"+line, 1)
}

// Outdent handles Shift+Tab. On a bullet line deeper than level one it removes
// one level of indentation; otherwise it returns s unchanged.
func Outdent(s *State) *State {
	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]

	info, ok := outline.ParseBullet(line)
	if !ok || info.IndentLevel <= 1 {
		return s
	}
	return shiftLine(s, cur.Line, line[1:], -1)
}

// shiftLine replaces line idx with text and moves any cursor or anchor on that
// line by delta columns.
func shiftLine(s *State, idx int, text string, delta int) *State {
	lines := replaceLines(s.Lines, idx, idx+1, text)
	out := s.withLines(lines, shiftPos(s.Cursor, idx, delta))
	if s.Anchor != nil {
		anchor := out.ClampPosition(shiftPos(*s.Anchor, idx, delta))
		out.Anchor = &anchor
	}
	return out
}

func shiftPos(p Position, line, delta int) Position {
	if p.Line == line {
		p.Col = max(p.Col+delta, 0)
	}
	return p
}
