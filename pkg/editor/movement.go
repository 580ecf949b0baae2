package editor

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojot/pkg/textcol"
)

// Direction names a cursor movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	DocStart
	DocEnd
	WordLeft
	WordRight
)

//nolint:gochecknoglobals // Read-only lookup table.
var directionNames = map[Direction]string{
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	LineStart: "line-start",
	LineEnd:   "line-end",
	DocStart:  "doc-start",
	DocEnd:    "doc-end",
	WordLeft:  "word-left",
	WordRight: "word-right",
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDirection looks up a direction by its String name.
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == name {
			return d, true
		}
	}
	return 0, false
}

// Move moves the cursor in dir.
//
// With extend set the anchor is fixed at the current cursor (if none exists
// yet) and only the cursor moves. Otherwise any selection is dropped; for
// Left and Up it collapses to its start, for Right and Down to its end,
// without moving further.
func Move(s *State, dir Direction, extend bool) *State {
	if extend {
		anchor := s.Cursor
		if s.Anchor != nil {
			anchor = *s.Anchor
		}
		return s.withCursor(target(s, dir), &anchor)
	}

	if HasSelection(s) {
		start, end := Bounds(s)
		switch dir {
		case Left, Up:
			return s.withCursor(start, nil)
		case Right, Down:
			return s.withCursor(end, nil)
		default:
		}
	}
	return s.withCursor(target(s, dir), nil)
}

// target computes where the cursor lands when moved in dir.
func target(s *State, dir Direction) Position {
	cur := s.ClampPosition(s.Cursor)
	line := s.Lines[cur.Line]
	last := len(s.Lines) - 1

	switch dir {
	case Left:
		if cur.Col > 0 {
			return Position{Line: cur.Line, Col: textcol.Prev(line, cur.Col)}
		}
		if cur.Line > 0 {
			return s.lineEnd(cur.Line - 1)
		}
		return cur
	case Right:
		if cur.Col < textcol.Len(line) {
			return Position{Line: cur.Line, Col: textcol.Next(line, cur.Col)}
		}
		if cur.Line < last {
			return Position{Line: cur.Line + 1}
		}
		return cur
	case Up:
		if cur.Line == 0 {
			return Position{}
		}
		return s.ClampPosition(Position{Line: cur.Line - 1, Col: cur.Col})
	case Down:
		if cur.Line == last {
			return s.docEnd()
		}
		return s.ClampPosition(Position{Line: cur.Line + 1, Col: cur.Col})
	case LineStart:
		return Position{Line: cur.Line}
	case LineEnd:
		return s.lineEnd(cur.Line)
	case DocStart:
		return Position{}
	case DocEnd:
		return s.docEnd()
	case WordLeft:
		return wordLeft(s, cur)
	case WordRight:
		return wordRight(s, cur)
	default:
		return cur
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// wordLeft moves to the start of the word before cur, wrapping to the end of
// the previous line at column 0.
func wordLeft(s *State, cur Position) Position {
	if cur.Col == 0 {
		if cur.Line == 0 {
			return cur
		}
		return s.lineEnd(cur.Line - 1)
	}
	line := s.Lines[cur.Line]
	off := textcol.ByteOffset(line, cur.Col)

	for off > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:off])
		if isWordRune(r) {
			break
		}
		off -= size
	}
	for off > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:off])
		if !isWordRune(r) {
			break
		}
		off -= size
	}
	return Position{Line: cur.Line, Col: textcol.Col(line, off)}
}

// wordRight moves to the end of the word after cur, wrapping to the start of
// the next line at the end of a line.
func wordRight(s *State, cur Position) Position {
	line := s.Lines[cur.Line]
	if cur.Col >= textcol.Len(line) {
		if cur.Line == len(s.Lines)-1 {
			return cur
		}
		return Position{Line: cur.Line + 1}
	}
	off := textcol.ByteOffset(line, cur.Col)

	for off < len(line) {
		r, size := utf8.DecodeRuneInString(line[off:])
		if isWordRune(r) {
			break
		}
		off += size
	}
	for off < len(line) {
		r, size := utf8.DecodeRuneInString(line[off:])
		if !isWordRune(r) {
			break
		}
		off += size
	}
	return Position{Line: cur.Line, Col: textcol.Col(line, off)}
}
