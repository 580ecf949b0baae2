package editor

import "fmt"

// Position is a location in the buffer.
type Position struct {
	// Line is the 0-based line index.
	Line int

	// Col is the UTF-16 column within the line.
	Col int
}

// Pos is shorthand for Position{Line: line, Col: col}.
func Pos(line, col int) Position {
	return Position{Line: line, Col: col}
}

// Equal reports whether p and other are the same position.
func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Col == other.Col
}

// Before reports whether p comes before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SelectionBounds orders anchor and focus by document position.
func SelectionBounds(anchor, focus Position) (Position, Position) {
	if focus.Before(anchor) {
		return focus, anchor
	}
	return anchor, focus
}
