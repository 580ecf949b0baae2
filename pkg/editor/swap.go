package editor

import (
	"github.com/yaklabco/gojot/pkg/outline"
)

// SwapLineUp exchanges the cursor line with the line above. With a
// multi-line selection the selected block moves instead. At the first line it
// returns s unchanged.
func SwapLineUp(s *State) *State {
	first, last := lineBlock(s, false)
	return moveBlockUp(s, first, last, 0)
}

// SwapLineDown exchanges the cursor line with the line below. With a
// multi-line selection the selected block moves instead. At the last line it
// returns s unchanged.
func SwapLineDown(s *State) *State {
	first, last := lineBlock(s, false)
	return moveBlockDown(s, first, last, 0)
}

// SwapHeadingSectionUp moves the heading section at the cursor above the
// preceding section at the same or a shallower level. On a non-heading line
// it behaves like SwapLineUp.
func SwapHeadingSectionUp(s *State) *State {
	first, last := lineBlock(s, true)
	return moveBlockUp(s, first, last, outline.HeadingLevel(s.Lines[first]))
}

// SwapHeadingSectionDown moves the heading section at the cursor below the
// following section at the same or a shallower level. On a non-heading line
// it behaves like SwapLineDown.
func SwapHeadingSectionDown(s *State) *State {
	first, last := lineBlock(s, true)
	return moveBlockDown(s, first, last, outline.HeadingLevel(s.Lines[first]))
}

// lineBlock returns the inclusive line range that moves as a unit.
//
// A multi-line selection moves whole, together with any lines folded under
// its last line. Otherwise the cursor line moves, along with its section
// when sections is set and the line is a heading.
func lineBlock(s *State, sections bool) (int, int) {
	if HasSelection(s) {
		start, end := Bounds(s)
		if start.Line != end.Line {
			return start.Line, extendOverFolds(s.Lines, end.Line)
		}
	}
	line := s.ClampPosition(s.Cursor).Line
	if sections {
		return line, outline.SectionEnd(s.Lines, line)
	}
	return line, line
}

// extendOverFolds advances last past any lines hidden by collapsed headings.
func extendOverFolds(lines []string, last int) int {
	folded := outline.FoldedLines(lines)
	for last+1 < len(lines) && folded.Has(last+1) {
		last++
	}
	return last
}

// moveBlockUp moves lines [first, last] above the unit that precedes them.
// A positive level means the block is a heading section at that level and
// the unit is the preceding section measured at the same level. A moving
// selection block treats a folded region as one unit; a single line swaps
// with its neighbour.
func moveBlockUp(s *State, first, last, level int) *State {
	if first == 0 {
		return s
	}
	above := first - 1
	unitStart := above

	switch {
	case level > 0:
		for i := above; i >= 0; i-- {
			if l := outline.HeadingLevel(s.Lines[i]); l > 0 && l <= level {
				unitStart = i
				break
			}
		}
	case isSelectionBlock(s):
		folded := outline.FoldedLines(s.Lines)
		for unitStart > 0 && folded.Has(unitStart) {
			unitStart--
		}
	}

	lines := make([]string, 0, len(s.Lines))
	lines = append(lines, s.Lines[:unitStart]...)
	lines = append(lines, s.Lines[first:last+1]...)
	lines = append(lines, s.Lines[unitStart:first]...)
	lines = append(lines, s.Lines[last+1:]...)

	return translate(s, lines, unitStart-first)
}

// moveBlockDown moves lines [first, last] below the unit that follows them.
func moveBlockDown(s *State, first, last, level int) *State {
	if last >= len(s.Lines)-1 {
		return s
	}
	below := last + 1
	var unitEnd int

	switch {
	case level > 0:
		unitEnd = outline.SectionEndAtLevel(s.Lines, below, level)
	case isSelectionBlock(s):
		unitEnd = extendOverFolds(s.Lines, below)
	default:
		unitEnd = below
	}

	lines := make([]string, 0, len(s.Lines))
	lines = append(lines, s.Lines[:first]...)
	lines = append(lines, s.Lines[below:unitEnd+1]...)
	lines = append(lines, s.Lines[first:last+1]...)
	lines = append(lines, s.Lines[unitEnd+1:]...)

	return translate(s, lines, unitEnd-last)
}

// isSelectionBlock reports whether a multi-line selection is moving.
func isSelectionBlock(s *State) bool {
	if !HasSelection(s) {
		return false
	}
	start, end := Bounds(s)
	return start.Line != end.Line
}

// translate builds the state after a block move, shifting the cursor and
// anchor lines by offset.
func translate(s *State, lines []string, offset int) *State {
	cursor := s.Cursor
	cursor.Line += offset
	out := s.withLines(lines, cursor)
	if s.Anchor != nil {
		anchor := *s.Anchor
		anchor.Line += offset
		anchor = out.ClampPosition(anchor)
		out.Anchor = &anchor
	}
	return out
}
