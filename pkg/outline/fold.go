package outline

import "sort"

// LineSet is a set of line indices.
type LineSet map[int]struct{}

// Has reports whether line is in the set.
func (s LineSet) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// Add inserts line into the set.
func (s LineSet) Add(line int) {
	s[line] = struct{}{}
}

// Union returns a new set holding the lines of s and every other set.
func (s LineSet) Union(others ...LineSet) LineSet {
	out := make(LineSet, len(s))
	for line := range s {
		out.Add(line)
	}
	for _, other := range others {
		for line := range other {
			out.Add(line)
		}
	}
	return out
}

// Sorted returns the lines in ascending order.
func (s LineSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for line := range s {
		out = append(out, line)
	}
	sort.Ints(out)
	return out
}

// LineRange is an inclusive range of line indices.
type LineRange struct {
	Start int
	End   int
}

// HiddenLines returns the lines hidden while peeking at the outline from
// cursorLine.
//
// The reference level is the cursor line's heading level, or the shallowest
// heading level inside sel when the cursor is not on a heading. Everything
// after the first heading at or above the reference level is hidden, except
// headings at or above that level. With no reference heading nothing is hidden.
func HiddenLines(lines []string, cursorLine int, sel *LineRange) LineSet {
	hidden := LineSet{}

	ref := 0
	if cursorLine >= 0 && cursorLine < len(lines) {
		ref = HeadingLevel(lines[cursorLine])
	}
	if ref == 0 && sel != nil {
		ref = shallowestIn(lines, *sel)
	}
	if ref == 0 {
		return hidden
	}

	first := -1
	for i, line := range lines {
		if level := HeadingLevel(line); level > 0 && level <= ref {
			first = i
			break
		}
	}
	if first < 0 {
		return hidden
	}

	for i := first + 1; i < len(lines); i++ {
		if level := HeadingLevel(lines[i]); level > 0 && level <= ref {
			continue
		}
		hidden.Add(i)
	}
	return hidden
}

// shallowestIn returns the minimum heading level within r, or 0.
func shallowestIn(lines []string, r LineRange) int {
	start, end := r.Start, r.End
	if start > end {
		start, end = end, start
	}
	start = max(start, 0)
	end = min(end, len(lines)-1)

	best := 0
	for i := start; i <= end; i++ {
		level := HeadingLevel(lines[i])
		if level > 0 && (best == 0 || level < best) {
			best = level
		}
	}
	return best
}

// CollapsedLines returns the indices of headings carrying the collapse marker.
func CollapsedLines(lines []string) []int {
	var out []int
	for i, line := range lines {
		if info, ok := ParseHeading(line); ok && info.Collapsed {
			out = append(out, i)
		}
	}
	return out
}

// CollapsedHiddenLines hides, for each collapsed heading, the lines of its
// section after the heading itself. Indices that are not headings are ignored.
func CollapsedHiddenLines(lines []string, collapsed []int) LineSet {
	hidden := LineSet{}
	for _, idx := range collapsed {
		if idx < 0 || idx >= len(lines) || HeadingLevel(lines[idx]) == 0 {
			continue
		}
		end := SectionEnd(lines, idx)
		for i := idx + 1; i <= end; i++ {
			hidden.Add(i)
		}
	}
	return hidden
}

// FoldedLines is the union of the collapsed-heading folds of lines.
func FoldedLines(lines []string) LineSet {
	return CollapsedHiddenLines(lines, CollapsedLines(lines))
}

// SectionEnd returns the last line of the section opened by the heading at
// index. The section runs until the next heading at the same or a shallower
// level. For a non-heading line the section is the line itself.
func SectionEnd(lines []string, index int) int {
	if index < 0 || index >= len(lines) {
		return index
	}
	level := HeadingLevel(lines[index])
	if level == 0 {
		return index
	}
	return sectionEndAtLevel(lines, index, level)
}

// sectionEndAtLevel returns the last line before the next heading after
// index whose level is at most level.
func sectionEndAtLevel(lines []string, index, level int) int {
	for i := index + 1; i < len(lines); i++ {
		if l := HeadingLevel(lines[i]); l > 0 && l <= level {
			return i - 1
		}
	}
	return len(lines) - 1
}

// SectionEndAtLevel is SectionEnd with an explicit level, used when a section
// is measured against a level other than its own heading's.
func SectionEndAtLevel(lines []string, index, level int) int {
	if index < 0 || index >= len(lines) {
		return index
	}
	return sectionEndAtLevel(lines, index, level)
}

// VisibleLines returns the indices of lines not in hidden, in order.
func VisibleLines(lineCount int, hidden LineSet) []int {
	out := make([]int, 0, lineCount)
	for i := range lineCount {
		if !hidden.Has(i) {
			out = append(out, i)
		}
	}
	return out
}
