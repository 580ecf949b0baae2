// Package outline recognises heading and bullet lines and derives which lines
// are hidden by heading folds.
//
// Folding state lives in the text itself: a collapsed heading carries a "^ "
// marker after its optional "~S<n>~ " scroll-window prefix, so it survives
// serialisation like any other content.
package outline

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxHeadingLevel is the deepest heading level ("######").
const MaxHeadingLevel = 6

// MaxBulletIndent is the deepest bullet indent level.
const MaxBulletIndent = 5

// CollapseMarker marks a collapsed heading.
const CollapseMarker = "^ "

// BulletMarker follows the indent tabs of a bullet line.
const BulletMarker = "- "

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	headingPattern      = regexp.MustCompile(`^(~S(\d+)~ )?(\^ )?(#{1,6}) `)
	scrollPrefixPattern = regexp.MustCompile(`^~S\d+~ `)
	bulletPattern       = regexp.MustCompile(`^(\t+)- `)
)

// HeadingInfo describes a heading line.
type HeadingInfo struct {
	// Level is the number of '#' characters (1-6).
	Level int

	// PrefixLength is the length of everything before the heading text,
	// including the scroll prefix, collapse marker, hashes and the space.
	PrefixLength int

	// Collapsed reports whether the heading carries the collapse marker.
	Collapsed bool

	// ScrollableLines is the scroll-window line budget, or 0 when absent.
	ScrollableLines int

	// HasScrollWindow reports whether a "~S<n>~ " prefix was present.
	HasScrollWindow bool
}

// BulletInfo describes a bullet line.
type BulletInfo struct {
	// IndentLevel is the number of leading tabs (at least 1).
	IndentLevel int

	// PrefixLength is the length of the tabs plus "- ".
	PrefixLength int
}

// ParseHeading reports whether line is a heading and describes it.
func ParseHeading(line string) (HeadingInfo, bool) {
	match := headingPattern.FindStringSubmatch(line)
	if match == nil {
		return HeadingInfo{}, false
	}

	info := HeadingInfo{
		Level:        len(match[4]),
		PrefixLength: len(match[0]),
		Collapsed:    match[3] != "",
	}
	if match[1] != "" {
		info.HasScrollWindow = true
		// Digits only; Atoi can still overflow on absurd input.
		if n, err := strconv.Atoi(match[2]); err == nil {
			info.ScrollableLines = n
		}
	}
	return info, true
}

// HeadingLevel returns the heading level of line, or 0 if it is not a heading.
func HeadingLevel(line string) int {
	info, ok := ParseHeading(line)
	if !ok {
		return 0
	}
	return info.Level
}

// ParseBullet reports whether line is a bullet and describes it.
func ParseBullet(line string) (BulletInfo, bool) {
	match := bulletPattern.FindStringSubmatch(line)
	if match == nil {
		return BulletInfo{}, false
	}
	return BulletInfo{
		IndentLevel:  len(match[1]),
		PrefixLength: len(match[0]),
	}, true
}

// BulletPrefix returns the prefix for a bullet at the given indent level.
func BulletPrefix(level int) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("\t", level) + BulletMarker
}

// PrefixLength returns the length of the heading or bullet prefix of line,
// or 0 when the line has neither.
func PrefixLength(line string) int {
	if info, ok := ParseHeading(line); ok {
		return info.PrefixLength
	}
	if info, ok := ParseBullet(line); ok {
		return info.PrefixLength
	}
	return 0
}

// collapseInsertPoint returns the byte offset at which the collapse marker
// sits: directly after any scroll-window prefix.
func collapseInsertPoint(line string) int {
	if loc := scrollPrefixPattern.FindStringIndex(line); loc != nil {
		return loc[1]
	}
	return 0
}

// ToggleCollapsed adds or removes the collapse marker of a heading line.
// Lines that are not headings are returned unchanged.
func ToggleCollapsed(line string) string {
	info, ok := ParseHeading(line)
	if !ok {
		return line
	}
	at := collapseInsertPoint(line)
	if info.Collapsed {
		return line[:at] + line[at+len(CollapseMarker):]
	}
	return line[:at] + CollapseMarker + line[at:]
}

// SetScrollWindow sets the scroll-window line budget of a heading line.
// A budget of 0 or less removes the prefix. Non-headings are unchanged.
func SetScrollWindow(line string, n int) string {
	if _, ok := ParseHeading(line); !ok {
		return line
	}
	rest := line[collapseInsertPoint(line):]
	if n <= 0 {
		return rest
	}
	return "~S" + strconv.Itoa(n) + "~ " + rest
}
