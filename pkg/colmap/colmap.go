// Package colmap converts between raw buffer columns and the columns a
// renderer displays after hiding markup.
//
// Heading and bullet prefixes are hidden on every line. The line holding the
// cursor otherwise shows its raw text. Other lines show links as their label,
// draw component blocks with no text width, and hide emphasis markers.
// All columns are UTF-16 code units.
package colmap

import (
	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/segment"
	"github.com/yaklabco/gojot/pkg/textcol"
)

// RawColumn maps a display column on line to a buffer column. A click inside
// a link lands on the link's start or end, whichever half was clicked.
func RawColumn(line string, displayCol int, cursorLine bool) int {
	prefix := outline.PrefixLength(line)
	body := textcol.From(line, prefix)
	displayCol = max(displayCol, 0)

	if cursorLine {
		return textcol.Clamp(body, displayCol) + prefix
	}

	segs := segment.Parse(body)
	if raw, ok := rawIn(segs, displayCol); ok {
		return raw + prefix
	}
	return textcol.Len(body) + prefix
}

// rawIn walks segs for the segment holding display offset target. It reports
// false, with target reduced by the width walked, when target lies past the
// end of segs.
func rawIn(segs []segment.Segment, target int) (int, bool) {
	for _, seg := range segs {
		w := Width(seg)
		if target >= w {
			target -= w
			continue
		}
		switch seg.Kind {
		case segment.KindLink:
			if 2*target < w {
				return seg.Start, true
			}
			return seg.End, true
		case segment.KindFormat:
			if raw, ok := rawIn(seg.Children, target); ok {
				return raw, true
			}
			return seg.End - len(seg.Format.Marker()), true
		default:
			return seg.Start + target, true
		}
	}
	return 0, false
}

// DisplayColumn maps a buffer column on line to the column it is drawn at.
// Columns inside hidden markup snap to the nearest visible edge.
func DisplayColumn(line string, rawCol int, cursorLine bool) int {
	prefix := outline.PrefixLength(line)
	body := textcol.From(line, prefix)
	rawCol = max(rawCol-prefix, 0)

	if cursorLine {
		return textcol.Clamp(body, rawCol)
	}

	segs := segment.Parse(body)
	return displayIn(segs, rawCol)
}

func displayIn(segs []segment.Segment, raw int) int {
	acc := 0
	for _, seg := range segs {
		if raw >= seg.End {
			acc += Width(seg)
			continue
		}
		if raw <= seg.Start {
			return acc
		}
		switch seg.Kind {
		case segment.KindLink:
			return acc + Width(seg)
		case segment.KindComponent:
			return acc
		case segment.KindFormat:
			m := len(seg.Format.Marker())
			switch {
			case raw <= seg.Start+m:
				return acc
			case raw >= seg.End-m:
				return acc + Width(seg)
			default:
				return acc + displayIn(seg.Children, raw)
			}
		default:
			return acc + raw - seg.Start
		}
	}
	return acc
}

// Width returns the number of display columns seg occupies on a line without
// the cursor.
func Width(seg segment.Segment) int {
	switch seg.Kind {
	case segment.KindComponent:
		return 0
	case segment.KindLink:
		return textcol.Len(seg.Text)
	case segment.KindFormat:
		w := 0
		for _, child := range seg.Children {
			w += Width(child)
		}
		return w
	default:
		return seg.End - seg.Start
	}
}

// DisplayWidth returns the display width of a whole line.
func DisplayWidth(line string, cursorLine bool) int {
	body := textcol.From(line, outline.PrefixLength(line))
	if cursorLine {
		return textcol.Len(body)
	}
	w := 0
	for _, seg := range segment.Parse(body) {
		w += Width(seg)
	}
	return w
}
