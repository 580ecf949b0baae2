package segment

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gojot/pkg/textcol"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	componentPattern = regexp.MustCompile(`(?s)\{\{\{JSX:(.*?)\}\}\}`)
	linkPattern      = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// piece is a segment addressed by byte offsets while parsing.
type piece struct {
	seg      Segment
	from, to int
	children []piece
}

// Parse splits line into segments ordered by position. Component blocks are
// found first, then links in the remaining text, then emphasis runs in
// what is still plain text.
func Parse(line string) []Segment {
	if line == "" {
		return []Segment{}
	}

	pieces := []piece{textPiece(line, 0, len(line))}
	pieces = splitText(pieces, func(p piece) []piece { return splitComponents(line, p) })
	pieces = splitText(pieces, func(p piece) []piece { return splitLinks(line, p) })
	pieces = splitText(pieces, func(p piece) []piece { return splitFormats(line, p.from, p.to) })

	return toSegments(line, pieces)
}

func textPiece(line string, from, to int) piece {
	text := line[from:to]
	return piece{seg: Segment{Kind: KindText, Raw: text, Text: text}, from: from, to: to}
}

// splitText replaces each text piece with the result of split.
func splitText(pieces []piece, split func(piece) []piece) []piece {
	out := make([]piece, 0, len(pieces))
	for _, p := range pieces {
		if p.seg.Kind != KindText {
			out = append(out, p)
			continue
		}
		out = append(out, split(p)...)
	}
	return out
}

// fill emits the text between the matched pieces of [from, to).
func fill(line string, from, to int, matches []piece) []piece {
	out := make([]piece, 0, 2*len(matches)+1)
	pos := from
	for _, m := range matches {
		if m.from > pos {
			out = append(out, textPiece(line, pos, m.from))
		}
		out = append(out, m)
		pos = m.to
	}
	if pos < to {
		out = append(out, textPiece(line, pos, to))
	}
	return out
}

func splitComponents(line string, p piece) []piece {
	text := line[p.from:p.to]
	locs := componentPattern.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return []piece{p}
	}

	matches := make([]piece, 0, len(locs))
	for _, loc := range locs {
		from, to := p.from+loc[0], p.from+loc[1]
		seg := Segment{Kind: KindComponent, Raw: line[from:to], Text: text[loc[2]:loc[3]]}
		comp, err := ParseComponent(seg.Text)
		if err != nil {
			seg.Err = err
		} else {
			seg.Component = comp
		}
		matches = append(matches, piece{seg: seg, from: from, to: to})
	}
	return fill(line, p.from, p.to, matches)
}

// splitLinks accepts a link only when whitespace or the end of the text
// follows it, so a link still being typed stays plain.
func splitLinks(line string, p piece) []piece {
	text := line[p.from:p.to]
	var matches []piece

	pos := 0
	for pos < len(text) {
		loc := linkPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end < len(text) {
			r, _ := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(r) {
				pos = start + 1
				continue
			}
		}
		from, to := p.from+start, p.from+end
		matches = append(matches, piece{
			seg: Segment{
				Kind: KindLink,
				Raw:  line[from:to],
				Text: text[pos+loc[2] : pos+loc[3]],
				URL:  text[pos+loc[4] : pos+loc[5]],
			},
			from: from,
			to:   to,
		})
		pos = end
	}

	if matches == nil {
		return []piece{p}
	}
	return fill(line, p.from, p.to, matches)
}

// run is one emphasis match in byte offsets.
type run struct {
	format   Format
	from, to int
}

// splitFormats finds emphasis runs in line[from:to]. Matches of every style
// are collected, ordered by start, and the earliest non-overlapping ones are
// kept. The inner text of each kept run is split again for nested runs.
func splitFormats(line string, from, to int) []piece {
	text := line[from:to]
	var runs []run
	for _, f := range []Format{Bold, Strikethrough, Underline, Italic} {
		runs = append(runs, findRuns(text, f)...)
	}
	if len(runs) == 0 {
		return []piece{textPiece(line, from, to)}
	}
	slices.SortStableFunc(runs, func(a, b run) int { return a.from - b.from })

	var matches []piece
	end := 0
	for _, r := range runs {
		if r.from < end {
			continue
		}
		m := len(r.format.Marker())
		innerFrom, innerTo := from+r.from+m, from+r.to-m
		matches = append(matches, piece{
			seg: Segment{
				Kind:   KindFormat,
				Raw:    line[from+r.from : from+r.to],
				Text:   line[innerFrom:innerTo],
				Format: r.format,
			},
			from:     from + r.from,
			to:       from + r.to,
			children: splitFormats(line, innerFrom, innerTo),
		})
		end = r.to
	}
	return fill(line, from, to, matches)
}

// findRuns scans text left to right for non-overlapping runs of f, each
// holding at least one character between its markers.
func findRuns(text string, f Format) []run {
	marker := f.Marker()
	m := len(marker)
	var out []run

	for i := 0; i+m <= len(text); {
		if !isMarkerAt(text, i, f) {
			i++
			continue
		}
		closeAt := -1
		for j := i + m + 1; j+m <= len(text); j++ {
			if text[j] == '\n' {
				break
			}
			if isMarkerAt(text, j, f) {
				closeAt = j
				break
			}
		}
		if closeAt < 0 {
			i++
			continue
		}
		out = append(out, run{format: f, from: i, to: closeAt + m})
		i = closeAt + m
	}
	return out
}

// isMarkerAt reports whether f's marker starts at text[i]. A single star
// only counts when neither neighbour is a star.
func isMarkerAt(text string, i int, f Format) bool {
	marker := f.Marker()
	if !strings.HasPrefix(text[i:], marker) {
		return false
	}
	if f != Italic {
		return true
	}
	if i > 0 && text[i-1] == '*' {
		return false
	}
	return i+1 >= len(text) || text[i+1] != '*'
}

// toSegments converts byte-addressed pieces to segments with UTF-16 columns.
func toSegments(line string, pieces []piece) []Segment {
	out := make([]Segment, 0, len(pieces))
	for _, p := range pieces {
		seg := p.seg
		seg.Start = textcol.Col(line, p.from)
		seg.End = textcol.Col(line, p.to)
		if seg.Kind == KindFormat {
			seg.Children = toSegments(line, p.children)
		}
		out = append(out, seg)
	}
	return out
}
