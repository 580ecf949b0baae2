// Package segment splits a single buffer line into the inline pieces a
// renderer draws: plain text, component blocks, markdown links and emphasis
// runs.
//
// Parsing never fails. A component block whose body cannot be read becomes a
// segment carrying a *ParseError, and the rest of the line parses normally.
package segment

import "strings"

// Kind classifies a segment.
type Kind int

const (
	KindText Kind = iota
	KindComponent
	KindLink
	KindFormat
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindComponent:
		return "jsx"
	case KindLink:
		return "link"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Format is the emphasis style of a format segment.
type Format int

const (
	Bold Format = iota
	Strikethrough
	Underline
	Italic
)

// Marker returns the delimiter that wraps a run of f.
func (f Format) Marker() string {
	switch f {
	case Bold:
		return "**"
	case Strikethrough:
		return "~~"
	case Underline:
		return "__"
	case Italic:
		return "*"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case Bold:
		return "bold"
	case Strikethrough:
		return "strikethrough"
	case Underline:
		return "underline"
	case Italic:
		return "italic"
	default:
		return "unknown"
	}
}

// Segment is one contiguous piece of a line.
//
// Start and End are a half-open UTF-16 column range into the line the segment
// was parsed from. Children of a format segment use the same line-absolute
// columns.
type Segment struct {
	Kind  Kind
	Start int
	End   int

	// Raw is the segment's source text, delimiters included.
	Raw string

	// Text is the visible content: the literal text, a link's label, or the
	// inner text of a format run.
	Text string

	// URL is set for links.
	URL string

	// Format and Children are set for format segments. Children is the inner
	// text re-split for nested formats.
	Format   Format
	Children []Segment

	// Component is set for component blocks that parsed; Err for those that
	// did not.
	Component *Component
	Err       error
}

// Display returns the text a renderer shows for the segment. Component
// blocks are drawn by an external renderer and display nothing, except a
// failed block which shows its error.
func (s Segment) Display() string {
	switch s.Kind {
	case KindComponent:
		if s.Err != nil {
			return "[Error: " + s.Err.Error() + "]"
		}
		return ""
	case KindFormat:
		var b strings.Builder
		for _, child := range s.Children {
			b.WriteString(child.Display())
		}
		return b.String()
	case KindLink:
		return s.Text
	default:
		return s.Text
	}
}

// Plain returns the displayed text of a whole line.
func Plain(line string) string {
	var b strings.Builder
	for _, seg := range Parse(line) {
		b.WriteString(seg.Display())
	}
	return b.String()
}
