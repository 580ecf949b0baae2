package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/segment"
)

const (
	bulletGlyph    = "•"
	foldedGlyph    = "▸"
	expandedGlyph  = "▾"
	truncationTail = "…"
	hiddenTemplate = "⋯ %d hidden"
)

// ViewOptions controls how a document body is drawn.
type ViewOptions struct {
	// CursorLine is drawn with its markup visible. -1 means no cursor line.
	CursorLine int

	// Hidden lines are skipped; a run of them is summarised under the
	// heading that folds it.
	Hidden outline.LineSet

	// LineNumbers adds a gutter of 1-based line numbers.
	LineNumbers bool

	// Width truncates each drawn line. 0 disables truncation.
	Width int
}

// RenderLine draws one line. Heading and bullet prefixes are replaced by
// styled markers; on other than the cursor line emphasis markers are hidden,
// links show their label and component blocks show a placeholder.
func (s *Styles) RenderLine(line string, cursorLine bool) string {
	if info, ok := outline.ParseHeading(line); ok {
		body := line[info.PrefixLength:]
		marker := strings.Repeat("#", info.Level) + " "
		var prefix string
		if info.HasScrollWindow {
			prefix = s.ScrollPrefix.Render("~S"+strconv.Itoa(info.ScrollableLines)+"~") + " "
		}
		return prefix + s.Heading.Render(marker) + s.renderBody(body, cursorLine, s.Heading)
	}

	if info, ok := outline.ParseBullet(line); ok {
		indent := strings.Repeat("  ", info.IndentLevel-1)
		return indent + s.Bullet.Render(bulletGlyph) + " " +
			s.renderBody(line[info.PrefixLength:], cursorLine, lipgloss.NewStyle())
	}

	return s.renderBody(line, cursorLine, lipgloss.NewStyle())
}

func (s *Styles) renderBody(body string, cursorLine bool, base lipgloss.Style) string {
	if body == "" {
		return ""
	}
	if cursorLine {
		return base.Render(body)
	}
	return s.renderSegments(segment.Parse(body), base)
}

func (s *Styles) renderSegments(segs []segment.Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case segment.KindComponent:
			b.WriteString(s.renderComponent(seg))
		case segment.KindLink:
			b.WriteString(s.Link.Render(seg.Text))
		case segment.KindFormat:
			b.WriteString(s.renderSegments(seg.Children, s.formatStyle(seg.Format).Inherit(base)))
		default:
			if seg.Text != "" {
				b.WriteString(base.Render(seg.Text))
			}
		}
	}
	return b.String()
}

func (s *Styles) formatStyle(f segment.Format) lipgloss.Style {
	switch f {
	case segment.Bold:
		return s.Bold
	case segment.Italic:
		return s.Italic
	case segment.Underline:
		return s.Underline
	case segment.Strikethrough:
		return s.Strikethrough
	default:
		return lipgloss.NewStyle()
	}
}

// renderComponent shows a component block by name, since the terminal
// cannot draw it.
func (s *Styles) renderComponent(seg segment.Segment) string {
	if seg.Err != nil || seg.Component == nil {
		return s.ComponentError.Render(seg.Display())
	}
	return s.Component.Render("[" + seg.Component.Name + "]")
}

// RenderDocument draws the visible lines of a document body, one per output
// line.
func (s *Styles) RenderDocument(lines []string, opts ViewOptions) string {
	var b strings.Builder
	numberWidth := len(strconv.Itoa(len(lines)))

	for i := 0; i < len(lines); i++ {
		if opts.Hidden.Has(i) {
			continue
		}

		var gutter string
		if opts.LineNumbers {
			gutter = s.LineNumber.Render(fmt.Sprintf("%*d", numberWidth, i+1)) + " "
		}
		gutter += s.foldGlyph(lines[i]) + " "

		out := gutter + s.RenderLine(lines[i], i == opts.CursorLine)
		if opts.Width > 0 {
			out = ansi.Truncate(out, opts.Width, truncationTail)
		}
		b.WriteString(out)
		b.WriteString("\n")

		if n := hiddenRun(opts.Hidden, i+1, len(lines)); n > 0 {
			pad := strings.Repeat(" ", ansi.StringWidth(gutter))
			b.WriteString(pad + s.Dim.Render(fmt.Sprintf(hiddenTemplate, n)) + "\n")
		}
	}
	return b.String()
}

func (s *Styles) foldGlyph(line string) string {
	info, ok := outline.ParseHeading(line)
	switch {
	case !ok:
		return " "
	case info.Collapsed:
		return s.FoldMarker.Render(foldedGlyph)
	default:
		return s.Dim.Render(expandedGlyph)
	}
}

// hiddenRun counts consecutive hidden lines starting at from.
func hiddenRun(hidden outline.LineSet, from, lineCount int) int {
	n := 0
	for i := from; i < lineCount && hidden.Has(i); i++ {
		n++
	}
	return n
}
