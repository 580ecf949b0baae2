package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/segment"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 6 // LINE, LEVEL, STATE, SCROLL, LINES, TITLE
	minLineWidth     = 4
	minLevelWidth    = 5
	minStateWidth    = 9
	minScrollWidth   = 6
	minSizeWidth     = 5
	minTitleWidth    = 20
	heavySeparator   = "="
	lightSeparator   = "-"

	stateCollapsed = "collapsed"
	stateExpanded  = "expanded"
)

// OutlineRow is one heading in the outline table.
type OutlineRow struct {
	// Line is the 1-based line number of the heading.
	Line  int
	Level int

	Collapsed bool

	// Scroll is the scroll-window budget, or 0 when the heading has none.
	Scroll int

	// Lines is the number of lines in the heading's section after it.
	Lines int

	Title string
}

// OutlineRows collects the headings of a document body.
func OutlineRows(lines []string) []OutlineRow {
	var rows []OutlineRow
	for i, line := range lines {
		info, ok := outline.ParseHeading(line)
		if !ok {
			continue
		}
		rows = append(rows, OutlineRow{
			Line:      i + 1,
			Level:     info.Level,
			Collapsed: info.Collapsed,
			Scroll:    info.ScrollableLines,
			Lines:     outline.SectionEnd(lines, i) - i,
			Title:     segment.Plain(line[info.PrefixLength:]),
		})
	}
	return rows
}

// TableFormatter formats an outline as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	line   int
	level  int
	state  int
	scroll int
	size   int
	title  int
}

// FormatOutline formats rows as a table. It returns "" when there are no
// rows.
func (t *TableFormatter) FormatOutline(rows []OutlineRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for i, row := range rows {
		// Top-level sections are set apart.
		if i > 0 && row.Level == 1 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatFooter(rows) + "\n")
	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []OutlineRow) columnWidths {
	widths := columnWidths{
		line:   minLineWidth,
		level:  minLevelWidth,
		state:  minStateWidth,
		scroll: minScrollWidth,
		size:   minSizeWidth,
		title:  minTitleWidth,
	}

	for _, row := range rows {
		widths.line = max(widths.line, len(strconv.Itoa(row.Line)))
		widths.size = max(widths.size, len(strconv.Itoa(row.Lines)))
		widths.title = max(widths.title, ansi.StringWidth(titleCell(row)))
	}

	// Only the title shrinks to fit the terminal.
	if total := calculateTotalWidth(widths); total > t.termWidth {
		widths.title = max(minTitleWidth, widths.title-(total-t.termWidth))
	}
	return widths
}

func calculateTotalWidth(widths columnWidths) int {
	return widths.line + widths.level + widths.state + widths.scroll + widths.size + widths.title +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s  %-*s ",
		widths.line, "LINE",
		widths.level, "LEVEL",
		widths.state, "STATE",
		widths.scroll, "SCROLL",
		widths.size, "LINES",
		widths.title, "TITLE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row OutlineRow, widths columnWidths) string {
	state := stateExpanded
	if row.Collapsed {
		state = stateCollapsed
	}
	scroll := "-"
	if row.Scroll > 0 {
		scroll = strconv.Itoa(row.Scroll)
	}

	content := fmt.Sprintf(" %*d  %-*s  %-*s  %-*s  %*d  %s",
		widths.line, row.Line,
		widths.level, strings.Repeat("#", row.Level),
		widths.state, state,
		widths.scroll, scroll,
		widths.size, row.Lines,
		ansi.Truncate(titleCell(row), widths.title, truncationTail),
	)

	if row.Collapsed {
		return t.styles.TableFolded.Render(content)
	}
	return content
}

// titleCell indents a title by its heading depth.
func titleCell(row OutlineRow) string {
	return strings.Repeat("  ", row.Level-1) + row.Title
}

func (t *TableFormatter) formatFooter(rows []OutlineRow) string {
	collapsed := 0
	for _, row := range rows {
		if row.Collapsed {
			collapsed++
		}
	}

	parts := []string{fmt.Sprintf("%d %s", len(rows), plural(len(rows), "heading"))}
	if collapsed > 0 {
		parts = append(parts, t.styles.TableFolded.Render(fmt.Sprintf("%d %s", collapsed, stateCollapsed)))
	}
	return " " + strings.Join(parts, " | ")
}
