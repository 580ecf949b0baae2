package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

const summaryDividerWidth = 40

// ApplyStats describes the outcome of replaying an edit script.
type ApplyStats struct {
	Path string

	// Steps is the number of script steps run.
	Steps int

	// Changed is the number of steps that changed the buffer.
	Changed int

	// UndoDepth is the number of history entries left after the script.
	UndoDepth int

	Additions int
	Deletions int

	// Saved reports whether the document was written.
	Saved bool

	// Backup is the path of the backup written before saving, if any.
	Backup string

	DryRun bool
}

// FormatApplySummaryOneLine formats apply statistics as a single line.
// Example: "notes/a.md: 5 steps, 3 changed, +2 -1, saved".
func (s *Styles) FormatApplySummaryOneLine(stats ApplyStats) string {
	parts := []string{
		fmt.Sprintf("%d %s", stats.Steps, plural(stats.Steps, "step")),
		fmt.Sprintf("%d changed", stats.Changed),
	}

	if stats.Additions > 0 || stats.Deletions > 0 {
		parts = append(parts,
			s.DiffAdd.Render(fmt.Sprintf("+%d", stats.Additions))+" "+
				s.DiffRemove.Render(fmt.Sprintf("-%d", stats.Deletions)))
	}

	switch {
	case stats.DryRun:
		parts = append(parts, s.Warning.Render("dry run"))
	case stats.Saved:
		parts = append(parts, s.Success.Render("saved"))
	default:
		parts = append(parts, s.Dim.Render("unchanged"))
	}

	return s.FilePath.Render(stats.Path) + ": " + strings.Join(parts, ", ") + "\n"
}

// FormatApplySummary formats apply statistics as a summary block.
func (s *Styles) FormatApplySummary(stats ApplyStats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Document:          " + s.FilePath.Render(stats.Path) + "\n")
	builder.WriteString("  Steps run:         " + s.SummaryValue.Render(strconv.Itoa(stats.Steps)) + "\n")
	builder.WriteString("  Steps changed:     " + s.SummaryValue.Render(strconv.Itoa(stats.Changed)) + "\n")
	builder.WriteString("  Undo depth:        " + s.SummaryValue.Render(strconv.Itoa(stats.UndoDepth)) + "\n")

	builder.WriteString("\n")
	builder.WriteString("  Lines added:       " + s.DiffAdd.Render(strconv.Itoa(stats.Additions)) + "\n")
	builder.WriteString("  Lines removed:     " + s.DiffRemove.Render(strconv.Itoa(stats.Deletions)) + "\n")
	if stats.Backup != "" {
		builder.WriteString("  Backup:            " + s.Dim.Render(stats.Backup) + "\n")
	}

	builder.WriteString("\n")
	switch {
	case stats.DryRun:
		builder.WriteString(s.Warning.Render("Dry run: document not written"))
	case stats.Saved:
		builder.WriteString(s.Success.Render("Document saved"))
	default:
		builder.WriteString(s.Dim.Render("No changes to save"))
	}
	builder.WriteString("\n")

	return builder.String()
}
