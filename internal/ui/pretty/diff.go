package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojot/pkg/docdiff"
)

// FormatDiff formats a document diff in git style with colored lines.
// It returns "" for a diff without changes.
func (s *Styles) FormatDiff(diff *docdiff.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render(diff.GitHeader()) + "\n")

	for line := range strings.Lines(diff.String()) {
		builder.WriteString(s.formatDiffLine(strings.TrimSuffix(line, "\n")) + "\n")
	}
	return builder.String()
}

func (s *Styles) formatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiffStat formats a one-line change count, e.g.
// "notes/a.md: 2 insertions(+), 1 deletion(-)".
func (s *Styles) FormatDiffStat(diff *docdiff.Diff) string {
	if !diff.HasChanges() {
		return s.Dim.Render("no changes")
	}

	parts := []string{}
	if diff.Additions > 0 {
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", diff.Additions, plural(diff.Additions, "insertion"))))
	}
	if diff.Deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", diff.Deletions, plural(diff.Deletions, "deletion"))))
	}
	return s.FilePath.Render(diff.Path) + ": " + strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
