// Package docdiff renders line diffs between two versions of a document in
// unified diff format.
package docdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	Original []byte
	Modified []byte

	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Line is a single line in a hunk.
type Line struct {
	Kind LineKind

	// Content is the line content without the diff prefix.
	Content string
}

// LineKind tells context, added and removed lines apart.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line only in the modified version.
	LineAdd

	// LineRemove is a line only in the original version.
	LineRemove
)

// Prefix returns the unified diff marker for k.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Compute diffs original against modified with DefaultContext lines of
// context. It returns nil if the contents are identical.
func Compute(path string, original, modified []byte) *Diff {
	return ComputeContext(path, original, modified, DefaultContext)
}

// ComputeContext is Compute with a custom number of context lines.
func ComputeContext(path string, original, modified []byte, context int) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	ops := lineOps(splitLines(original), splitLines(modified))
	hunks := groupIntoHunks(ops, max(context, 0))
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunks,
	}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				diff.Additions++
			case LineRemove:
				diff.Deletions++
			}
		}
	}
	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Stat returns a short "+N -M" summary.
func (d *Diff) Stat() string {
	if d == nil {
		return "+0 -0"
	}
	return fmt.Sprintf("+%d -%d", d.Additions, d.Deletions)
}

// lineOps runs a line-mode diff and flattens the result to one entry per
// line.
func lineOps(orig, mod []string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(joinLines(orig), joinLines(mod))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var ops []Line
	for _, d := range diffs {
		kind := LineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = LineAdd
		case diffmatchpatch.DiffDelete:
			kind = LineRemove
		case diffmatchpatch.DiffEqual:
		}
		for _, content := range splitLines([]byte(d.Text)) {
			ops = append(ops, Line{Kind: kind, Content: content})
		}
	}
	return ops
}

// groupIntoHunks merges changes separated by at most 2*context unchanged
// lines into one hunk.
func groupIntoHunks(ops []Line, context int) []Hunk {
	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0
	for idx, op := range ops {
		isChange := op.Kind != LineContext
		switch {
		case isChange && !inChange:
			rangeStart = idx
			inChange = true
		case !isChange && inChange:
			ranges = append(ranges, changeRange{rangeStart, idx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	var hunks []Hunk
	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) && ranges[mergeEnd].start-ranges[mergeEnd-1].end <= context*2 {
			mergeEnd++
		}
		hunks = append(hunks, buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end, context))
		rangeIdx = mergeEnd
	}
	return hunks
}

func buildHunk(ops []Line, changeStart, changeEnd, context int) Hunk {
	start := max(changeStart-context, 0)
	end := min(changeEnd+context, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != LineAdd {
			hunk.OriginalStart++
		}
		if op.Kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	hunk.Lines = append(hunk.Lines, ops[start:end]...)
	for _, op := range hunk.Lines {
		switch op.Kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	// An empty side starts at the line before, as diff(1) prints it.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}
	return hunk
}

// splitLines splits content into lines, dropping the empty string after a
// trailing newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// joinLines terminates every line so the last one compares equal to itself
// whether or not the source ended in a newline.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
