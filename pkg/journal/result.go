package journal

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/gojot/pkg/document"
	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/segment"
)

// Entry is one indexed document.
type Entry struct {
	Path string

	// Doc is nil when the document could not be loaded.
	Doc *document.Document

	Error error
}

// Headings returns the number of heading lines in the document.
func (e Entry) Headings() int {
	if e.Doc == nil {
		return 0
	}
	n := 0
	for _, line := range e.Doc.Lines {
		if outline.HeadingLevel(line) > 0 {
			n++
		}
	}
	return n
}

// Contains reports whether the document's displayed text contains query,
// ignoring case. Markup is not searched.
func (e Entry) Contains(query string) bool {
	if e.Doc == nil {
		return false
	}
	query = strings.ToLower(query)
	for _, line := range e.Doc.Lines {
		body := line[outline.PrefixLength(line):]
		if strings.Contains(strings.ToLower(segment.Plain(body)), query) {
			return true
		}
	}
	return false
}

// Stats captures aggregate information about an index.
type Stats struct {
	// Discovered is the number of document files found.
	Discovered int

	// Loaded is the number of documents parsed successfully.
	Loaded int

	// Errored is the number of documents that failed to load.
	Errored int

	// Lines is the total body line count of loaded documents.
	Lines int

	// Headings is the total heading count of loaded documents.
	Headings int
}

// Result is an index of a notes directory.
type Result struct {
	// Entries are ordered by path.
	Entries []Entry

	Stats Stats
}

func (r *Result) accumulate(entry Entry) {
	r.Entries = append(r.Entries, entry)
	if entry.Error != nil {
		r.Stats.Errored++
		return
	}
	r.Stats.Loaded++
	r.Stats.Lines += len(entry.Doc.Lines)
	r.Stats.Headings += entry.Headings()
}

// Filter returns the entries whose text contains query. An empty query
// keeps every loaded entry.
func (r *Result) Filter(query string) []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, entry := range r.Entries {
		if entry.Doc == nil {
			continue
		}
		if query == "" || entry.Contains(query) {
			out = append(out, entry)
		}
	}
	return out
}

// ByCreated sorts loaded entries newest first, breaking ties by path.
func ByCreated(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Doc == nil || b.Doc == nil {
			return cmp.Compare(a.Path, b.Path)
		}
		if c := b.Doc.Meta.Created.Compare(a.Doc.Meta.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
}
