// Package document reads and writes journal entries: a small YAML
// frontmatter block followed by the buffer lines.
//
//	---
//	id: 5b7c...
//	created: 2025-03-04T09:30:00.000Z
//	modified: 2025-03-04T10:02:11.250Z
//	---
//
//	# First line of the body
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/fsutil"
	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/segment"
)

// TimestampLayout is the frontmatter timestamp format, always written in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FileNameLayout names new documents after their creation time.
const FileNameLayout = "2006-01-02-150405.md"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrFrontmatter indicates a frontmatter block that could not be decoded.
	ErrFrontmatter = errors.New("invalid frontmatter")

	// ErrNoPath indicates a document without a file path was saved.
	ErrNoPath = errors.New("document has no path")
)

//nolint:gochecknoglobals // Compiled pattern is read-only.
var frontmatterPattern = regexp.MustCompile(`^---\n(?:((?s:.*?))\n)?---\n\n?`)

// Meta is the document metadata kept in the frontmatter.
type Meta struct {
	ID       string
	Created  time.Time
	Modified time.Time
}

// Document is a journal entry.
type Document struct {
	// Path is where the document lives on disk, if anywhere.
	Path  string
	Meta  Meta
	Lines []string

	snap *fsutil.Snapshot
}

// ParseOptions controls how metadata is filled in for content without
// frontmatter.
type ParseOptions struct {
	// Now is used when neither frontmatter nor the file name give a time.
	// Zero means time.Now.
	Now time.Time

	// Location is used to read times from file names. Nil means time.Local.
	Location *time.Location
}

func (o ParseOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o ParseOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// New creates an empty document in dir named after now. An empty id gets a
// random UUID.
func New(dir string, now time.Time, id string) *Document {
	if id == "" {
		id = uuid.NewString()
	}
	return &Document{
		Path:  filepath.Join(dir, FileName(now)),
		Meta:  Meta{ID: id, Created: now, Modified: now},
		Lines: []string{""},
	}
}

// FileName returns the file name for a document created at t.
func FileName(t time.Time) string {
	return t.Format(FileNameLayout)
}

// TimeFromFileName reads the creation time encoded in a document's base
// name.
func TimeFromFileName(path string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(FileNameLayout, filepath.Base(path), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IDFromPath derives a stable id for a document that has none, so reading
// the same file twice yields the same id.
func IDFromPath(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path))).String()
}

// frontmatter is the YAML shape of Meta.
type frontmatter struct {
	ID       string `yaml:"id"`
	Created  string `yaml:"created"`
	Modified string `yaml:"modified"`
}

// Parse decodes content read from path. Without a frontmatter block the
// whole content is the body and metadata is derived from the path or the
// current time. Missing frontmatter fields are derived the same way.
func Parse(path string, content []byte, opts ParseOptions) (*Document, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	doc := &Document{Path: path}

	var fm frontmatter
	if loc := frontmatterPattern.FindStringSubmatchIndex(text); loc != nil && loc[2] >= 0 {
		block := []byte(text[loc[2]:loc[3]])
		if isFrontmatter(block) {
			if err := yaml.Unmarshal(block, &fm); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrFrontmatter, path, err)
			}
			text = text[loc[1]:]
		}
	}

	var err error
	if doc.Meta, err = fm.meta(path, opts); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFrontmatter, path, err)
	}
	doc.Lines = editor.SplitLines(text)
	return doc, nil
}

// isFrontmatter reports whether block is a YAML mapping carrying at least
// one metadata key. Anything else between two "---" lines is body text, such
// as a paragraph between horizontal rules.
func isFrontmatter(block []byte) bool {
	var fields map[string]any
	if err := yaml.Unmarshal(block, &fields); err != nil {
		return false
	}
	for _, key := range []string{"id", "created", "modified"} {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

func (fm frontmatter) meta(path string, opts ParseOptions) (Meta, error) {
	m := Meta{ID: fm.ID}
	if m.ID == "" {
		m.ID = IDFromPath(path)
	}

	fallback, ok := TimeFromFileName(path, opts.location())
	if !ok {
		fallback = opts.now()
	}

	var err error
	if m.Created, err = parseTimestamp(fm.Created, fallback); err != nil {
		return Meta{}, fmt.Errorf("created: %w", err)
	}
	if m.Modified, err = parseTimestamp(fm.Modified, m.Created); err != nil {
		return Meta{}, fmt.Errorf("modified: %w", err)
	}
	return m, nil
}

func parseTimestamp(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Serialize encodes d with its frontmatter.
func Serialize(d *Document) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "---\nid: %s\ncreated: %s\nmodified: %s\n---\n\n",
		d.Meta.ID,
		d.Meta.Created.UTC().Format(TimestampLayout),
		d.Meta.Modified.UTC().Format(TimestampLayout),
	)
	b.WriteString(strings.Join(d.Lines, "\n"))
	return []byte(b.String())
}

// Text returns the body without frontmatter.
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// State returns a fresh editor state over the document body.
func (d *Document) State() *editor.State {
	return editor.FromLines(d.Lines)
}

// WithState returns a copy of d holding the lines of s. The modified time is
// bumped to now only when the content actually changed.
func (d *Document) WithState(s *editor.State, now time.Time) *Document {
	out := *d
	if !s.SameContent(d.State()) {
		out.Lines = append([]string(nil), s.Lines...)
		out.Meta.Modified = now
	}
	return &out
}

// Title returns the displayed text of the first non-empty body line, with
// heading and bullet prefixes and inline markup removed.
func (d *Document) Title() string {
	for _, line := range d.Lines {
		if t := strings.TrimSpace(segment.Plain(line[outline.PrefixLength(line):])); t != "" {
			return t
		}
	}
	return ""
}
