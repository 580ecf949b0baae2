// Package export turns a journal body into Markdown and HTML.
//
// The body is first rewritten into plain CommonMark/GFM: heading control
// prefixes are dropped, tab-indented bullets become nested list items,
// component blocks become HTML placeholders and underline runs become <u>
// tags. The result is rendered with goldmark.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/gojot/pkg/outline"
	"github.com/yaklabco/gojot/pkg/segment"
)

// Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ComponentClass is the CSS class of component placeholders.
const ComponentClass = "gojot-component"

// Options configures an Exporter.
type Options struct {
	// Flavor is FlavorGFM or FlavorCommonMark. Anything else means GFM.
	Flavor string

	// DetectLanguages labels fenced code blocks that have no info string.
	DetectLanguages bool
}

// DefaultOptions returns GFM output with language detection.
func DefaultOptions() Options {
	return Options{Flavor: FlavorGFM, DetectLanguages: true}
}

// Exporter converts journal bodies. It is safe for concurrent use.
type Exporter struct {
	opts Options
	md   goldmark.Markdown
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	if opts.Flavor != FlavorCommonMark {
		opts.Flavor = FlavorGFM
	}
	return &Exporter{opts: opts, md: newGoldmark(opts.Flavor)}
}

// Options returns the normalised options.
func (e *Exporter) Options() Options {
	return e.opts
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmark(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		// Journal lines are lines; placeholders are raw HTML.
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithUnsafe()),
	}
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}

// Markdown rewrites body lines as standard Markdown.
func (e *Exporter) Markdown(lines []string) string {
	out := make([]string, 0, len(lines))
	var fence *codeFence

	for _, line := range lines {
		if fence != nil {
			if isFence(line, fence.marker) {
				out = append(out, fence.flush(e.opts.DetectLanguages)...)
				out = append(out, line)
				fence = nil
				continue
			}
			fence.body = append(fence.body, line)
			continue
		}

		if marker, info, ok := openFence(line); ok {
			fence = &codeFence{open: line, marker: marker, labelled: info != ""}
			continue
		}

		out = append(out, convertLine(line))
	}

	if fence != nil {
		// Unclosed fences run to the end of the document.
		out = append(out, fence.flush(e.opts.DetectLanguages)...)
	}
	return strings.Join(out, "\n")
}

// Render writes the HTML for body lines to w.
func (e *Exporter) Render(ctx context.Context, w io.Writer, lines []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}
	if err := e.md.Convert([]byte(e.Markdown(lines)), w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// HTML returns the HTML for body lines.
func (e *Exporter) HTML(ctx context.Context, lines []string) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(ctx, &buf, lines); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type codeFence struct {
	open     string
	marker   string
	labelled bool
	body     []string
}

func (f *codeFence) flush(detect bool) []string {
	open := f.open
	if detect && !f.labelled {
		if lang := DetectLanguage([]byte(strings.Join(f.body, "\n"))); lang != LanguageText {
			open += lang
		}
	}
	return append([]string{open}, f.body...)
}

// openFence recognises a fence opener of three or more backticks or tildes
// and returns the marker run and the info string.
func openFence(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return "", "", false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return "", "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return "", "", false
	}
	info := strings.TrimSpace(trimmed[n:])
	if ch == '`' && strings.Contains(info, "`") {
		return "", "", false
	}
	return trimmed[:n], info, true
}

func isFence(line, marker string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= len(marker) && strings.Trim(trimmed, marker[:1]) == ""
}

// convertLine rewrites one line outside code fences.
func convertLine(line string) string {
	var prefix string
	body := line
	if info, ok := outline.ParseHeading(line); ok {
		prefix = strings.Repeat("#", info.Level) + " "
		body = line[info.PrefixLength:]
	} else if info, ok := outline.ParseBullet(line); ok {
		prefix = strings.Repeat("  ", info.IndentLevel-1) + "- "
		body = line[info.PrefixLength:]
	}
	return prefix + inline(segment.Parse(body))
}

func inline(segs []segment.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case segment.KindComponent:
			b.WriteString(componentHTML(seg))
		case segment.KindFormat:
			inner := inline(seg.Children)
			if seg.Format == segment.Underline {
				b.WriteString("<u>" + inner + "</u>")
			} else {
				b.WriteString(seg.Format.Marker() + inner + seg.Format.Marker())
			}
		case segment.KindLink, segment.KindText:
			b.WriteString(seg.Raw)
		}
	}
	return b.String()
}

// componentHTML renders a component block as an empty placeholder an
// embedding page can hydrate. Failed blocks show their error text.
func componentHTML(seg segment.Segment) string {
	if seg.Err != nil || seg.Component == nil {
		return `<span class="` + ComponentClass + ` gojot-error">` + html.EscapeString(seg.Display()) + `</span>`
	}

	c := seg.Component
	var b strings.Builder
	b.WriteString(`<span class="` + ComponentClass + `" data-name="` + html.EscapeString(c.Name) + `"`)
	if len(c.Props) > 0 {
		if props, err := marshalProps(c.Props); err == nil {
			b.WriteString(` data-props="` + html.EscapeString(props) + `"`)
		}
	}
	b.WriteString(` data-source="` + html.EscapeString(c.String()) + `"></span>`)
	return b.String()
}

// marshalProps encodes props with sorted keys; expressions become strings.
func marshalProps(props map[string]any) (string, error) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		v := props[k]
		if expr, ok := v.(segment.Expr); ok {
			v = string(expr)
		}
		key, err := json.Marshal(k)
		if err != nil {
			return "", err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.String(), nil
}
