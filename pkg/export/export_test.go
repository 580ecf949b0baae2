package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/export"
)

func TestMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		want     string
		contains bool
	}{
		{
			name:  "collapsed heading with scroll window",
			lines: []string{"~S5~ ^ ## Plans"},
			want:  "## Plans",
		},
		{
			name:  "tab bullets nest",
			lines: []string{"\t- a", "\t\t- b", "\t\t\t- c"},
			want:  "- a\n  - b\n    - c",
		},
		{
			name:  "underline becomes tag",
			lines: []string{"an __important__ note"},
			want:  "an <u>important</u> note",
		},
		{
			name:  "other formats keep markdown markers",
			lines: []string{"**bold** ~~gone~~ *it*"},
			want:  "**bold** ~~gone~~ *it*",
		},
		{
			name:  "nested underline inside bold",
			lines: []string{"**a __b__**"},
			want:  "**a <u>b</u>**",
		},
		{
			name:  "links pass through",
			lines: []string{"see [docs](https://go.dev) now"},
			want:  "see [docs](https://go.dev) now",
		},
		{
			name:     "component error shows message",
			lines:    []string{"{{{JSX:<timer />}}}"},
			want:     `<span class="gojot-component gojot-error">[Error: `,
			contains: true,
		},
	}

	exp := export.New(export.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exp.Markdown(tt.lines)
			if tt.contains {
				assert.Contains(t, got, tt.want)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownComponent(t *testing.T) {
	t.Parallel()

	got := export.New(export.Options{}).Markdown([]string{"{{{JSX:<Timer duration={300} />}}}"})
	assert.Equal(t,
		`<span class="gojot-component" data-name="Timer" data-props="{&#34;duration&#34;:300}"`+
			` data-source="&lt;Timer duration={300} /&gt;"></span>`,
		got)
}

func TestMarkdownCodeFences(t *testing.T) {
	t.Parallel()

	lines := []string{
		"```",
		"package main",
		"\t- not a bullet",
		"```",
		"```python",
		"x = 1",
		"```",
	}

	t.Run("detects missing language", func(t *testing.T) {
		t.Parallel()

		got := export.New(export.DefaultOptions()).Markdown(lines)
		assert.Equal(t, "```go\npackage main\n\t- not a bullet\n```\n```python\nx = 1\n```", got)
	})

	t.Run("detection disabled", func(t *testing.T) {
		t.Parallel()

		got := export.New(export.Options{}).Markdown(lines)
		assert.Equal(t, "```\npackage main\n\t- not a bullet\n```\n```python\nx = 1\n```", got)
	})

	t.Run("unclosed fence keeps its body", func(t *testing.T) {
		t.Parallel()

		got := export.New(export.DefaultOptions()).Markdown([]string{"~~~", "{\"a\": 1}"})
		assert.Equal(t, "~~~json\n{\"a\": 1}", got)
	})
}

func TestHTML(t *testing.T) {
	t.Parallel()

	exp := export.New(export.DefaultOptions())
	got, err := exp.HTML(context.Background(), []string{
		"^ # Day one",
		"first line",
		"second ~~line~~",
		"\t- item",
		"\t\t- sub",
	})
	require.NoError(t, err)

	assert.Contains(t, got, "<h1>Day one</h1>")
	assert.Contains(t, got, "first line<br>\nsecond <del>line</del>")
	assert.Contains(t, got, "<li>item\n<ul>\n<li>sub</li>")
}

func TestHTMLCommonMark(t *testing.T) {
	t.Parallel()

	exp := export.New(export.Options{Flavor: export.FlavorCommonMark})
	assert.Equal(t, export.FlavorCommonMark, exp.Options().Flavor)

	got, err := exp.HTML(context.Background(), []string{"~~kept~~"})
	require.NoError(t, err)
	assert.Equal(t, "<p>~~kept~~</p>\n", got)
}

func TestRenderCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := export.New(export.DefaultOptions()).Render(ctx, &buf, []string{"x"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "  \n", want: export.LanguageText},
		{name: "shebang", content: "#!/bin/bash\necho hi", want: "bash"},
		{name: "go", content: "package main\n\nfunc main() {}", want: "go"},
		{name: "python", content: "def f(x):\n    return x", want: "python"},
		{name: "json", content: `{"a": 1}`, want: "json"},
		{name: "sql", content: "select * from notes", want: "sql"},
		{name: "yaml", content: "name: gojot\nlevel: info", want: "yaml"},
		{name: "html", content: "<!DOCTYPE html><html></html>", want: "html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, export.DetectLanguage([]byte(tt.content)))
		})
	}
}
