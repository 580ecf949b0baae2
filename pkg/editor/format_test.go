package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/editor"
)

func TestToggleInlineFormatWithoutSelection(t *testing.T) {
	t.Parallel()

	s := editor.ToggleInlineFormat(at([]string{"ab"}, 0, 1), editor.MarkerBold)
	assert.Equal(t, []string{"a****b"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 3), s.Cursor)

	s = editor.ToggleInlineFormat(at([]string{""}, 0, 0), editor.MarkerItalic)
	assert.Equal(t, []string{"**"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 1), s.Cursor)
}

func TestToggleInlineFormatRoundTrip(t *testing.T) {
	t.Parallel()

	markers := []string{
		editor.MarkerBold, editor.MarkerItalic, editor.MarkerUnderline, editor.MarkerStrikethrough,
	}
	for _, marker := range markers {
		t.Run(marker, func(t *testing.T) {
			t.Parallel()

			original := sel([]string{"a word b"}, editor.Pos(0, 2), editor.Pos(0, 6))
			wrapped := editor.ToggleInlineFormat(original, marker)
			assert.Equal(t, []string{"a " + marker + "word" + marker + " b"}, wrapped.Lines)
			assert.Equal(t, "word", editor.SelectedText(wrapped))

			restored := editor.ToggleInlineFormat(wrapped, marker)
			assert.Equal(t, original.Lines, restored.Lines)
			assert.Equal(t, "word", editor.SelectedText(restored))
		})
	}
}

func TestToggleInlineFormatUnwrapsInside(t *testing.T) {
	t.Parallel()

	s := editor.ToggleInlineFormat(sel([]string{"a **word** b"}, editor.Pos(0, 2), editor.Pos(0, 10)), editor.MarkerBold)
	assert.Equal(t, []string{"a word b"}, s.Lines)
	assert.Equal(t, "word", editor.SelectedText(s))
}

func TestToggleItalicInsideBold(t *testing.T) {
	t.Parallel()

	s := editor.ToggleInlineFormat(sel([]string{"a **word** b"}, editor.Pos(0, 4), editor.Pos(0, 8)), editor.MarkerItalic)
	assert.Equal(t, []string{"a ***word*** b"}, s.Lines)
}

func TestToggleInlineFormatKeepsDirection(t *testing.T) {
	t.Parallel()

	s := editor.ToggleInlineFormat(sel([]string{"a word b"}, editor.Pos(0, 6), editor.Pos(0, 2)), editor.MarkerBold)
	require.NotNil(t, s.Anchor)
	assert.Equal(t, editor.Pos(0, 8), *s.Anchor)
	assert.Equal(t, editor.Pos(0, 4), s.Cursor)
}

func TestToggleInlineFormatNoOps(t *testing.T) {
	t.Parallel()

	multi := sel([]string{"ab", "cd"}, editor.Pos(0, 1), editor.Pos(1, 1))
	assert.Same(t, multi, editor.ToggleInlineFormat(multi, editor.MarkerBold))

	plain := at([]string{"ab"}, 0, 1)
	assert.Same(t, plain, editor.ToggleInlineFormat(plain, "%%"))
	assert.False(t, editor.IsFormatMarker("%%"))
}

func TestToggleCollapse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		col      int
		wantLine string
		wantCol  int
	}{
		{"collapse", "## Title", 5, "^ ## Title", 7},
		{"collapse from line start", "## Title", 0, "^ ## Title", 2},
		{"expand", "^ ## Title", 7, "## Title", 5},
		{"expand with cursor on marker", "^ ## Title", 1, "## Title", 0},
		{"after scroll prefix", "~S3~ # T", 7, "~S3~ ^ # T", 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := editor.ToggleCollapse(at([]string{tc.line}, 0, tc.col))
			assert.Equal(t, []string{tc.wantLine}, s.Lines)
			assert.Equal(t, editor.Pos(0, tc.wantCol), s.Cursor)
		})
	}

	plain := at([]string{"not a heading"}, 0, 2)
	assert.Same(t, plain, editor.ToggleCollapse(plain))
}

func TestLooksLikeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want bool
	}{
		{"https://go.dev/doc", true},
		{"http://localhost:8080", true},
		{"www.example.com", true},
		{"example.com", true},
		{"sub.example.co/path?q=1", true},
		{"a.io", true},
		{"a.b", false},
		{"notes.txt", false},
		{"main.go", false},
		{"example.notatld", false},
		{"word", false},
	}

	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, editor.LooksLikeURL(tc.word))
		})
	}
}

func TestTryFormatURLBeforeSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		want    string
		wantCol int
	}{
		{"bare domain", "visit example.com ", "visit [example.com](example.com) ", 33},
		{"trailing period", "see https://go.dev/doc. ", "see [https://go.dev/doc](https://go.dev/doc). ", 46},
		{"balanced paren kept", "w.org/a_(b) ", "[w.org/a_(b)](w.org/a_(b)) ", 27},
		{"unbalanced paren dropped", "(see example.com) ", "(see [example.com](example.com)) ", 33},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := editor.TryFormatURLBeforeSpace(at([]string{tc.line}, 0, len(tc.line)))
			require.NotNil(t, s)
			assert.Equal(t, []string{tc.want}, s.Lines)
			assert.Equal(t, editor.Pos(0, tc.wantCol), s.Cursor)
		})
	}

	for _, line := range []string{"readme.md ", "[x](example.com) ", "plain words ", "<example.com "} {
		assert.Nil(t, editor.TryFormatURLBeforeSpace(at([]string{line}, 0, len(line))), line)
	}
	assert.Nil(t, editor.TryFormatURLBeforeSpace(at([]string{"example.com"}, 0, 11)))
}

func TestTryFormatURLBeforeNewline(t *testing.T) {
	t.Parallel()

	s := editor.TryFormatURLBeforeNewline(at([]string{"go to example.com", ""}, 1, 0))
	require.NotNil(t, s)
	assert.Equal(t, []string{"go to [example.com](example.com)", ""}, s.Lines)
	assert.Equal(t, editor.Pos(1, 0), s.Cursor)

	assert.Nil(t, editor.TryFormatURLBeforeNewline(at([]string{"example.com"}, 0, 11)))
	assert.Nil(t, editor.TryFormatURLBeforeNewline(at([]string{"nothing here", ""}, 1, 0)))
}
