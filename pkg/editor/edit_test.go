package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/editor"
)

func TestMoveHorizontal(t *testing.T) {
	t.Parallel()

	lines := []string{"ab", "cd"}

	tests := []struct {
		name string
		from editor.Position
		dir  editor.Direction
		want editor.Position
	}{
		{"left within line", editor.Pos(0, 2), editor.Left, editor.Pos(0, 1)},
		{"left wraps to previous line end", editor.Pos(1, 0), editor.Left, editor.Pos(0, 2)},
		{"left stops at document start", editor.Pos(0, 0), editor.Left, editor.Pos(0, 0)},
		{"right within line", editor.Pos(0, 0), editor.Right, editor.Pos(0, 1)},
		{"right wraps to next line", editor.Pos(0, 2), editor.Right, editor.Pos(1, 0)},
		{"right stops at document end", editor.Pos(1, 2), editor.Right, editor.Pos(1, 2)},
		{"up keeps column", editor.Pos(1, 1), editor.Up, editor.Pos(0, 1)},
		{"up on first line goes to origin", editor.Pos(0, 2), editor.Up, editor.Pos(0, 0)},
		{"down keeps column", editor.Pos(0, 1), editor.Down, editor.Pos(1, 1)},
		{"down on last line goes to end", editor.Pos(1, 0), editor.Down, editor.Pos(1, 2)},
		{"line start", editor.Pos(1, 2), editor.LineStart, editor.Pos(1, 0)},
		{"line end", editor.Pos(1, 0), editor.LineEnd, editor.Pos(1, 2)},
		{"doc start", editor.Pos(1, 1), editor.DocStart, editor.Pos(0, 0)},
		{"doc end", editor.Pos(0, 1), editor.DocEnd, editor.Pos(1, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := editor.Move(at(lines, tc.from.Line, tc.from.Col), tc.dir, false)
			assert.Equal(t, tc.want, got.Cursor)
			assert.Nil(t, got.Anchor)
		})
	}
}

func TestMoveVerticalClampsColumn(t *testing.T) {
	t.Parallel()

	s := editor.Move(at([]string{"long line", "ab"}, 0, 7), editor.Down, false)
	assert.Equal(t, editor.Pos(1, 2), s.Cursor)
}

func TestMoveCollapsesSelection(t *testing.T) {
	t.Parallel()

	lines := []string{"hello world", "second"}
	forward := sel(lines, editor.Pos(0, 2), editor.Pos(0, 7))
	backward := sel(lines, editor.Pos(0, 7), editor.Pos(0, 2))

	for _, s := range []*editor.State{forward, backward} {
		assert.Equal(t, editor.Pos(0, 2), editor.Move(s, editor.Left, false).Cursor)
		assert.Equal(t, editor.Pos(0, 2), editor.Move(s, editor.Up, false).Cursor)
		assert.Equal(t, editor.Pos(0, 7), editor.Move(s, editor.Right, false).Cursor)
		assert.Equal(t, editor.Pos(0, 7), editor.Move(s, editor.Down, false).Cursor)
		assert.Nil(t, editor.Move(s, editor.Left, false).Anchor)
	}

	assert.Equal(t, editor.Pos(0, 11), editor.Move(backward, editor.LineEnd, false).Cursor)
}

func TestMoveExtend(t *testing.T) {
	t.Parallel()

	s := at([]string{"hello"}, 0, 1)
	s = editor.Move(s, editor.Right, true)
	s = editor.Move(s, editor.Right, true)
	require.NotNil(t, s.Anchor)
	assert.Equal(t, editor.Pos(0, 1), *s.Anchor)
	assert.Equal(t, editor.Pos(0, 3), s.Cursor)
	assert.Equal(t, "el", editor.SelectedText(s))

	s = editor.Move(s, editor.LineStart, true)
	assert.Equal(t, editor.Pos(0, 1), *s.Anchor)
	assert.Equal(t, "h", editor.SelectedText(s))
}

func TestMoveWord(t *testing.T) {
	t.Parallel()

	lines := []string{"foo bar_baz, qux", "next"}

	s := editor.Move(at(lines, 0, 0), editor.WordRight, false)
	assert.Equal(t, editor.Pos(0, 3), s.Cursor)
	s = editor.Move(s, editor.WordRight, false)
	assert.Equal(t, editor.Pos(0, 11), s.Cursor)

	s = editor.Move(at(lines, 0, 16), editor.WordRight, false)
	assert.Equal(t, editor.Pos(1, 0), s.Cursor)

	s = editor.Move(at(lines, 0, 11), editor.WordLeft, false)
	assert.Equal(t, editor.Pos(0, 4), s.Cursor)
	s = editor.Move(at(lines, 1, 0), editor.WordLeft, false)
	assert.Equal(t, editor.Pos(0, 16), s.Cursor)
}

func TestDirectionNames(t *testing.T) {
	t.Parallel()

	for _, d := range []editor.Direction{editor.Left, editor.DocEnd, editor.WordRight} {
		parsed, ok := editor.ParseDirection(d.String())
		require.True(t, ok)
		assert.Equal(t, d, parsed)
	}
	_, ok := editor.ParseDirection("sideways")
	assert.False(t, ok)
}

func TestBackspace(t *testing.T) {
	t.Parallel()

	t.Run("joins with previous line", func(t *testing.T) {
		t.Parallel()

		s := editor.Backspace(at([]string{"hello", "world"}, 1, 0))
		assert.Equal(t, []string{"helloworld"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 5), s.Cursor)
	})

	t.Run("deletes previous character", func(t *testing.T) {
		t.Parallel()

		s := editor.Backspace(at([]string{"abc"}, 0, 2))
		assert.Equal(t, []string{"ac"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 1), s.Cursor)
	})

	t.Run("deletes whole astral rune", func(t *testing.T) {
		t.Parallel()

		s := editor.Backspace(at([]string{"a😀"}, 0, 3))
		assert.Equal(t, []string{"a"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 1), s.Cursor)
	})

	t.Run("no-op at document start", func(t *testing.T) {
		t.Parallel()

		s := at([]string{"abc"}, 0, 0)
		assert.Same(t, s, editor.Backspace(s))
	})

	t.Run("deletes selection only", func(t *testing.T) {
		t.Parallel()

		s := editor.Backspace(sel([]string{"abcdef"}, editor.Pos(0, 1), editor.Pos(0, 4)))
		assert.Equal(t, []string{"aef"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 1), s.Cursor)
	})
}

func TestDeleteForward(t *testing.T) {
	t.Parallel()

	s := editor.DeleteForward(at([]string{"hello", "world"}, 0, 5))
	assert.Equal(t, []string{"helloworld"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 5), s.Cursor)

	s = editor.DeleteForward(at([]string{"abc"}, 0, 1))
	assert.Equal(t, []string{"ac"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 1), s.Cursor)

	end := at([]string{"abc"}, 0, 3)
	assert.Same(t, end, editor.DeleteForward(end))

	s = editor.DeleteForward(sel([]string{"ab", "cd"}, editor.Pos(1, 1), editor.Pos(0, 1)))
	assert.Equal(t, []string{"ad"}, s.Lines)
}

func TestDeleteSelection(t *testing.T) {
	t.Parallel()

	t.Run("identity without anchor", func(t *testing.T) {
		t.Parallel()

		s := at([]string{"abc"}, 0, 1)
		assert.Same(t, s, editor.DeleteSelection(s))
	})

	t.Run("multi line", func(t *testing.T) {
		t.Parallel()

		s := editor.DeleteSelection(sel([]string{"one", "two", "three"}, editor.Pos(2, 2), editor.Pos(0, 1)))
		assert.Equal(t, []string{"oree"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 1), s.Cursor)
		assert.Nil(t, s.Anchor)
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		in := sel([]string{"one", "two"}, editor.Pos(0, 0), editor.Pos(1, 3))
		editor.DeleteSelection(in)
		assert.Equal(t, []string{"one", "two"}, in.Lines)
	})
}

func TestDeleteThenInsertRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []*editor.State{
		sel([]string{"alpha", "beta", "gamma"}, editor.Pos(0, 2), editor.Pos(2, 3)),
		sel([]string{"alpha", "beta", "gamma"}, editor.Pos(1, 4), editor.Pos(0, 0)),
		sel([]string{"héllo wörld"}, editor.Pos(0, 1), editor.Pos(0, 8)),
	}

	for _, original := range cases {
		text := editor.SelectedText(original)
		restored := editor.InsertText(editor.DeleteSelection(original), text)
		assert.Equal(t, original.Lines, restored.Lines)
	}
}

func TestInsertCharacter(t *testing.T) {
	t.Parallel()

	s := editor.InsertCharacter(at([]string{"ac"}, 0, 1), "b")
	assert.Equal(t, []string{"abc"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 2), s.Cursor)

	s = editor.InsertCharacter(sel([]string{"abcd"}, editor.Pos(0, 1), editor.Pos(0, 3)), "X")
	assert.Equal(t, []string{"aXd"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 2), s.Cursor)

	s = editor.InsertCharacter(at([]string{"a"}, 0, 1), "😀")
	assert.Equal(t, editor.Pos(0, 3), s.Cursor)

	empty := at([]string{"a"}, 0, 1)
	assert.Same(t, empty, editor.InsertCharacter(empty, ""))
}

func TestInsertSpaceExpandsBullet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"bare dash", "-", "\t- "},
		{"one tab", "\t-", "\t- "},
		{"three tabs", "\t\t\t-", "\t\t\t- "},
		{"capped at five", "\t\t\t\t\t\t\t-", "\t\t\t\t\t- "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := editor.InsertCharacter(at([]string{tc.line}, 0, len(tc.line)), " ")
			assert.Equal(t, []string{tc.want}, s.Lines)
			assert.Equal(t, editor.Pos(0, len(tc.want)), s.Cursor)
		})
	}

	s := editor.InsertCharacter(at([]string{"a-"}, 0, 2), " ")
	assert.Equal(t, []string{"a- "}, s.Lines)
}

func TestInsertNewline(t *testing.T) {
	t.Parallel()

	t.Run("splits plain line", func(t *testing.T) {
		t.Parallel()

		s := editor.InsertNewline(at([]string{"hello"}, 0, 2))
		assert.Equal(t, []string{"he", "llo"}, s.Lines)
		assert.Equal(t, editor.Pos(1, 0), s.Cursor)
	})

	t.Run("continues bullet", func(t *testing.T) {
		t.Parallel()

		s := editor.InsertNewline(at([]string{"\t\t- item"}, 0, 8))
		assert.Equal(t, []string{"\t\t- item", "\t\t- "}, s.Lines)
		assert.Equal(t, editor.Pos(1, 4), s.Cursor)
	})

	t.Run("splits bullet content", func(t *testing.T) {
		t.Parallel()

		s := editor.InsertNewline(at([]string{"\t- onetwo"}, 0, 6))
		assert.Equal(t, []string{"\t- one", "\t- two"}, s.Lines)
	})

	t.Run("empty bullet exits list", func(t *testing.T) {
		t.Parallel()

		s := editor.InsertNewline(at([]string{"\t- a", "\t- "}, 1, 3))
		assert.Equal(t, []string{"\t- a", ""}, s.Lines)
		assert.Equal(t, editor.Pos(1, 0), s.Cursor)
	})

	t.Run("replaces selection", func(t *testing.T) {
		t.Parallel()

		s := editor.InsertNewline(sel([]string{"abcd"}, editor.Pos(0, 1), editor.Pos(0, 3)))
		assert.Equal(t, []string{"a", "d"}, s.Lines)
	})
}

func TestInsertText(t *testing.T) {
	t.Parallel()

	s := editor.InsertText(at([]string{"start end"}, 0, 6), "one\ntwo\nthree ")
	assert.Equal(t, []string{"start one", "two", "three end"}, s.Lines)
	assert.Equal(t, editor.Pos(2, 6), s.Cursor)

	s = editor.InsertText(at([]string{"ab"}, 0, 1), "XY")
	assert.Equal(t, []string{"aXYb"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 3), s.Cursor)

	s = editor.InsertText(at([]string{"ab"}, 0, 1), "\r\n")
	assert.Equal(t, []string{"a", "b"}, s.Lines)

	s = editor.InsertCharacter(at([]string{"ab"}, 0, 1), "\n")
	assert.Equal(t, []string{"a", "b"}, s.Lines)
}

func TestInsertTab(t *testing.T) {
	t.Parallel()

	s := editor.InsertTab(at([]string{"ab"}, 0, 1))
	assert.Equal(t, []string{"a\tb"}, s.Lines)
	assert.Equal(t, editor.Pos(0, 2), s.Cursor)
}

func TestIndentOutdent(t *testing.T) {
	t.Parallel()

	t.Run("indent bullet", func(t *testing.T) {
		t.Parallel()

		s := editor.Indent(at([]string{"\t- item"}, 0, 5))
		assert.Equal(t, []string{"\t\t- item"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 6), s.Cursor)
	})

	t.Run("indent at max inserts tab", func(t *testing.T) {
		t.Parallel()

		s := editor.Indent(at([]string{"\t\t\t\t\t- x"}, 0, 8))
		assert.Equal(t, []string{"\t\t\t\t\t- x\t"}, s.Lines)
	})

	t.Run("indent plain line inserts tab", func(t *testing.T) {
		t.Parallel()

		s := editor.Indent(at([]string{"ab"}, 0, 0))
		assert.Equal(t, []string{"\tab"}, s.Lines)
	})

	t.Run("outdent bullet", func(t *testing.T) {
		t.Parallel()

		s := editor.Outdent(at([]string{"\t\t- item"}, 0, 6))
		assert.Equal(t, []string{"\t- item"}, s.Lines)
		assert.Equal(t, editor.Pos(0, 5), s.Cursor)
	})

	t.Run("outdent at level one is a no-op", func(t *testing.T) {
		t.Parallel()

		s := at([]string{"\t- item"}, 0, 3)
		assert.Same(t, s, editor.Outdent(s))
	})

	t.Run("outdent plain line is a no-op", func(t *testing.T) {
		t.Parallel()

		s := at([]string{"plain"}, 0, 3)
		assert.Same(t, s, editor.Outdent(s))
	})
}
