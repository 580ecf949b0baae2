package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/fsutil"
	"github.com/yaklabco/gojot/pkg/macro"
	"github.com/yaklabco/gojot/pkg/script"
)

func run(t *testing.T, opts script.Options, start *editor.State, src string) *script.Result {
	t.Helper()

	s, err := script.Parse([]byte(src))
	require.NoError(t, err)

	result, err := script.New(opts).Run(context.Background(), start, s)
	require.NoError(t, err)
	return result
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{name: "empty document", src: "", wantErr: script.ErrEmptyScript},
		{name: "no steps", src: "steps: []\n", wantErr: script.ErrEmptyScript},
		{name: "unknown op", src: "steps:\n  - op: fly\n", wantErr: script.ErrUnknownOp},
		{name: "cursor needs line", src: "steps:\n  - op: cursor\n    col: 1\n", wantErr: script.ErrMissingArgument},
		{name: "select needs both ends", src: "steps:\n  - op: select\n    from: {line: 0, col: 0}\n", wantErr: script.ErrMissingArgument},
		{name: "bad direction", src: "steps:\n  - op: move\n    direction: sideways\n", wantErr: script.ErrInvalidArgument},
		{name: "bad marker", src: "steps:\n  - op: format\n    marker: \"%%\"\n", wantErr: script.ErrInvalidArgument},
		{name: "negative count", src: "steps:\n  - op: backspace\n    count: -1\n", wantErr: script.ErrInvalidArgument},
		{name: "type needs text", src: "steps:\n  - op: type\n", wantErr: script.ErrMissingArgument},
		{name: "valid", src: "steps:\n  - op: move\n    direction: word-left\n    extend: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := script.Parse([]byte(tt.src))
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := script.Parse([]byte("steps:\n  - op: undo\n    colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParse_ReportsStepNumbers(t *testing.T) {
	t.Parallel()

	_, err := script.Parse([]byte("steps:\n  - op: undo\n  - op: fly\n  - op: jump\n"))
	require.Error(t, err)

	var stepErr *script.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)
	assert.Contains(t, err.Error(), "step 2 (fly)")
	assert.Contains(t, err.Error(), "step 3 (jump)")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "edit.yml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - op: select-all\n"), 0o644))

	s, err := script.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, s.Steps, 1)

	_, err = script.Load(context.Background(), filepath.Join(dir, "missing.yml"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestRun_TypingUndoRedo(t *testing.T) {
	t.Parallel()

	result := run(t, script.Options{}, nil, `
steps:
  - op: type
    text: hello
  - op: newline
  - op: type
    text: world
  - op: undo
`)
	assert.Equal(t, []string{"hello", ""}, result.State.Lines)
	assert.Equal(t, 4, result.Steps)
	assert.Equal(t, 4, result.Changed)
	assert.True(t, result.History.CanRedo())

	redone := run(t, script.Options{}, result.State, "steps:\n  - op: redo\n")
	assert.Equal(t, result.State, redone.State, "a fresh run has no redo stack")
}

func TestRun_UndoThenRedo(t *testing.T) {
	t.Parallel()

	result := run(t, script.Options{}, nil, `
steps:
  - op: type
    text: ab
  - op: type
    text: c
  - op: undo
    count: 2
  - op: redo
`)
	assert.Equal(t, []string{"ab"}, result.State.Lines)
	assert.Equal(t, 1, result.History.RedoLen())
}

func TestRun_CursorMovementIsNotRecorded(t *testing.T) {
	t.Parallel()

	result := run(t, script.Options{}, editor.FromLines([]string{"one two"}), `
steps:
  - op: move
    direction: line-end
  - op: move
    direction: word-left
    extend: true
  - op: delete-selection
`)
	assert.Equal(t, []string{"one "}, result.State.Lines)
	assert.Equal(t, 1, result.Changed)
	assert.Equal(t, 1, result.History.Len())
}

func TestRun_AutolinksTypedURLs(t *testing.T) {
	t.Parallel()

	result := run(t, script.Options{}, nil, "steps:\n  - op: type\n    text: \"see https://go.dev \"\n")
	assert.Equal(t, []string{"see [https://go.dev](https://go.dev) "}, result.State.Lines)
}

func TestType_EnterOnEmptyBulletLeavesLineAboveAlone(t *testing.T) {
	t.Parallel()

	st := editor.SetCursor(editor.FromLines([]string{"see https://go.dev", "\t- "}), 1, 3)
	got := script.Type(st, "\n")
	assert.Equal(t, []string{"see https://go.dev", ""}, got.Lines)

	st = editor.SetCursor(editor.FromLines([]string{"see https://go.dev"}), 0, 18)
	got = script.Type(st, "\n")
	assert.Equal(t, []string{"see [https://go.dev](https://go.dev)", ""}, got.Lines)
}

func TestRun_Format(t *testing.T) {
	t.Parallel()

	result := run(t, script.Options{}, editor.FromLines([]string{"hello world"}), `
steps:
  - op: select
    from: {line: 0, col: 0}
    to: {line: 0, col: 5}
  - op: format
    marker: "**"
`)
	assert.Equal(t, []string{"**hello** world"}, result.State.Lines)
}

func TestRun_ExpandMacro(t *testing.T) {
	t.Parallel()

	opts := script.Options{
		Macros: macro.NewSet(macro.Defaults()...),
		Vars:   macro.Vars{"date": "2026-10-19"},
	}
	result := run(t, opts, nil, "steps:\n  - op: type\n    text: \"on /date\"\n  - op: expand\n")
	assert.Equal(t, []string{"on 2026-10-19"}, result.State.Lines)

	unexpanded := run(t, script.Options{}, nil, "steps:\n  - op: type\n    text: /date\n  - op: expand\n")
	assert.Equal(t, []string{"/date"}, unexpanded.State.Lines)
}

func TestRun_ScrollWindow(t *testing.T) {
	t.Parallel()

	result := run(t, script.Options{}, editor.FromLines([]string{"# Log", "text"}), `
steps:
  - op: cursor
    line: 0
    col: 2
  - op: scroll
    lines: 5
`)
	assert.Equal(t, "~S5~ # Log", result.State.Lines[0])
	assert.Equal(t, editor.Pos(0, 7), result.State.Cursor)

	cleared := run(t, script.Options{}, result.State, "steps:\n  - op: scroll\n")
	assert.Equal(t, "# Log", cleared.State.Lines[0])
	assert.Equal(t, editor.Pos(0, 2), cleared.State.Cursor)
}

func TestRun_StopsAtFailingStep(t *testing.T) {
	t.Parallel()

	s := &script.Script{Steps: []script.Step{
		{Op: script.OpType, Text: "ok"},
		{Op: "fly"},
		{Op: script.OpType, Text: "never"},
	}}

	result, err := script.New(script.Options{}).Run(context.Background(), nil, s)
	require.ErrorIs(t, err, script.ErrUnknownOp)

	var stepErr *script.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, []string{"ok"}, result.State.Lines)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &script.Script{Steps: []script.Step{{Op: script.OpSelectAll}}}
	result, err := script.New(script.Options{}).Run(ctx, nil, s)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Steps)
}

func TestOps(t *testing.T) {
	t.Parallel()

	ops := script.Ops()
	assert.Contains(t, ops, script.OpUndo)
	assert.Contains(t, ops, script.OpSwapSectionDn)

	ops[0] = "changed"
	assert.NotEqual(t, "changed", script.Ops()[0])
}
