package script

import (
	"context"
	"fmt"

	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/history"
	"github.com/yaklabco/gojot/pkg/macro"
	"github.com/yaklabco/gojot/pkg/outline"
)

// Options configures a Runner.
type Options struct {
	// HistoryCapacity bounds the undo history. Zero means
	// history.DefaultCapacity.
	HistoryCapacity int

	// Macros is used by expand. Nil disables expansion.
	Macros *macro.Set

	// Vars fills macro placeholders.
	Vars macro.Vars
}

// Result is the outcome of a script run.
type Result struct {
	// State is the final editor state.
	State *editor.State

	// Steps is the number of steps run, counting repeats once.
	Steps int

	// Changed is the number of steps that changed the buffer content.
	Changed int

	// History holds the undo and redo stacks left by the run.
	History *history.History
}

// Runner replays scripts. A Runner is not safe for concurrent use.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run replays script from start. It stops at the first failing step; the
// returned Result then reflects the steps before it.
func (r *Runner) Run(ctx context.Context, start *editor.State, script *Script) (*Result, error) {
	if start == nil {
		start = editor.New()
	}
	result := &Result{
		State:   start,
		History: history.New(r.opts.HistoryCapacity),
	}

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("script cancelled: %w", err)
		}

		before := result.State
		next, err := r.apply(result.State, step, result.History)
		if err != nil {
			return result, &StepError{Index: i, Op: step.Op, Err: err}
		}

		result.Steps++
		if !next.SameContent(before) {
			result.Changed++
		}
		result.State = next
	}
	return result, nil
}

// apply runs one step, repeats included. Content edits record the prior
// state in hist; movement and undo/redo do not.
func (r *Runner) apply(st *editor.State, step Step, hist *history.History) (*editor.State, error) {
	if err := step.validate(); err != nil {
		return st, err
	}

	for range step.times() {
		switch step.Op {
		case OpUndo:
			if prev := hist.Undo(st); prev != nil {
				st = prev
			}
			continue
		case OpRedo:
			if next := hist.Redo(st); next != nil {
				st = next
			}
			continue
		}

		next := r.edit(st, step)
		if !next.SameContent(st) {
			hist.Push(st)
		}
		st = next
	}
	return st, nil
}

// edit maps a validated step to its editor operation.
//
//nolint:cyclop // One case per operation.
func (r *Runner) edit(st *editor.State, step Step) *editor.State {
	switch step.Op {
	case OpCursor:
		col := 0
		if step.Col != nil {
			col = *step.Col
		}
		return editor.SetCursor(st, *step.Line, col)
	case OpSelect:
		return editor.SetSelection(st,
			editor.Pos(step.From.Line, step.From.Col),
			editor.Pos(step.To.Line, step.To.Col))
	case OpSelectAll:
		return editor.SelectAll(st)
	case OpClearSelection:
		return editor.ClearSelection(st)
	case OpMove:
		dir, _ := editor.ParseDirection(step.Direction)
		return editor.Move(st, dir, step.Extend)
	case OpType:
		return Type(st, step.Text)
	case OpInsert:
		return editor.InsertText(st, step.Text)
	case OpNewline:
		return typeNewline(st)
	case OpTab:
		return editor.InsertTab(st)
	case OpBackspace:
		return editor.Backspace(st)
	case OpDelete:
		return editor.DeleteForward(st)
	case OpDeleteSelected:
		return editor.DeleteSelection(st)
	case OpIndent:
		return editor.Indent(st)
	case OpOutdent:
		return editor.Outdent(st)
	case OpFormat:
		return editor.ToggleInlineFormat(st, step.Marker)
	case OpToggleCollapse:
		return editor.ToggleCollapse(st)
	case OpScroll:
		return setScrollWindow(st, step.Lines)
	case OpSwapLineUp:
		return editor.SwapLineUp(st)
	case OpSwapLineDown:
		return editor.SwapLineDown(st)
	case OpSwapSectionUp:
		return editor.SwapHeadingSectionUp(st)
	case OpSwapSectionDn:
		return editor.SwapHeadingSectionDown(st)
	case OpExpand:
		if r.opts.Macros == nil {
			return st
		}
		next, _ := r.opts.Macros.Expand(st, r.opts.Vars)
		return next
	default:
		return st
	}
}

// Type enters text one keystroke at a time: tabs and newlines go through
// their editor operations, and a URL is linked when a space or newline
// follows it.
func Type(st *editor.State, text string) *editor.State {
	for _, r := range text {
		switch r {
		case '\r':
			continue
		case '\n':
			st = typeNewline(st)
		case '\t':
			st = editor.InsertTab(st)
		case ' ':
			st = editor.InsertCharacter(st, " ")
			if linked := editor.TryFormatURLBeforeSpace(st); linked != nil {
				st = linked
			}
		default:
			st = editor.InsertCharacter(st, string(r))
		}
	}
	return st
}

// typeNewline presses Enter. The line before the cursor is only autolinked
// when a line break was inserted; Enter on an empty bullet just clears it.
func typeNewline(st *editor.State) *editor.State {
	start := st.ClampPosition(st.Cursor)
	if editor.HasSelection(st) {
		start, _ = editor.SelectionBounds(*st.Anchor, st.Cursor)
	}
	next := editor.InsertNewline(st)
	if next.Cursor.Line != start.Line+1 {
		return next
	}
	if linked := editor.TryFormatURLBeforeNewline(next); linked != nil {
		next = linked
	}
	return next
}

// setScrollWindow sets the scroll-window budget of the heading under the
// cursor, keeping the cursor on the same heading text.
func setScrollWindow(st *editor.State, n int) *editor.State {
	cur := st.ClampPosition(st.Cursor)
	line := st.Lines[cur.Line]
	updated := outline.SetScrollWindow(line, n)
	if updated == line {
		return st
	}

	lines := append([]string(nil), st.Lines...)
	lines[cur.Line] = updated
	next := editor.FromLines(lines)
	next.CursorVisible = st.CursorVisible
	col := max(cur.Col+len(updated)-len(line), 0)
	return editor.SetCursor(next, cur.Line, col)
}
