// Package history keeps bounded undo and redo stacks of editor snapshots.
//
// The host decides which edits are recorded: it pushes the state before a
// content change and leaves pure cursor movement out. A History is not safe
// for concurrent use.
package history

import (
	"github.com/yaklabco/gojot/pkg/editor"
)

// DefaultCapacity is the number of snapshots kept per stack.
const DefaultCapacity = 500

// History manages undo/redo snapshots for one document.
type History struct {
	undoStack []*editor.State
	redoStack []*editor.State

	capacity int
}

// New creates a history holding at most capacity snapshots per stack.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Push records s as an undo point and clears the redo stack. A snapshot
// whose lines equal the most recent one is not recorded again.
func (h *History) Push(s *editor.State) {
	h.redoStack = nil
	h.undoStack = h.pushTo(h.undoStack, s)
}

// pushTo appends s to stack unless it repeats the top entry, evicting the
// oldest entries beyond capacity.
func (h *History) pushTo(stack []*editor.State, s *editor.State) []*editor.State {
	if s == nil {
		return stack
	}
	if n := len(stack); n > 0 && stack[n-1].SameContent(s) {
		return stack
	}
	stack = append(stack, s)
	if excess := len(stack) - h.capacity; excess > 0 {
		stack = stack[excess:]
	}
	return stack
}

// Undo returns the most recent snapshot that differs from current, or nil
// when there is none. current is kept for Redo. The returned snapshot stays
// on the undo stack as the baseline for the next edit.
func (h *History) Undo(current *editor.State) *editor.State {
	i := h.undoIndex(current)
	if i < 0 {
		return nil
	}
	prev := h.undoStack[i]
	h.undoStack = h.undoStack[:i+1]
	h.redoStack = h.pushTo(h.redoStack, current)
	return prev
}

// undoIndex finds the top-most undo entry whose content differs from
// current, or -1.
func (h *History) undoIndex(current *editor.State) int {
	for i := len(h.undoStack) - 1; i >= 0; i-- {
		if current == nil || !h.undoStack[i].SameContent(current) {
			return i
		}
	}
	return -1
}

// Redo returns the most recently undone snapshot, or nil when there is none.
// Both current and the returned snapshot become undo points.
func (h *History) Redo(current *editor.State) *editor.State {
	n := len(h.redoStack)
	if n == 0 {
		return nil
	}
	next := h.redoStack[n-1]
	h.redoStack = h.redoStack[:n-1]
	h.undoStack = h.pushTo(h.undoStack, current)
	h.undoStack = h.pushTo(h.undoStack, next)
	return next
}

// CanUndo reports whether Undo(current) would return a snapshot.
func (h *History) CanUndo(current *editor.State) bool {
	return h.undoIndex(current) >= 0
}

// CanRedo reports whether Redo would return a snapshot.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Len returns the number of undo snapshots held.
func (h *History) Len() int {
	return len(h.undoStack)
}

// RedoLen returns the number of redo snapshots held.
func (h *History) RedoLen() int {
	return len(h.redoStack)
}

// Capacity returns the per-stack snapshot limit.
func (h *History) Capacity() int {
	return h.capacity
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
