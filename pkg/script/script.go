// Package script replays edit scripts against an editor state.
//
// An edit script is a YAML list of steps named after editor operations:
//
//	steps:
//	  - op: cursor
//	    line: 2
//	    col: 0
//	  - op: type
//	    text: "see https://go.dev "
//	  - op: format
//	    marker: "**"
//	  - op: undo
//
// Steps run in order through the editor, with an undo history and an
// optional macro set, the way an interactive host would drive them.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

// Operation names.
const (
	OpCursor         = "cursor"
	OpSelect         = "select"
	OpSelectAll      = "select-all"
	OpClearSelection = "clear-selection"
	OpMove           = "move"
	OpType           = "type"
	OpInsert         = "insert"
	OpNewline        = "newline"
	OpTab            = "tab"
	OpBackspace      = "backspace"
	OpDelete         = "delete"
	OpDeleteSelected = "delete-selection"
	OpIndent         = "indent"
	OpOutdent        = "outdent"
	OpFormat         = "format"
	OpToggleCollapse = "toggle-collapse"
	OpScroll         = "scroll"
	OpSwapLineUp     = "swap-line-up"
	OpSwapLineDown   = "swap-line-down"
	OpSwapSectionUp  = "swap-section-up"
	OpSwapSectionDn  = "swap-section-down"
	OpExpand         = "expand"
	OpUndo           = "undo"
	OpRedo           = "redo"
)

//nolint:gochecknoglobals // Read-only lookup table.
var knownOps = []string{
	OpCursor, OpSelect, OpSelectAll, OpClearSelection, OpMove,
	OpType, OpInsert, OpNewline, OpTab, OpBackspace, OpDelete, OpDeleteSelected,
	OpIndent, OpOutdent, OpFormat, OpToggleCollapse, OpScroll,
	OpSwapLineUp, OpSwapLineDown, OpSwapSectionUp, OpSwapSectionDn,
	OpExpand, OpUndo, OpRedo,
}

// Ops returns the supported operation names.
func Ops() []string {
	return slices.Clone(knownOps)
}

// Sentinel errors for script validation.
var (
	ErrUnknownOp       = errors.New("unknown operation")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyScript     = errors.New("script has no steps")
)

// Pos is a position argument.
type Pos struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

// Step is one script operation. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op"`

	// Text is typed or inserted by type and insert.
	Text string `yaml:"text,omitempty"`

	// Line and Col place the cursor for cursor.
	Line *int `yaml:"line,omitempty"`
	Col  *int `yaml:"col,omitempty"`

	// From and To bound a select.
	From *Pos `yaml:"from,omitempty"`
	To   *Pos `yaml:"to,omitempty"`

	// Direction and Extend drive move.
	Direction string `yaml:"direction,omitempty"`
	Extend    bool   `yaml:"extend,omitempty"`

	// Marker is the emphasis marker for format.
	Marker string `yaml:"marker,omitempty"`

	// Lines is the scroll-window budget for scroll; 0 removes it.
	Lines int `yaml:"lines,omitempty"`

	// Count repeats the step. Zero means once.
	Count int `yaml:"count,omitempty"`
}

// times returns how often the step runs.
func (s Step) times() int {
	return max(s.Count, 1)
}

// Script is a parsed edit script.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// StepError reports a failing step.
type StepError struct {
	// Index is the 0-based step index.
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Parse decodes and validates a YAML edit script. Unknown keys are errors.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(ctx context.Context, path string) (*Script, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks every step for a known operation and its arguments.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}
	var errs []error
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, &StepError{Index: i, Op: step.Op, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (s Step) validate() error {
	if !slices.Contains(knownOps, s.Op) {
		return fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
	}
	if s.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidArgument)
	}

	switch s.Op {
	case OpCursor:
		if s.Line == nil {
			return fmt.Errorf("%w: line", ErrMissingArgument)
		}
	case OpSelect:
		if s.From == nil || s.To == nil {
			return fmt.Errorf("%w: from and to", ErrMissingArgument)
		}
	case OpMove:
		if s.Direction == "" {
			return fmt.Errorf("%w: direction", ErrMissingArgument)
		}
		if _, ok := editor.ParseDirection(s.Direction); !ok {
			return fmt.Errorf("%w: direction %q", ErrInvalidArgument, s.Direction)
		}
	case OpType, OpInsert:
		if s.Text == "" {
			return fmt.Errorf("%w: text", ErrMissingArgument)
		}
	case OpFormat:
		if !editor.IsFormatMarker(s.Marker) {
			return fmt.Errorf("%w: marker %q", ErrInvalidArgument, s.Marker)
		}
	case OpScroll:
		if s.Lines < 0 {
			return fmt.Errorf("%w: lines must not be negative", ErrInvalidArgument)
		}
	}
	return nil
}
