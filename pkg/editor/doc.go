// Package editor implements the text editing core: a line buffer with a
// cursor and an optional selection, transformed by pure functions.
//
// Every operation takes a *State and returns a *State. The input is never
// modified. When an operation has nothing to do it returns its argument
// unchanged, so callers can compare pointers to learn whether anything
// happened. Out-of-range positions are clamped rather than rejected.
//
// Columns are UTF-16 code-unit offsets into a line (see package textcol).
package editor
