// Package textcol converts between UTF-16 code-unit columns and byte offsets
// in UTF-8 strings.
//
// Editor columns are measured in UTF-16 code units so that positions agree
// with the hosts that measure text that way. Lines themselves are ordinary Go
// strings. A column that would fall between the two halves of a surrogate pair
// is snapped down to the start of that rune.
package textcol

import "unicode/utf8"

// surrogateMin is the first rune that needs two UTF-16 code units.
const surrogateMin = 0x10000

// RuneWidth returns the number of UTF-16 code units needed to encode r.
func RuneWidth(r rune) int {
	if r >= surrogateMin && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// ByteOffset returns the byte offset in s of the given UTF-16 column.
// Columns past the end map to len(s); negative columns map to 0.
func ByteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	units := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		w := RuneWidth(r)
		if units+w > col {
			return i
		}
		units += w
		i += size
		if units == col {
			return i
		}
	}
	return len(s)
}

// Col returns the UTF-16 column of the given byte offset in s.
// Offsets inside a multi-byte rune resolve to the start of that rune.
func Col(s string, byteOff int) int {
	units := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > byteOff {
			return units
		}
		units += RuneWidth(r)
		i += size
	}
	return units
}

// Clamp bounds col to [0, Len(s)] and snaps it down to a rune boundary.
func Clamp(s string, col int) int {
	if col <= 0 {
		return 0
	}
	return Col(s, ByteOffset(s, col))
}

// Slice returns the substring of s between the UTF-16 columns from and to.
// Both ends are clamped, and an inverted range yields "".
func Slice(s string, from, to int) string {
	start := ByteOffset(s, from)
	end := ByteOffset(s, to)
	if end <= start {
		return ""
	}
	return s[start:end]
}

// From returns the suffix of s starting at the UTF-16 column col.
func From(s string, col int) string {
	return s[ByteOffset(s, col):]
}

// To returns the prefix of s ending at the UTF-16 column col.
func To(s string, col int) string {
	return s[:ByteOffset(s, col)]
}

// Prev returns the column of the rune boundary before col.
func Prev(s string, col int) int {
	col = Clamp(s, col)
	if col == 0 {
		return 0
	}
	off := ByteOffset(s, col)
	r, _ := utf8.DecodeLastRuneInString(s[:off])
	return col - RuneWidth(r)
}

// Next returns the column of the rune boundary after col.
func Next(s string, col int) int {
	col = Clamp(s, col)
	off := ByteOffset(s, col)
	if off >= len(s) {
		return col
	}
	r, _ := utf8.DecodeRuneInString(s[off:])
	return col + RuneWidth(r)
}

// Splice replaces the columns [from, to) of s with text.
func Splice(s string, from, to int, text string) string {
	start := ByteOffset(s, from)
	end := ByteOffset(s, to)
	if end < start {
		end = start
	}
	return s[:start] + text + s[end:]
}
