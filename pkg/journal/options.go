// Package journal discovers and indexes the documents of a notes directory.
package journal

import "github.com/yaklabco/gojot/pkg/document"

// Options controls discovery and indexing.
type Options struct {
	// Dir is the notes directory. If empty, the current working directory
	// is used.
	Dir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered documents. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip files or directories, matched against the path
	// relative to Dir or the base name. A trailing "/**" excludes a whole
	// directory.
	ExcludeGlobs []string

	// Jobs controls the maximum number of concurrent loaders.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Parse is passed to document.Load.
	Parse document.ParseOptions
}

// DefaultExtensions returns the default document extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}
