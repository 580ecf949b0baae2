package logging

// Field names for structured log entries.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldSource     = "source"

	// Documents.
	FieldDocumentID = "id"
	FieldLines      = "lines"
	FieldHeadings   = "headings"
	FieldTitle      = "title"
	FieldBackup     = "backup"

	// Edit scripts.
	FieldScript    = "script"
	FieldStep      = "step"
	FieldOperation = "op"
	FieldDryRun    = "dry_run"
	FieldChanged   = "changed"
	FieldAdditions = "additions"
	FieldDeletions = "deletions"
	FieldUndoDepth = "undo_depth"

	// Export.
	FieldFlavor = "flavor"
	FieldFormat = "format"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
