// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldMerge  = "merge"
	FieldJobs   = "jobs"
	FieldWindow = "window"
	FieldSource = "source"

	// Highlighting fields.
	FieldSpans   = "spans"
	FieldRuns    = "runs"
	FieldEdits   = "edits"
	FieldEdited  = "edited"
	FieldDirty   = "dirty"
	FieldPainted = "painted"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldRunsTotal       = "runs_total"

	// Watch fields.
	FieldEvent = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Theme fields.
	FieldKind = "kind"
)
