package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for journal run identifiers.
	FieldRunID = "run_id"
	// FieldRootDir is the standardized structured logging key for the directory a run operates on.
	FieldRootDir = "root_dir"
	// FieldSource is the standardized structured logging key for metadata source names.
	FieldSource = "source"
)
