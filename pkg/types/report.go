package types

// FieldTypes maps a field name to the sorted, deduplicated type labels
// observed for it.
type FieldTypes map[string][]string

// Report is the finalized schema report for a scan.
type Report struct {
	Meta        ReportMeta                 `json:"_meta" yaml:"_meta"`
	EntryTypes  map[string]EntryTypeReport `json:"entry_types,omitzero" yaml:"entry_types"`
	Diagnostics *Diagnostics               `json:"_diagnostics,omitempty" yaml:"_diagnostics,omitempty"`
}

// ReportMeta carries the global scan counters.
type ReportMeta struct {
	FilesScanned     int      `json:"files_scanned" yaml:"files_scanned"`
	TotalLinesParsed int      `json:"total_lines_parsed" yaml:"total_lines_parsed"`
	ParseErrors      int      `json:"parse_errors" yaml:"parse_errors"`
	UniqueEntryTypes []string `json:"unique_entry_types,omitzero" yaml:"unique_entry_types"`
	NonObjectRecords int      `json:"non_object_records,omitempty" yaml:"non_object_records,omitempty"`
	FilteredRecords  int      `json:"filtered_records,omitempty" yaml:"filtered_records,omitempty"`
	Filter           string   `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// EntryTypeReport describes every record grouped under one entry type.
// The message, content shape and content block sections are present only
// when they were observed.
type EntryTypeReport struct {
	Occurrences       int                   `json:"occurrences" yaml:"occurrences"`
	TopLevelFields    FieldTypes            `json:"top_level_fields" yaml:"top_level_fields"`
	MessageFields     FieldTypes            `json:"message_fields,omitempty" yaml:"message_fields,omitempty"`
	ContentShapes     []string              `json:"content_shapes,omitempty" yaml:"content_shapes,omitempty"`
	ContentBlockTypes map[string]FieldTypes `json:"content_block_types,omitempty" yaml:"content_block_types,omitempty"`
}

// Diagnostics lists per-file scan details.
type Diagnostics struct {
	Files []FileDiagnostics `json:"files" yaml:"files"`
}

// FileDiagnostics describes how a single file was scanned.
type FileDiagnostics struct {
	Path            string `json:"path" yaml:"path"`
	LinesRead       int    `json:"lines_read" yaml:"lines_read"`
	ParseErrors     int    `json:"parse_errors" yaml:"parse_errors"`
	ParseErrorLines string `json:"parse_error_lines,omitempty" yaml:"parse_error_lines,omitempty"` // e.g. "3-5,9"
	Cached          bool   `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error           string `json:"error,omitempty" yaml:"error,omitempty"`
}
