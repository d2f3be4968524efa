// Package types provides shared types for jsonlscan.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScanRequest describes the inputs of a scan shared by the CLI and MCP tools.
type ScanRequest struct {
	Root        string `json:"root,omitempty" jsonschema:"Directory to scan recursively for .jsonl files (default: configured root)"`
	MaxFiles    int    `json:"max_files,omitempty" jsonschema:"Maximum number of files to scan, newest first (default: 50)"`
	MaxLines    int    `json:"max_lines,omitempty" jsonschema:"Maximum lines read per file (default: 500)"`
	Where       string `json:"where,omitempty" jsonschema:"Optional jq expression; only records for which it yields a truthy value are aggregated"`
	Diagnostics bool   `json:"diagnostics,omitempty" jsonschema:"Include per-file diagnostics in the report"`
}

// JSONSchemaOutput is the output of the JSON Schema export tool.
type JSONSchemaOutput struct {
	Schema       any `json:"schema" jsonschema:"JSON Schema document"`
	EntryTypes   int `json:"entry_types" jsonschema:"Number of entry types described"`
	FilesScanned int `json:"files_scanned" jsonschema:"Number of files scanned"`
}
