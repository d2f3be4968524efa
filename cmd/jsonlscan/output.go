package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/usestring/jsonlscan/pkg/jsonschema"
	"github.com/usestring/jsonlscan/pkg/types"
)

const (
	formatJSON       = "json"
	formatYAML       = "yaml"
	formatJSONSchema = "jsonschema"
	formatSummary    = "summary"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatJSONSchema, formatSummary:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, jsonschema or summary)", format)
	}
}

func writeReport(w io.Writer, report *types.Report, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, report)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case formatJSONSchema:
		return writeJSON(w, jsonschema.FromReport(report))
	case formatSummary:
		return writeSummary(w, report)
	default:
		return validateFormat(format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeSummary(w io.Writer, report *types.Report) error {
	p := message.NewPrinter(language.English)
	meta := report.Meta

	p.Fprintf(w, "Files scanned:       %d\n", meta.FilesScanned)
	p.Fprintf(w, "Lines parsed:        %d\n", meta.TotalLinesParsed)
	p.Fprintf(w, "Parse errors:        %d\n", meta.ParseErrors)
	if meta.NonObjectRecords > 0 {
		p.Fprintf(w, "Non-object records:  %d\n", meta.NonObjectRecords)
	}
	if meta.Filter != "" {
		p.Fprintf(w, "Filter:              %s (%d records excluded)\n", meta.Filter, meta.FilteredRecords)
	}
	p.Fprintf(w, "Entry types:         %d\n\n", len(meta.UniqueEntryTypes))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTRY TYPE\tRECORDS\tFIELDS\tBLOCK TYPES")
	for _, entryType := range meta.UniqueEntryTypes {
		entry := report.EntryTypes[entryType]
		p.Fprintf(tw, "%s\t%d\t%d\t%d\n", entryType, entry.Occurrences, len(entry.TopLevelFields), len(entry.ContentBlockTypes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Diagnostics != nil {
		fmt.Fprintln(w)
		for _, f := range report.Diagnostics.Files {
			line := p.Sprintf("%s: %d lines, %d parse errors", f.Path, f.LinesRead, f.ParseErrors)
			if f.ParseErrorLines != "" {
				line += " (lines " + f.ParseErrorLines + ")"
			}
			if f.Error != "" {
				line += " [" + f.Error + "]"
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// writeError prints err as a JSON object, the shape scripts expect on failure.
func writeError(w io.Writer, err error) {
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
