package shape

import (
	"sort"

	"github.com/usestring/jsonlscan/pkg/types"
)

// Finalize converts the aggregate into a report. It only reads the
// aggregate, so it may be called repeatedly. Every list in the report is
// sorted and deduplicated, and JSON object keys are emitted in sorted order
// by the encoder, so equal aggregates always serialize to the same bytes.
func (a *Aggregator) Finalize() *types.Report {
	entryTypes := a.EntryTypes()

	report := &types.Report{
		Meta: types.ReportMeta{
			FilesScanned:     a.Counters.FilesScanned,
			TotalLinesParsed: a.Counters.LinesParsed,
			ParseErrors:      a.Counters.ParseErrors,
			UniqueEntryTypes: entryTypes,
			NonObjectRecords: a.Counters.NonObjectRecords,
			FilteredRecords:  a.Counters.FilteredRecords,
		},
		EntryTypes: make(map[string]types.EntryTypeReport, len(entryTypes)),
	}

	for _, entryType := range entryTypes {
		report.EntryTypes[entryType] = a.entries[entryType].report()
	}
	return report
}

func (e *entryAggregate) report() types.EntryTypeReport {
	out := types.EntryTypeReport{
		Occurrences:    e.occurrences,
		TopLevelFields: e.topLevel.sorted(),
	}
	if len(e.message) > 0 {
		out.MessageFields = e.message.sorted()
	}
	if len(e.shapes) > 0 {
		shapes := make([]string, 0, len(e.shapes))
		for shape := range e.shapes {
			shapes = append(shapes, shape)
		}
		sort.Strings(shapes)
		out.ContentShapes = shapes
	}
	if len(e.blocks) > 0 {
		out.ContentBlockTypes = make(map[string]types.FieldTypes, len(e.blocks))
		for blockType, fields := range e.blocks {
			out.ContentBlockTypes[blockType] = fields.sorted()
		}
	}
	return out
}
