// Package shape aggregates the structural shape of discriminated JSONL
// records: per entry type, the fields observed and every type label each
// field took, recursively for the message object and its content blocks.
package shape

import (
	"sort"

	"github.com/usestring/jsonlscan/pkg/jsonvalue"
	"github.com/usestring/jsonlscan/pkg/types"
)

// Content shapes recorded for message.content besides plain type labels.
const (
	ShapeString = "string"
	ShapeArray  = "array"
)

// labelSet is the set of type labels observed for one field.
type labelSet map[jsonvalue.Label]struct{}

// fieldSets maps a field name to its label set. A field is present only
// once it has been observed, so every set is non-empty.
type fieldSets map[string]labelSet

func (f fieldSets) add(field string, label jsonvalue.Label) {
	set, ok := f[field]
	if !ok {
		set = make(labelSet, 1)
		f[field] = set
	}
	set[label] = struct{}{}
}

func (f fieldSets) union(other fieldSets) {
	for field, labels := range other {
		for label := range labels {
			f.add(field, label)
		}
	}
}

func (f fieldSets) sorted() types.FieldTypes {
	out := make(types.FieldTypes, len(f))
	for field, labels := range f {
		list := make([]string, 0, len(labels))
		for label := range labels {
			list = append(list, string(label))
		}
		sort.Strings(list)
		out[field] = list
	}
	return out
}

// entryAggregate accumulates everything observed under one entry type.
// The message, shape and block sections stay nil until first observed.
type entryAggregate struct {
	occurrences int
	topLevel    fieldSets
	message     fieldSets
	shapes      map[string]struct{}
	blocks      map[string]fieldSets
}

func newEntryAggregate() *entryAggregate {
	return &entryAggregate{topLevel: make(fieldSets)}
}

func (e *entryAggregate) addMessageField(field string, label jsonvalue.Label) {
	if e.message == nil {
		e.message = make(fieldSets)
	}
	e.message.add(field, label)
}

func (e *entryAggregate) addShape(shape string) {
	if e.shapes == nil {
		e.shapes = make(map[string]struct{})
	}
	e.shapes[shape] = struct{}{}
}

func (e *entryAggregate) addBlockField(blockType, field string, label jsonvalue.Label) {
	if e.blocks == nil {
		e.blocks = make(map[string]fieldSets)
	}
	fields, ok := e.blocks[blockType]
	if !ok {
		fields = make(fieldSets)
		e.blocks[blockType] = fields
	}
	fields.add(field, label)
}

// Counters are the global scan counters carried alongside the aggregate.
type Counters struct {
	FilesScanned     int
	LinesParsed      int
	ParseErrors      int
	NonObjectRecords int
	FilteredRecords  int
}

// Add sums other into c.
func (c *Counters) Add(other Counters) {
	c.FilesScanned += other.FilesScanned
	c.LinesParsed += other.LinesParsed
	c.ParseErrors += other.ParseErrors
	c.NonObjectRecords += other.NonObjectRecords
	c.FilteredRecords += other.FilteredRecords
}

// Aggregator builds the aggregate for one scan, or one partition of it.
// It only grows: ingesting or merging never removes an entry type, field
// or label. An Aggregator is not safe for concurrent use; parallel scans
// use one per worker and Merge the results.
type Aggregator struct {
	Counters Counters
	entries  map[string]*entryAggregate
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{entries: make(map[string]*entryAggregate)}
}

func (a *Aggregator) entry(entryType string) *entryAggregate {
	e, ok := a.entries[entryType]
	if !ok {
		e = newEntryAggregate()
		a.entries[entryType] = e
	}
	return e
}

// Ingest adds one decoded record to the aggregate.
// Records that are not objects contribute nothing; Ingest returns false
// for them and counts them in Counters.NonObjectRecords. Sub-structures of
// an unexpected shape are skipped silently.
func (a *Aggregator) Ingest(record jsonvalue.Value) bool {
	if !record.IsObject() {
		a.Counters.NonObjectRecords++
		return false
	}

	e := a.entry(jsonvalue.Discriminant(record))
	e.occurrences++

	for field, v := range record.Members() {
		e.topLevel.add(field, jsonvalue.Classify(v))
	}

	msg, ok := record.Get("message")
	if !ok || !msg.IsObject() {
		return true
	}
	for field, v := range msg.Members() {
		e.addMessageField(field, jsonvalue.Classify(v))
	}

	content, ok := msg.Get("content")
	if !ok {
		return true
	}
	switch content.Kind() {
	case jsonvalue.KindString:
		e.addShape(ShapeString)
	case jsonvalue.KindArray:
		e.addShape(ShapeArray)
		for _, block := range content.Items() {
			e.ingestBlock(block)
		}
	case jsonvalue.KindNull:
		// null content carries no shape
	default:
		// Other shapes are recorded by label only, without expansion.
		e.addShape(string(jsonvalue.Classify(content)))
	}
	return true
}

func (e *entryAggregate) ingestBlock(block jsonvalue.Value) {
	switch {
	case block.IsObject():
		blockType := jsonvalue.Discriminant(block)
		for field, v := range block.Members() {
			e.addBlockField(blockType, field, jsonvalue.Classify(v))
		}
	case block.IsString():
		e.addBlockField(jsonvalue.PlainString, jsonvalue.ValueField, jsonvalue.LabelString)
	default:
		e.addBlockField(jsonvalue.Other, jsonvalue.ValueField, jsonvalue.Classify(block))
	}
}

// Merge adds every entry, field, label and counter of other into a.
// Merging is commutative and associative, and a never shares storage with
// other afterwards.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil {
		return
	}
	a.Counters.Add(other.Counters)

	for entryType, src := range other.entries {
		dst := a.entry(entryType)
		dst.occurrences += src.occurrences
		dst.topLevel.union(src.topLevel)

		if src.message != nil {
			if dst.message == nil {
				dst.message = make(fieldSets)
			}
			dst.message.union(src.message)
		}
		for shape := range src.shapes {
			dst.addShape(shape)
		}
		for blockType, fields := range src.blocks {
			if dst.blocks == nil {
				dst.blocks = make(map[string]fieldSets)
			}
			dstFields, ok := dst.blocks[blockType]
			if !ok {
				dstFields = make(fieldSets)
				dst.blocks[blockType] = dstFields
			}
			dstFields.union(fields)
		}
	}
}

// Clone returns a deep copy of a.
func (a *Aggregator) Clone() *Aggregator {
	c := New()
	c.Merge(a)
	return c
}

// EntryTypes returns every entry type observed so far, sorted.
func (a *Aggregator) EntryTypes() []string {
	out := make([]string, 0, len(a.entries))
	for t := range a.entries {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Occurrences returns the number of records counted under entryType.
func (a *Aggregator) Occurrences(entryType string) int {
	if e, ok := a.entries[entryType]; ok {
		return e.occurrences
	}
	return 0
}
