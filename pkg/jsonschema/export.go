// Package jsonschema renders an aggregated shape report as a JSON Schema
// document following Draft 2020-12.
package jsonschema

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/jsonlscan/pkg/jsonvalue"
	"github.com/usestring/jsonlscan/pkg/types"
)

// labelTypes maps type labels to JSON Schema type names.
var labelTypes = map[string]string{
	string(jsonvalue.LabelNull):   "null",
	string(jsonvalue.LabelBool):   "boolean",
	string(jsonvalue.LabelInt):    "integer",
	string(jsonvalue.LabelFloat):  "number",
	string(jsonvalue.LabelString): "string",
	string(jsonvalue.LabelArray):  "array",
	string(jsonvalue.LabelObject): "object",
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// FromReport builds a schema with one $defs entry per entry type and a root
// anyOf referencing all of them. Properties are never marked required: the
// report only records which types a field took when present.
func FromReport(r *types.Report) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "JSONL entry schema",
		Description: fmt.Sprintf("Inferred from %d records across %d files", totalOccurrences(r), r.Meta.FilesScanned),
		Definitions: jsonschema.Definitions{},
	}

	entryTypes := make([]string, 0, len(r.EntryTypes))
	for entryType := range r.EntryTypes {
		entryTypes = append(entryTypes, entryType)
	}
	sort.Strings(entryTypes)

	for _, entryType := range entryTypes {
		root.Definitions[entryType] = entrySchema(entryType, r.EntryTypes[entryType])
		root.AnyOf = append(root.AnyOf, &jsonschema.Schema{Ref: DefinitionRef(entryType)})
	}
	return root
}

// DefinitionRef returns the $ref URI for an entry type definition.
func DefinitionRef(entryType string) string {
	return "#/$defs/" + url.PathEscape(pointerEscaper.Replace(entryType))
}

func totalOccurrences(r *types.Report) int {
	n := 0
	for _, e := range r.EntryTypes {
		n += e.Occurrences
	}
	return n
}

func entrySchema(entryType string, e types.EntryTypeReport) *jsonschema.Schema {
	s := objectSchema(e.TopLevelFields, func(field string, labels []string) *jsonschema.Schema {
		switch field {
		case "type":
			if entryType != jsonvalue.NoType {
				return discriminantSchema(entryType, labels)
			}
		case "message":
			if len(e.MessageFields) > 0 {
				return labelsSchema(labels, messageSchema(e))
			}
		}
		return nil
	})
	s.Title = entryType
	s.Description = fmt.Sprintf("Observed in %d records", e.Occurrences)
	return s
}

func messageSchema(e types.EntryTypeReport) *jsonschema.Schema {
	return objectSchema(e.MessageFields, func(field string, labels []string) *jsonschema.Schema {
		if field == "content" && len(e.ContentBlockTypes) > 0 {
			return labelsSchemaWithArray(labels, contentItemsSchema(e.ContentBlockTypes))
		}
		return nil
	})
}

func contentItemsSchema(blocks map[string]types.FieldTypes) *jsonschema.Schema {
	blockTypes := make([]string, 0, len(blocks))
	for blockType := range blocks {
		blockTypes = append(blockTypes, blockType)
	}
	sort.Strings(blockTypes)

	var variants []*jsonschema.Schema
	for _, blockType := range blockTypes {
		fields := blocks[blockType]
		switch blockType {
		case jsonvalue.PlainString, jsonvalue.Other:
			variants = append(variants, labelsSchema(fields[jsonvalue.ValueField], nil))
		default:
			s := objectSchema(fields, func(field string, labels []string) *jsonschema.Schema {
				if field == "type" && blockType != jsonvalue.NoType {
					return discriminantSchema(blockType, labels)
				}
				return nil
			})
			s.Title = blockType
			variants = append(variants, s)
		}
	}
	return anyOf(variants)
}

// objectSchema builds an object schema with one property per field in sorted
// order. override may return a custom property schema, or nil for the
// default derived from the field's labels.
func objectSchema(fields types.FieldTypes, override func(field string, labels []string) *jsonschema.Schema) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		labels := fields[name]
		prop := override(name, labels)
		if prop == nil {
			prop = labelsSchema(labels, nil)
		}
		s.Properties.Set(name, prop)
	}
	return s
}

// discriminantSchema pins a string discriminant to its value.
func discriminantSchema(value string, labels []string) *jsonschema.Schema {
	if len(labels) == 1 && labels[0] == string(jsonvalue.LabelString) {
		return &jsonschema.Schema{Type: "string", Const: value}
	}
	return labelsSchema(labels, nil)
}

// labelsSchema returns a schema accepting any of labels. When object is
// non-nil it replaces the plain object type.
func labelsSchema(labels []string, object *jsonschema.Schema) *jsonschema.Schema {
	variants := make([]*jsonschema.Schema, 0, len(labels))
	for _, label := range labels {
		if label == string(jsonvalue.LabelObject) && object != nil {
			variants = append(variants, object)
			continue
		}
		variants = append(variants, typeSchema(label))
	}
	return anyOf(variants)
}

// labelsSchemaWithArray is labelsSchema with array items constrained.
func labelsSchemaWithArray(labels []string, items *jsonschema.Schema) *jsonschema.Schema {
	variants := make([]*jsonschema.Schema, 0, len(labels))
	for _, label := range labels {
		s := typeSchema(label)
		if label == string(jsonvalue.LabelArray) {
			s.Items = items
		}
		variants = append(variants, s)
	}
	return anyOf(variants)
}

func typeSchema(label string) *jsonschema.Schema {
	if t, ok := labelTypes[label]; ok {
		return &jsonschema.Schema{Type: t}
	}
	// Unknown labels constrain nothing.
	return &jsonschema.Schema{}
}

func anyOf(variants []*jsonschema.Schema) *jsonschema.Schema {
	switch len(variants) {
	case 0:
		return &jsonschema.Schema{}
	case 1:
		return variants[0]
	}
	return &jsonschema.Schema{AnyOf: variants}
}
