package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type satisfies the schema the SDK infers for it. Report types carry maps
// and slices, and a nil one marshals as null where the schema wants an
// object or array; the check turns that into a startup panic instead of a
// failed call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// CheckOutputSchema panics when the zero value of T does not validate
// against the schema inferred from T, or when T contains a json.RawMessage
// (inferred as an array of bytes but marshaled as inline JSON).
// The untyped any output is accepted as is. Inference failures are left
// for the SDK to report.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has json.RawMessage at %s; use any and fill it with types.ToAny",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var instance map[string]any
	if err := json.Unmarshal(data, &instance); err != nil {
		return
	}

	if err := resolved.Validate(&instance); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of %s fails its own schema: %v\n  JSON: %s\n  Fix: tag nil-defaulting slices and maps with omitzero",
			toolName, rt, err, data,
		))
	}
}

// rawMessagePaths returns the dotted field paths under t whose type is
// json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() {
				found = append(found, rawMessagePaths(f.Type, append(path, f.Name), visiting)...)
			}
		}
	case reflect.Slice, reflect.Array:
		found = rawMessagePaths(t.Elem(), append(path, "[]"), visiting)
	case reflect.Map:
		found = rawMessagePaths(t.Elem(), append(path, "[value]"), visiting)
	}
	return found
}
