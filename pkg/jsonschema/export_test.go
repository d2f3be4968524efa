package jsonschema

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	validator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/jsonlscan/pkg/jsonvalue"
	"github.com/usestring/jsonlscan/pkg/shape"
	"github.com/usestring/jsonlscan/pkg/types"
)

var sessionRecords = []string{
	`{"type":"user","uuid":"u1","message":{"role":"user","content":"hello"}}`,
	`{"type":"user","uuid":"u2","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":"ok","is_error":false}]}}`,
	`{"type":"assistant","uuid":"a1","message":{"model":"m","content":[{"type":"text","text":"hi"},{"type":"tool_use","id":"t1","input":{"cmd":"ls"}},"bare",7],"usage":{"input_tokens":3}}}`,
	`{"type":"assistant","uuid":"a2","message":{"content":null,"stop_reason":null}}`,
	`{"type":"summary","summary":"done","leafUuid":"l"}`,
	`{"type":"system","message":"plain text","level":1.5}`,
	`{"parentUuid":null,"isMeta":true}`,
	`{"type":3,"message":{"content":{"odd":true}}}`,
}

func buildReport(t *testing.T, lines ...string) *types.Report {
	t.Helper()
	agg := shape.New()
	for _, line := range lines {
		v, err := jsonvalue.Decode([]byte(line))
		require.NoError(t, err)
		agg.Ingest(v)
	}
	return agg.Finalize()
}

func compile(t *testing.T, doc []byte) *validator.Schema {
	t.Helper()
	parsed, err := validator.UnmarshalJSON(bytes.NewReader(doc))
	require.NoError(t, err)

	compiler := validator.NewCompiler()
	require.NoError(t, compiler.AddResource("schema.json", parsed))
	compiled, err := compiler.Compile("schema.json")
	require.NoError(t, err)
	return compiled
}

func TestFromReport_Simple(t *testing.T) {
	report := buildReport(t, `{"type":"a","x":1}`, `{"type":"a","x":"s"}`)

	out, err := json.Marshal(FromReport(report))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "JSONL entry schema",
		"description": "Inferred from 2 records across 0 files",
		"$defs": {
			"a": {
				"type": "object",
				"title": "a",
				"description": "Observed in 2 records",
				"properties": {
					"type": {"type": "string", "const": "a"},
					"x": {"anyOf": [{"type": "integer"}, {"type": "string"}]}
				}
			}
		},
		"anyOf": [{"$ref": "#/$defs/a"}]
	}`, string(out))
}

func TestFromReport_CompilesAndAcceptsRecords(t *testing.T) {
	report := buildReport(t, sessionRecords...)

	doc, err := json.Marshal(FromReport(report))
	require.NoError(t, err)
	compiled := compile(t, doc)

	for _, line := range sessionRecords {
		inst, err := validator.UnmarshalJSON(strings.NewReader(line))
		require.NoError(t, err)
		assert.NoError(t, compiled.Validate(inst), line)
	}
}

func TestFromReport_RejectsUnseenTypes(t *testing.T) {
	report := buildReport(t, `{"type":"a","x":1}`)

	doc, err := json.Marshal(FromReport(report))
	require.NoError(t, err)
	compiled := compile(t, doc)

	inst, err := validator.UnmarshalJSON(strings.NewReader(`{"type":"a","x":"now a string"}`))
	require.NoError(t, err)
	assert.Error(t, compiled.Validate(inst))
}

func TestFromReport_ContentItems(t *testing.T) {
	report := buildReport(t, sessionRecords...)
	schema := FromReport(report)

	assistant := schema.Definitions["assistant"]
	require.NotNil(t, assistant)

	message, ok := assistant.Properties.Get("message")
	require.True(t, ok)
	// message only ever held objects, so the object schema is used directly.
	assert.Equal(t, "object", message.Type)

	content, ok := message.Properties.Get("content")
	require.True(t, ok)
	require.Len(t, content.AnyOf, 2)
	assert.Equal(t, "array", content.AnyOf[0].Type)
	assert.Equal(t, "null", content.AnyOf[1].Type)

	items := content.AnyOf[0].Items
	require.NotNil(t, items)
	titles := make([]string, 0, len(items.AnyOf))
	for _, variant := range items.AnyOf {
		titles = append(titles, variant.Title)
	}
	// __other__ and __plain_string__ render as bare types without titles.
	assert.Equal(t, []string{"", "", "text", "tool_use"}, titles)
}

func TestFromReport_NoTypeHasNoConst(t *testing.T) {
	report := buildReport(t, `{"isMeta":true}`, `{"type":"__no_type__"}`)
	schema := FromReport(report)

	def := schema.Definitions[jsonvalue.NoType]
	require.NotNil(t, def)
	typ, ok := def.Properties.Get("type")
	require.True(t, ok)
	assert.Nil(t, typ.Const)
}

func TestFromReport_Deterministic(t *testing.T) {
	first, err := json.Marshal(FromReport(buildReport(t, sessionRecords...)))
	require.NoError(t, err)
	second, err := json.Marshal(FromReport(buildReport(t, sessionRecords...)))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestFromReport_Empty(t *testing.T) {
	schema := FromReport(buildReport(t))
	assert.Empty(t, schema.AnyOf)
	assert.Empty(t, schema.Definitions)
}

func TestDefinitionRef(t *testing.T) {
	assert.Equal(t, "#/$defs/user", DefinitionRef("user"))
	assert.Equal(t, "#/$defs/a~1b", DefinitionRef("a/b"))
	assert.Equal(t, "#/$defs/a~0b", DefinitionRef("a~b"))
}
