package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/usestring/jsonlscan/pkg/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		Meta: types.ReportMeta{
			FilesScanned:     2,
			TotalLinesParsed: 12345,
			ParseErrors:      1,
			UniqueEntryTypes: []string{"assistant", "user"},
		},
		EntryTypes: map[string]types.EntryTypeReport{
			"assistant": {
				Occurrences:    3,
				TopLevelFields: types.FieldTypes{"message": {"object"}, "type": {"string"}},
				MessageFields:  types.FieldTypes{"content": {"array"}},
				ContentShapes:  []string{"array"},
				ContentBlockTypes: map[string]types.FieldTypes{
					"text": {"text": {"string"}, "type": {"string"}},
				},
			},
			"user": {
				Occurrences:    12341,
				TopLevelFields: types.FieldTypes{"type": {"string"}, "note": {"string"}},
			},
		},
	}
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), formatJSON))

	assert.Contains(t, buf.String(), "\n  \"_meta\": {\n")
	var decoded types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleReport(), decoded)
}

func TestWriteReport_JSONKeepsHTMLCharacters(t *testing.T) {
	report := sampleReport()
	report.Meta.Filter = `.type == "a" and .n < 3`

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, report, formatJSON))
	assert.Contains(t, buf.String(), `.n < 3`)
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), formatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	meta, ok := decoded["_meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 12345, meta["total_lines_parsed"])
	assert.Contains(t, buf.String(), "content_block_types:")
}

func TestWriteReport_JSONSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), formatJSONSchema))

	var schema map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, defs, 2)
}

func TestWriteReport_Summary(t *testing.T) {
	report := sampleReport()
	report.Diagnostics = &types.Diagnostics{Files: []types.FileDiagnostics{
		{Path: "/a.jsonl", LinesRead: 1500, ParseErrors: 3, ParseErrorLines: "3-5"},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, report, formatSummary))

	out := buf.String()
	assert.Contains(t, out, "Lines parsed:        12,345")
	assert.Contains(t, out, "ENTRY TYPE")
	assert.Contains(t, out, "12,341")
	assert.Contains(t, out, "/a.jsonl: 1,500 lines, 3 parse errors (lines 3-5)")
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{formatJSON, formatYAML, formatJSONSchema, formatSummary} {
		assert.NoError(t, validateFormat(f))
	}
	assert.Error(t, validateFormat("xml"))
	assert.Error(t, writeReport(&bytes.Buffer{}, sampleReport(), "xml"))
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, errors.New(`source unavailable: open /x: no such file or directory`))
	assert.JSONEq(t, `{"error":"source unavailable: open /x: no such file or directory"}`, buf.String())
}

func TestApp_ScanToFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	root := t.TempDir()
	content := "{\"type\":\"user\",\"message\":{\"content\":\"hi\"}}\nnot json\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "s.jsonl"), []byte(content), 0o644))
	out := filepath.Join(t.TempDir(), "report.json")

	err := newApp().Run(context.Background(), []string{"jsonlscan", "--root", root, "--output", out, "--diagnostics"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 1, report.Meta.FilesScanned)
	assert.Equal(t, 1, report.Meta.ParseErrors)
	assert.Equal(t, []string{"user"}, report.Meta.UniqueEntryTypes)
	require.NotNil(t, report.Diagnostics)
	assert.Equal(t, "2", report.Diagnostics.Files[0].ParseErrorLines)
}

func TestApp_ScanSubcommandWithFilter(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	root := t.TempDir()
	content := "{\"type\":\"user\"}\n{\"type\":\"assistant\"}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "s.jsonl"), []byte(content), 0o644))
	out := filepath.Join(t.TempDir(), "report.json")

	err := newApp().Run(context.Background(), []string{"jsonlscan", "scan", "--root", root, "--where", `.type == "user"`, "--output", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, []string{"user"}, report.Meta.UniqueEntryTypes)
	assert.Equal(t, 1, report.Meta.FilteredRecords)
}

func TestApp_Errors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	root := t.TempDir()

	err := newApp().Run(context.Background(), []string{"jsonlscan", "--root", filepath.Join(root, "missing")})
	assert.Error(t, err)

	err = newApp().Run(context.Background(), []string{"jsonlscan", "--root", root, "--format", "xml"})
	assert.Error(t, err)

	err = newApp().Run(context.Background(), []string{"jsonlscan", "--root", root, "--where", ".type =="})
	assert.Error(t, err)
}
