package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsonlscan/pkg/jsonschema"
	"github.com/usestring/jsonlscan/pkg/types"
)

// ToolExportJSONSchema scans JSONL files and returns the report rendered as JSON Schema.
func ToolExportJSONSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ScanRequest) (*sdkmcp.CallToolResult, types.JSONSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ScanRequest) (*sdkmcp.CallToolResult, types.JSONSchemaOutput, error) {
		result, err := d.Scan(ctx, input)
		if err != nil {
			return nil, types.JSONSchemaOutput{}, err
		}

		report := result.Report(false)
		schema, err := types.ToAny(jsonschema.FromReport(report))
		if err != nil {
			return nil, types.JSONSchemaOutput{}, fmt.Errorf("serializing schema: %w", err)
		}

		return nil, types.JSONSchemaOutput{
			Schema:       schema,
			EntryTypes:   len(report.Meta.UniqueEntryTypes),
			FilesScanned: report.Meta.FilesScanned,
		}, nil
	}
}
