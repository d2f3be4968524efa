package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsonlscan/pkg/types"
)

// ToolScanSchema scans JSONL files and returns the aggregated schema report.
func ToolScanSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ScanRequest) (*sdkmcp.CallToolResult, types.Report, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ScanRequest) (*sdkmcp.CallToolResult, types.Report, error) {
		result, err := d.Scan(ctx, input)
		if err != nil {
			return nil, types.Report{}, err
		}
		return nil, *result.Report(input.Diagnostics), nil
	}
}
