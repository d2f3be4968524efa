package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "jsonl_scan_schema",
		Description: "Infer the structure of line-delimited JSON logs. Scans the newest .jsonl files under root (default: the configured root) and returns, per top-level entry type, the number of records, the type labels of every top-level field, the fields of the nested message object, the observed shapes of message.content, and the fields of each content block type. Set where to a jq expression to aggregate only matching records; set diagnostics=true for per-file line and parse-error details.",
	}, ToolScanSchema(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "jsonl_export_jsonschema",
		Description: "Same scan as jsonl_scan_schema, rendered as a JSON Schema (Draft 2020-12) document with one $defs entry per entry type. Use it to validate new records or generate types.",
	}, ToolExportJSONSchema(d))
}
