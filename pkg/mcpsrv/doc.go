// Package mcpsrv provides an embeddable MCP server for jsonlscan.
//
// The server exposes the jsonl_scan_schema and jsonl_export_jsonschema
// tools, the jsonlscan://report and jsonlscan://entry-type/{name}
// resources, and the usage_guide and explore_log_schema prompts. Scans share one LRU cache of
// per-file aggregates, so repeated calls over unchanged files are cheap.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer(mcpsrv.WithRoot("/var/log/sessions"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools are registered with MCP SDK types. Tools built with
// [WithDepsTool] can run scans through [Deps.Scan]:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "my_tool"}, myToolBuilder),
//	)
//
// [WithPrompt] and [WithResourceTemplate] add prompts and resources;
// [WithoutBuiltinPrompts] drops the builtin prompts.
//
// # Configuration
//
// Defaults come from the environment (JSONLSCAN_ROOT, MAX_FILES,
// MAX_LINES_PER_FILE, SCAN_WORKERS, FILE_CACHE_MAX_ITEMS, LOG_*), and
// options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/jsonlscan.log"),
//	)
package mcpsrv
