package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleUsageGuide serves the tool usage guide.
func HandleUsageGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# jsonlscan Tool Usage Guide\n\n")

		sb.WriteString("## Defaults\n\n")
		fmt.Fprintf(&sb, "- Root: `%s`\n", cfg.Root)
		fmt.Fprintf(&sb, "- Newest %d files, first %d lines of each (0 means no limit)\n\n", cfg.MaxFiles, cfg.MaxLines)

		sb.WriteString("## Tools\n\n")
		sb.WriteString("| Goal | Tool | Example |\n")
		sb.WriteString("|------|------|---------|\n")
		sb.WriteString("| Field and type report per entry type | `jsonl_scan_schema` | `jsonl_scan_schema(max_files: 10)` |\n")
		sb.WriteString("| Same report as a JSON Schema document | `jsonl_export_jsonschema` | `jsonl_export_jsonschema(root: \"/logs\")` |\n")
		sb.WriteString("| Only records matching a condition | either tool, `where` | `where: \".type == \\\"assistant\\\"\"` |\n")
		sb.WriteString("| Find broken lines | `jsonl_scan_schema` | `diagnostics: true` |\n")

		sb.WriteString("\n**Key rules**:\n")
		sb.WriteString("- Type labels are `string`, `int`, `float`, `bool`, `null`, `array`, `object`\n")
		sb.WriteString("- A field listing several labels was seen with each of them across records\n")
		sb.WriteString("- `where` is a jq expression evaluated per object record; non-object lines are never filtered\n")
		sb.WriteString("- Repeated scans of unchanged files are served from cache, so re-running with different limits is cheap\n")

		sb.WriteString("\n## Resources\n\n")
		sb.WriteString("- `jsonlscan://report`: full report for the default root\n")
		sb.WriteString("- `jsonlscan://entry-type/{name}`: one entry type from that report\n")

		return &sdkmcp.GetPromptResult{
			Description: "jsonlscan tool usage guide",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
