package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleExploreSchema implements the schema exploration workflow.
func HandleExploreSchema(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		root := ""
		entryType := ""
		if args != nil {
			if v, ok := args["root"]; ok {
				root = v
			}
			if v, ok := args["entry_type"]; ok {
				entryType = v
			}
		}
		if root == "" {
			root = cfg.Root
		}

		var sb strings.Builder

		sb.WriteString("# Explore a JSONL Log Schema\n\n")
		sb.WriteString("You are documenting the record format of a corpus of line-delimited JSON logs. ")
		fmt.Fprintf(&sb, "The corpus lives under `%s`.\n\n", root)

		sb.WriteString("## Workflow Steps\n\n")
		if entryType != "" {
			fmt.Fprintf(&sb, "1. **Scan one entry type**: `jsonl_scan_schema(root: %q, where: %q)`\n", root, fmt.Sprintf(".type == %q", entryType))
			fmt.Fprintf(&sb, "   - Or read the resource `jsonlscan://entry-type/%s`\n", entryType)
			sb.WriteString("2. **Describe top_level_fields**: note every field with more than one type label\n")
			sb.WriteString("3. **Describe message_fields and content_shapes**: is `message.content` a string, an array, or both?\n")
			sb.WriteString("4. **Describe each content block type** listed under content_block_types\n")
		} else {
			fmt.Fprintf(&sb, "1. **Survey**: `jsonl_scan_schema(root: %q)`\n", root)
			sb.WriteString("   - `_meta.unique_entry_types` lists every entry type found\n")
			sb.WriteString("   - A high `parse_errors` count means re-running with `diagnostics: true` to locate bad lines\n")
			sb.WriteString("2. **Per entry type**: read `jsonlscan://entry-type/{name}` for each type of interest\n")
			sb.WriteString("3. **Compare**: fields shared by all entry types form the envelope; the rest are type specific\n")
			sb.WriteString("4. **Export**: `jsonl_export_jsonschema` when a machine-readable schema is needed\n")
		}

		sb.WriteString("\n## Output\n\n")
		sb.WriteString("Produce a short reference per entry type: field name, observed types, and whether the field looks optional ")
		sb.WriteString("(absent from some records is not reported by the scanner, so say \"unknown\" rather than guessing).\n")

		description := "Guide for exploring a JSONL log schema"
		if entryType != "" {
			description += " (entry type " + entryType + ")"
		}

		return &sdkmcp.GetPromptResult{
			Description: description,
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
