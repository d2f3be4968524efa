package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "usage_guide",
		Description: "How to use the jsonlscan tools and resources without wasting context.",
	}, HandleUsageGuide(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "explore_log_schema",
		Description: "RECOMMENDED: Walk through the record shapes of a JSONL session log corpus, one entry type at a time.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "root",
				Description: "Directory to scan (default: configured root)",
				Required:    false,
			},
			{
				Name:        "entry_type",
				Description: "Focus on a single entry type, e.g. 'assistant'",
				Required:    false,
			},
		},
	}, HandleExploreSchema(cfg))
}
