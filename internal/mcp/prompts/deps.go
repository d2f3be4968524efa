// Package prompts contains MCP prompt implementations for jsonlscan.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	Root     string
	MaxFiles int
	MaxLines int
}
