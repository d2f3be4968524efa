package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsonlscan/internal/mcp/tools"
	"github.com/usestring/jsonlscan/pkg/types"
)

// Resource URI scheme: jsonlscan://
// Supported URIs:
//   jsonlscan://report
//   jsonlscan://entry-type/{name}   (name is path-escaped)
const resourceScheme = "jsonlscan://"

// registerResources registers the report resource and the entry type template.
// Both scan the configured root with the configured limits.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         resourceScheme + "report",
		Name:        "Schema Report",
		Description: "Schema report for the configured root with default limits. Use the jsonl_scan_schema tool to choose root, limits or a filter.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceReport)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "entry-type/{name}",
		Name:        "Entry Type",
		Description: "Fields, message fields, content shapes and content block types recorded for one entry type under the configured root.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceEntryType)
}

func (s *Server) handleResourceReport(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	result, err := s.deps.Scan(ctx, types.ScanRequest{})
	if err != nil {
		return nil, err
	}
	return toResourceResult(req.Params.URI, result.Report(false))
}

func (s *Server) handleResourceEntryType(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	kind, name, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	if kind != "entry-type" || name == "" {
		return nil, tools.ErrInvalidInput("entry-type URI requires a name")
	}

	result, err := s.deps.Scan(ctx, types.ScanRequest{})
	if err != nil {
		return nil, err
	}

	entry, ok := result.Report(false).EntryTypes[name]
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	content := map[string]any{
		"entry_type": name,
		"report":     entry,
	}
	return toResourceResult(req.Params.URI, content)
}

// parseResourceURI splits a jsonlscan:// URI into its kind and unescaped name.
func parseResourceURI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return "", "", tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	kind, rawName, _ := strings.Cut(strings.TrimPrefix(uri, resourceScheme), "/")
	if kind == "" {
		return "", "", tools.ErrInvalidInput("empty resource path")
	}

	name, err := url.PathUnescape(rawName)
	if err != nil {
		return "", "", tools.ErrInvalidInput(fmt.Sprintf("invalid resource name %q", rawName))
	}
	return kind, name, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
