// Package tools contains MCP tool implementations for jsonlscan.
package tools

// MIME type constant.
const MimeJSON = "application/json"
