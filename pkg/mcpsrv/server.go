package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsonlscan/internal/cache"
	"github.com/usestring/jsonlscan/internal/config"
	"github.com/usestring/jsonlscan/internal/logging"
	"github.com/usestring/jsonlscan/internal/mcp"
	"github.com/usestring/jsonlscan/internal/mcp/tools"
)

// Server is the jsonlscan MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin scan tools.
//
// Configuration is loaded from the environment and then adjusted by opts.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCleanup := func() error { return nil }
	if !cfg.skipLogging {
		logCfg := logging.Config{
			Level:      cfg.config.LogLevel,
			Format:     cfg.config.LogFormat,
			FilePath:   cfg.config.LogFile,
			MaxSizeMB:  cfg.config.LogMaxSizeMB,
			MaxBackups: cfg.config.LogMaxBackups,
			MaxAgeDays: cfg.config.LogMaxAgeDays,
			Compress:   cfg.config.LogCompress,
		}
		var err error
		logCleanup, err = logging.Setup(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to setup logging: %w", err)
		}
	}

	aggCache, err := cache.NewAggregateCache(cfg.config.FileCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregate cache: %w", err)
	}

	toolDeps := &tools.Deps{
		Config: cfg.config,
		Cache:  aggCache,
	}
	deps := &Deps{
		Config: cfg.config,
		Cache:  aggCache,
		tools:  toolDeps,
	}

	internalOpts := []mcp.ServerOption{mcp.WithVersion(cfg.version)}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server, for in-process transports.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
