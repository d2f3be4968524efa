package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/usestring/jsonlscan/pkg/mcpsrv"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the scan as MCP tools over stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := loadConfig(cmd)

			opts := []mcpsrv.Option{
				mcpsrv.WithRoot(cfg.Root),
				mcpsrv.WithLimits(cfg.MaxFiles, cfg.MaxLinesPerFile),
				mcpsrv.WithScanWorkers(cfg.ScanWorkers),
				mcpsrv.WithLogLevel(cfg.LogLevel),
				mcpsrv.WithVersion(version),
			}

			server, err := mcpsrv.NewServer(opts...)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting jsonlscan MCP server on stdio", slog.String("root", cfg.Root))
			if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			slog.Info("server stopped")
			return nil
		},
	}
}
