// Command jsonlscan infers the structure of line-delimited JSON logs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().Run(ctx, os.Args); err != nil {
		writeError(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "jsonlscan",
		Usage:   "Infer a field and type schema from JSONL files",
		Version: version,
		Flags:   scanFlags(),
		Action:  runScan,
		Commands: []*cli.Command{
			scanCommand(),
			mcpCommand(),
		},
	}
}
