package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/usestring/jsonlscan/internal/config"
	"github.com/usestring/jsonlscan/internal/logging"
	"github.com/usestring/jsonlscan/internal/query"
	"github.com/usestring/jsonlscan/internal/scan"
)

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "Directory searched recursively for .jsonl files (env JSONLSCAN_ROOT, default ~/.claude/projects)",
		},
		&cli.IntFlag{
			Name:  "max-files",
			Usage: "Scan only the N most recently modified files, 0 for all (env MAX_FILES)",
			Value: config.DefaultMaxFiles,
		},
		&cli.IntFlag{
			Name:  "max-lines",
			Usage: "Read at most N lines per file, blank lines included, 0 for all (env MAX_LINES_PER_FILE)",
			Value: config.DefaultMaxLines,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Files read concurrently (env SCAN_WORKERS)",
			Value: config.DefaultScanWorkers,
		},
		&cli.StringFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   "jq expression; only records for which it yields a truthy value are aggregated",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: json, yaml, jsonschema, summary",
			Value:   formatJSON,
		},
		&cli.BoolFlag{
			Name:  "diagnostics",
			Usage: "Include per-file line counts and parse error lines",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the report to a file instead of stdout",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error (env LOG_LEVEL)",
		},
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:   "scan",
		Usage:  "Scan JSONL files and print the schema report (default command)",
		Action: runScan,
	}
}

// loadConfig reads the environment and applies explicitly set flags.
func loadConfig(cmd *cli.Command) *config.Config {
	cfg := config.Load()
	if cmd.IsSet("root") {
		cfg.Root = cmd.String("root")
	}
	if cmd.IsSet("max-files") {
		cfg.MaxFiles = cmd.Int("max-files")
	}
	if cmd.IsSet("max-lines") {
		cfg.MaxLinesPerFile = cmd.Int("max-lines")
	}
	if cmd.IsSet("workers") {
		cfg.ScanWorkers = cmd.Int("workers")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	return cfg
}

func setupLogging(cfg *config.Config) (func() error, error) {
	return logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
}

func runScan(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", cmd.Args().First())
	}

	cfg := loadConfig(cmd)
	format := cmd.String("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	cleanup, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	opts := scan.Options{
		MaxFiles: cfg.MaxFiles,
		MaxLines: cfg.MaxLinesPerFile,
		Workers:  cfg.ScanWorkers,
	}
	if where := cmd.String("where"); where != "" {
		filter, err := query.Compile(where)
		if err != nil {
			return err
		}
		opts.Filter = filter
	}

	scanner := scan.New(opts, nil)
	files, err := scanner.Discover(cfg.Root)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Found %d .jsonl files to scan\n", len(files))

	result, err := scanner.ScanFiles(ctx, files)
	if err != nil {
		return err
	}
	report := result.Report(cmd.Bool("diagnostics"))

	var w io.Writer = os.Stdout
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writeReport(w, report, format)
}
