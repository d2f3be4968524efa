package tools

import (
	"context"

	"github.com/usestring/jsonlscan/internal/cache"
	"github.com/usestring/jsonlscan/internal/config"
	"github.com/usestring/jsonlscan/internal/query"
	"github.com/usestring/jsonlscan/internal/scan"
	"github.com/usestring/jsonlscan/pkg/types"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.AggregateCache // shared by every scan the server runs; may be nil
}

// Scan runs a scan for req, filling unset fields from the configuration.
// Errors are coded for tool responses.
func (d *Deps) Scan(ctx context.Context, req types.ScanRequest) (*scan.Result, error) {
	if req.MaxFiles < 0 || req.MaxLines < 0 {
		return nil, ErrInvalidInput("max_files and max_lines must not be negative")
	}

	opts := scan.Options{
		MaxFiles: req.MaxFiles,
		MaxLines: req.MaxLines,
		Workers:  d.Config.ScanWorkers,
	}
	if opts.MaxFiles == 0 {
		opts.MaxFiles = d.Config.MaxFiles
	}
	if opts.MaxLines == 0 {
		opts.MaxLines = d.Config.MaxLinesPerFile
	}
	if req.Where != "" {
		filter, err := query.Compile(req.Where)
		if err != nil {
			return nil, &CodedError{Code: ErrCodeInvalidInput, Message: "where", Cause: err}
		}
		opts.Filter = filter
	}

	root := req.Root
	if root == "" {
		root = d.Config.Root
	}

	result, err := scan.New(opts, d.Cache).Run(ctx, root)
	if err != nil {
		return nil, WrapScanError(err)
	}
	return result, nil
}
