// Package scan runs a schema scan over a directory of JSONL files.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/jsonlscan/internal/cache"
	"github.com/usestring/jsonlscan/internal/query"
	"github.com/usestring/jsonlscan/internal/source"
	"github.com/usestring/jsonlscan/pkg/jsonvalue"
	"github.com/usestring/jsonlscan/pkg/shape"
	"github.com/usestring/jsonlscan/pkg/types"
)

// Options controls a scan.
type Options struct {
	MaxFiles int // newest files kept after discovery, <= 0 for all
	MaxLines int // physical lines read per file, <= 0 for all
	Workers  int // files read concurrently, < 1 means 1
	Filter   *query.Filter
}

// Scanner reads JSONL files into a merged aggregate.
type Scanner struct {
	opts  Options
	cache *cache.AggregateCache
}

// New creates a Scanner. c may be nil to disable caching.
func New(opts Options, c *cache.AggregateCache) *Scanner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Scanner{opts: opts, cache: c}
}

// FileResult is the outcome of scanning one file.
type FileResult struct {
	File       source.File
	LinesRead  int
	Counters   shape.Counters
	ErrorLines *roaring.Bitmap
	Cached     bool
	Err        error
}

// Result is a completed scan.
type Result struct {
	Aggregate *shape.Aggregator
	Files     []FileResult
	Filter    string
}

// Discover lists the files Run would scan under root.
func (s *Scanner) Discover(root string) ([]source.File, error) {
	return source.Discover(root, s.opts.MaxFiles)
}

// Run discovers and scans the files under root.
func (s *Scanner) Run(ctx context.Context, root string) (*Result, error) {
	files, err := s.Discover(root)
	if err != nil {
		return nil, err
	}
	return s.ScanFiles(ctx, files)
}

// ScanFiles scans files concurrently and merges their aggregates in the
// order given. Unreadable files are counted and reported but contribute
// no records.
func (s *Scanner) ScanFiles(ctx context.Context, files []source.File) (*Result, error) {
	start := time.Now()
	results := make([]FileResult, len(files))
	aggregates := make([]*shape.Aggregator, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			agg, res, err := s.scanFile(gctx, f)
			if err != nil {
				return err
			}
			aggregates[i] = agg
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := shape.New()
	for _, agg := range aggregates {
		merged.Merge(agg)
	}
	merged.Counters.FilesScanned = len(files)

	result := &Result{Aggregate: merged, Files: results}
	if s.opts.Filter != nil {
		result.Filter = s.opts.Filter.String()
	}

	slog.Info("scan completed",
		slog.Int("files_scanned", merged.Counters.FilesScanned),
		slog.Int("lines_parsed", merged.Counters.LinesParsed),
		slog.Int("parse_errors", merged.Counters.ParseErrors),
		slog.Int("entry_types", len(merged.EntryTypes())),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return result, nil
}

// scanFile reads one file. Only context cancellation is returned as an
// error; file problems are recorded in the FileResult.
func (s *Scanner) scanFile(ctx context.Context, f source.File) (*shape.Aggregator, FileResult, error) {
	res := FileResult{File: f}
	key := cache.Key{Path: f.Path, Size: f.Size, ModTime: f.ModTime, MaxLines: s.opts.MaxLines}
	useCache := s.cache != nil && s.opts.Filter == nil

	if useCache {
		if entry, ok := s.cache.Get(key); ok {
			res.LinesRead = entry.LinesRead
			res.Counters = entry.Aggregate.Counters
			res.ErrorLines = entry.ErrorLines
			res.Cached = true
			slog.Debug("file served from cache", slog.String("path", f.Path))
			return entry.Aggregate, res, nil
		}
	}

	agg, linesRead, errorLines, err := s.readFile(ctx, f.Path)
	if ctx.Err() != nil {
		return nil, res, ctx.Err()
	}
	res.LinesRead = linesRead
	res.ErrorLines = errorLines
	if agg != nil {
		res.Counters = agg.Counters
	}
	if err != nil {
		res.Err = err
		slog.Warn("failed to read file",
			slog.String("path", f.Path),
			slog.String("error", err.Error()),
		)
		return agg, res, nil
	}

	if useCache {
		s.cache.Put(key, cache.Entry{Aggregate: agg, LinesRead: linesRead, ErrorLines: errorLines})
	}
	slog.Debug("file scanned",
		slog.String("path", f.Path),
		slog.Int("lines_read", linesRead),
		slog.Int("parse_errors", agg.Counters.ParseErrors),
	)
	return agg, res, nil
}

// readFile ingests the lines of path. On a read error the aggregate holds
// everything ingested before it; when the file cannot be opened it is nil.
func (s *Scanner) readFile(ctx context.Context, path string) (*shape.Aggregator, int, *roaring.Bitmap, error) {
	errorLines := roaring.New()

	lr, err := source.Open(path, s.opts.MaxLines)
	if err != nil {
		return nil, 0, errorLines, fmt.Errorf("opening %s: %w", path, err)
	}
	defer lr.Close()

	agg := shape.New()
	for {
		if lr.LineNum()%256 == 0 && ctx.Err() != nil {
			return agg, lr.LineNum(), errorLines, ctx.Err()
		}

		line, err := lr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return agg, lr.LineNum(), errorLines, nil
			}
			return agg, lr.LineNum(), errorLines, fmt.Errorf("reading %s: %w", path, err)
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		agg.Counters.LinesParsed++

		record, err := jsonvalue.Decode(line)
		if err != nil {
			agg.Counters.ParseErrors++
			errorLines.Add(uint32(lr.LineNum()))
			continue
		}
		if s.opts.Filter != nil && record.IsObject() && !s.opts.Filter.Match(record) {
			agg.Counters.FilteredRecords++
			continue
		}
		agg.Ingest(record)
	}
}

// Report finalizes the scan, with per-file diagnostics when requested.
func (r *Result) Report(withDiagnostics bool) *types.Report {
	report := r.Aggregate.Finalize()
	report.Meta.Filter = r.Filter
	if !withDiagnostics {
		return report
	}

	diag := &types.Diagnostics{Files: make([]types.FileDiagnostics, 0, len(r.Files))}
	for _, f := range r.Files {
		d := types.FileDiagnostics{
			Path:            f.File.Path,
			LinesRead:       f.LinesRead,
			ParseErrors:     f.Counters.ParseErrors,
			ParseErrorLines: FormatRanges(f.ErrorLines),
			Cached:          f.Cached,
		}
		if f.Err != nil {
			d.Error = f.Err.Error()
		}
		diag.Files = append(diag.Files, d)
	}
	report.Diagnostics = diag
	return report
}
