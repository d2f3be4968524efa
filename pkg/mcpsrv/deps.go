package mcpsrv

import (
	"context"

	"github.com/usestring/jsonlscan/internal/cache"
	"github.com/usestring/jsonlscan/internal/config"
	"github.com/usestring/jsonlscan/internal/mcp/tools"
	"github.com/usestring/jsonlscan/pkg/types"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config *config.Config
	Cache  *cache.AggregateCache

	tools *tools.Deps
}

// Scan runs a scan with the builtin tools' defaults and shared cache and
// returns its report. Errors carry the same codes as builtin tool errors.
func (d *Deps) Scan(ctx context.Context, req types.ScanRequest) (*types.Report, error) {
	result, err := d.tools.Scan(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Report(req.Diagnostics), nil
}
