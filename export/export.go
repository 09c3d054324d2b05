// Package export writes indicator tables produced by a pipeline run.
package export

import (
	"context"
	"strconv"
	"time"

	"github.com/rustyeddy/ta/series"
)

// Run describes one pipeline invocation.
type Run struct {
	ID      string
	Source  string
	Created time.Time
}

// Writer stores the output table of a run.
type Writer interface {
	Write(ctx context.Context, run Run, f *series.Frame) error
	Close() error
}

// formatValue renders v with six decimals, or "" when missing.
func formatValue(v float64) string {
	if series.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
