package export

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/rustyeddy/ta/series"
)

// CSVWriter writes a frame as CSV: a time column followed by every
// indicator column. Missing values are empty cells; times keep
// sub-second precision.
type CSVWriter struct {
	w *csv.Writer
	f *os.File
}

// NewCSV creates (or truncates) path.
func NewCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &CSVWriter{w: csv.NewWriter(f), f: f}, nil
}

// NewCSVWriter writes to w, which the caller keeps ownership of.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Write(_ context.Context, _ Run, f *series.Frame) error {
	names := f.Names()
	if err := c.WriteHeader(names); err != nil {
		return err
	}

	cols := make([][]float64, len(names))
	for i, n := range names {
		cols[i], _ = f.Column(n)
	}

	row := make([]float64, len(names))
	for r, ts := range f.Index() {
		for i := range cols {
			row[i] = cols[i][r]
		}
		if err := c.WriteRow(ts, row); err != nil {
			return err
		}
	}

	c.w.Flush()
	return c.w.Error()
}

// WriteHeader writes the time column followed by names.
func (c *CSVWriter) WriteHeader(names []string) error {
	return c.w.Write(append([]string{"time"}, names...))
}

// WriteRow writes one output row. Rows are buffered until Flush or Close.
func (c *CSVWriter) WriteRow(ts time.Time, values []float64) error {
	rec := make([]string, len(values)+1)
	rec[0] = ts.Format(time.RFC3339Nano)
	for i, v := range values {
		rec[i+1] = formatValue(v)
	}
	return c.w.Write(rec)
}

func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	if c.f != nil {
		return c.f.Close()
	}
	return nil
}
