package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Feed reads observations one row at a time from a CSV price table, for
// inputs too large to load into a Frame or that are still being written.
//
// Rows outside [From, To) are skipped when the bounds are set. Short rows
// and rows without a timestamp are skipped as well.
type Feed struct {
	f *os.File
	r *csv.Reader

	tcol, pcol, vcol int
	price, volume    string
	from, to         time.Time
	line             int
}

// FeedOptions selects the columns read by a Feed. Each field lists
// accepted header names in order of preference.
type FeedOptions struct {
	Price  []string
	Volume []string
	From   time.Time
	To     time.Time
}

// OpenFeed opens path and reads its header.
func OpenFeed(path string, opts FeedOptions) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	fd, err := NewFeed(f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fd.f = f
	return fd, nil
}

// NewFeed reads the header from r. The price column is optional here;
// callers check Columns for what was found.
func NewFeed(r io.Reader, opts FeedOptions) (*Feed, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	fd := &Feed{
		r:    cr,
		tcol: findColumn(header, TimeColumns...),
		pcol: findColumn(header, opts.Price...),
		vcol: findColumn(header, opts.Volume...),
		from: opts.From,
		to:   opts.To,
		line: 1,
	}
	if fd.tcol < 0 {
		return nil, fmt.Errorf("no time column (want one of %s)", strings.Join(TimeColumns, ", "))
	}
	if fd.pcol >= 0 {
		fd.price = strings.TrimSpace(header[fd.pcol])
	}
	if fd.vcol >= 0 {
		fd.volume = strings.TrimSpace(header[fd.vcol])
	}
	return fd, nil
}

// Columns returns the header names matched for price and volume, or ""
// for a column that is absent.
func (f *Feed) Columns() (price, volume string) { return f.price, f.volume }

func (f *Feed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// Next returns the next observation in range. ok is false at end of input.
// An absent price or volume column yields missing values.
func (f *Feed) Next() (o Observation, ok bool, err error) {
	for {
		row, err := f.r.Read()
		if errors.Is(err, io.EOF) {
			return Observation{}, false, nil
		}
		f.line++
		if err != nil {
			return Observation{}, false, fmt.Errorf("line %d: %w", f.line, err)
		}
		if len(row) <= f.tcol || strings.TrimSpace(row[f.tcol]) == "" {
			continue
		}

		ts, err := parseTime(row[f.tcol])
		if err != nil {
			return Observation{}, false, fmt.Errorf("line %d: %w", f.line, err)
		}
		if !inRange(ts, f.from, f.to) {
			continue
		}

		o = Observation{Time: ts, Price: Missing(), Volume: Missing()}
		if o.Price, err = f.cell(row, f.pcol); err != nil {
			return Observation{}, false, fmt.Errorf("line %d: %s: %w", f.line, f.price, err)
		}
		if o.Volume, err = f.cell(row, f.vcol); err != nil {
			return Observation{}, false, fmt.Errorf("line %d: %s: %w", f.line, f.volume, err)
		}
		return o, true, nil
	}
}

func (f *Feed) cell(row []string, col int) (float64, error) {
	if col < 0 || col >= len(row) {
		return Missing(), nil
	}
	return parseCell(row[col])
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
