package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// TimeColumns are the header names accepted for the time index.
var TimeColumns = []string{"date", "time", "timestamp", "datetime"}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads a price table from a CSV file.
func LoadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fr, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fr, nil
}

// ReadCSV parses a header row followed by data rows. The time column is
// found by name (see TimeColumns). Every other column that parses as numbers
// becomes a frame column; empty cells and "NaN" become missing. Columns where
// no cell is a number (tickers, notes) are skipped. A bad cell in a numeric
// column is an error naming its line and column.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	tcol := findColumn(header, TimeColumns...)
	if tcol < 0 {
		return nil, fmt.Errorf("no time column (want one of %s)", strings.Join(TimeColumns, ", "))
	}

	var (
		index []time.Time
		lines []int
	)
	raw := make([][]string, len(header))
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := parseTime(rec[tcol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		index = append(index, ts)
		lines = append(lines, line)
		for i, cell := range rec {
			if i != tcol {
				raw[i] = append(raw[i], cell)
			}
		}
	}

	fr := NewFrame(index)
	for i, h := range header {
		if i == tcol {
			continue
		}
		name := strings.TrimSpace(h)
		vals, err := parseColumn(name, raw[i], lines)
		if errors.Is(err, errTextColumn) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := fr.Set(name, vals); err != nil {
			return nil, err
		}
	}
	return fr, nil
}

// findColumn returns the position of the first name present in header,
// compared case-insensitively, or -1.
func findColumn(header []string, names ...string) int {
	for _, want := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

var errTextColumn = errors.New("text column")

// parseColumn converts the cells of one column. It returns errTextColumn
// when no cell holds a number.
func parseColumn(name string, cells []string, lines []int) ([]float64, error) {
	out := make([]float64, len(cells))
	bad := -1
	var badErr error
	numeric := false
	for i, c := range cells {
		v, err := parseCell(c)
		if err != nil {
			if bad < 0 {
				bad, badErr = i, err
			}
			continue
		}
		out[i] = v
		if !IsMissing(v) {
			numeric = true
		}
	}
	switch {
	case bad < 0:
		return out, nil
	case !numeric:
		return nil, errTextColumn
	}
	return nil, fmt.Errorf("line %d: %s: %w", lines[bad], name, badErr)
}

func parseCell(c string) (float64, error) {
	c = strings.TrimSpace(c)
	switch strings.ToLower(c) {
	case "", "nan", "null", "na":
		return Missing(), nil
	}
	return strconv.ParseFloat(c, 64)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
