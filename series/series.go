// Package series holds the time-indexed numeric tables the indicator engine
// reads and writes.
//
// Values are float64. An absent value is NaN; use Missing and IsMissing
// rather than comparing against math.NaN directly.
package series

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrLength is returned when a column does not match the frame's row count.
var ErrLength = errors.New("column length does not match index")

// Missing returns the marker stored for an absent value.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the absent marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Observation is a single row of a price table as the indicators see it.
type Observation struct {
	Time   time.Time
	Price  float64
	Volume float64
}

// Frame is a table of named float64 columns aligned to one time index.
// Column order is the insertion order.
type Frame struct {
	index []time.Time
	names []string
	cols  map[string][]float64
}

// NewFrame returns an empty frame over index. The slice is not copied.
func NewFrame(index []time.Time) *Frame {
	return &Frame{
		index: index,
		cols:  make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

func (f *Frame) Index() []time.Time { return f.index }

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Column returns the values stored under name.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.cols[name]
	return v, ok
}

// Lookup returns the first column whose name matches one of the aliases,
// ignoring case. The returned name is the one stored in the frame.
func (f *Frame) Lookup(aliases ...string) (string, []float64, bool) {
	for _, a := range aliases {
		for _, n := range f.names {
			if strings.EqualFold(n, a) {
				return n, f.cols[n], true
			}
		}
	}
	return "", nil, false
}

// Set stores values under name, replacing an existing column in place.
func (f *Frame) Set(name string, values []float64) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("%w: %s has %d values, index has %d", ErrLength, name, len(values), len(f.index))
	}
	if _, ok := f.cols[name]; !ok {
		f.names = append(f.names, name)
	}
	f.cols[name] = values
	return nil
}

// CheckIndex verifies that timestamps are strictly increasing.
func (f *Frame) CheckIndex() error {
	for i := 1; i < len(f.index); i++ {
		if !f.index[i].After(f.index[i-1]) {
			return fmt.Errorf("row %d: timestamp %s does not follow %s",
				i, f.index[i].Format(time.RFC3339), f.index[i-1].Format(time.RFC3339))
		}
	}
	return nil
}

// Observations zips the price and volume columns with the time index. A nil
// column yields missing values for that field.
func (f *Frame) Observations(price, volume []float64) []Observation {
	obs := make([]Observation, len(f.index))
	for i, ts := range f.index {
		o := Observation{Time: ts, Price: Missing(), Volume: Missing()}
		if price != nil {
			o.Price = price[i]
		}
		if volume != nil {
			o.Volume = volume[i]
		}
		obs[i] = o
	}
	return obs
}

// Filled returns a column of length n holding only missing markers.
func Filled(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = Missing()
	}
	return out
}
