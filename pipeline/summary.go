package pipeline

import (
	"encoding/json"
	"math"
	"slices"

	"github.com/rustyeddy/ta/series"
)

// ColumnSummary holds descriptive statistics of the defined values of one
// column. Std is the sample deviation; quantiles interpolate linearly.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// MarshalJSON writes missing statistics as null.
func (s ColumnSummary) MarshalJSON() ([]byte, error) {
	stat := func(v float64) *float64 {
		if series.IsMissing(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		Column string   `json:"column"`
		Count  int      `json:"count"`
		Mean   *float64 `json:"mean"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		Q25    *float64 `json:"q25"`
		Median *float64 `json:"median"`
		Q75    *float64 `json:"q75"`
		Max    *float64 `json:"max"`
	}{
		Column: s.Column,
		Count:  s.Count,
		Mean:   stat(s.Mean),
		Std:    stat(s.Std),
		Min:    stat(s.Min),
		Q25:    stat(s.Q25),
		Median: stat(s.Median),
		Q75:    stat(s.Q75),
		Max:    stat(s.Max),
	})
}

// Summarize describes every column of f in column order.
func Summarize(f *series.Frame) []ColumnSummary {
	var out []ColumnSummary
	for _, name := range f.Names() {
		vals, _ := f.Column(name)
		out = append(out, Describe(name, vals))
	}
	return out
}

// Describe summarizes values, skipping missing markers. Statistics that need
// more values than are present are missing.
func Describe(name string, values []float64) ColumnSummary {
	var vals []float64
	for _, v := range values {
		if !series.IsMissing(v) {
			vals = append(vals, v)
		}
	}
	m := series.Missing()
	s := ColumnSummary{Column: name, Count: len(vals), Mean: m, Std: m, Min: m, Q25: m, Median: m, Q75: m, Max: m}
	if len(vals) == 0 {
		return s
	}
	slices.Sort(vals)

	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	s.Mean = sum / float64(len(vals))
	if len(vals) > 1 {
		ss := 0.0
		for _, v := range vals {
			ss += (v - s.Mean) * (v - s.Mean)
		}
		s.Std = math.Sqrt(ss / float64(len(vals)-1))
	}
	s.Min = vals[0]
	s.Max = vals[len(vals)-1]
	s.Q25 = quantile(vals, 0.25)
	s.Median = quantile(vals, 0.5)
	s.Q75 = quantile(vals, 0.75)
	return s
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
