package indicators

import (
	"fmt"

	"github.com/rustyeddy/ta/series"
)

// RSI is Wilder's Relative Strength Index.
//
// Gains and losses of successive prices feed two Wilder smoothers seeded
// with the average of the first period values, so the first period
// positions are missing. A zero average loss reports 100.
type RSI struct {
	period int
	prev   float64
	gain   *Smoother
	loss   *Smoother
	out    []float64
}

// NewRSI creates an RSI over period deltas (typically 14).
func NewRSI(period int) *RSI {
	r := &RSI{
		period: period,
		gain:   NewWilderSmoother(period),
		loss:   NewWilderSmoother(period),
	}
	r.Reset()
	return r
}

func (r *RSI) Name() string      { return fmt.Sprintf("RSI(%d)", r.period) }
func (r *RSI) Columns() []string { return []string{fmt.Sprintf("rsi_%d", r.period)} }
func (r *RSI) Inputs() Input     { return InputPrice }

// Warmup counts the seed observation that has no delta.
func (r *RSI) Warmup() int { return r.period + 1 }

func (r *RSI) Reset() {
	r.prev = series.Missing()
	r.gain.Reset()
	r.loss.Reset()
	r.out = missingRow(1)
}

// Next consumes a price and returns the RSI at that position.
func (r *RSI) Next(price float64) float64 {
	delta := price - r.prev
	r.prev = price
	if series.IsMissing(delta) {
		return series.Missing()
	}

	g, l := 0.0, 0.0
	if delta > 0 {
		g = delta
	} else {
		l = -delta
	}
	avgGain := r.gain.Next(g)
	avgLoss := r.loss.Next(l)
	if series.IsMissing(avgGain) || series.IsMissing(avgLoss) {
		return series.Missing()
	}
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

func (r *RSI) Update(o series.Observation) { r.out[0] = r.Next(o.Price) }
func (r *RSI) Values() []float64           { return r.out }
