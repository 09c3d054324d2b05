package indicators

import (
	"fmt"

	"github.com/rustyeddy/ta/series"
)

// MACD is the difference of a fast and a slow EMA of price, with a signal
// EMA of that difference.
//
// The signal smoother only sees defined MACD values, so under SeedSMA the
// histogram is first defined after slow+signal-1 observations.
type MACD struct {
	fastPeriod, slowPeriod, signalPeriod int

	fast   *Smoother
	slow   *Smoother
	signal *Smoother
	out    []float64
}

// NewMACD creates a MACD; fast must be shorter than slow.
func NewMACD(fast, slow, signal int, policy SeedPolicy) *MACD {
	m := &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
		fast:         NewEMASmoother(fast, policy),
		slow:         NewEMASmoother(slow, policy),
		signal:       NewEMASmoother(signal, policy),
	}
	m.out = missingRow(3)
	return m
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) Columns() []string {
	return []string{"macd_line", "macd_signal", "macd_histogram"}
}

func (m *MACD) Inputs() Input { return InputPrice }

func (m *MACD) Warmup() int {
	return max(m.fast.Warmup(), m.slow.Warmup()) + m.signal.Warmup() - 1
}

func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.out = missingRow(3)
}

// Next consumes a price and returns the MACD line, signal and histogram.
func (m *MACD) Next(price float64) (line, signal, hist float64) {
	f := m.fast.Next(price)
	s := m.slow.Next(price)
	if series.IsMissing(f) || series.IsMissing(s) {
		return series.Missing(), series.Missing(), series.Missing()
	}
	line = f - s
	signal = m.signal.Next(line)
	if series.IsMissing(signal) {
		return line, signal, series.Missing()
	}
	return line, signal, line - signal
}

func (m *MACD) Update(o series.Observation) {
	m.out[0], m.out[1], m.out[2] = m.Next(o.Price)
}

func (m *MACD) Values() []float64 { return m.out }
