// Package indicators provides streaming technical indicators over price and
// volume observations.
//
// Every indicator owns its own windows and smoothers. Feeding the same
// observations after Reset reproduces the same values bit for bit, so a
// replay, a backtest and a live stream all agree.
package indicators

import "github.com/rustyeddy/ta/series"

// Input is a bit set of the observation fields an indicator reads.
type Input uint8

const (
	InputPrice Input = 1 << iota
	InputVolume
)

// Has reports whether all bits of in are set.
func (i Input) Has(in Input) bool { return i&in == in }

// Indicator computes one or more output columns aligned with its input.
type Indicator interface {
	// Name returns a stable identifier like "RSI(14)".
	Name() string

	// Columns returns the output column names, in the order Values uses.
	Columns() []string

	// Inputs reports which observation fields Update reads.
	Inputs() Input

	// Warmup returns how many observations are needed before every column
	// can be defined.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next observation.
	Update(o series.Observation)

	// Values returns one value per column for the latest Update. Columns
	// still warming up hold the missing marker. The slice is overwritten by
	// the next Update.
	Values() []float64
}

func missingRow(n int) []float64 { return series.Filled(n) }

func checkPeriod(period int) {
	if period <= 0 {
		panic("indicators: period must be positive")
	}
}
