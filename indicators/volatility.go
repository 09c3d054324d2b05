package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/ta/series"
)

// TradingDays is the default annualization basis for daily data.
const TradingDays = 252

// DefaultAnnualization is sqrt(TradingDays).
var DefaultAnnualization = math.Sqrt(TradingDays)

// Volatility is the rolling sample deviation of simple returns scaled by an
// annualization factor. A return is missing at the first row and wherever
// either price is missing or not positive.
type Volatility struct {
	period int
	factor float64
	prev   float64
	win    *Window
	out    []float64
}

// NewVolatility needs period >= 2. factor is multiplied in as is; pass
// DefaultAnnualization for daily bars.
func NewVolatility(period int, factor float64) *Volatility {
	v := &Volatility{period: period, factor: factor, win: NewWindow(period)}
	v.Reset()
	return v
}

func (v *Volatility) Name() string      { return fmt.Sprintf("VOLAT(%d)", v.period) }
func (v *Volatility) Columns() []string { return []string{fmt.Sprintf("volatility_%d", v.period)} }
func (v *Volatility) Inputs() Input     { return InputPrice }
func (v *Volatility) Warmup() int       { return v.period + 1 }

func (v *Volatility) Reset() {
	v.win.Reset()
	v.prev = series.Missing()
	v.out = missingRow(1)
}

// Return computes price/prev - 1 under the rules above.
func Return(prev, price float64) float64 {
	if series.IsMissing(prev) || series.IsMissing(price) || prev <= 0 || price <= 0 {
		return series.Missing()
	}
	return price/prev - 1
}

func (v *Volatility) Next(price float64) float64 {
	v.win.Push(Return(v.prev, price))
	v.prev = price
	return v.win.StdDev() * v.factor
}

func (v *Volatility) Update(o series.Observation) { v.out[0] = v.Next(o.Price) }
func (v *Volatility) Values() []float64           { return v.out }
