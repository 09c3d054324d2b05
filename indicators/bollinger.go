package indicators

import (
	"fmt"

	"github.com/rustyeddy/ta/series"
)

// Bollinger bands: middle = SMA(period), upper/lower = middle ± k·stddev,
// both statistics taken over the same window.
type Bollinger struct {
	period int
	k      float64
	win    *Window
	out    []float64
}

// NewBollinger needs period >= 2 for a sample deviation to exist.
func NewBollinger(period int, k float64) *Bollinger {
	return &Bollinger{period: period, k: k, win: NewWindow(period), out: missingRow(3)}
}

func (b *Bollinger) Name() string      { return fmt.Sprintf("BB(%d,%g)", b.period, b.k) }
func (b *Bollinger) Columns() []string { return []string{"bb_middle", "bb_upper", "bb_lower"} }
func (b *Bollinger) Inputs() Input     { return InputPrice }
func (b *Bollinger) Warmup() int       { return b.period }

func (b *Bollinger) Reset() {
	b.win.Reset()
	b.out = missingRow(3)
}

// Next returns the middle, upper and lower bands. They are defined or
// missing together.
func (b *Bollinger) Next(price float64) (middle, upper, lower float64) {
	b.win.Push(price)
	middle = b.win.Mean()
	sd := b.win.StdDev()
	if series.IsMissing(middle) || series.IsMissing(sd) {
		m := series.Missing()
		return m, m, m
	}
	return middle, middle + b.k*sd, middle - b.k*sd
}

func (b *Bollinger) Update(o series.Observation) {
	b.out[0], b.out[1], b.out[2] = b.Next(o.Price)
}

func (b *Bollinger) Values() []float64 { return b.out }
