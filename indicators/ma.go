package indicators

import (
	"fmt"

	"github.com/rustyeddy/ta/series"
)

// SMA is a streaming simple moving average.
type SMA struct {
	period int
	win    *Window
	value  float64
}

// NewSMA creates a simple moving average over period values.
func NewSMA(period int) *SMA {
	return &SMA{period: period, win: NewWindow(period), value: series.Missing()}
}

func (m *SMA) Name() string { return fmt.Sprintf("SMA(%d)", m.period) }
func (m *SMA) Warmup() int  { return m.period }

// Next pushes v and returns the mean of the last period values.
func (m *SMA) Next(v float64) float64 {
	m.win.Push(v)
	m.value = m.win.Mean()
	return m.value
}

func (m *SMA) Value() float64 { return m.value }
func (m *SMA) Ready() bool    { return !series.IsMissing(m.value) }

func (m *SMA) Reset() {
	m.win.Reset()
	m.value = series.Missing()
}

// EMA is a streaming exponential moving average, alpha = 2/(period+1).
type EMA struct {
	period int
	sm     *Smoother
	value  float64
}

// NewEMA creates an exponential moving average seeded per policy.
func NewEMA(period int, policy SeedPolicy) *EMA {
	return &EMA{period: period, sm: NewEMASmoother(period, policy), value: series.Missing()}
}

func (e *EMA) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }
func (e *EMA) Warmup() int  { return e.sm.Warmup() }

func (e *EMA) Next(v float64) float64 {
	e.value = e.sm.Next(v)
	return e.value
}

func (e *EMA) Value() float64 { return e.value }
func (e *EMA) Ready() bool    { return !series.IsMissing(e.value) }

func (e *EMA) Reset() {
	e.sm.Reset()
	e.value = series.Missing()
}

// MovingAverage computes simple and exponential averages of price at several
// periods. Columns are sma_<p> for each simple period followed by ema_<p>.
type MovingAverage struct {
	smas []*SMA
	emas []*EMA
	cols []string
	out  []float64
}

// NewMovingAverage builds one SMA per simple period and one EMA per
// exponential period.
func NewMovingAverage(simple, exponential []int, policy SeedPolicy) *MovingAverage {
	ma := &MovingAverage{}
	for _, p := range simple {
		ma.smas = append(ma.smas, NewSMA(p))
		ma.cols = append(ma.cols, fmt.Sprintf("sma_%d", p))
	}
	for _, p := range exponential {
		ma.emas = append(ma.emas, NewEMA(p, policy))
		ma.cols = append(ma.cols, fmt.Sprintf("ema_%d", p))
	}
	ma.out = missingRow(len(ma.cols))
	return ma
}

func (ma *MovingAverage) Name() string      { return "MA" }
func (ma *MovingAverage) Columns() []string { return ma.cols }
func (ma *MovingAverage) Inputs() Input     { return InputPrice }

func (ma *MovingAverage) Warmup() int {
	w := 0
	for _, s := range ma.smas {
		w = max(w, s.Warmup())
	}
	for _, e := range ma.emas {
		w = max(w, e.Warmup())
	}
	return w
}

func (ma *MovingAverage) Reset() {
	for _, s := range ma.smas {
		s.Reset()
	}
	for _, e := range ma.emas {
		e.Reset()
	}
	ma.out = missingRow(len(ma.cols))
}

func (ma *MovingAverage) Update(o series.Observation) {
	i := 0
	for _, s := range ma.smas {
		ma.out[i] = s.Next(o.Price)
		i++
	}
	for _, e := range ma.emas {
		ma.out[i] = e.Next(o.Price)
		i++
	}
}

func (ma *MovingAverage) Values() []float64 { return ma.out }
