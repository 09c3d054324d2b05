package indicators

import (
	"fmt"

	"github.com/rustyeddy/ta/series"
)

// Volume computes the volume moving average, the volume rate of change and
// on-balance volume.
//
// volume_roc is the ratio v[t]/v[t-1] - 1; it is missing at the first row and
// wherever the previous volume is zero or missing. OBV starts at the first
// volume (zero if that is missing), then adds volume on a price rise and
// subtracts it on a fall. Flat or missing prices leave it unchanged.
type Volume struct {
	ma *SMA

	started   bool
	prevVol   float64
	prevPrice float64
	obv       float64
	out       []float64
}

func NewVolume(maPeriod int) *Volume {
	v := &Volume{ma: NewSMA(maPeriod)}
	v.Reset()
	return v
}

func (v *Volume) Name() string { return fmt.Sprintf("VOL(%d)", v.ma.period) }

func (v *Volume) Columns() []string {
	return []string{fmt.Sprintf("volume_ma_%d", v.ma.period), "volume_roc", "obv"}
}

func (v *Volume) Inputs() Input { return InputPrice | InputVolume }
func (v *Volume) Warmup() int   { return max(v.ma.Warmup(), 2) }

func (v *Volume) Reset() {
	v.ma.Reset()
	v.started = false
	v.prevVol = series.Missing()
	v.prevPrice = series.Missing()
	v.obv = 0
	v.out = missingRow(3)
}

// Next consumes one observation and returns volume_ma, volume_roc and obv.
func (v *Volume) Next(o series.Observation) (ma, roc, obv float64) {
	ma = v.ma.Next(o.Volume)

	roc = series.Missing()
	if !series.IsMissing(o.Volume) && !series.IsMissing(v.prevVol) && v.prevVol != 0 {
		roc = o.Volume/v.prevVol - 1
	}

	switch {
	case !v.started:
		v.started = true
		if !series.IsMissing(o.Volume) {
			v.obv = o.Volume
		}
	case series.IsMissing(o.Volume):
	case o.Price > v.prevPrice:
		v.obv += o.Volume
	case o.Price < v.prevPrice:
		v.obv -= o.Volume
	}

	v.prevVol = o.Volume
	v.prevPrice = o.Price
	return ma, roc, v.obv
}

func (v *Volume) Update(o series.Observation) {
	v.out[0], v.out[1], v.out[2] = v.Next(o)
}

func (v *Volume) Values() []float64 { return v.out }
