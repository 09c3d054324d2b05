package indicators

import (
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/rustyeddy/ta/series"
	"github.com/stretchr/testify/assert"
)

func TestVolumeOBVScenario(t *testing.T) {
	v := NewVolume(2)
	assert.Equal(t, []string{"volume_ma_2", "volume_roc", "obv"}, v.Columns())
	assert.True(t, v.Inputs().Has(InputVolume))
	assert.True(t, v.Inputs().Has(InputPrice))

	cols := collect(v, observations([]float64{10, 11, 10}, []float64{100, 150, 90}))
	assert.Equal(t, []float64{100, 250, 160}, cols[2])
	assertSeries(t, []float64{nan, 125, 120}, cols[0], 1e-12, "volume_ma_2")
	assertSeries(t, []float64{nan, 0.5, -0.4}, cols[1], 1e-12, "volume_roc")
}

func TestVolumeROCZeroDenominator(t *testing.T) {
	v := NewVolume(3)
	obs := observations([]float64{1, 1, 1, 1}, []float64{0, 50, nan, 20})
	cols := collect(v, obs)
	// prev volume 0, then missing on either side
	assertSeries(t, []float64{nan, nan, nan, nan}, cols[1], 0, "volume_roc")
}

func TestVolumeOBVFlatAndMissing(t *testing.T) {
	v := NewVolume(2)
	obs := observations(
		[]float64{10, 10, nan, 12, 11},
		[]float64{nan, 30, 40, 50, nan},
	)
	cols := collect(v, obs)
	// first volume missing seeds 0; flat, missing price and missing volume
	// all leave the total unchanged
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, cols[2])
}

func TestVolumeOBVMatchesTALib(t *testing.T) {
	prices := randomWalk(200, 31)
	volumes := randomVolume(200, 32)
	cols := collect(NewVolume(20), observations(prices, volumes))
	ref := talib.Obv(prices, volumes)
	assertSeries(t, ref, cols[2], 1e-9, "obv")
}

func TestVolumeReset(t *testing.T) {
	v := NewVolume(2)
	collect(v, observations([]float64{1, 2}, []float64{5, 6}))
	v.Reset()
	v.Update(series.Observation{Price: 3, Volume: 7})
	assert.Equal(t, 7.0, v.Values()[2])
	assert.True(t, series.IsMissing(v.Values()[1]))
}
