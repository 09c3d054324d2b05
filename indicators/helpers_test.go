package indicators

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/rustyeddy/ta/series"
	"github.com/stretchr/testify/assert"
)

var nan = math.NaN()

// assertSeries compares two columns, treating missing markers as equal.
func assertSeries(t *testing.T, want, got []float64, tol float64, label string) {
	t.Helper()
	if !assert.Len(t, got, len(want), label) {
		return
	}
	for i := range want {
		if series.IsMissing(want[i]) {
			assert.True(t, series.IsMissing(got[i]), "%s[%d]: want missing, got %v", label, i, got[i])
			continue
		}
		assert.False(t, series.IsMissing(got[i]), "%s[%d]: want %v, got missing", label, i, want[i])
		assert.InDelta(t, want[i], got[i], tol, "%s[%d]", label, i)
	}
}

func observations(prices, volumes []float64) []series.Observation {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]series.Observation, len(prices))
	for i, p := range prices {
		obs[i] = series.Observation{Time: base.AddDate(0, 0, i), Price: p, Volume: series.Missing()}
		if volumes != nil {
			obs[i].Volume = volumes[i]
		}
	}
	return obs
}

// collect feeds obs through ind and returns one slice per column.
func collect(ind Indicator, obs []series.Observation) [][]float64 {
	cols := make([][]float64, len(ind.Columns()))
	for _, o := range obs {
		ind.Update(o)
		for c, v := range ind.Values() {
			cols[c] = append(cols[c], v)
		}
	}
	return cols
}

// randomWalk returns n positive prices from a fixed seed.
func randomWalk(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		p *= 1 + (rng.Float64()-0.5)*0.04
		out[i] = p
	}
	return out
}

func randomVolume(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(1000 + rng.Intn(9000))
	}
	return out
}
