package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/ta/series"
)

// The *Series functions compute a whole column at once from a slice. They do
// not share code with the streaming types and serve as their reference.

// SMASeries returns the simple moving average of values.
func SMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	out := series.Filled(len(values))
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-period+1 : i+1] {
			sum += v
		}
		// a missing value anywhere in the window propagates as NaN
		out[i] = sum / float64(period)
	}
	return out, nil
}

// StdDevSeries returns the rolling sample standard deviation of values.
func StdDevSeries(values []float64, period int) ([]float64, error) {
	if period < 2 {
		return nil, fmt.Errorf("period must be at least 2, got %d", period)
	}
	means, _ := SMASeries(values, period)
	out := series.Filled(len(values))
	for i := period - 1; i < len(values); i++ {
		if series.IsMissing(means[i]) {
			continue
		}
		ss := 0.0
		for _, v := range values[i-period+1 : i+1] {
			ss += (v - means[i]) * (v - means[i])
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out, nil
}

// EMASeries returns the exponential moving average of values. Missing inputs
// are skipped without disturbing the average.
func EMASeries(values []float64, period int, policy SeedPolicy) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	alpha := 2.0 / float64(period+1)
	return smooth(values, alpha, period, policy), nil
}

func smooth(values []float64, alpha float64, period int, policy SeedPolicy) []float64 {
	out := series.Filled(len(values))
	seen, sum, prev := 0, 0.0, 0.0
	for i, v := range values {
		if series.IsMissing(v) {
			continue
		}
		seen++
		switch {
		case policy == SeedFirst && seen == 1:
			prev = v
		case policy == SeedSMA && seen < period:
			sum += v
			continue
		case policy == SeedSMA && seen == period:
			prev = (sum + v) / float64(period)
		default:
			prev = alpha*v + (1-alpha)*prev
		}
		out[i] = prev
	}
	return out
}

// RSISeries returns Wilder's RSI of values.
func RSISeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	gains := series.Filled(len(values))
	losses := series.Filled(len(values))
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if series.IsMissing(d) {
			continue
		}
		gains[i] = math.Max(d, 0)
		losses[i] = math.Max(-d, 0)
	}

	alpha := 1.0 / float64(period)
	ag := smooth(gains, alpha, period, SeedSMA)
	al := smooth(losses, alpha, period, SeedSMA)

	out := series.Filled(len(values))
	for i := range values {
		switch {
		case series.IsMissing(ag[i]) || series.IsMissing(al[i]):
		case al[i] == 0:
			out[i] = 100
		default:
			out[i] = 100 - 100/(1+ag[i]/al[i])
		}
	}
	return out, nil
}
