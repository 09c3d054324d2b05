package indicators

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/ta/series"
)

// SeedPolicy selects how a Smoother initializes its state.
type SeedPolicy int

const (
	// SeedSMA seeds with the mean of the first period valid inputs. Nothing
	// is emitted before that point.
	SeedSMA SeedPolicy = iota

	// SeedFirst seeds with the first valid input, which is emitted as is.
	SeedFirst
)

func (p SeedPolicy) String() string {
	switch p {
	case SeedSMA:
		return "sma"
	case SeedFirst:
		return "first"
	}
	return fmt.Sprintf("SeedPolicy(%d)", int(p))
}

// ParseSeedPolicy accepts "sma" or "first". The empty string means SeedSMA.
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sma":
		return SeedSMA, nil
	case "first":
		return SeedFirst, nil
	}
	return 0, fmt.Errorf("unknown seed policy %q (want sma or first)", s)
}

// Smoother is a recursive exponential accumulator:
//
//	out = alpha*in + (1-alpha)*prev
//
// A missing input leaves the state untouched and reports missing for that
// position.
type Smoother struct {
	alpha  float64
	period int
	policy SeedPolicy

	count int
	sum   float64
	value float64
	ready bool
}

// NewSmoother returns a smoother with the given alpha. period is only used
// by SeedSMA.
func NewSmoother(alpha float64, period int, policy SeedPolicy) *Smoother {
	checkPeriod(period)
	return &Smoother{alpha: alpha, period: period, policy: policy}
}

// NewEMASmoother uses alpha = 2/(period+1).
func NewEMASmoother(period int, policy SeedPolicy) *Smoother {
	return NewSmoother(2.0/float64(period+1), period, policy)
}

// NewWilderSmoother uses alpha = 1/period with the conventional Wilder seed,
// the average of the first period inputs.
func NewWilderSmoother(period int) *Smoother {
	return NewSmoother(1.0/float64(period), period, SeedSMA)
}

// Next consumes v and returns the smoothed value, or missing while seeding
// or when v is missing.
func (s *Smoother) Next(v float64) float64 {
	if series.IsMissing(v) {
		return series.Missing()
	}
	if !s.ready {
		if s.policy == SeedFirst {
			s.value = v
			s.ready = true
			return s.value
		}
		s.sum += v
		s.count++
		if s.count < s.period {
			return series.Missing()
		}
		s.value = s.sum / float64(s.period)
		s.ready = true
		return s.value
	}
	s.value = s.alpha*v + (1-s.alpha)*s.value
	return s.value
}

// Value returns the current state, or missing before seeding completes.
func (s *Smoother) Value() float64 {
	if !s.ready {
		return series.Missing()
	}
	return s.value
}

func (s *Smoother) Ready() bool { return s.ready }

func (s *Smoother) Alpha() float64 { return s.alpha }

// Warmup returns the number of valid inputs needed before the first output.
func (s *Smoother) Warmup() int {
	if s.policy == SeedFirst {
		return 1
	}
	return s.period
}

func (s *Smoother) Reset() {
	s.count = 0
	s.sum = 0
	s.value = 0
	s.ready = false
}
