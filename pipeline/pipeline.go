// Package pipeline runs a configured set of indicators over one price table.
//
// A Pipeline is built once from a validated configuration and never changes.
// Every Run rebuilds indicator state from scratch, so running the same table
// twice gives the same output. Each indicator owns its windows and smoothers;
// two indicators that use the same period each keep their own copy.
package pipeline

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/rustyeddy/ta/config"
	"github.com/rustyeddy/ta/indicators"
	"github.com/rustyeddy/ta/series"
)

// Pipeline computes every configured indicator over a table.
// It is not safe for concurrent use by multiple goroutines.
type Pipeline struct {
	cfg       config.Indicators
	policy    indicators.SeedPolicy
	priceCol  string
	volumeCol string
	log       *slog.Logger

	columns []string
	warmup  int
	inputs  indicators.Input
}

type Option func(*Pipeline)

// WithLogger sets the logger used for run level diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithColumns sets the input column names for price and volume. Empty
// strings keep the defaults ("close" and "volume").
func WithColumns(price, volume string) Option {
	return func(p *Pipeline) {
		if price != "" {
			p.priceCol = price
		}
		if volume != "" {
			p.volumeCol = volume
		}
	}
}

// New validates cfg and returns a pipeline for it. Fields left at zero take
// their defaults. The configuration is copied; later changes to cfg have no
// effect.
func New(cfg config.Indicators, opts ...Option) (*Pipeline, error) {
	cfg = clone(cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := indicators.ParseSeedPolicy(cfg.Smoothing.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	p := &Pipeline{
		cfg:       cfg,
		policy:    policy,
		priceCol:  "close",
		volumeCol: "volume",
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, ind := range p.build() {
		p.columns = append(p.columns, ind.Columns()...)
		p.warmup = max(p.warmup, ind.Warmup())
		p.inputs |= ind.Inputs()
	}
	return p, nil
}

func clone(cfg config.Indicators) config.Indicators {
	out := config.Indicators{Smoothing: cfg.Smoothing}
	if ma := cfg.MovingAverage; ma != nil {
		out.MovingAverage = &config.MovingAverageConfig{
			Periods:    slices.Clone(ma.Periods),
			EMAPeriods: slices.Clone(ma.EMAPeriods),
		}
	}
	if cfg.RSI != nil {
		r := *cfg.RSI
		out.RSI = &r
	}
	if cfg.MACD != nil {
		m := *cfg.MACD
		out.MACD = &m
	}
	if cfg.Bollinger != nil {
		b := *cfg.Bollinger
		out.Bollinger = &b
	}
	if cfg.Volume != nil {
		v := *cfg.Volume
		out.Volume = &v
	}
	if cfg.Volatility != nil {
		v := *cfg.Volatility
		out.Volatility = &v
	}
	return out
}

// build returns fresh indicator instances in output column order.
func (p *Pipeline) build() []indicators.Indicator {
	var inds []indicators.Indicator
	c := p.cfg
	if ma := c.MovingAverage; ma != nil {
		inds = append(inds, indicators.NewMovingAverage(ma.Periods, ma.EMAPeriods, p.policy))
	}
	if c.RSI != nil {
		inds = append(inds, indicators.NewRSI(c.RSI.Period))
	}
	if m := c.MACD; m != nil {
		inds = append(inds, indicators.NewMACD(m.Fast, m.Slow, m.Signal, p.policy))
	}
	if b := c.Bollinger; b != nil {
		inds = append(inds, indicators.NewBollinger(b.Period, b.StdDevMultiplier))
	}
	if c.Volume != nil {
		inds = append(inds, indicators.NewVolume(c.Volume.MAPeriod))
	}
	if v := c.Volatility; v != nil {
		inds = append(inds, indicators.NewVolatility(v.Period, v.AnnualizationFactor))
	}
	return inds
}

// Columns returns the output column names in table order.
func (p *Pipeline) Columns() []string { return slices.Clone(p.columns) }

// Warmup returns the longest warm-up of any configured indicator. Tables
// shorter than this produce some all-missing columns.
func (p *Pipeline) Warmup() int { return p.warmup }

// Inputs reports which input columns the configured indicators read.
func (p *Pipeline) Inputs() indicators.Input { return p.inputs }

// InputColumns returns the header names accepted for price, in order of
// preference, and the volume column name.
func (p *Pipeline) InputColumns() (price []string, volume string) {
	return aliases(p.priceCol, "close", "price"), p.volumeCol
}

// resolve finds the price and volume columns the configuration needs. An
// absent column fails before any computation starts.
func (p *Pipeline) resolve(f *series.Frame) (price, volume []float64, err error) {
	var ok bool
	if p.inputs.Has(indicators.InputPrice) {
		names, _ := p.InputColumns()
		if _, price, ok = f.Lookup(names...); !ok {
			return nil, nil, &ColumnError{Column: p.priceCol, Indicator: p.requiredBy(indicators.InputPrice)}
		}
	}
	if p.inputs.Has(indicators.InputVolume) {
		if _, volume, ok = f.Lookup(p.volumeCol); !ok {
			return nil, nil, &ColumnError{Column: p.volumeCol, Indicator: p.requiredBy(indicators.InputVolume)}
		}
	}
	return price, volume, nil
}

// aliases treats "close" and "price" as interchangeable names for price.
func aliases(name string, group ...string) []string {
	if !slices.ContainsFunc(group, func(g string) bool { return strings.EqualFold(name, g) }) {
		return []string{name}
	}
	out := []string{name}
	for _, g := range group {
		if !strings.EqualFold(name, g) {
			out = append(out, g)
		}
	}
	return out
}

func (p *Pipeline) requiredBy(in indicators.Input) string {
	var names []string
	for _, ind := range p.build() {
		if ind.Inputs().Has(in) {
			names = append(names, ind.Name())
		}
	}
	return strings.Join(names, ", ")
}

// Run computes every configured indicator over f and returns a table with
// the same time index and one column per indicator output.
func (p *Pipeline) Run(f *series.Frame) (*series.Frame, error) {
	price, volume, err := p.resolve(f)
	if err != nil {
		return nil, err
	}
	if err := f.CheckIndex(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}

	n := f.Len()
	if n < p.warmup {
		p.log.Debug("insufficient data for full warm-up",
			slog.Int("rows", n), slog.Int("warmup", p.warmup))
	}

	cols := make([][]float64, len(p.columns))
	for i := range cols {
		cols[i] = make([]float64, n)
	}

	s := p.NewStream()
	for i, o := range f.Observations(price, volume) {
		row, err := s.Push(o)
		if err != nil {
			return nil, err
		}
		for c, v := range row.Values {
			cols[c][i] = v
		}
	}

	out := series.NewFrame(slices.Clone(f.Index()))
	for c, name := range p.columns {
		if err := out.Set(name, cols[c]); err != nil {
			return nil, err
		}
	}
	p.log.Debug("pipeline run complete",
		slog.Int("rows", n), slog.Int("columns", len(p.columns)))
	return out, nil
}
