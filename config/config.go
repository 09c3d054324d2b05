package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rustyeddy/ta/indicators"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents a complete indicator run
type Config struct {
	Input      InputConfig  `json:"input" yaml:"input"`
	Indicators Indicators   `json:"indicators" yaml:"indicators"`
	Output     OutputConfig `json:"output" yaml:"output"`
}

// InputConfig names the price table and its columns
type InputConfig struct {
	Path         string `json:"path,omitempty" yaml:"path,omitempty"`
	PriceColumn  string `json:"price_column,omitempty" yaml:"price_column,omitempty"`
	VolumeColumn string `json:"volume_column,omitempty" yaml:"volume_column,omitempty"`
}

// OutputConfig selects where the indicator table is written
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "csv" or "sqlite"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Indicators selects which indicators to compute. A nil section is skipped.
type Indicators struct {
	Smoothing     SmoothingConfig      `json:"smoothing" yaml:"smoothing"`
	MovingAverage *MovingAverageConfig `json:"moving_average,omitempty" yaml:"moving_average,omitempty"`
	RSI           *RSIConfig           `json:"rsi,omitempty" yaml:"rsi,omitempty"`
	MACD          *MACDConfig          `json:"macd,omitempty" yaml:"macd,omitempty"`
	Bollinger     *BollingerConfig     `json:"bollinger,omitempty" yaml:"bollinger,omitempty"`
	Volume        *VolumeConfig        `json:"volume,omitempty" yaml:"volume,omitempty"`
	Volatility    *VolatilityConfig    `json:"volatility,omitempty" yaml:"volatility,omitempty"`
}

// SmoothingConfig sets the seed used by every EMA based indicator
type SmoothingConfig struct {
	Seed string `json:"seed,omitempty" yaml:"seed,omitempty"` // "sma" (default) or "first"
}

type MovingAverageConfig struct {
	Periods    []int `json:"periods" yaml:"periods"`
	EMAPeriods []int `json:"ema_periods,omitempty" yaml:"ema_periods,omitempty"`
}

type RSIConfig struct {
	Period int `json:"period" yaml:"period"`
}

type MACDConfig struct {
	Fast   int `json:"fast" yaml:"fast"`
	Slow   int `json:"slow" yaml:"slow"`
	Signal int `json:"signal" yaml:"signal"`
}

type BollingerConfig struct {
	Period           int     `json:"period" yaml:"period"`
	StdDevMultiplier float64 `json:"std_dev_multiplier" yaml:"std_dev_multiplier"`
}

type VolumeConfig struct {
	MAPeriod int `json:"ma_period" yaml:"ma_period"`
}

type VolatilityConfig struct {
	Period              int     `json:"period" yaml:"period"`
	AnnualizationFactor float64 `json:"annualization_factor" yaml:"annualization_factor"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
// Unknown keys are rejected.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	// Try YAML first, fall back to JSON
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if yerr := dec.Decode(cfg); yerr != nil {
		cfg = &Config{}
		jdec := json.NewDecoder(bytes.NewReader(data))
		jdec.DisallowUnknownFields()
		if jerr := jdec.Decode(cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", yerr)
		}
	}
	cfg.Input.applyDefaults()
	cfg.Indicators.ApplyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (in *InputConfig) applyDefaults() {
	if in.PriceColumn == "" {
		in.PriceColumn = "close"
	}
	if in.VolumeColumn == "" {
		in.VolumeColumn = "volume"
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.PriceColumn == "" {
		return invalid("input.price_column is required")
	}
	switch c.Output.Format {
	case "", "csv":
	case "sqlite":
		if c.Output.Path == "" {
			return invalid("output.path required for sqlite format")
		}
	default:
		return invalid("output.format must be 'csv' or 'sqlite'")
	}
	return c.Indicators.Validate()
}

// ApplyDefaults fills fields left at zero in every configured section from
// DefaultIndicators, so `rsi: {}` means RSI(14). Nil sections stay nil.
func (ind *Indicators) ApplyDefaults() {
	def := DefaultIndicators()
	if ma := ind.MovingAverage; ma != nil && len(ma.Periods) == 0 && len(ma.EMAPeriods) == 0 {
		ma.Periods = slices.Clone(def.MovingAverage.Periods)
	}
	if r := ind.RSI; r != nil {
		orDefault(&r.Period, def.RSI.Period)
	}
	if m := ind.MACD; m != nil {
		orDefault(&m.Fast, def.MACD.Fast)
		orDefault(&m.Slow, def.MACD.Slow)
		orDefault(&m.Signal, def.MACD.Signal)
	}
	if b := ind.Bollinger; b != nil {
		orDefault(&b.Period, def.Bollinger.Period)
		orDefault(&b.StdDevMultiplier, def.Bollinger.StdDevMultiplier)
	}
	if v := ind.Volume; v != nil {
		orDefault(&v.MAPeriod, def.Volume.MAPeriod)
	}
	if v := ind.Volatility; v != nil {
		orDefault(&v.Period, def.Volatility.Period)
		orDefault(&v.AnnualizationFactor, def.Volatility.AnnualizationFactor)
	}
}

func orDefault[T int | float64](v *T, def T) {
	if *v == 0 {
		*v = def
	}
}

// Validate checks periods and multipliers of every configured indicator.
func (ind *Indicators) Validate() error {
	if _, err := indicators.ParseSeedPolicy(ind.Smoothing.Seed); err != nil {
		return invalid("smoothing.seed: %v", err)
	}
	if ind.Empty() {
		return invalid("no indicators configured")
	}

	if ma := ind.MovingAverage; ma != nil {
		if len(ma.Periods) == 0 && len(ma.EMAPeriods) == 0 {
			return invalid("moving_average.periods must not be empty")
		}
		if err := checkPeriods("moving_average.periods", ma.Periods); err != nil {
			return err
		}
		if err := checkPeriods("moving_average.ema_periods", ma.EMAPeriods); err != nil {
			return err
		}
	}
	if r := ind.RSI; r != nil && r.Period <= 0 {
		return invalid("rsi.period must be positive")
	}
	if m := ind.MACD; m != nil {
		if m.Fast <= 0 || m.Slow <= 0 || m.Signal <= 0 {
			return invalid("macd.fast, macd.slow and macd.signal must be positive")
		}
		if m.Fast >= m.Slow {
			return invalid("macd.fast (%d) must be less than macd.slow (%d)", m.Fast, m.Slow)
		}
	}
	if b := ind.Bollinger; b != nil {
		if b.Period < 2 {
			return invalid("bollinger.period must be at least 2")
		}
		if b.StdDevMultiplier <= 0 {
			return invalid("bollinger.std_dev_multiplier must be positive")
		}
	}
	if v := ind.Volume; v != nil && v.MAPeriod <= 0 {
		return invalid("volume.ma_period must be positive")
	}
	if v := ind.Volatility; v != nil {
		if v.Period < 2 {
			return invalid("volatility.period must be at least 2")
		}
		if v.AnnualizationFactor <= 0 {
			return invalid("volatility.annualization_factor must be positive")
		}
	}
	return nil
}

// Empty reports whether no indicator section is set.
func (ind *Indicators) Empty() bool {
	return ind.MovingAverage == nil && ind.RSI == nil && ind.MACD == nil &&
		ind.Bollinger == nil && ind.Volume == nil && ind.Volatility == nil
}

func checkPeriods(key string, periods []int) error {
	seen := make(map[int]bool, len(periods))
	for _, p := range periods {
		if p <= 0 {
			return invalid("%s: period must be positive, got %d", key, p)
		}
		if seen[p] {
			return invalid("%s: duplicate period %d", key, p)
		}
		seen[p] = true
	}
	return nil
}

// DefaultIndicators returns every indicator with its conventional settings.
func DefaultIndicators() Indicators {
	return Indicators{
		Smoothing:     SmoothingConfig{Seed: "sma"},
		MovingAverage: &MovingAverageConfig{Periods: []int{20, 50, 200}},
		RSI:           &RSIConfig{Period: 14},
		MACD:          &MACDConfig{Fast: 12, Slow: 26, Signal: 9},
		Bollinger:     &BollingerConfig{Period: 20, StdDevMultiplier: 2.0},
		Volume:        &VolumeConfig{MAPeriod: 20},
		Volatility: &VolatilityConfig{
			Period:              20,
			AnnualizationFactor: indicators.DefaultAnnualization,
		},
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			PriceColumn:  "close",
			VolumeColumn: "volume",
		},
		Indicators: DefaultIndicators(),
		Output: OutputConfig{
			Format: "csv",
		},
	}
}
