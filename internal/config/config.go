package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"wealth-projections/internal/input"
	"wealth-projections/internal/model"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Environment variables named
// in the env tags override file values.
type Config struct {
	Server      ServerConfig                    `yaml:"server"`
	Chart       ChartConfig                     `yaml:"chart"`
	Contact     ContactConfig                   `yaml:"contact"`
	Sessions    SessionConfig                   `yaml:"sessions"`
	Calculators map[model.Kind]CalculatorConfig `yaml:"calculators"`
}

type ServerConfig struct {
	Port      string `yaml:"port" env:"API_PORT"`
	Env       string `yaml:"env" env:"API_ENV"`
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
	// AllowedOrigins feeds the CORS middleware; empty means any origin.
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type ChartConfig struct {
	// BaseYear labels year 1 of a projection as BaseYear+1. 0 means the current year.
	BaseYear int `yaml:"base_year" env:"CHART_BASE_YEAR"`
}

type ContactConfig struct {
	Endpoint string        `yaml:"endpoint" env:"CONTACT_ENDPOINT"`
	Timeout  time.Duration `yaml:"timeout" env:"CONTACT_TIMEOUT"`
}

type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl" env:"SESSION_TTL"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL"`
}

// CalculatorConfig holds the form defaults and slider bounds of one calculator.
// Defaults are raw field values, as a page would pre-fill them.
type CalculatorConfig struct {
	Defaults input.Fields           `yaml:"defaults"`
	Bounds   map[string]input.Bound `yaml:"bounds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8080",
			Env:       "development",
			StaticDir: "./web/dist",
		},
		Contact: ContactConfig{
			Timeout: 15 * time.Second,
		},
		Sessions: SessionConfig{
			TTL:           time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Calculators: map[model.Kind]CalculatorConfig{
			model.KindSIP: {
				Defaults: input.Fields{"amount": "5000", "rate": "12", "years": "10"},
				Bounds: map[string]input.Bound{
					"amount": {Min: 500, Max: 100000, Step: 500},
					"rate":   {Min: 0, Max: 30, Step: 0.5},
					"years":  {Min: 1, Max: 40, Step: 1},
				},
			},
			model.KindStepUp: {
				Defaults: input.Fields{"amount": "5000", "rate": "12", "years": "10", "step": "10"},
				Bounds: map[string]input.Bound{
					"amount": {Min: 500, Max: 100000, Step: 500},
					"rate":   {Min: 0, Max: 30, Step: 0.5},
					"years":  {Min: 1, Max: 40, Step: 1},
					"step":   {Min: 0, Max: 50, Step: 1},
				},
			},
			model.KindInflation: {
				Defaults: input.Fields{"cost": "100000", "rate": "6", "years": "10"},
				Bounds: map[string]input.Bound{
					"cost":  {Min: 1000, Max: 10000000, Step: 1000},
					"rate":  {Min: 0, Max: 20, Step: 0.5},
					"years": {Min: 1, Max: 50, Step: 1},
				},
			},
			model.KindSWP: {
				Defaults: input.Fields{"investment": "1000000", "withdrawal": "10000", "rate": "8", "years": "10"},
				Bounds: map[string]input.Bound{
					"investment": {Min: 10000, Max: 50000000, Step: 10000},
					"withdrawal": {Min: 500, Max: 500000, Step: 500},
					"rate":       {Min: 0, Max: 20, Step: 0.5},
					"years":      {Min: 1, Max: 40, Step: 1},
				},
			},
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at path
// (if path is non-empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		fileCfg, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c = Merge(c, fileCfg)
	}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads a YAML file as-is: no defaults, no env, no validation.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Chart.BaseYear < 0 {
		return errors.New("chart.base_year must be >= 0")
	}
	if c.Contact.Timeout < 0 {
		return errors.New("contact.timeout must be >= 0")
	}
	if c.Sessions.TTL <= 0 || c.Sessions.SweepInterval <= 0 {
		return errors.New("sessions.ttl and sessions.sweep_interval must be > 0")
	}
	for _, kind := range model.Kinds() {
		calc, ok := c.Calculators[kind]
		if !ok {
			return fmt.Errorf("calculators.%s is missing", kind)
		}
		for name, b := range calc.Bounds {
			if b.Max < b.Min {
				return fmt.Errorf("calculators.%s.bounds.%s: max < min", kind, name)
			}
		}
		// Validate defaults by building the request they pre-fill.
		req, err := input.Build(kind, calc.Defaults)
		if err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("calculators.%s.defaults invalid: %w", kind, err)
		}
	}
	return nil
}

// BaseYear resolves the chart base year against now.
func (c *Config) BaseYear(now time.Time) int {
	if c.Chart.BaseYear > 0 {
		return c.Chart.BaseYear
	}
	return now.Year()
}

// MaxYears is the upper years bound of a calculator, or 0 when unbounded.
func (c *Config) MaxYears(kind model.Kind) int {
	b, ok := c.Calculators[kind].Bounds[input.FieldYears]
	if !ok {
		return 0
	}
	return int(b.Max)
}

// CheckYears rejects a horizon above the calculator's years bound.
func (c *Config) CheckYears(kind model.Kind, years int) error {
	if limit := c.MaxYears(kind); limit > 0 && years > limit {
		return fmt.Errorf("years must be <= %d", limit)
	}
	return nil
}

// Merge overlays non-zero fields from override onto base.
// Calculator entries merge per field: a file can change one default or one bound.
func Merge(base, override *Config) *Config {
	out := *base
	if override == nil {
		return &out
	}
	if override.Server.Port != "" {
		out.Server.Port = override.Server.Port
	}
	if override.Server.Env != "" {
		out.Server.Env = override.Server.Env
	}
	if override.Server.StaticDir != "" {
		out.Server.StaticDir = override.Server.StaticDir
	}
	if len(override.Server.AllowedOrigins) > 0 {
		out.Server.AllowedOrigins = override.Server.AllowedOrigins
	}
	if override.Chart.BaseYear != 0 {
		out.Chart.BaseYear = override.Chart.BaseYear
	}
	if override.Contact.Endpoint != "" {
		out.Contact.Endpoint = override.Contact.Endpoint
	}
	if override.Contact.Timeout != 0 {
		out.Contact.Timeout = override.Contact.Timeout
	}
	if override.Sessions.TTL != 0 {
		out.Sessions.TTL = override.Sessions.TTL
	}
	if override.Sessions.SweepInterval != 0 {
		out.Sessions.SweepInterval = override.Sessions.SweepInterval
	}

	out.Calculators = make(map[model.Kind]CalculatorConfig, len(base.Calculators))
	for k, v := range base.Calculators {
		out.Calculators[k] = v
	}
	for k, ov := range override.Calculators {
		out.Calculators[k] = mergeCalculator(out.Calculators[k], ov)
	}
	return &out
}

func mergeCalculator(base, override CalculatorConfig) CalculatorConfig {
	out := CalculatorConfig{
		Defaults: input.Fields{},
		Bounds:   map[string]input.Bound{},
	}
	for k, v := range base.Defaults {
		out.Defaults[k] = v
	}
	for k, v := range override.Defaults {
		out.Defaults[k] = v
	}
	for k, v := range base.Bounds {
		out.Bounds[k] = v
	}
	for k, v := range override.Bounds {
		out.Bounds[k] = v
	}
	return out
}
