// Package config loads the YAML configuration of the mapper-planner command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mapper-planner/internal/conversion"
	"mapper-planner/internal/logging"
	"mapper-planner/internal/match"
	"mapper-planner/internal/plan"
)

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// PlanningConfig defines the planning parameters.
type PlanningConfig struct {
	// UnmappedTargetPolicy is one of ignore, warn or error.
	UnmappedTargetPolicy string `yaml:"unmapped_target_policy,omitempty"`
	Parallelism          int    `yaml:"parallelism,omitempty"`
	Strict               bool   `yaml:"strict,omitempty"`
	// MaxSuggestions limits the "did you mean" suggestions per diagnostic; 0
	// disables them.
	MaxSuggestions *int `yaml:"max_suggestions,omitempty"`
	// Conversions names the enabled built-in conversion categories, see
	// conversion.ParseCategories. Empty selects the default categories.
	Conversions []string `yaml:"conversions,omitempty"`
}

// Config is the top-level configuration struct.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Planning PlanningConfig `yaml:"planning"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads the configuration file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses and validates YAML configuration data. Empty data yields the
// defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Planning.UnmappedTargetPolicy == "" {
		cfg.Planning.UnmappedTargetPolicy = plan.UnmappedTargetWarn.String()
	}

	if cfg.Planning.Parallelism == 0 {
		cfg.Planning.Parallelism = 1
	}

	if cfg.Planning.MaxSuggestions == nil {
		n := match.DefaultSuggestions
		cfg.Planning.MaxSuggestions = &n
	}

	if len(cfg.Planning.Conversions) == 0 {
		cfg.Planning.Conversions = []string{"default"}
	}
}

// Validate reports every invalid setting, joined into a single error.
func (c *Config) Validate() error {
	var errs []error

	if _, err := plan.ParseUnmappedTargetPolicy(c.Planning.UnmappedTargetPolicy); err != nil {
		errs = append(errs, fmt.Errorf("planning.unmapped_target_policy: %w", err))
	}

	if c.Planning.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("planning.parallelism: must be at least 1, got %d", c.Planning.Parallelism))
	}

	if n := c.Planning.MaxSuggestions; n != nil && *n < 0 {
		errs = append(errs, fmt.Errorf("planning.max_suggestions: must not be negative, got %d", *n))
	}

	if _, err := conversion.ParseCategories(c.Planning.Conversions); err != nil {
		errs = append(errs, fmt.Errorf("planning.conversions: %w", err))
	}

	return errors.Join(errs...)
}

// PlanConfig converts the planning section. The configuration must be valid.
func (c *Config) PlanConfig() plan.Config {
	policy, _ := plan.ParseUnmappedTargetPolicy(c.Planning.UnmappedTargetPolicy)

	res := plan.Config{
		UnmappedTargetPolicy: policy,
		Parallelism:          c.Planning.Parallelism,
		StrictMode:           c.Planning.Strict,
		MaxSuggestions:       match.DefaultSuggestions,
	}

	if c.Planning.MaxSuggestions != nil {
		res.MaxSuggestions = *c.Planning.MaxSuggestions
	}

	return res
}

// Categories returns the enabled conversion categories. The configuration must be valid.
func (c *Config) Categories() conversion.CategoryEnum {
	categories, _ := conversion.ParseCategories(c.Planning.Conversions)

	return categories
}

// Registry builds the conversion registry for the enabled categories.
func (c *Config) Registry() (*conversion.Registry, error) {
	return conversion.NewRegistry(c.Categories())
}

// LoggingOptions converts the logging section.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}
