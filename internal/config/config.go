package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"rmscalc/internal/calc"
	"rmscalc/internal/input"
)

// DefaultPath is where the CLI looks for a config file when --config is unset.
var DefaultPath = filepath.Join(".rms", "config.yaml")

// Config holds all rms configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Calc    CalcConfig    `yaml:"calc"`
	Display DisplayConfig `yaml:"display"`
	History HistoryConfig `yaml:"history"`
	Watch   WatchConfig   `yaml:"watch"`
	Batch   BatchConfig   `yaml:"batch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CalcConfig configures the calculator.
type CalcConfig struct {
	Formula string    `yaml:"formula"` // rss (default) or rms
	Input   []float64 `yaml:"input"`   // Sequence used when none is given; empty = 1..9
}

// DisplayConfig selects the sinks a result is written to.
type DisplayConfig struct {
	Sinks []string `yaml:"sinks"` // text, value, styled, markdown, json, log, history
}

// HistoryConfig configures the SQLite result store.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// WatchConfig configures `rms watch`.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// BatchConfig configures `rms batch`.
type BatchConfig struct {
	Jobs int `yaml:"jobs"` // Max files evaluated concurrently; 0 = unlimited
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "rms",
		Version: "1.0.0",

		Calc: CalcConfig{
			Formula: string(calc.RootSumSquare),
		},

		Display: DisplayConfig{
			Sinks: []string{"text"},
		},

		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: filepath.Join(".rms", "history.db"),
		},

		Watch: WatchConfig{
			Debounce: "200ms",
		},

		Batch: BatchConfig{
			Jobs: 4,
		},

		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if f := os.Getenv("RMS_FORMULA"); f != "" {
		c.Calc.Formula = f
	}
	if s := os.Getenv("RMS_SINKS"); s != "" {
		var sinks []string
		for _, name := range strings.Split(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				sinks = append(sinks, name)
			}
		}
		c.Display.Sinks = sinks
	}
	// Naming a database implies the caller wants history recorded
	if path := os.Getenv("RMS_HISTORY_DB"); path != "" {
		c.History.DatabasePath = path
		c.History.Enabled = true
	}
	if level := os.Getenv("RMS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if jobs := os.Getenv("RMS_BATCH_JOBS"); jobs != "" {
		if n, err := strconv.Atoi(jobs); err == nil {
			c.Batch.Jobs = n
		}
	}
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	var errs []error

	if _, err := calc.ParseFormula(c.Calc.Formula); err != nil {
		errs = append(errs, fmt.Errorf("calc.formula: %w", err))
	}
	if err := input.Validate(c.Calc.Input); err != nil {
		errs = append(errs, fmt.Errorf("calc.input: %w", err))
	}
	if len(c.Display.Sinks) == 0 {
		errs = append(errs, errors.New("display.sinks: at least one sink required"))
	}
	if c.History.Enabled && c.History.DatabasePath == "" {
		errs = append(errs, errors.New("history.database_path: required when history is enabled"))
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			errs = append(errs, fmt.Errorf("watch.debounce: %w", err))
		}
	}
	if c.Batch.Jobs < 0 {
		errs = append(errs, fmt.Errorf("batch.jobs: must be >= 0, got %d", c.Batch.Jobs))
	}
	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// GetFormula returns the configured formula, defaulting to RootSumSquare.
func (c *Config) GetFormula() calc.Formula {
	f, err := calc.ParseFormula(c.Calc.Formula)
	if err != nil {
		return calc.RootSumSquare
	}
	return f
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 200 * time.Millisecond
	}
	return d
}
