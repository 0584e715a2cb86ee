package config

import (
	"fmt"

	"rmscalc/internal/logging"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, console
	File       string          `yaml:"file"`       // empty = stderr
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// Options converts the config into logging.Options.
func (c *LoggingConfig) Options() logging.Options {
	opts := logging.Options{
		Level:      c.Level,
		Format:     c.Format,
		Categories: c.Categories,
	}
	if c.File != "" {
		opts.OutputPaths = []string{c.File}
	}
	return opts
}

func (c *LoggingConfig) validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Level)
	}
	switch c.Format {
	case "", "json", "console", "text":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Format)
	}
	return nil
}
