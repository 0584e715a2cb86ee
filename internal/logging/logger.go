// Package logging provides config-driven categorized logging for rms.
// All categories share one zap root logger; each category is a named child.
// Before Initialize (or SetLogger) every category logs to a no-op logger, so
// library packages can log unconditionally.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config loading
	CategoryCalc    Category = "calc"    // Calculator runs
	CategoryInput   Category = "input"   // Sequence parsing and file loading
	CategoryDisplay Category = "display" // Sink output
	CategoryHistory Category = "history" // SQLite result store
	CategoryWatch   Category = "watch"   // File watcher
	CategoryBatch   Category = "batch"   // Concurrent batch evaluation
)

// Options mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Options struct {
	Level       string          // debug, info, warn, error
	Format      string          // json, console
	Categories  map[string]bool // nil = all enabled
	OutputPaths []string        // zap sink URLs; empty = stderr
}

var (
	mu         sync.RWMutex
	root       = zap.NewNop()
	categories map[string]bool
)

// Initialize builds the root logger from opts and installs it.
// Should be called once at startup.
func Initialize(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	switch opts.Format {
	case "", "json":
	case "console", "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	SetLogger(logger, opts.Categories)
	return logger, nil
}

// SetLogger installs l as the root logger with the given category filter.
func SetLogger(l *zap.Logger, cats map[string]bool) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	root = l
	categories = cats
}

// Reset restores the no-op logger.
func Reset() {
	SetLogger(nil, nil)
}

// IsCategoryEnabled returns whether a specific category is enabled.
// Categories not named in the filter are enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	if categories == nil {
		return true
	}
	enabled, exists := categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns the logger for the given category.
// Returns a no-op logger if the category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}

// Root returns the uncategorized root logger.
func Root() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Sync flushes the root logger.
func Sync() error {
	return Root().Sync()
}
