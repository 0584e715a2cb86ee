// Package display holds the sinks a computed result is presented through.
// The calculator never calls a sink; the runner forwards each Record to the
// sink chosen on the command line or in the config file.
package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"rmscalc/internal/calc"
)

// ErrUnknownSink is returned by Registry.New for an unregistered name.
var ErrUnknownSink = errors.New("unknown sink")

// Record is what a sink receives: one computed result and where it came from.
type Record struct {
	RunID  string      `json:"run_id"`
	Source string      `json:"source"`
	Input  []float64   `json:"input"`
	Result calc.Result `json:"result"`
	At     time.Time   `json:"at"`
}

// String is the value's display form, e.g. "16.881943016134134".
func (r Record) String() string {
	return calc.FormatValue(r.Result.Value)
}

// Sink presents a record. Implementations must not retain rec.Input.
type Sink interface {
	Display(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, rec Record) error

// Display calls f.
func (f SinkFunc) Display(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

// Multi writes each record to every sink in order, stopping at the first error.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, rec Record) error {
		for _, s := range sinks {
			if err := s.Display(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Options carries what sink factories may need.
type Options struct {
	Out    io.Writer
	Logger *zap.Logger
}

// Factory builds a sink from Options.
type Factory func(opts Options) (Sink, error)

// Registry maps sink names to factories. Later registrations win.
type Registry map[string]Factory

// DefaultRegistry returns a registry with every built-in sink.
func DefaultRegistry() Registry {
	return Registry{
		"text":   func(o Options) (Sink, error) { return NewText(o.Out), nil },
		"value":  func(o Options) (Sink, error) { return NewValue(o.Out), nil },
		"styled": func(o Options) (Sink, error) { return NewStyled(o.Out), nil },
		"json":   func(o Options) (Sink, error) { return NewJSON(o.Out), nil },
		"log":    func(o Options) (Sink, error) { return NewLog(o.Logger), nil },
		"markdown": func(o Options) (Sink, error) {
			m, err := NewMarkdown(o.Out, "auto")
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

// Register adds or replaces a factory.
func (r Registry) Register(name string, f Factory) {
	r[name] = f
}

// Names returns the registered names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named sink.
func (r Registry) New(name string, opts Options) (Sink, error) {
	f, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownSink, name, r.Names())
	}
	return f(opts)
}

// Build creates one sink per name and combines them with Multi.
func (r Registry) Build(names []string, opts Options) (Sink, error) {
	if len(names) == 0 {
		return nil, errors.New("no sinks configured")
	}
	sinks := make([]Sink, 0, len(names))
	for _, name := range names {
		s, err := r.New(name, opts)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return Multi(sinks...), nil
}
