package display

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"rmscalc/internal/calc"
)

// Markdown renders a short report of the computation through glamour.
type Markdown struct {
	w        io.Writer
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a markdown sink. style is a glamour standard style
// name ("dark", "light", "notty") or "auto" to detect the terminal.
func NewMarkdown(w io.Writer, style string) (*Markdown, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Markdown{w: w, renderer: renderer}, nil
}

func (m *Markdown) Display(_ context.Context, rec Record) error {
	out, err := m.renderer.Render(Report(rec))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(m.w, out)
	return err
}

// Report returns the markdown source rendered by the markdown sink.
func Report(rec Record) string {
	var b strings.Builder
	b.WriteString("# RMS result\n\n")
	if rec.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", rec.Source)
	}
	fmt.Fprintf(&b, "- numbers: %s\n", joinValues(rec.Input))
	fmt.Fprintf(&b, "- squares: %s\n", joinValues(rec.Result.Squares))
	fmt.Fprintf(&b, "- sum of squares: %s\n", calc.FormatValue(rec.Result.SumSquares))
	fmt.Fprintf(&b, "- formula: %s\n", rec.Result.Formula)
	fmt.Fprintf(&b, "\n**Result: %s**\n", rec)
	return b.String()
}

func joinValues(xs []float64) string {
	if len(xs) == 0 {
		return "(none)"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = calc.FormatValue(x)
	}
	return strings.Join(parts, ", ")
}
