package display

import (
	"context"
	"fmt"
	"io"
)

// Text writes "The RMS value is <v>" lines.
type Text struct {
	w io.Writer
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) Display(_ context.Context, rec Record) error {
	_, err := fmt.Fprintf(t.w, "The RMS value is %s\n", rec)
	return err
}

// Value writes only the value, one per line, for piping into other tools.
type Value struct {
	w io.Writer
}

func NewValue(w io.Writer) *Value {
	return &Value{w: w}
}

func (v *Value) Display(_ context.Context, rec Record) error {
	_, err := fmt.Fprintln(v.w, rec.String())
	return err
}
