package display

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Styled renders the value in a bordered box for interactive terminals.
type Styled struct {
	w io.Writer
}

func NewStyled(w io.Writer) *Styled {
	return &Styled{w: w}
}

func (s *Styled) Display(_ context.Context, rec Record) error {
	body := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(fmt.Sprintf("RMS of %d numbers (%s)", rec.Result.Count, rec.Result.Formula)),
		valueStyle.Render(rec.String()),
	)
	_, err := fmt.Fprintln(s.w, boxStyle.Render(body))
	return err
}
