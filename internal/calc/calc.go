// Package calc computes the "RMS" of a sequence of numbers by composing the
// primitives in package numeric.
//
// The value historically reported under that name is the root of the SUM of
// squares, not of their mean: RMS([1..9]) is sqrt(285), not sqrt(285/9).
// RMS keeps that behaviour. A Calculator configured with RootMeanSquare
// gives the statistical definition for callers that ask for it.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"rmscalc/internal/numeric"
)

// ErrUnknownFormula is returned by ParseFormula.
var ErrUnknownFormula = errors.New("unknown formula")

// Formula selects how the squares are combined before the root is taken.
type Formula string

const (
	RootSumSquare  Formula = "rss" // sqrt(sum(x^2)), the default
	RootMeanSquare Formula = "rms" // sqrt(sum(x^2) / n)
)

// ParseFormula maps a config or flag value to a Formula.
// The empty string selects RootSumSquare.
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rss", "root_sum_square":
		return RootSumSquare, nil
	case "rms", "root_mean_square":
		return RootMeanSquare, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormula, s)
	}
}

// Result is a computed value together with the intermediates that produced it.
type Result struct {
	Value      float64   `json:"value"`
	Count      int       `json:"count"`
	Squares    []float64 `json:"squares"`
	SumSquares float64   `json:"sum_squares"`
	Formula    Formula   `json:"formula"`
}

// RMS squares each number, sums the squares and returns the square root of
// the sum. An empty sequence yields 0. The input is not modified.
func RMS(numbers []float64) float64 {
	return numeric.Sqrt(sum(squares(numbers)))
}

func squares(numbers []float64) []float64 {
	return numeric.Map(numbers, func(x float64) float64 {
		return x * x
	})
}

func sum(xs []float64) float64 {
	return numeric.Reduce(xs, func(acc, x float64) float64 {
		return acc + x
	}, 0)
}

// Calculator is a configured RMS computation. The zero value uses
// RootSumSquare and so agrees with RMS.
type Calculator struct {
	Formula Formula
}

// Compute evaluates numbers under the calculator's formula. Unrecognised
// formulas fall back to RootSumSquare; use ParseFormula to reject them early.
func (c Calculator) Compute(numbers []float64) Result {
	sq := squares(numbers)
	total := sum(sq)

	r := Result{
		Count:      len(numbers),
		Squares:    sq,
		SumSquares: total,
		Formula:    RootSumSquare,
	}

	if c.Formula == RootMeanSquare {
		r.Formula = RootMeanSquare
		if len(numbers) > 0 {
			r.Value = numeric.Sqrt(total / float64(len(numbers)))
		}
		return r
	}

	r.Value = numeric.Sqrt(total)
	return r
}
