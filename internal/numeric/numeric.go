// Package numeric provides the small sequence primitives the calculator is
// built from. Every function is pure: inputs are never mutated and results
// depend only on the arguments.
package numeric

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned by SqrtChecked for negative input.
var ErrDomain = errors.New("numeric: square root of negative number")

// Map returns a new slice where element i is fn(items[i]).
// An empty input yields an empty, non-nil slice.
func Map[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// Reduce folds items from left to right starting at seed.
// For an empty slice the seed is returned unchanged.
func Reduce[T, A any](items []T, fn func(A, T) A, seed A) A {
	acc := seed
	for _, item := range items {
		acc = fn(acc, item)
	}
	return acc
}

// Sqrt returns the square root of x. Negative input yields NaN.
func Sqrt(x float64) float64 {
	return math.Sqrt(x)
}

// SqrtChecked is Sqrt for callers that want negative input to fail.
func SqrtChecked(x float64) (float64, error) {
	if x < 0 {
		return math.NaN(), fmt.Errorf("sqrt(%g): %w", x, ErrDomain)
	}
	return math.Sqrt(x), nil
}
