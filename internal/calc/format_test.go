package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: math.Sqrt(285), want: "16.881943016134134"},
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: 5, want: "5"},
		{in: -2.5, want: "-2.5"},
		{in: 1234567, want: "1234567"},
		{in: 0.000001, want: "0.000001"},
		{in: 1.5e-7, want: "1.5e-7"},
		{in: 1e21, want: "1e+21"},
		{in: -2.5e300, want: "-2.5e+300"},
		{in: math.NaN(), want: "NaN"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
