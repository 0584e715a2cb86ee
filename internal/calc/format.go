package calc

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders v the way the result has always been shown to users:
// the shortest decimal that round-trips, plain notation between 1e-6 and
// 1e21, exponent notation outside it.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Go writes at least two exponent digits ("1e-07"); drop the padding.
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + exp[:1] + digits
}
