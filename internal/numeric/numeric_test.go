package numeric

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{name: "empty", in: []float64{}, want: []float64{}},
		{name: "nil", in: nil, want: []float64{}},
		{name: "squares", in: []float64{1, 2, 3, -4}, want: []float64{1, 4, 9, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.in, func(x float64) float64 { return x * x })
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Map() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMap_PreservesOrderAndInput(t *testing.T) {
	in := []int{5, 3, 9, 1}
	snapshot := append([]int(nil), in...)

	got := Map(in, strconv.Itoa)

	require.Len(t, got, len(in))
	for i := range in {
		assert.Equal(t, strconv.Itoa(in[i]), got[i], "index %d", i)
	}
	assert.Equal(t, snapshot, in, "input must not be mutated")
}

func TestReduce(t *testing.T) {
	add := func(acc, x float64) float64 { return acc + x }

	assert.Equal(t, 0.0, Reduce([]float64{}, add, 0))
	assert.Equal(t, 285.0, Reduce([]float64{1, 4, 9, 16, 25, 36, 49, 64, 81}, add, 0))
	assert.Equal(t, 10.5, Reduce([]float64{0.5}, add, 10))
}

func TestReduce_EmptyReturnsSeed(t *testing.T) {
	called := false
	fn := func(acc string, x int) string {
		called = true
		return acc + strconv.Itoa(x)
	}

	assert.Equal(t, "seed", Reduce(nil, fn, "seed"))
	assert.False(t, called)
}

func TestReduce_LeftToRight(t *testing.T) {
	got := Reduce([]int{1, 2, 3}, func(acc string, x int) string {
		return "(" + acc + "," + strconv.Itoa(x) + ")"
	}, "s")
	assert.Equal(t, "(((s,1),2),3)", got)
}

func TestSqrt(t *testing.T) {
	assert.Equal(t, 0.0, Sqrt(0))
	assert.Equal(t, 3.0, Sqrt(9))
	assert.InDelta(t, 16.881943016134134, Sqrt(285), 1e-9)
	assert.True(t, math.IsNaN(Sqrt(-1)), "negative input propagates NaN")
}

func TestSqrtChecked(t *testing.T) {
	v, err := SqrtChecked(16)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = SqrtChecked(-2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomain))
	assert.True(t, math.IsNaN(v))
	assert.Contains(t, err.Error(), "sqrt(-2)")
}
