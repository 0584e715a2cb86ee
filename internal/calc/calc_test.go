package calc

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var oneToNine = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

func TestRMS_OneToNine(t *testing.T) {
	assert.InDelta(t, math.Sqrt(285), RMS(oneToNine), 1e-9)
	assert.InDelta(t, 16.881943016134134, RMS(oneToNine), 1e-9)
}

func TestRMS_Empty(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, RMS([]float64{}))
}

func TestRMS_SingleIsAbs(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 2.5, -7.25, 1e10, -3e-5} {
		assert.InDelta(t, math.Abs(x), RMS([]float64{x}), 1e-12*math.Max(1, math.Abs(x)), "x=%g", x)
	}
}

func TestRMS_RootSumSquare(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
	}{
		{name: "pair", in: []float64{3, 4}},
		{name: "negatives", in: []float64{-1, -2, -2}},
		{name: "fractions", in: []float64{0.1, 0.2, 0.3}},
		{name: "mixed", in: []float64{-10, 0, 10, 5.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want float64
			for _, x := range tt.in {
				want += x * x
			}
			assert.InDelta(t, math.Sqrt(want), RMS(tt.in), 1e-9)
		})
	}
}

func TestRMS_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, -4, 5}
	RMS(in)
	if diff := cmp.Diff([]float64{3, -4, 5}, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestRMS_Concurrent(t *testing.T) {
	want := RMS(oneToNine)

	var wg sync.WaitGroup
	results := make([]float64, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = RMS(oneToNine)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "call %d", i)
	}
}

func TestCalculator_Compute(t *testing.T) {
	t.Run("zero value matches RMS", func(t *testing.T) {
		r := Calculator{}.Compute(oneToNine)
		assert.Equal(t, RMS(oneToNine), r.Value)
		assert.Equal(t, RootSumSquare, r.Formula)
		assert.Equal(t, 9, r.Count)
		assert.Equal(t, 285.0, r.SumSquares)
		if diff := cmp.Diff([]float64{1, 4, 9, 16, 25, 36, 49, 64, 81}, r.Squares); diff != "" {
			t.Errorf("squares mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("root mean square", func(t *testing.T) {
		r := Calculator{Formula: RootMeanSquare}.Compute(oneToNine)
		assert.InDelta(t, math.Sqrt(285.0/9.0), r.Value, 1e-9)
		assert.Equal(t, RootMeanSquare, r.Formula)
	})

	t.Run("root mean square of empty is zero", func(t *testing.T) {
		r := Calculator{Formula: RootMeanSquare}.Compute(nil)
		assert.Equal(t, 0.0, r.Value)
		assert.Equal(t, 0, r.Count)
	})

	t.Run("unknown formula falls back", func(t *testing.T) {
		r := Calculator{Formula: "median"}.Compute([]float64{3, 4})
		assert.Equal(t, 5.0, r.Value)
		assert.Equal(t, RootSumSquare, r.Formula)
	})
}

func TestParseFormula(t *testing.T) {
	tests := []struct {
		in      string
		want    Formula
		wantErr bool
	}{
		{in: "", want: RootSumSquare},
		{in: "rss", want: RootSumSquare},
		{in: " RSS ", want: RootSumSquare},
		{in: "root_sum_square", want: RootSumSquare},
		{in: "rms", want: RootMeanSquare},
		{in: "root_mean_square", want: RootMeanSquare},
		{in: "mean", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormula(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownFormula))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
