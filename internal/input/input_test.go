package input

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	want := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}

	// Callers may modify the returned slice.
	d := Default()
	d[0] = 100
	assert.Equal(t, 1.0, Default()[0])
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []float64
		wantErr string
	}{
		{name: "none", args: nil, want: []float64{}},
		{name: "separate", args: []string{"1", "2.5", "-3"}, want: []float64{1, 2.5, -3}},
		{name: "comma joined", args: []string{"1,2", "3"}, want: []float64{1, 2, 3}},
		{name: "exponent", args: []string{"1e3"}, want: []float64{1000}},
		{name: "word", args: []string{"1", "two"}, wantErr: `"two" at position 2`},
		{name: "nan", args: []string{"NaN"}, wantErr: `"NaN"`},
		{name: "inf", args: []string{"1", "2,Inf"}, wantErr: `"Inf" at position 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	src := `# measurements
1 2 3
4,5, 6   # trailing comment

7	8 9
`
	got, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader("# nothing here\n"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParse_ReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2\n3 x\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		want    []float64
		wantErr bool
	}{
		{name: "yaml list", path: write("list.yaml", "- 3\n- 4\n"), want: []float64{3, 4}},
		{name: "yaml mapping", path: write("doc.yml", "numbers: [1, 2, 2]\n"), want: []float64{1, 2, 2}},
		{name: "yaml nan", path: write("nan.yaml", "[1, .nan]\n"), wantErr: true},
		{name: "yaml strings", path: write("bad.yaml", "numbers: [a, b]\n"), wantErr: true},
		{name: "json list", path: write("list.json", "[0.5, 1.5]"), want: []float64{0.5, 1.5}},
		{name: "json mapping", path: write("doc.json", `{"numbers": [6, 8]}`), want: []float64{6, 8}},
		{name: "json garbage", path: write("bad.json", `{"numbers": "six"}`), wantErr: true},
		{name: "text", path: write("nums.txt", "1 2 3\n"), want: []float64{1, 2, 3}},
		{name: "empty yaml", path: write("empty.yaml", ""), want: []float64{}},
		{name: "missing", path: filepath.Join(dir, "absent.txt"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]float64{1, -2.5, 0}))

	err := Validate([]float64{1, math.Inf(-1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "element 2")
}
