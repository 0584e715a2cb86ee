// Package input turns command-line arguments and files into the numeric
// sequences fed to the calculator. The calculator itself does no validation;
// everything that is not a finite real number is rejected here.
package input

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rmscalc/internal/logging"
)

// ErrInvalidArgument marks a token that is not a finite number.
var ErrInvalidArgument = errors.New("invalid argument")

// Default returns the sequence used when the caller supplies none.
func Default() []float64 {
	return []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
}

// document is the mapping form accepted by LoadFile: {numbers: [...]}.
type document struct {
	Numbers []float64 `yaml:"numbers" json:"numbers"`
}

// ParseArgs parses command-line arguments. Each argument may itself hold
// several comma separated numbers ("1,2,3").
func ParseArgs(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	pos := 0
	for _, arg := range args {
		for _, tok := range splitTokens(arg) {
			pos++
			v, err := parseToken(tok, pos)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Parse reads whitespace or comma separated numbers. A '#' starts a comment
// that runs to the end of the line.
func Parse(r io.Reader) ([]float64, error) {
	var out []float64
	scanner := bufio.NewScanner(r)
	pos := 0
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range splitTokens(text) {
			pos++
			v, err := parseToken(tok, pos)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out = append(out, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if out == nil {
		out = []float64{}
	}
	return out, nil
}

// LoadFile reads a sequence from path. The decoder is chosen by extension:
// .yaml/.yml and .json accept either a bare list or {numbers: [...]};
// anything else is read with Parse.
func LoadFile(path string) ([]float64, error) {
	log := logging.Get(logging.CategoryInput)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var numbers []float64
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		numbers, err = decodeYAML(data)
	case ".json":
		numbers, err = decodeJSON(data)
	default:
		numbers, err = Parse(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(numbers); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug("loaded sequence", zap.String("path", path), zap.Int("count", len(numbers)))
	return numbers, nil
}

func decodeYAML(data []byte) ([]float64, error) {
	var list []float64
	if err := yaml.Unmarshal(data, &list); err == nil {
		return nonNil(list), nil
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nonNil(doc.Numbers), nil
}

func decodeJSON(data []byte) ([]float64, error) {
	var list []float64
	if err := json.Unmarshal(data, &list); err == nil {
		return nonNil(list), nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nonNil(doc.Numbers), nil
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
}

func parseToken(tok string, pos int) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q at position %d is not a finite number", ErrInvalidArgument, tok, pos)
	}
	return v, nil
}

// Validate rejects NaN and infinities, which the structured decoders let
// through (YAML spells them .nan and .inf).
func Validate(numbers []float64) error {
	for i, v := range numbers {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: element %d is not a finite number", ErrInvalidArgument, i+1)
		}
	}
	return nil
}

func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}
