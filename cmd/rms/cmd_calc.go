package main

import (
	"github.com/spf13/cobra"

	"rmscalc/internal/input"
)

var inputPath string

// calcCmd is the explicit form of the root command.
var calcCmd = &cobra.Command{
	Use:   "calc [numbers...]",
	Short: "Compute the RMS of the given numbers (default 1..9)",
	Args:  cobra.ArbitraryArgs,
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read numbers from a file (.yaml, .json or plain text)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	source, numbers, err := resolveInput(args)
	if err != nil {
		return err
	}

	r, closeFn, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	_, err = r.Run(cmd.Context(), source, numbers)
	return err
}

// resolveInput picks the sequence to compute: --input, then positional
// arguments, then calc.input from the config, then the built-in default.
func resolveInput(args []string) (string, []float64, error) {
	switch {
	case inputPath != "":
		numbers, err := input.LoadFile(inputPath)
		return inputPath, numbers, err
	case len(args) > 0:
		numbers, err := input.ParseArgs(args)
		return "args", numbers, err
	case len(cfg.Calc.Input) > 0:
		return "config", cfg.Calc.Input, nil
	default:
		return "default", input.Default(), nil
	}
}
