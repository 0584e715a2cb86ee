package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rmscalc/internal/calc"
	"rmscalc/internal/config"
	"rmscalc/internal/display"
	"rmscalc/internal/history"
	"rmscalc/internal/logging"
	"rmscalc/internal/runner"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	// Global flags
	verbose     bool
	configPath  string
	sinkNames   []string
	formulaFlag string
	historyPath string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rms [numbers...]",
	Short: "Compute the RMS of a sequence of numbers",
	Long: `rms squares each number, sums the squares and prints the square root of
the sum. With no numbers it uses 1 2 3 4 5 6 7 8 9.

Note that the default formula is the root of the SUM of squares (rss), the
value this tool has always reported as "RMS". Pass --formula rms for the
root of the MEAN of squares.

Separate negative numbers from flags with "--":
  rms -- -3 4`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runCalc,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rms %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringSliceVarP(&sinkNames, "sink", "s", nil, "Output sink (text, value, styled, markdown, json, log, history); repeatable")
	rootCmd.PersistentFlags().StringVarP(&formulaFlag, "formula", "f", "", "rss (root of sum of squares) or rms (root of mean of squares)")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", "", "Record results in this SQLite database")
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read numbers from a file (.yaml, .json or plain text)")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the config, applies flag overrides and initializes logging.
func setup() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if formulaFlag != "" {
		loaded.Calc.Formula = formulaFlag
	}
	if len(sinkNames) > 0 {
		loaded.Display.Sinks = sinkNames
	}
	if historyPath != "" {
		loaded.History.Enabled = true
		loaded.History.DatabasePath = historyPath
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := loaded.Logging.Options()
	if verbose {
		opts.Level = "debug"
	}
	if _, err := logging.Initialize(opts); err != nil {
		return err
	}

	cfg = loaded
	logging.Get(logging.CategoryBoot).Debug("configuration loaded",
		zap.String("path", configPath),
		zap.String("formula", cfg.Calc.Formula),
		zap.Strings("sinks", cfg.Display.Sinks),
		zap.Bool("history", cfg.History.Enabled),
	)
	return nil
}

// newRunner builds the runner for the configured formula and sinks. The
// returned close func releases the history store, if one was opened.
func newRunner(cmd *cobra.Command) (*runner.Runner, func() error, error) {
	closeFn := func() error { return nil }

	names := slices.Clone(cfg.Display.Sinks)
	registry := display.DefaultRegistry()

	if cfg.History.Enabled || slices.Contains(names, "history") {
		store, err := history.Open(cfg.History.DatabasePath)
		if err != nil {
			return nil, closeFn, err
		}
		closeFn = store.Close
		logging.Get(logging.CategoryHistory).Debug("recording history", zap.String("path", store.Path()))
		registry.Register("history", func(display.Options) (display.Sink, error) {
			return store.Sink(), nil
		})
		if !slices.Contains(names, "history") {
			names = append(names, "history")
		}
	}

	sink, err := registry.Build(names, display.Options{
		Out:    cmd.OutOrStdout(),
		Logger: logging.Get(logging.CategoryDisplay),
	})
	if err != nil {
		_ = closeFn()
		return nil, func() error { return nil }, err
	}

	return runner.New(calc.Calculator{Formula: cfg.GetFormula()}, sink), closeFn, nil
}
