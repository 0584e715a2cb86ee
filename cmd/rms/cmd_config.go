package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rmscalc/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the rms config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to --config",
	Args:  cobra.NoArgs,
	// The file being written may not load yet.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}
