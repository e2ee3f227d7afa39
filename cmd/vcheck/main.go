package main

import (
	"fmt"
	"os"
	"vcheck/internal/di"
	"vcheck/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:          "vcheck",
	Short:        "Version check and checkin recording server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(flags.ConfigPath); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		if _, err := di.InitApp(&flags); err != nil {
			return fmt.Errorf("vcheck: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stderr")
}
