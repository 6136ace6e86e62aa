// Package cmd provides the CLI commands for jewel-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jewel-pricing/internal/config"
	"jewel-pricing/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jewel-pricing",
	Short: "Recompute catalog variant prices from a commodity rate",
	Long: `jewel-pricing recomputes sale prices for a catalog of product
variants whenever the input precious-metal rate changes.

Each variant's price combines a purity-scaled material cost, a making
charge, the product's embedded gem cost, and an optional discount on
the gem portion.

Examples:
  jewel-pricing reprice --catalog snapshot.json --pricing pricing.hcl
  jewel-pricing reprice --catalog snapshot.json --pricing pricing.hcl --trace
  jewel-pricing serve --addr :8080`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(repriceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("jewel-pricing version 0.1.0")
	},
}
