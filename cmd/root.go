package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gopyramid/internal/config"
	"github.com/alexiusacademia/gopyramid/internal/version"
	"github.com/alexiusacademia/gopyramid/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	// appConfig is loaded before every command runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gopyramid",
	Short: "Great Pyramid Ratio Explorer",
	Long: `gopyramid - Go Great Pyramid Ratio Explorer

A CLI tool that models a square pyramid from an integer base length
and height, derives its lengths, angles, areas and volume, and searches
ratios of those dimensions for approximations of π, φ and e.

This tool helps you:
  - Measure every derived dimension of a pyramid
  - Find the closest ratio for each target constant
  - Sweep many pyramids and rank them against the Great Pyramid
  - Reduce height/base ratios to lowest terms

The reference pyramid is Khufu at 440 x 280 royal cubits.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gopyramid v%-45s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Great Pyramid Ratio Explorer                         ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Lengths, angles, areas and volume of a square pyramid")
		fmt.Fprintln(out, "    • Closest dimension ratio to π, φ and e")
		fmt.Fprintln(out, "    • Parallel sweep over base length and height")
		fmt.Fprintln(out, "    • ASCII charts and image export of sweep results")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gopyramid --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Global().Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: gopyramid.yaml in ., ./configs or $HOME/.gopyramid)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

// setup loads the configuration and installs the global logger. Flags
// override configured values.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Level == "debug",
		Output:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger.SetGlobal(log)

	appConfig = cfg
	log.Debug("Configuration loaded", "config", configFile, "log_level", cfg.Log.Level)
	return nil
}
