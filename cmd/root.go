package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gopetro/internal/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "gopetro",
	Short: "Petroleum Engineering Calculation Tool",
	Long: `gopetro - Go Petroleum Engineering Toolkit

A CLI tool for reservoir and production engineering calculations.

This tool helps petroleum engineers perform:
  - Material balance drive-index analysis of oil reservoirs
  - Solving the material balance for water influx or oil in place
  - Single-phase and two-phase pipe pressure drop
  - Radial transient and pseudo-steady well pressures

Inputs are oilfield units unless a flag says otherwise.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gopetro v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Petroleum Engineering Toolkit                        ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for reservoir and production engineering.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Material balance drive indices (DDI, SDI, WDI, EDI)")
		fmt.Println("    • Solving the tank for unknown inputs (gonum optimize)")
		fmt.Println("    • Darcy-Weisbach, Hazen-Williams and two-phase pipe flow")
		fmt.Println("    • Line source and pseudo-steady state radial flow")
		fmt.Println()
		fmt.Println("  Use 'gopetro --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}
