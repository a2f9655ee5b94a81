// Package main is the entry point for the mealai server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mealai",
	Short: "Resolve food descriptions, barcodes and photos into nutrition estimates",
	Long: `mealai looks up baseline nutrition in public food databases, asks a language
model to estimate the consumed portion, and merges both into one result that
can be saved to history, kept as a favorite or sent to a health automation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mealai.yaml when present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
