// Package main provides the entry point for the driver feedback insights CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insights_agent",
	Short: "Driver feedback sentiment insights",
	Long:  "insights_agent derives per-aspect sentiment from tabular customer feedback, aggregates it per driver, and produces a short performance summary for each driver.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
