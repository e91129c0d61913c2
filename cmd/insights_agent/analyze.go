package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/driver-insights/internal/config"
	"github.com/jonathan/driver-insights/internal/export"
	"github.com/jonathan/driver-insights/internal/pipeline"
	"github.com/jonathan/driver-insights/internal/sentiment"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Run the feedback analysis pipeline end-to-end",
	Long: `Loads a tabular feedback dataset, scores each record across the five service aspects, aggregates by driver, and writes one performance summary per driver.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeInput      string
	analyzeStrategy   string
	analyzeAPIKey     string
	analyzeOutput     string
	analyzeVerbose    bool
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to feedback dataset (.csv, .xlsx or .xlsm)")
	analyzeCommand.Flags().StringVar(&analyzeStrategy, "strategy", "", "Scoring strategy: generative or lexical (default lexical)")
	analyzeCommand.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Optional export path for driver summaries (.csv or .xlsx)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print per-record analyses and per-driver summaries")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var; generative strategy only)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("input") {
		cfg.Input = analyzeInput
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = analyzeStrategy
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = analyzeOutput
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Strategy: sentiment.StrategyLexical,
	})

	// Step 4: Validate
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input == "" {
		return fmt.Errorf("--input is required (via flag or config)")
	}

	// Step 5: API key handling (generative strategy only)
	if cfg.Strategy == sentiment.StrategyGenerative {
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required for the generative strategy")
		}
	}

	logger := newLogger(cfg.Verbose)

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		InputPath:  cfg.Input,
		Strategy:   cfg.Strategy,
		APIKey:     cfg.APIKey,
		OutputPath: cfg.Output,
		Verbose:    cfg.Verbose,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := export.WriteSummaries(cfg.Output, result.Summaries); err != nil {
			return fmt.Errorf("exporting summaries: %w", err)
		}
		fmt.Printf("Exported %d driver summaries to %s\n", len(result.Summaries), cfg.Output)
	}

	fmt.Printf("Done! Analyzed %d records across %d drivers.\n", len(result.Scored), len(result.Summaries))
	return nil
}

// newLogger returns a zerolog logger: a human-friendly console writer when
// verbose, JSON lines otherwise.
func newLogger(verbose bool) zerolog.Logger {
	if verbose {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
