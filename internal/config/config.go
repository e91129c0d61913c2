// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Input is the path to the tabular feedback dataset (.csv, .xlsx, .xlsm).
	Input string `json:"input,omitempty"`
	// Strategy selects the scoring strategy: "generative" or "lexical".
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=generative lexical"`
	// APIKey is the Gemini API key (generative strategy only).
	APIKey string `json:"api_key,omitempty"`
	// Output is an optional export path for the summary table (.csv, .xlsx).
	Output string `json:"output,omitempty"`
	// Verbose prints per-record analyses and per-driver summaries.
	Verbose bool `json:"verbose,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required-field presence is handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
