// Package main is the hhanalyst CLI: one example hh.ru vacancy fetch, or an MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/hh-analyst/internal/config"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:           "hhanalyst",
	Short:         "Fetch hh.ru vacancies, print a summary and save the raw listing",
	Long:          "hhanalyst runs one example vacancy search against the hh.ru API (configured via environment, .env or HH_CONFIG_FILE), prints the first results and saves the full response as JSON.",
	Args:          cobra.NoArgs,
	RunE:          runFetch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger shared by every command
func setup() (config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat), nil
}
