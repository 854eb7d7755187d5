// Package main provides the pd CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// configPath overrides the default config file location
var configPath string

func main() {
	// API keys may live in a .env file next to the working directory.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pd",
	Short: "Personal research paper library with semantic search",
	Long: `pd ingests PDF research papers, summarizes and tags them with an LLM,
and searches the library by keyword and semantic similarity.

Papers are stored in SQLite under ~/.paperdesk. Semantic search needs a
local Ollama server (or an OpenAI API key); without one, indexing is
skipped and keyword search still works. All commands output JSON by
default for easy scripting; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.paperdesk/config.yaml)")
	rootCmd.Version = Version
}
