package main

import (
	"context"

	"github.com/spf13/cobra"

	"paperdesk/internal/api"
)

var serveListen string

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over HTTP",
	Long: `Start the REST API server. Endpoints cover listing, fetching, and
deleting papers, combined keyword and semantic search, and tags.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lib := openLibrary(ctx)
	defer lib.Close()

	addr := serveListen
	if addr == "" {
		addr = lib.cfg.API.Listen
	}

	if !lib.semantic.Available() {
		warn("no embedding backend available, search is keyword-only")
	}

	server := api.NewServer(lib.papers, lib.searcher, lib.semantic, lib.cfg.OutputDir())
	if humanOutput {
		outputHuman("Listening on %s\n", addr)
	}
	if err := server.Run(addr); err != nil {
		exitWithError(ExitError, "server: %v", err)
	}
	return nil
}
