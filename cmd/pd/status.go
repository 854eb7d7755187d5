package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

// StatusReport is the response for the status command.
type StatusReport struct {
	DataDir        string `json:"data_dir"`
	Papers         int    `json:"papers"`
	Embeddings     int    `json:"embeddings"`
	SemanticSearch bool   `json:"semantic_search"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show library and semantic search status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lib := openLibrary(ctx)
	defer lib.Close()

	papers, err := lib.papers.Count()
	if err != nil {
		exitWithError(ExitError, "counting papers: %v", err)
	}

	// The embedding store may not exist yet on a fresh library; Count
	// creates it, so a zero here is a real zero.
	embeddings, err := lib.semantic.Store().Count()
	if err != nil {
		exitWithError(ExitError, "counting embeddings: %v", err)
	}

	report := StatusReport{
		DataDir:        lib.cfg.DataDir,
		Papers:         papers,
		Embeddings:     embeddings,
		SemanticSearch: lib.semantic.Available(),
		EmbeddingModel: lib.semantic.ModelName(),
	}

	if humanOutput {
		outputHuman("Data directory:  %s\n", report.DataDir)
		outputHuman("Papers:          %d\n", report.Papers)
		outputHuman("Embeddings:      %d\n", report.Embeddings)
		if report.SemanticSearch {
			outputHuman("Semantic search: available (%s)\n", report.EmbeddingModel)
		} else {
			outputHuman("Semantic search: unavailable\n")
		}
		return nil
	}
	return outputJSON(report)
}
