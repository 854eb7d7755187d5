package main

import (
	"context"

	"github.com/spf13/cobra"

	"paperdesk/internal/paper"
)

func init() {
	rootCmd.AddCommand(reindexCmd)
}

// ReindexResponse is the response for the reindex command.
type ReindexResponse struct {
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild semantic embeddings for every paper",
	Long: `Re-encode every paper's title and content and replace its embedding
record. Useful after switching embedding models. Records orphaned by
deleted papers are left alone; search already ignores them.`,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lib := openLibrary(ctx)
	defer lib.Close()

	if !lib.semantic.Available() {
		exitWithError(ExitConfigError, "no embedding backend available")
	}

	total, err := lib.papers.Count()
	if err != nil {
		exitWithError(ExitError, "counting papers: %v", err)
	}

	papers, err := lib.papers.List(paper.ListOptions{Limit: total})
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	resp := ReindexResponse{Total: len(papers)}
	for _, p := range papers {
		// One failed paper must not stop the rest of the batch.
		if lib.semantic.Index(ctx, p.ID, p.Title, indexText(&p)) {
			resp.Indexed++
		} else {
			resp.Failed++
			warn("indexing paper %d failed", p.ID)
		}
	}

	if humanOutput {
		outputHuman("Indexed %d/%d papers (%d failed)\n", resp.Indexed, resp.Total, resp.Failed)
		return nil
	}
	return outputJSON(resp)
}
