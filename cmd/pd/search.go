package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum number of results")
}

// SearchResult is one combined search hit.
type SearchResult struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags,omitempty"`
	Source string   `json:"source"`
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search papers by keyword and semantic similarity",
	Long: `Search the library. Exact substring matches over titles, authors,
summaries, text, and tags come first; semantically similar papers fill
the remaining slots when an embedding backend is available.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.TrimSpace(args[0])
	if query == "" {
		exitWithError(ExitError, "search query cannot be empty")
	}

	lib := openLibrary(ctx)
	defer lib.Close()

	results, err := lib.searcher.Search(ctx, query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	resp := SearchResponse{Query: query, Results: []SearchResult{}, Total: len(results)}
	for _, r := range results {
		resp.Results = append(resp.Results, SearchResult{
			ID:     r.Paper.ID,
			Title:  r.Paper.Title,
			Tags:   r.Paper.Tags,
			Source: r.Source,
		})
	}

	if humanOutput {
		for i, r := range resp.Results {
			outputHuman("%d. [%s] %s\n", i+1, r.Source, truncateString(r.Title, SearchTitleMaxLen))
		}
		if resp.Total == 0 {
			outputHuman("No results for %q\n", query)
		}
		return nil
	}
	return outputJSON(resp)
}
