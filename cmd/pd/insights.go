package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"paperdesk/internal/paper"
)

func init() {
	rootCmd.AddCommand(insightsCmd)
}

// InsightsResponse is the response for the insights command.
type InsightsResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Insights string `json:"insights"`
}

var insightsCmd = &cobra.Command{
	Use:   "insights <id>",
	Short: "Extract key insights from a paper with the LLM",
	Long: `Ask the LLM for a paper's novel contributions, surprising findings,
and implications. Requires OPENAI_API_KEY and the paper's extracted
text.`,
	Args: cobra.ExactArgs(1),
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid paper ID %q", args[0])
	}

	lib := openLibrary(ctx)
	defer lib.Close()

	p, err := lib.papers.Get(id)
	if err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "paper %d not found", id)
		}
		exitWithError(ExitError, "loading paper: %v", err)
	}
	if p.Content == "" {
		exitWithError(ExitDataError, "paper %d has no extracted text", id)
	}

	client := newSummarizer(lib.cfg)
	if client == nil {
		exitWithError(ExitConfigError, "OPENAI_API_KEY not set")
	}

	insights, err := client.KeyInsights(ctx, p.Content)
	if err != nil {
		exitWithError(ExitError, "extracting insights: %v", err)
	}

	if humanOutput {
		outputHuman("Paper %d: %s\n\n%s\n", p.ID, p.Title, insights)
		return nil
	}
	return outputJSON(InsightsResponse{ID: p.ID, Title: p.Title, Insights: insights})
}
