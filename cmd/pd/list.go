package main

import (
	"context"

	"github.com/spf13/cobra"

	"paperdesk/internal/paper"
)

var (
	listLimit  int
	listOffset int
	listTag    string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 100, "Maximum number of papers")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of papers to skip")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only papers with this tag")
}

// ListEntry is one paper in list output.
type ListEntry struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Authors       string   `json:"authors,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ProcessedDate string   `json:"processed_date"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in the library",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	lib := openLibrary(context.Background())
	defer lib.Close()

	papers, err := lib.papers.List(paper.ListOptions{Limit: listLimit, Offset: listOffset, Tag: listTag})
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	entries := make([]ListEntry, 0, len(papers))
	for _, p := range papers {
		entries = append(entries, ListEntry{
			ID:            p.ID,
			Title:         p.Title,
			Authors:       p.Authors,
			Tags:          p.Tags,
			ProcessedDate: p.ProcessedDate.Format("2006-01-02"),
		})
	}

	if humanOutput {
		for _, e := range entries {
			outputHuman("%4d  %s  %s\n", e.ID, e.ProcessedDate, truncateString(e.Title, ListTitleMaxLen))
		}
		return nil
	}
	return outputJSON(entries)
}
