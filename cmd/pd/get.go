package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"paperdesk/internal/paper"
)

var getFullContent bool

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getFullContent, "full", false, "Include the full extracted text")
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a paper's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid paper ID %q", args[0])
	}

	lib := openLibrary(context.Background())
	defer lib.Close()

	p, err := lib.papers.Get(id)
	if err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "paper %d not found", id)
		}
		exitWithError(ExitError, "loading paper: %v", err)
	}

	if !getFullContent {
		p.Content = ""
		p.Sections = nil
	}

	if humanOutput {
		outputHuman("Paper %d: %s\n", p.ID, p.Title)
		if p.Authors != "" {
			outputHuman("Authors: %s\n", p.Authors)
		}
		if len(p.Tags) > 0 {
			outputHuman("Tags: %s\n", strings.Join(p.Tags, ", "))
		}
		if p.Summary != "" {
			outputHuman("\n%s\n", p.Summary)
		}
		return nil
	}
	return outputJSON(p)
}
