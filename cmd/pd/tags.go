package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tagsCmd)
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags in use",
	RunE:  runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	lib := openLibrary(context.Background())
	defer lib.Close()

	tags, err := lib.papers.Tags()
	if err != nil {
		exitWithError(ExitError, "listing tags: %v", err)
	}
	if tags == nil {
		tags = []string{}
	}

	if humanOutput {
		for _, tag := range tags {
			outputHuman("%s\n", tag)
		}
		return nil
	}
	return outputJSON(tags)
}
