package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"paperdesk/internal/paper"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a paper from the library",
	Long: `Remove a paper and its tags. The paper's embedding record is left in
place; search drops it as an orphan when hydrating results.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid paper ID %q", args[0])
	}

	lib := openLibrary(context.Background())
	defer lib.Close()

	if err := lib.papers.Delete(id); err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "paper %d not found", id)
		}
		exitWithError(ExitError, "deleting paper: %v", err)
	}

	if humanOutput {
		outputHuman("Deleted paper %d\n", id)
		return nil
	}
	return outputJSON(StatusResponse{Status: "deleted", ID: id})
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id,omitempty"`
}
