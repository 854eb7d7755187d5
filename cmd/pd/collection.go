package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"paperdesk/internal/paper"
)

var collectionDescription string

func init() {
	rootCmd.AddCommand(collectionCmd)

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionRenameCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionRemoveCmd)
	collectionCmd.AddCommand(collectionReadCmd)
	collectionCmd.AddCommand(collectionUnreadCmd)

	collectionCreateCmd.Flags().StringVarP(&collectionDescription, "description", "d", "", "Collection description")
	collectionRenameCmd.Flags().StringVarP(&collectionDescription, "description", "d", "", "Collection description")
}

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Group papers into named collections",
	Long: `Group papers into named collections and track which ones you have
read. A paper can belong to any number of collections; deleting a paper
removes it from all of them.`,
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE:  runCollectionList,
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionCreate,
}

var collectionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a collection and its papers",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionShow,
}

var collectionRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a collection",
	Long: `Rename a collection and optionally replace its description.
Membership and read flags are untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: runCollectionRename,
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection",
	Long:  `Delete a collection. The papers in it stay in the library.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionDelete,
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <id> <paper-id>",
	Short: "Add a paper to a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionAdd,
}

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <id> <paper-id>",
	Short: "Remove a paper from a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionRemove,
}

var collectionReadCmd = &cobra.Command{
	Use:   "read <id> <paper-id>",
	Short: "Mark a paper in a collection as read",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionRead,
}

var collectionUnreadCmd = &cobra.Command{
	Use:   "unread <id> <paper-id>",
	Short: "Mark a paper in a collection as unread",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionUnread,
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	lib := openLibrary(context.Background())
	defer lib.Close()

	collections, err := lib.papers.ListCollections()
	if err != nil {
		exitWithError(ExitError, "listing collections: %v", err)
	}

	if humanOutput {
		for _, c := range collections {
			read := 0
			for _, cp := range c.Papers {
				if cp.Read {
					read++
				}
			}
			outputHuman("%4d  %s  (%d papers, %d read)\n", c.ID, c.Name, len(c.Papers), read)
		}
		return nil
	}
	if collections == nil {
		collections = []paper.Collection{}
	}
	return outputJSON(collections)
}

func runCollectionCreate(cmd *cobra.Command, args []string) error {
	lib := openLibrary(context.Background())
	defer lib.Close()

	c := &paper.Collection{Name: args[0], Description: collectionDescription}
	if _, err := lib.papers.SaveCollection(c); err != nil {
		exitWithError(ExitError, "creating collection: %v", err)
	}

	if humanOutput {
		outputHuman("Created collection %d: %s\n", c.ID, c.Name)
		return nil
	}
	return outputJSON(c)
}

func runCollectionShow(cmd *cobra.Command, args []string) error {
	id := parseID(args[0], "collection")

	lib := openLibrary(context.Background())
	defer lib.Close()

	c, err := lib.papers.GetCollection(id)
	if err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "collection %d not found", id)
		}
		exitWithError(ExitError, "loading collection: %v", err)
	}

	if humanOutput {
		outputHuman("%s\n", c.Name)
		if c.Description != "" {
			outputHuman("%s\n", c.Description)
		}
		for _, cp := range c.Papers {
			mark := " "
			if cp.Read {
				mark = "x"
			}
			title := "(missing)"
			if p, err := lib.papers.Get(cp.PaperID); err == nil {
				title = p.Title
			}
			outputHuman("  [%s] %4d  %s\n", mark, cp.PaperID, truncateString(title, ListTitleMaxLen))
		}
		return nil
	}
	return outputJSON(c)
}

func runCollectionRename(cmd *cobra.Command, args []string) error {
	id := parseID(args[0], "collection")

	lib := openLibrary(context.Background())
	defer lib.Close()

	c := &paper.Collection{ID: id, Name: args[1], Description: collectionDescription}
	if _, err := lib.papers.SaveCollection(c); err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "collection %d not found", id)
		}
		exitWithError(ExitError, "renaming collection: %v", err)
	}

	if humanOutput {
		outputHuman("Renamed collection %d to %s\n", id, args[1])
		return nil
	}
	return outputJSON(StatusResponse{Status: "renamed", ID: id})
}

func runCollectionDelete(cmd *cobra.Command, args []string) error {
	id := parseID(args[0], "collection")

	lib := openLibrary(context.Background())
	defer lib.Close()

	if err := lib.papers.DeleteCollection(id); err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "collection %d not found", id)
		}
		exitWithError(ExitError, "deleting collection: %v", err)
	}

	if humanOutput {
		outputHuman("Deleted collection %d\n", id)
		return nil
	}
	return outputJSON(StatusResponse{Status: "deleted", ID: id})
}

func runCollectionAdd(cmd *cobra.Command, args []string) error {
	return collectionMembership(args, "adding paper to collection", func(lib *library, collID, paperID int64) error {
		return lib.papers.AddToCollection(collID, paperID)
	})
}

func runCollectionRemove(cmd *cobra.Command, args []string) error {
	return collectionMembership(args, "removing paper from collection", func(lib *library, collID, paperID int64) error {
		return lib.papers.RemoveFromCollection(collID, paperID)
	})
}

func runCollectionRead(cmd *cobra.Command, args []string) error {
	return collectionMembership(args, "marking paper read", func(lib *library, collID, paperID int64) error {
		return lib.papers.SetReadStatus(collID, paperID, true)
	})
}

func runCollectionUnread(cmd *cobra.Command, args []string) error {
	return collectionMembership(args, "marking paper unread", func(lib *library, collID, paperID int64) error {
		return lib.papers.SetReadStatus(collID, paperID, false)
	})
}

// collectionMembership runs an operation keyed by a collection ID and a
// paper ID, with shared argument parsing and error handling.
func collectionMembership(args []string, action string, op func(lib *library, collID, paperID int64) error) error {
	collID := parseID(args[0], "collection")
	paperID := parseID(args[1], "paper")

	lib := openLibrary(context.Background())
	defer lib.Close()

	if err := op(lib, collID, paperID); err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			exitWithError(ExitDataError, "%s: not found", action)
		}
		exitWithError(ExitError, "%s: %v", action, err)
	}

	if humanOutput {
		outputHuman("OK\n")
		return nil
	}
	return outputJSON(StatusResponse{Status: "ok"})
}

func parseID(arg, kind string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid %s ID %q", kind, arg)
	}
	return id
}
