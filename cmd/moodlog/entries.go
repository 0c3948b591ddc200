package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/render"
)

var showFullIDFlag bool

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage journal entries",
	Long:  `Add, list, update, delete and filter mood journal entries.`,
}

var addEntryCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new entry",
	Long: `Add a new entry. Omitted fields get defaults: title "Untitled Entry",
content "No content" and mood "happy".`,
	Example: `  moodlog entries add --title Run --content "5k easy" --mood excited`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, err := partialFromFlags(cmd.Flags())
		if err != nil {
			return handleError(out, err)
		}

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		entry, err := s.store.Add(cmd.Context(), p)
		if err != nil {
			return handleError(out, fmt.Errorf("failed to add entry: %w", err))
		}

		if jsonOutput {
			return render.JSON(out, entry)
		}
		pr := s.printer(cmd)
		pr.ShowID = true
		pr.Toast(render.MsgEntryAdded)
		pr.Cards(journal.Collection{entry})
		return nil
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	Long:  `List all entries in the order they were added, optionally only those with one mood.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		mood, err := moodFlag(cmd.Flags())
		if err != nil {
			return handleError(out, err)
		}

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		var entries journal.Collection
		if mood != nil {
			entries, err = s.store.FilterByMood(cmd.Context(), *mood)
		} else {
			entries, err = s.store.List(cmd.Context())
		}
		if err != nil {
			return handleError(out, fmt.Errorf("failed to list entries: %w", err))
		}

		if jsonOutput {
			return render.JSON(out, entries)
		}
		pr := s.printer(cmd)
		pr.ShowID = showFullIDFlag
		pr.Cards(entries)
		return nil
	},
}

var getEntryCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Get an entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id := args[0]

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		entry, found, err := s.store.Get(cmd.Context(), id)
		if err != nil {
			return handleError(out, fmt.Errorf("failed to get entry: %w", err))
		}
		if !found {
			return handleError(out, fmt.Errorf("%w: %s", ErrEntryNotFound, id))
		}

		if jsonOutput {
			return render.JSON(out, entry)
		}
		pr := s.printer(cmd)
		pr.ShowID = true
		pr.Cards(journal.Collection{entry})
		return nil
	},
}

var updateEntryCmd = &cobra.Command{
	Use:   "update [entry-id]",
	Short: "Update an entry",
	Long: `Update an entry's title, content or mood. Only the flags you pass are applied;
the timestamp is always refreshed.`,
	Example: `  moodlog entries update 0b7e1c2a-... --mood frustrated`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id := args[0]
		p, err := partialFromFlags(cmd.Flags())
		if err != nil {
			return handleError(out, err)
		}

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		entry, found, err := s.store.Update(cmd.Context(), id, p)
		if err != nil {
			return handleError(out, fmt.Errorf("failed to update entry: %w", err))
		}
		if !found {
			return handleError(out, fmt.Errorf("%w: %s", ErrEntryNotFound, id))
		}

		if jsonOutput {
			return render.JSON(out, entry)
		}
		pr := s.printer(cmd)
		pr.ShowID = true
		pr.Toast(render.MsgEntryUpdated)
		pr.Cards(journal.Collection{entry})
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently remove an entry from the journal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id := args[0]

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		deleted, err := s.store.Delete(cmd.Context(), id)
		if err != nil {
			return handleError(out, fmt.Errorf("failed to delete entry: %w", err))
		}
		if !deleted {
			return handleError(out, fmt.Errorf("%w: %s", ErrEntryNotFound, id))
		}

		if jsonOutput {
			return render.JSON(out, map[string]any{"deleted": true, "id": id})
		}
		s.printer(cmd).Toast(render.MsgEntryDeleted)
		return nil
	},
}

var filterEntriesCmd = &cobra.Command{
	Use:       "filter [mood]",
	Short:     "List the entries with one mood",
	Args:      cobra.ExactArgs(1),
	ValidArgs: moodArgs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		mood, err := journal.ParseMood(args[0])
		if err != nil {
			return handleError(out, err)
		}

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		entries, err := s.store.FilterByMood(cmd.Context(), mood)
		if err != nil {
			return handleError(out, fmt.Errorf("failed to filter entries: %w", err))
		}

		if jsonOutput {
			return render.JSON(out, entries)
		}
		pr := s.printer(cmd)
		pr.ShowID = showFullIDFlag
		pr.Cards(entries)
		return nil
	},
}

func moodArgs() []string {
	moods := journal.Moods()
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = m.String()
	}
	return names
}

func initEntriesCmd() {
	addEntryFlags(addEntryCmd.Flags())
	addEntryFlags(updateEntryCmd.Flags())

	listEntriesCmd.Flags().String("mood", "", "Only list entries with this mood")
	listEntriesCmd.Flags().BoolVar(&showFullIDFlag, "ids", false, "Show full entry IDs")
	filterEntriesCmd.Flags().BoolVar(&showFullIDFlag, "ids", false, "Show full entry IDs")

	entriesCmd.AddCommand(
		addEntryCmd,
		listEntriesCmd,
		getEntryCmd,
		updateEntryCmd,
		deleteEntryCmd,
		filterEntriesCmd,
	)
}
