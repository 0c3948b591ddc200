package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/render"
)

// searchOutput is the --json shape of a search.
type searchOutput struct {
	Query   string             `json:"query"`
	Mood    string             `json:"mood,omitempty"`
	Count   int                `json:"count"`
	Summary string             `json:"summary,omitempty"`
	Entries journal.Collection `json:"entries"`
}

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search entries by title and content",
	Long: `Search entries whose title or content contains the query, ignoring case.
Combine with --mood to search within one mood. With no query every entry
(of the chosen mood) is listed.`,
	Example: `  moodlog search morning run
  moodlog search --mood sad work`,
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

		q := journal.Query{Mood: mood, Text: strings.Join(args, " ")}
		res, err := s.store.Search(cmd.Context(), q)
		if err != nil {
			return handleError(out, fmt.Errorf("failed to search entries: %w", err))
		}

		if jsonOutput {
			o := searchOutput{
				Query:   q.Text,
				Count:   len(res.Entries),
				Summary: res.Summary(),
				Entries: res.Entries,
			}
			if mood != nil {
				o.Mood = mood.String()
			}
			return render.JSON(out, o)
		}
		s.printer(cmd).SearchResult(res)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long: `Show the number of entries, words, distinct days journaled and entries this
year, followed by a count per mood. With --mood the statistics cover only that mood.`,
	Args: cobra.NoArgs,
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
			return handleError(out, fmt.Errorf("failed to compute stats: %w", err))
		}

		stats := journal.ComputeStats(entries, time.Now())
		if jsonOutput {
			return render.JSON(out, stats)
		}
		s.printer(cmd).Stats(stats)
		return nil
	},
}

func initSearchCmd() {
	searchCmd.Flags().String("mood", "", "Only search entries with this mood")
}

func initStatsCmd() {
	statsCmd.Flags().String("mood", "", "Only count entries with this mood")
}
