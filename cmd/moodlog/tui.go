package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodlog/pkg/theme"
	"github.com/unowned-ai/moodlog/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive journal",
	Long: `Open the full-screen journal. Browse entries, search as you type, cycle the mood
filter, add, edit and delete entries, and switch between light and dark themes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsTerminal() {
			return tui.ErrNotTerminal
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.ShowTUI(s.store, s.adapter, theme.TerminalDetector)
	},
}
