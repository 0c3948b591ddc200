package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodlog/pkg/render"
	"github.com/unowned-ai/moodlog/pkg/theme"
)

type themeOutput struct {
	Theme    theme.Preference `json:"theme"`
	Resolved theme.Preference `json:"resolved"`
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the theme preference",
	Long: `Show the stored theme preference and the palette it resolves to. A "system"
preference follows the terminal background.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		stored, err := s.adapter.LoadPreference(cmd.Context())
		if err != nil {
			return handleError(out, fmt.Errorf("failed to load theme: %w", err))
		}
		return printTheme(cmd, s, stored)
	},
}

var setThemeCmd = &cobra.Command{
	Use:       "set [system|light|dark]",
	Short:     "Set the theme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: preferenceArgs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		pref, err := theme.ParsePreference(args[0])
		if err != nil {
			return handleError(out, err)
		}

		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		if err := s.adapter.SavePreference(cmd.Context(), pref); err != nil {
			return handleError(out, fmt.Errorf("failed to save theme: %w", err))
		}
		return printTheme(cmd, s, pref)
	},
}

var toggleThemeCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between the light and dark theme",
	Long: `Switch to the opposite of the currently resolved theme and store it as an
explicit preference.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s, err := openSession()
		if err != nil {
			return handleError(out, err)
		}
		defer s.Close()

		stored, err := s.adapter.LoadPreference(cmd.Context())
		if err != nil {
			return handleError(out, fmt.Errorf("failed to load theme: %w", err))
		}
		next := theme.Toggle(theme.Resolve(stored, terminalDetector()))
		if err := s.adapter.SavePreference(cmd.Context(), next); err != nil {
			return handleError(out, fmt.Errorf("failed to save theme: %w", err))
		}
		return printTheme(cmd, s, next)
	},
}

func printTheme(cmd *cobra.Command, s *session, stored theme.Preference) error {
	resolved := theme.Resolve(stored, terminalDetector())
	if jsonOutput {
		return render.JSON(cmd.OutOrStdout(), themeOutput{Theme: stored, Resolved: resolved})
	}
	s.printer(cmd).Theme(stored, resolved)
	return nil
}

func preferenceArgs() []string {
	prefs := theme.Preferences()
	names := make([]string, len(prefs))
	for i, p := range prefs {
		names[i] = p.String()
	}
	return names
}

func initThemeCmd() {
	themeCmd.AddCommand(setThemeCmd, toggleThemeCmd)
}
