package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/unowned-ai/moodlog/pkg/config"
	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/kv"
	"github.com/unowned-ai/moodlog/pkg/render"
	"github.com/unowned-ai/moodlog/pkg/storage"
	"github.com/unowned-ai/moodlog/pkg/theme"
	"github.com/unowned-ai/moodlog/pkg/tui"
)

var ErrEntryNotFound = errors.New("entry not found")

// session bundles the open store for one command invocation.
type session struct {
	kv      kv.Store
	adapter *storage.Adapter
	store   *journal.Store
}

// openSession loads the configuration and opens the configured backend.
func openSession() (*session, error) {
	cfg, err := config.Load(config.Options{File: configFile, Backend: backendFlag, Path: pathFlag})
	if err != nil {
		return nil, err
	}
	kvStore, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at '%s': %w", cfg.Backend, cfg.Path, err)
	}
	adapter := storage.NewAdapter(kvStore)
	return &session{
		kv:      kvStore,
		adapter: adapter,
		store:   journal.NewStore(adapter),
	}, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}

// terminalDetector only queries the terminal background when stdout is a
// terminal; piped output renders with the light palette.
func terminalDetector() theme.Detector {
	if tui.IsTerminal() {
		return theme.TerminalDetector
	}
	return nil
}

// printer returns a Printer using the stored theme. A preference that cannot be
// read falls back to the default theme; the error surfaces on the next write.
func (s *session) printer(cmd *cobra.Command) *render.Printer {
	pref, err := s.adapter.LoadPreference(cmd.Context())
	if err != nil {
		pref = theme.Default
	}
	return render.NewPrinter(cmd.OutOrStdout(), theme.PaletteFor(theme.Resolve(pref, terminalDetector())))
}

// output is the --json switch wrapped for render.
func output() render.Output {
	return render.Output{JSON: jsonOutput}
}

// handleError reports err as JSON in --json mode and returns it otherwise.
func handleError(w io.Writer, err error) error {
	return output().HandleError(w, err)
}

// moodFlag parses an optional --mood flag. Unset or empty yields nil.
func moodFlag(flags *pflag.FlagSet) (*journal.Mood, error) {
	raw, _ := flags.GetString("mood")
	if raw == "" {
		return nil, nil
	}
	m, err := journal.ParseMood(raw)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// addEntryFlags defines the entry field flags shared by add and update.
func addEntryFlags(flags *pflag.FlagSet) {
	flags.String("title", "", "Entry title")
	flags.String("content", "", "Entry text")
	flags.String("mood", "", "Entry mood: happy, sad, angry, bored, curious, excited, frustrated or confused")
}

// partialFromFlags builds a Partial from the entry flags. Only flags given on
// the command line are set.
func partialFromFlags(flags *pflag.FlagSet) (journal.Partial, error) {
	var p journal.Partial
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		p.Title = &title
	}
	if flags.Changed("content") {
		content, _ := flags.GetString("content")
		p.Content = &content
	}
	if flags.Changed("mood") {
		mood, err := moodFlag(flags)
		if err != nil {
			return journal.Partial{}, err
		}
		p.Mood = mood
	}
	return p, nil
}
