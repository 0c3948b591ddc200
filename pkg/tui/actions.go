package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/render"
	"github.com/unowned-ai/moodlog/pkg/storage"
	"github.com/unowned-ai/moodlog/pkg/theme"
)

// entriesMsg carries a fresh view of the journal: the search result on
// screen and stats over the mood-filtered set.
type entriesMsg struct {
	result journal.Result
	stats  journal.Stats
}

// entryChangedMsg reports a successful add, update or delete.
type entryChangedMsg struct {
	toast string
	id    string
}

// searchMsg is delivered by the debouncer once typing pauses.
type searchMsg struct {
	text string
}

type toastExpiredMsg struct {
	seq int
}

type themeMsg struct {
	stored theme.Preference
}

// Load entries from the store and apply the current query
func loadEntries(store *journal.Store, q journal.Query, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		all, err := store.List(context.Background())
		if err != nil {
			return err
		}
		moodOnly := journal.SearchCollection(all, journal.Query{Mood: q.Mood})
		return entriesMsg{
			result: journal.SearchCollection(all, q),
			stats:  journal.ComputeStats(moodOnly.Entries, now()),
		}
	}
}

func addEntry(store *journal.Store, p journal.Partial) tea.Cmd {
	return func() tea.Msg {
		entry, err := store.Add(context.Background(), p)
		if err != nil {
			return err
		}
		return entryChangedMsg{toast: render.MsgEntryAdded, id: entry.ID}
	}
}

func updateEntry(store *journal.Store, id string, p journal.Partial) tea.Cmd {
	return func() tea.Msg {
		entry, found, err := store.Update(context.Background(), id, p)
		if err != nil {
			return err
		}
		if !found {
			// Removed by another process since the list was loaded.
			return entryChangedMsg{}
		}
		return entryChangedMsg{toast: render.MsgEntryUpdated, id: entry.ID}
	}
}

func deleteEntry(store *journal.Store, id string) tea.Cmd {
	return func() tea.Msg {
		deleted, err := store.Delete(context.Background(), id)
		if err != nil {
			return err
		}
		if !deleted {
			return entryChangedMsg{}
		}
		return entryChangedMsg{toast: render.MsgEntryDeleted}
	}
}

func loadTheme(adapter *storage.Adapter) tea.Cmd {
	return func() tea.Msg {
		p, err := adapter.LoadPreference(context.Background())
		if err != nil {
			return err
		}
		return themeMsg{stored: p}
	}
}

// Flip the resolved theme and persist the concrete result
func toggleTheme(adapter *storage.Adapter, resolved theme.Preference) tea.Cmd {
	return func() tea.Msg {
		next := theme.Toggle(resolved)
		if err := adapter.SavePreference(context.Background(), next); err != nil {
			return err
		}
		return themeMsg{stored: next}
	}
}

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
