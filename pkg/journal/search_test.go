package journal

import (
	"context"
	"testing"
	"time"
)

func seedSearchStore(t *testing.T) *Store {
	t.Helper()
	store, p := setupTestStore(t)
	p.entries = Collection{
		{ID: "1", Title: "Run", Content: "5k easy", Mood: Excited},
		{ID: "2", Title: "Note", Content: "nothing", Mood: Happy},
		{ID: "3", Title: "Long RUN", Content: "half marathon", Mood: Happy},
	}
	return store
}

func TestSearch_TextOnly(t *testing.T) {
	store := seedSearchStore(t)
	res, err := store.Search(context.Background(), Query{Text: "5k"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].ID != "1" {
		t.Errorf("Expected only entry 1, got %+v", res.Entries)
	}
	if !res.Searched || res.NoResults() {
		t.Errorf("Expected a searched result with matches")
	}
	if got := res.Summary(); got != `Found 1 result(s) for "5k"` {
		t.Errorf("Unexpected summary %q", got)
	}
}

func TestSearch_CaseInsensitiveTitleOrContent(t *testing.T) {
	store := seedSearchStore(t)
	res, err := store.Search(context.Background(), Query{Text: "  run "})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Entries) != 2 || res.Entries[0].ID != "1" || res.Entries[1].ID != "3" {
		t.Errorf("Expected entries 1 and 3, got %+v", res.Entries)
	}

	res, _ = store.Search(context.Background(), Query{Text: "MARATHON"})
	if len(res.Entries) != 1 || res.Entries[0].ID != "3" {
		t.Errorf("Expected content match on entry 3, got %+v", res.Entries)
	}
}

func TestSearch_MoodThenText(t *testing.T) {
	store := seedSearchStore(t)
	mood := Happy
	res, err := store.Search(context.Background(), Query{Mood: &mood, Text: "run"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].ID != "3" {
		t.Errorf("Expected only the happy run, got %+v", res.Entries)
	}
}

func TestSearch_EmptyTextReturnsMoodSet(t *testing.T) {
	store := seedSearchStore(t)
	mood := Happy
	res, err := store.Search(context.Background(), Query{Mood: &mood, Text: "   "})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Searched {
		t.Errorf("Expected blank text to skip the text search")
	}
	if len(res.Entries) != 2 {
		t.Errorf("Expected the two happy entries, got %+v", res.Entries)
	}
	if res.Summary() != "" {
		t.Errorf("Expected no summary without a text search, got %q", res.Summary())
	}
}

func TestSearch_NoResults(t *testing.T) {
	store := seedSearchStore(t)
	res, err := store.Search(context.Background(), Query{Text: "Swim"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !res.NoResults() {
		t.Errorf("Expected the no-results state")
	}
	if got := res.Summary(); got != `No results found for "Swim".` {
		t.Errorf("Unexpected summary %q", got)
	}
}

func TestFindByProperty(t *testing.T) {
	entries := Collection{
		{ID: "a", Title: "First", Mood: Sad},
		{ID: "b", Title: "Second", Mood: Happy},
		{ID: "c", Title: "Third", Mood: Happy},
	}

	if e, ok := FindByProperty(entries, ByID, "b"); !ok || e.Title != "Second" {
		t.Errorf("Expected to find b, got %+v ok=%v", e, ok)
	}
	if e, ok := FindByProperty(entries, ByMood, Happy); !ok || e.ID != "b" {
		t.Errorf("Expected first happy entry b, got %+v ok=%v", e, ok)
	}
	if e, ok := FindByProperty(entries, ByTitle, "Third"); !ok || e.ID != "c" {
		t.Errorf("Expected Third to be c, got %+v ok=%v", e, ok)
	}
	if _, ok := FindByProperty(entries, ByID, "z"); ok {
		t.Errorf("Expected z to be missing")
	}
	if i := IndexByProperty(Collection{}, ByID, "a"); i != -1 {
		t.Errorf("Expected -1 on empty collection, got %d", i)
	}
}

func TestComputeStats(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, loc)
	at := func(y int, m time.Month, d, h int) int64 {
		return time.Date(y, m, d, h, 0, 0, 0, loc).UnixMilli()
	}

	entries := Collection{
		{ID: "1", Content: "went for a run", Mood: Happy, Timestamp: at(2024, time.May, 1, 8)},
		{ID: "2", Content: "  ", Mood: Happy, Timestamp: at(2024, time.May, 1, 23)},
		{ID: "3", Content: "one\ttwo\nthree", Mood: Sad, Timestamp: at(2023, time.December, 31, 1)},
	}

	stats := ComputeStats(entries, now)
	if stats.TotalEntries != 3 {
		t.Errorf("Expected 3 entries, got %d", stats.TotalEntries)
	}
	if stats.TotalWords != 7 {
		t.Errorf("Expected 7 words, got %d", stats.TotalWords)
	}
	if stats.DaysJournaled != 2 {
		t.Errorf("Expected 2 distinct days, got %d", stats.DaysJournaled)
	}
	if stats.EntriesThisYear != 2 {
		t.Errorf("Expected 2 entries this year, got %d", stats.EntriesThisYear)
	}
	if stats.MoodCounts[Happy] != 2 || stats.MoodCounts[Sad] != 1 || stats.MoodCounts[Bored] != 0 {
		t.Errorf("Unexpected mood counts %v", stats.MoodCounts)
	}
	if len(stats.MoodCounts) != len(Moods()) {
		t.Errorf("Expected a count for every mood, got %v", stats.MoodCounts)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	if stats.TotalEntries != 0 || stats.TotalWords != 0 || stats.DaysJournaled != 0 || stats.EntriesThisYear != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestParseMood(t *testing.T) {
	if m, err := ParseMood(" Excited "); err != nil || m != Excited {
		t.Errorf("Expected excited, got %v %v", m, err)
	}
	if _, err := ParseMood("elated"); err == nil {
		t.Errorf("Expected error for unknown mood")
	}
	if Happy.Label() != "😊 Happy" {
		t.Errorf("Unexpected label %q", Happy.Label())
	}
}

func TestSearchCollection_MatchesStoreSearch(t *testing.T) {
	store := seedSearchStore(t)
	all, _ := store.List(context.Background())
	mood := Happy

	for _, q := range []Query{{Text: "run"}, {Mood: &mood}, {Mood: &mood, Text: "RUN"}, {Text: "zzz"}} {
		want, err := store.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		got := SearchCollection(all, q)
		if len(got.Entries) != len(want.Entries) || got.Searched != want.Searched {
			t.Errorf("Query %+v: expected %+v, got %+v", q, want, got)
		}
	}
}
