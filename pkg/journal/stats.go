package journal

import (
	"strings"
	"time"
)

// Stats are the aggregate figures shown above the entry list.
type Stats struct {
	TotalEntries    int          `json:"totalEntries"`
	TotalWords      int          `json:"totalWords"`
	DaysJournaled   int          `json:"daysJournaled"`
	EntriesThisYear int          `json:"entriesThisYear"`
	MoodCounts      map[Mood]int `json:"moodCounts"`
}

// ComputeStats aggregates entries. Calendar days and the current year are
// taken in now's location.
func ComputeStats(entries Collection, now time.Time) Stats {
	loc := now.Location()
	stats := Stats{
		TotalEntries: len(entries),
		MoodCounts:   make(map[Mood]int, len(moodLabels)),
	}
	for _, m := range Moods() {
		stats.MoodCounts[m] = 0
	}

	days := make(map[string]struct{})
	for _, e := range entries {
		stats.TotalWords += len(strings.Fields(e.Content))

		t := e.Time(loc)
		days[t.Format(time.DateOnly)] = struct{}{}
		if t.Year() == now.Year() {
			stats.EntriesThisYear++
		}
		stats.MoodCounts[e.Mood]++
	}
	stats.DaysJournaled = len(days)
	return stats
}
