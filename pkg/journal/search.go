package journal

import (
	"context"
	"fmt"
	"strings"
)

// Query combines an optional mood filter with a free-text match.
type Query struct {
	Mood *Mood
	Text string
}

// Result is the outcome of Search. Searched is false when the query had no
// text, in which case Entries is the mood-filtered set.
type Result struct {
	Entries  Collection
	Query    Query
	Searched bool
}

// NoResults reports the "searched and found nothing" state, which callers
// render differently from an empty journal.
func (r Result) NoResults() bool {
	return r.Searched && len(r.Entries) == 0
}

// Summary is the line shown above search results. It is empty when no text
// search ran.
func (r Result) Summary() string {
	if !r.Searched {
		return ""
	}
	if len(r.Entries) == 0 {
		return fmt.Sprintf("No results found for \"%s\".", r.Query.Text)
	}
	return fmt.Sprintf("Found %d result(s) for \"%s\"", len(r.Entries), r.Query.Text)
}

// Search restricts the collection to q.Mood (when set) and then to entries
// whose title or content contains q.Text, ignoring case and surrounding space.
func (s *Store) Search(ctx context.Context, q Query) (Result, error) {
	var (
		entries Collection
		err     error
	)
	if q.Mood != nil {
		entries, err = s.FilterByMood(ctx, *q.Mood)
	} else {
		entries, err = s.List(ctx)
	}
	if err != nil {
		return Result{}, err
	}
	return matchQuery(entries, q), nil
}

// SearchCollection applies q to an already loaded collection. It gives the
// same result as Store.Search over the same entries.
func SearchCollection(entries Collection, q Query) Result {
	if q.Mood != nil {
		entries = filterMood(entries, *q.Mood)
	}
	return matchQuery(entries, q)
}

func matchQuery(entries Collection, q Query) Result {
	return Result{
		Entries:  MatchText(entries, q.Text),
		Query:    q,
		Searched: normalizeQuery(q.Text) != "",
	}
}

// MatchText keeps the entries whose title or content contains text. A blank
// text matches everything.
func MatchText(entries Collection, text string) Collection {
	needle := normalizeQuery(text)
	if needle == "" {
		return entries
	}
	matched := Collection{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Content), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

func normalizeQuery(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
