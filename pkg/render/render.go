// Package render draws journal state for the command line.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/theme"
)

const (
	DateLayout   = "2 January 2006"
	EmptyJournal = "No entries yet. Add your first entry to get started."

	MsgEntryAdded   = "Entry added successfully"
	MsgEntryUpdated = "Entry updated successfully"
	MsgEntryDeleted = "Entry deleted successfully"

	shortIDLen = 8

	// DefaultWidth is the column content is wrapped at inside a card.
	DefaultWidth = 72
)

// FormatDate renders a millisecond timestamp as e.g. "9 March 2024".
func FormatDate(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(DateLayout)
}

// ShortID trims a UUID to its first block for display.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// Printer writes human readable output.
type Printer struct {
	Out      io.Writer
	Palette  theme.Palette
	Location *time.Location
	// ShowID prints the full id instead of the short form.
	ShowID bool
	// Width wraps card content; zero disables wrapping.
	Width int
}

func NewPrinter(out io.Writer, palette theme.Palette) *Printer {
	return &Printer{Out: out, Palette: palette, Location: time.Local, Width: DefaultWidth}
}

func (p *Printer) cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Palette.Border).
		Padding(0, 1)
}

// Card renders a single entry.
func (p *Printer) Card(e journal.Entry) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Palette.Accent).Render(e.Title)
	mood := lipgloss.NewStyle().Foreground(p.Palette.Muted).Render(e.Mood.Label())
	body := e.Content
	if p.Width > 0 {
		body = wordwrap.String(body, p.Width)
	}
	content := lipgloss.NewStyle().Foreground(p.Palette.Foreground).Render(body)

	id := e.ID
	if !p.ShowID {
		id = ShortID(id)
	}
	footer := lipgloss.NewStyle().Foreground(p.Palette.Muted).Faint(true).
		Render(FormatDate(e.Timestamp, p.Location) + "  " + id)

	return p.cardStyle().Render(lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+mood,
		content,
		footer,
	))
}

// Cards writes one card per entry, or the empty-journal message.
func (p *Printer) Cards(entries journal.Collection) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(p.Out, EmptyJournal)
		return
	}
	for _, e := range entries {
		_, _ = fmt.Fprintln(p.Out, p.Card(e))
	}
}

// SearchSummary writes the "Found N result(s)" line, if any.
func (p *Printer) SearchSummary(res journal.Result) {
	if res.Summary() == "" {
		return
	}
	c := color.New(color.Faint)
	_, _ = c.Fprintln(p.Out, res.Summary())
}

// NoResults writes the distinct no-match state for query.
func (p *Printer) NoResults(query string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(p.Out, "No results found for \"%s\".\n", query)
}

// SearchResult writes a search outcome: the summary followed by cards, or the
// no-results state.
func (p *Printer) SearchResult(res journal.Result) {
	if res.NoResults() {
		p.NoResults(res.Query.Text)
		return
	}
	p.SearchSummary(res)
	p.Cards(res.Entries)
}

// Stats writes the aggregate table followed by the per-mood breakdown.
func (p *Printer) Stats(s journal.Stats) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Words"), bold.Sprint("Days"), bold.Sprint("This Year"), bold.Sprint("Total Entries"))
	tbl.AddRow(strconv.Itoa(s.TotalWords), strconv.Itoa(s.DaysJournaled), strconv.Itoa(s.EntriesThisYear), strconv.Itoa(s.TotalEntries))
	_, _ = fmt.Fprintln(p.Out, tbl)
	_, _ = fmt.Fprintln(p.Out, "")

	moods := uitable.New()
	moods.Separator = "  "
	for _, m := range journal.Moods() {
		moods.AddRow(m.Label(), strconv.Itoa(s.MoodCounts[m]))
	}
	moods.RightAlign(1)
	_, _ = fmt.Fprintln(p.Out, moods)
}

// Toast writes a one-line success notification.
func (p *Printer) Toast(message string) {
	g := color.New(color.FgGreen, color.Bold)
	_, _ = g.Fprintf(p.Out, "✓ %s\n", message)
}

// Theme writes the stored preference and what it resolves to.
func (p *Printer) Theme(stored, resolved theme.Preference) {
	if stored == resolved {
		_, _ = fmt.Fprintf(p.Out, "Theme: %s\n", stored)
		return
	}
	_, _ = fmt.Fprintf(p.Out, "Theme: %s (%s)\n", stored, resolved)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Output carries the --json flag.
type Output struct {
	JSON bool
}

// HandleError swallows err after writing {"error": "..."} in JSON mode, so
// scripted callers always get parseable output. Otherwise err is returned.
func (o Output) HandleError(w io.Writer, err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, jerr := json.Marshal(out)
		if jerr != nil {
			return jerr
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}
	return err
}
