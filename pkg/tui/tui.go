// Package tui is the interactive terminal front end: a card list with search,
// mood filter, add/edit forms, delete confirmation and theme toggle.
package tui

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/unowned-ai/moodlog/pkg/debounce"
	"github.com/unowned-ai/moodlog/pkg/journal"
	"github.com/unowned-ai/moodlog/pkg/render"
	"github.com/unowned-ai/moodlog/pkg/storage"
	"github.com/unowned-ai/moodlog/pkg/theme"
)

var ErrNotTerminal = errors.New("the terminal UI needs an interactive terminal")

type formMode int

const (
	formNone formMode = iota
	formAdd
	formEdit
)

// Form fields, in tab order.
const (
	fieldTitle = iota
	fieldContent
	fieldMood
	fieldCount
)

type model struct {
	store   *journal.Store
	adapter *storage.Adapter
	detect  theme.Detector
	now     func() time.Time

	stored   theme.Preference
	resolved theme.Preference
	styles   styles

	result journal.Result
	stats  journal.Stats
	cursor int

	moodFilter int // -1 = all moods, otherwise an index into journal.Moods()

	searching   bool
	searchInput textinput.Model
	debouncer   *debounce.Debouncer[string]

	form         formMode
	formField    int
	formMood     int
	editID       string
	titleInput   textinput.Model
	contentInput textarea.Model

	deleting         bool
	deleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"

	toast    string
	toastSeq int

	width    int
	height   int
	err      error
	quitting bool
}

// Initialize TUI model
func initModel(store *journal.Store, adapter *storage.Adapter, detect theme.Detector) model {
	search := textinput.New()
	search.Placeholder = "Search title or content"
	search.Prompt = "/ "
	search.CharLimit = 256

	title := textinput.New()
	title.Placeholder = journal.DefaultTitle
	title.CharLimit = 256

	content := textarea.New()
	content.Placeholder = journal.DefaultContent
	content.ShowLineNumbers = false
	content.SetHeight(5)

	resolved := theme.Resolve(theme.Default, detect)
	return model{
		store:    store,
		adapter:  adapter,
		detect:   detect,
		now:      time.Now,
		stored:   theme.Default,
		resolved: resolved,
		styles:   newStyles(theme.PaletteFor(resolved)),

		result:     journal.Result{Entries: journal.Collection{}},
		moodFilter: -1,

		searchInput:  search,
		titleInput:   title,
		contentInput: content,
	}
}

// query is the search currently applied to the list.
func (m model) query() journal.Query {
	q := journal.Query{Text: m.searchInput.Value()}
	if m.moodFilter >= 0 {
		mood := journal.Moods()[m.moodFilter]
		q.Mood = &mood
	}
	return q
}

func (m model) refresh() tea.Cmd {
	return loadEntries(m.store, m.query(), m.now)
}

func (m model) selected() (journal.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.result.Entries) {
		return journal.Entry{}, false
	}
	return m.result.Entries[m.cursor], true
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadTheme(m.adapter),
		m.refresh(),
	)
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(msg.Width-8, 10)
		m.titleInput.Width = max(msg.Width-12, 10)
		m.contentInput.SetWidth(max(msg.Width-8, 10))
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case entriesMsg:
		m.result = msg.result
		m.stats = msg.stats
		if m.cursor >= len(m.result.Entries) {
			m.cursor = max(len(m.result.Entries)-1, 0)
		}
		return m, nil

	case entryChangedMsg:
		if msg.toast == "" {
			return m, m.refresh()
		}
		m.toast = msg.toast
		m.toastSeq++
		return m, tea.Batch(m.refresh(), expireToast(m.toastSeq))

	case toastExpiredMsg:
		// A newer toast restarted the timer.
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case searchMsg:
		// Stale if the user kept typing after the debouncer fired.
		if msg.text != m.searchInput.Value() {
			return m, nil
		}
		m.cursor = 0
		return m, m.refresh()

	case themeMsg:
		m.stored = msg.stored
		m.resolved = theme.Resolve(msg.stored, m.detect)
		m.styles = newStyles(theme.PaletteFor(m.resolved))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch {
		case m.form != formNone:
			return m.updateForm(msg)
		case m.deleting:
			return m.updateDelete(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.updateRoot(msg)
	}

	return m, nil
}

// quit works from every mode.
func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.debouncer != nil {
		m.debouncer.Stop()
	}
	// Exit alt screen before quitting so the goodbye message displays
	return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)
}

// Root Navigation Mode
func (m model) updateRoot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.result.Entries)-1 {
			m.cursor++
		}

	case "/":
		m.searching = true
		return m, m.searchInput.Focus()

	case "esc":
		if m.searchInput.Value() != "" {
			m.searchInput.Reset()
			m.cursor = 0
			return m, m.refresh()
		}

	case "m":
		// all -> happy -> sad -> ... -> confused -> all
		m.moodFilter++
		if m.moodFilter >= len(journal.Moods()) {
			m.moodFilter = -1
		}
		m.cursor = 0
		return m, m.refresh()

	case "a":
		m.form = formAdd
		m.editID = ""
		m.formMood = 0
		m.titleInput.Reset()
		m.contentInput.Reset()
		return m, m.focusField(fieldTitle)

	case "e":
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = formEdit
		m.editID = entry.ID
		m.titleInput.SetValue(entry.Title)
		m.titleInput.CursorEnd()
		m.contentInput.SetValue(entry.Content)
		m.formMood = max(slices.Index(journal.Moods(), entry.Mood), 0)
		return m, m.focusField(fieldTitle)

	case "d":
		if _, ok := m.selected(); ok {
			m.deleteConfirmIdx = 1
			m.deleting = true
		}

	case "t":
		return m, toggleTheme(m.adapter, m.resolved)
	}
	return m, nil
}

// Search Mode: keystrokes go to the input, the list follows after a pause
func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.cursor = 0
		return m, m.refresh()
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		m.cursor = 0
		return m, m.refresh()
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	if m.debouncer != nil {
		m.debouncer.Trigger(m.searchInput.Value())
		return m, cmd
	}
	text := m.searchInput.Value()
	return m, tea.Batch(cmd, func() tea.Msg { return searchMsg{text: text} })
}

// Deleting Entry Mode
func (m model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "y":
		m.deleteConfirmIdx = 0
	case "down", "j", "n":
		m.deleteConfirmIdx = 1
	case "enter":
		m.deleting = false
		if m.deleteConfirmIdx != 0 {
			return m, nil
		}
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, deleteEntry(m.store, entry.ID)
	case "esc":
		m.deleting = false
	}
	return m, nil
}

func (m *model) focusField(field int) tea.Cmd {
	m.formField = field
	m.titleInput.Blur()
	m.contentInput.Blur()
	switch field {
	case fieldTitle:
		return m.titleInput.Focus()
	case fieldContent:
		return m.contentInput.Focus()
	}
	return nil
}

// Add/Edit Form Mode
func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.form = formNone
		m.titleInput.Blur()
		m.contentInput.Blur()
		return m, nil
	case tea.KeyTab:
		return m, m.focusField((m.formField + 1) % fieldCount)
	case tea.KeyShiftTab:
		return m, m.focusField((m.formField + fieldCount - 1) % fieldCount)
	case tea.KeyCtrlS:
		return m.submitForm()
	}

	switch m.formField {
	case fieldTitle:
		if msg.Type == tea.KeyEnter {
			return m, m.focusField(fieldContent)
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd

	case fieldContent:
		var cmd tea.Cmd
		m.contentInput, cmd = m.contentInput.Update(msg)
		return m, cmd

	case fieldMood:
		moods := journal.Moods()
		switch msg.String() {
		case "left", "h", "up", "k":
			m.formMood = (m.formMood + len(moods) - 1) % len(moods)
		case "right", "l", "down", "j":
			m.formMood = (m.formMood + 1) % len(moods)
		case "enter":
			return m.submitForm()
		}
	}
	return m, nil
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	mood := journal.Moods()[m.formMood]
	p := journal.Partial{
		Title:   journal.Ptr(m.titleInput.Value()),
		Content: journal.Ptr(m.contentInput.Value()),
		Mood:    &mood,
	}

	mode, id := m.form, m.editID
	m.form = formNone
	m.titleInput.Blur()
	m.contentInput.Blur()

	if mode == formEdit {
		return m, updateEntry(m.store, id, p)
	}
	return m, addEntry(m.store, p)
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Closing the journal. Entries are saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	st := m.styles
	width := max(m.width, 40)

	var b strings.Builder
	b.WriteString(st.title.Width(width).Render("Moodlog - mood journal"))
	b.WriteString("\n")
	b.WriteString(m.viewStats())
	b.WriteString("\n")

	filter := "All moods"
	if m.moodFilter >= 0 {
		filter = journal.Moods()[m.moodFilter].Label()
	}
	b.WriteString(st.subtitle.Render("Filter: ") + st.text.Render(filter))
	b.WriteString("   " + st.muted.Render("Theme: "+m.resolved.String()))
	b.WriteString("\n")
	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.form != formNone:
		b.WriteString(m.viewForm(width))
	case m.deleting:
		b.WriteString(m.viewDelete())
	default:
		b.WriteString(m.viewList(width))
	}

	if m.toast != "" {
		b.WriteString("\n" + st.toast.Render("✓ "+m.toast) + "\n")
	}

	footerText := "\n↑/↓ navigate • / search • m mood • a add • e edit • d delete • t theme • q quit"
	b.WriteString(st.footer.Width(width).Render(footerText))
	return b.String()
}

func (m model) viewStats() string {
	st := m.styles
	cell := func(label string, n int) string {
		return st.subtitle.Render(fmt.Sprintf("%d", n)) + " " + st.muted.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("words", m.stats.TotalWords), "   ",
		cell("days", m.stats.DaysJournaled), "   ",
		cell("this year", m.stats.EntriesThisYear), "   ",
		cell("entries", m.stats.TotalEntries),
	)
}

func (m model) viewList(width int) string {
	st := m.styles
	var b strings.Builder

	if summary := m.result.Summary(); summary != "" && !m.result.NoResults() {
		b.WriteString(st.muted.Render(summary) + "\n")
	}
	if m.result.NoResults() {
		b.WriteString(st.muted.Render(m.result.Summary()) + "\n")
		return b.String()
	}
	if len(m.result.Entries) == 0 {
		b.WriteString(st.muted.Render(render.EmptyJournal) + "\n")
		return b.String()
	}

	// Only as many cards as fit; keep the cursor visible.
	const cardHeight = 5
	visible := len(m.result.Entries)
	if m.height > 0 {
		visible = max((m.height-12)/cardHeight, 1)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.result.Entries))

	contentWidth := max(width-6, 10)
	for i := start; i < end; i++ {
		e := m.result.Entries[i]
		style := st.card
		if i == m.cursor {
			style = st.selectedCard
		}
		header := st.subtitle.Render(truncate(e.Title, contentWidth/2)) + "  " + st.muted.Render(e.Mood.Label())
		body := st.text.Render(truncate(strings.ReplaceAll(e.Content, "\n", " "), contentWidth))
		footer := st.muted.Render(render.FormatDate(e.Timestamp, time.Local) + "  " + render.ShortID(e.ID))
		b.WriteString(generateLinePointer(i == m.cursor, 2))
		b.WriteString(style.Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewForm(width int) string {
	st := m.styles
	var b strings.Builder

	heading := "New Entry"
	if m.form == formEdit {
		heading = "Edit Entry"
	}
	b.WriteString(st.subtitle.Width(width).Render(heading) + "\n\n")
	b.WriteString("Title: " + m.titleInput.View() + "\n\n")
	b.WriteString("Content:\n" + m.contentInput.View() + "\n\n")

	moods := make([]string, 0, len(journal.Moods()))
	for i, mood := range journal.Moods() {
		label := mood.Label()
		if i == m.formMood {
			if m.formField == fieldMood {
				label = st.selected.Render(label)
			} else {
				label = st.subtitle.Render(label)
			}
		} else {
			label = st.muted.Render(label)
		}
		moods = append(moods, label)
	}
	b.WriteString("Mood: " + strings.Join(moods, " ") + "\n\n")
	b.WriteString(st.muted.Render("(tab to switch field, ←/→ to pick mood, enter on mood or ctrl+s to save, esc to cancel)"))
	return b.String()
}

func (m model) viewDelete() string {
	st := m.styles
	entry, _ := m.selected()

	var b strings.Builder
	b.WriteString(st.subtitle.Render("Delete Entry") + "\n\n")
	b.WriteString("Title: " + st.danger.Render(entry.Title) + "\n\n")
	yesOpt, noOpt := "Yes", "No"
	if m.deleteConfirmIdx == 0 {
		yesOpt = st.dangerSelect.Render(" >" + yesOpt)
		noOpt = st.muted.Render("  " + noOpt)
	} else {
		yesOpt = st.muted.Render("  " + yesOpt)
		noOpt = st.selected.Render(" >" + noOpt)
	}
	b.WriteString(fmt.Sprintf("%s\n%s\n\n", yesOpt, noOpt))
	b.WriteString(st.muted.Render("(enter to confirm, esc to cancel, up/down to switch)"))
	return b.String()
}

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShowTUI creates and starts the Bubble Tea TUI. Search input is debounced
// by debounce.DefaultDelay.
func ShowTUI(store *journal.Store, adapter *storage.Adapter, detect theme.Detector) error {
	if !IsTerminal() {
		return ErrNotTerminal
	}

	var p *tea.Program
	d := debounce.New(debounce.DefaultDelay, func(text string) {
		p.Send(searchMsg{text: text})
	})
	defer d.Stop()

	m := initModel(store, adapter, detect)
	m.debouncer = d
	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
