package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMood = errors.New("invalid mood")

// Mood is the emotional tag attached to every entry. The set is closed.
type Mood string

const (
	Happy      Mood = "happy"
	Sad        Mood = "sad"
	Angry      Mood = "angry"
	Bored      Mood = "bored"
	Curious    Mood = "curious"
	Excited    Mood = "excited"
	Frustrated Mood = "frustrated"
	Confused   Mood = "confused"
)

var moodLabels = map[Mood]string{
	Happy:      "😊 Happy",
	Sad:        "😢 Sad",
	Angry:      "😠 Angry",
	Bored:      "😑 Bored",
	Curious:    "🤔 Curious",
	Excited:    "🤩 Excited",
	Frustrated: "😤 Frustrated",
	Confused:   "😕 Confused",
}

// Moods returns every mood in display order.
func Moods() []Mood {
	return []Mood{Happy, Sad, Angry, Bored, Curious, Excited, Frustrated, Confused}
}

// ParseMood lowercases and trims s and checks it against the mood set.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}

func (m Mood) Valid() bool {
	_, ok := moodLabels[m]
	return ok
}

// Label is the emoji label shown next to an entry, e.g. "😊 Happy".
func (m Mood) Label() string {
	if l, ok := moodLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Mood) String() string {
	return string(m)
}

// Entry is a single journal record.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Mood      Mood   `json:"mood"`
	Timestamp int64  `json:"timestamp"` // ms since epoch
}

// Time returns the entry timestamp as a time.Time in loc.
func (e Entry) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(e.Timestamp).In(loc)
}

// Collection is the ordered list of all entries, oldest insertion first.
type Collection []Entry

// Partial carries the optional fields accepted by Add and Update. A nil field
// was not supplied.
type Partial struct {
	ID        *string
	Title     *string
	Content   *string
	Mood      *Mood
	Timestamp *int64
}

// Ptr returns a pointer to v, for building a Partial inline.
func Ptr[T any](v T) *T {
	return &v
}

const (
	DefaultTitle   = "Untitled Entry"
	DefaultContent = "No content"
	DefaultMood    = Happy
)

// textOr returns *s, or fallback when s is nil or blank.
func textOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}
