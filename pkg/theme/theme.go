// Package theme handles the persisted light/dark/system display preference.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Preference is the stored theme choice.
type Preference string

const (
	System Preference = "system"
	Light  Preference = "light"
	Dark   Preference = "dark"

	Default = System
)

var ErrInvalidPreference = errors.New("invalid theme preference")

// Preferences returns every accepted preference.
func Preferences() []Preference {
	return []Preference{System, Light, Dark}
}

// ParsePreference accepts system, light or dark in any case.
func ParsePreference(s string) (Preference, error) {
	p := Preference(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (expected system, light or dark)", ErrInvalidPreference, s)
	}
	return p, nil
}

func (p Preference) Valid() bool {
	switch p {
	case System, Light, Dark:
		return true
	}
	return false
}

func (p Preference) String() string {
	return string(p)
}

// Detector reports whether the user's terminal has a dark background.
type Detector func() bool

// TerminalDetector asks the terminal for its background colour.
var TerminalDetector Detector = termenv.HasDarkBackground

// Resolve turns a preference into Light or Dark. System consults detect,
// falling back to Light when detect is nil.
func Resolve(p Preference, detect Detector) Preference {
	switch p {
	case Light, Dark:
		return p
	}
	if detect != nil && detect() {
		return Dark
	}
	return Light
}

// Toggle flips a resolved preference. The result is always concrete so a toggle
// never stores System.
func Toggle(resolved Preference) Preference {
	if resolved == Dark {
		return Light
	}
	return Dark
}

// Palette is the colour set used to draw entries under one theme.
type Palette struct {
	Name       Preference
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Selected   lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
}

var (
	lightPalette = Palette{
		Name:       Light,
		Foreground: lipgloss.Color("#1f2335"),
		Muted:      lipgloss.Color("#6b7089"),
		Accent:     lipgloss.Color("#2e7de9"),
		Border:     lipgloss.Color("#a8aecb"),
		Selected:   lipgloss.Color("#e9e9ed"),
		Success:    lipgloss.Color("#387068"),
		Danger:     lipgloss.Color("#c64343"),
	}
	// "Blue Moon" from https://gogh-co.github.io/Gogh/
	darkPalette = Palette{
		Name:       Dark,
		Foreground: lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#b4c4b4"),
		Accent:     lipgloss.Color("#89ddff"),
		Border:     lipgloss.Color("#b9a3eb"),
		Selected:   lipgloss.Color("#353b52"),
		Success:    lipgloss.Color("#acfab4"),
		Danger:     lipgloss.Color("#e61f44"),
	}
)

// PaletteFor returns the palette for a resolved preference. System is
// treated as Light; resolve first to honour the terminal.
func PaletteFor(resolved Preference) Palette {
	if resolved == Dark {
		return darkPalette
	}
	return lightPalette
}
