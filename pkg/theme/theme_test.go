package theme

import (
	"errors"
	"testing"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		in      string
		want    Preference
		wantErr bool
	}{
		{"system", System, false},
		{"LIGHT", Light, false},
		{" dark ", Dark, false},
		{"solarized", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePreference(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidPreference) {
					t.Errorf("Expected ErrInvalidPreference, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePreference(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	if got := Resolve(System, dark); got != Dark {
		t.Errorf("Expected system on a dark terminal to resolve dark, got %s", got)
	}
	if got := Resolve(System, light); got != Light {
		t.Errorf("Expected system on a light terminal to resolve light, got %s", got)
	}
	if got := Resolve(System, nil); got != Light {
		t.Errorf("Expected system without a detector to resolve light, got %s", got)
	}
	if got := Resolve(Light, dark); got != Light {
		t.Errorf("Expected explicit light to win over the terminal, got %s", got)
	}
	if got := Resolve(Dark, light); got != Dark {
		t.Errorf("Expected explicit dark to win over the terminal, got %s", got)
	}
}

func TestToggle(t *testing.T) {
	if got := Toggle(Dark); got != Light {
		t.Errorf("Expected dark to toggle to light, got %s", got)
	}
	if got := Toggle(Light); got != Dark {
		t.Errorf("Expected light to toggle to dark, got %s", got)
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor(Dark).Name != Dark {
		t.Errorf("Expected dark palette for dark")
	}
	if PaletteFor(System).Name != Light {
		t.Errorf("Expected unresolved system to fall back to the light palette")
	}
	if PaletteFor(Light).Foreground == PaletteFor(Dark).Foreground {
		t.Errorf("Expected light and dark palettes to differ in foreground")
	}
}
