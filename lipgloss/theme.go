// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.Theme = (*Theme)(nil)

// Theme implements diffutils.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  diffutils.Styles
	palette diffutils.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() diffutils.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() diffutils.Palette {
	return t.palette
}

// scheme is the small set of colors a theme is derived from.
type scheme struct {
	palette diffutils.Palette

	added, removed       diffutils.Color // line foregrounds
	addedBg, removedBg   diffutils.Color // subtle line backgrounds
	muted, accent, title diffutils.Color
	surface, rule        diffutils.Color
	highlightText        diffutils.Color // text drawn on the bright word highlight
}

func newTheme(s scheme) *Theme {
	pair := func(fg, bg diffutils.Color) diffutils.ColorPair {
		return diffutils.ColorPair{Foreground: string(fg), Background: string(bg)}
	}
	return &Theme{
		palette: s.palette,
		styles: diffutils.Styles{
			Added:            pair(s.added, s.addedBg),
			Removed:          pair(s.removed, s.removedBg),
			Context:          pair(s.muted, ""),
			HunkHeader:       pair(s.accent, ""),
			FileHeader:       pair(s.title, s.surface),
			FileSeparator:    pair(s.rule, ""),
			LineNumber:       pair(s.muted, ""),
			AddedHighlight:   pair(s.highlightText, s.added),
			RemovedHighlight: pair(s.highlightText, s.removed),
		},
	}
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme registered under name ("dark" or "light").
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// DarkTheme returns a theme for dark terminal backgrounds. Line backgrounds
// stay very dark so syntax colors remain readable on top of them.
func DarkTheme() *Theme {
	return newTheme(scheme{
		palette: diffutils.Palette{
			Background:  "#1a1b26",
			Foreground:  "#c0caf5",
			Keyword:     "#bb9af7",
			String:      "#9ece6a",
			Number:      "#ff9e64",
			Comment:     "#565f89",
			Operator:    "#89ddff",
			Function:    "#7aa2f7",
			Type:        "#2ac3de",
			Constant:    "#ff9e64",
			Punctuation: "#a9b1d6",
		},
		added:         "#9ece6a",
		removed:       "#f7768e",
		addedBg:       "#0f2e1a",
		removedBg:     "#3b1219",
		muted:         "#565f89",
		accent:        "#7aa2f7",
		title:         "#e0af68",
		surface:       "#24283b",
		rule:          "#3b4261",
		highlightText: "#1a1b26",
	})
}

// LightTheme returns a theme for light terminal backgrounds.
func LightTheme() *Theme {
	return newTheme(scheme{
		palette: diffutils.Palette{
			Background:  "#ffffff",
			Foreground:  "#24292f",
			Keyword:     "#cf222e",
			String:      "#0a3069",
			Number:      "#0550ae",
			Comment:     "#6e7781",
			Operator:    "#953800",
			Function:    "#8250df",
			Type:        "#953800",
			Constant:    "#0550ae",
			Punctuation: "#57606a",
		},
		added:         "#116329",
		removed:       "#82071e",
		addedBg:       "#dafbe1",
		removedBg:     "#ffebe9",
		muted:         "#8c959f",
		accent:        "#0969da",
		title:         "#24292f",
		surface:       "#f6f8fa",
		rule:          "#d0d7de",
		highlightText: "#ffffff",
	})
}
