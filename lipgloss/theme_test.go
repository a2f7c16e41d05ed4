package lipgloss_test

import (
	"testing"

	"github.com/fwojciec/diffutils"
	"github.com/fwojciec/diffutils/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPairs(s diffutils.Styles) map[string]diffutils.ColorPair {
	return map[string]diffutils.ColorPair{
		"Added":            s.Added,
		"Removed":          s.Removed,
		"Context":          s.Context,
		"HunkHeader":       s.HunkHeader,
		"FileHeader":       s.FileHeader,
		"FileSeparator":    s.FileSeparator,
		"LineNumber":       s.LineNumber,
		"AddedHighlight":   s.AddedHighlight,
		"RemovedHighlight": s.RemovedHighlight,
	}
}

func TestThemes(t *testing.T) {
	t.Parallel()

	themes := map[string]diffutils.Theme{
		"dark":  lipgloss.DarkTheme(),
		"light": lipgloss.LightTheme(),
	}

	for name, theme := range themes {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			styles := theme.Styles()
			for field, pair := range allPairs(styles) {
				assert.NotEmpty(t, pair.Foreground, "%s foreground", field)
			}
			assert.NotEmpty(t, styles.Added.Background)
			assert.NotEmpty(t, styles.Removed.Background)
			assert.NotEqual(t, styles.Added.Foreground, styles.Removed.Foreground)

			// Word highlights invert the line colors.
			assert.Equal(t, styles.Added.Foreground, styles.AddedHighlight.Background)
			assert.Equal(t, styles.Removed.Foreground, styles.RemovedHighlight.Background)

			p := theme.Palette()
			for _, c := range []diffutils.Color{p.Background, p.Foreground, p.Keyword, p.String, p.Number, p.Comment, p.Operator, p.Function, p.Type, p.Constant, p.Punctuation} {
				assert.Regexp(t, `^#[0-9a-f]{6}$`, string(c))
			}
		})
	}
}

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lipgloss.DarkTheme().Styles(), lipgloss.DefaultTheme().Styles())
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		t.Parallel()

		dark, err := lipgloss.ThemeByName("dark")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.DarkTheme().Palette(), dark.Palette())

		light, err := lipgloss.ThemeByName("light")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.LightTheme().Palette(), light.Palette())

		def, err := lipgloss.ThemeByName("")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.DefaultTheme().Palette(), def.Palette())
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := lipgloss.ThemeByName("solarized")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "solarized")
	})
}
