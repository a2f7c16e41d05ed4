package bubbletea_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/diffutils"
	"github.com/fwojciec/diffutils/bubbletea"
	"github.com/fwojciec/diffutils/chroma"
	themes "github.com/fwojciec/diffutils/lipgloss"
	"github.com/fwojciec/diffutils/mock"
	"github.com/fwojciec/diffutils/worddiff"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trueColorRenderer creates a lipgloss renderer that outputs true colors
// without touching global state.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

// plainRenderer creates a lipgloss renderer that outputs no escape codes.
func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func testDiff() *diffutils.Diff {
	return &diffutils.Diff{Files: []diffutils.FileData{
		{
			Source:      "main.go",
			Destination: "main.go",
			Change:      diffutils.ChangeModified,
			Hunks: []diffutils.Hunk{
				{
					OldStart: 1, OldCount: 3, NewStart: 1, NewCount: 4,
					Section: "func main()",
					Lines: []diffutils.Line{
						{Kind: diffutils.LineContext, Text: "package main", OldNumber: 1, NewNumber: 1},
						{Kind: diffutils.LineRemoved, Text: "var old line = 1", OldNumber: 2},
						{Kind: diffutils.LineAdded, Text: "var new line = 1", NewNumber: 2},
						{Kind: diffutils.LineAdded, Text: "another", NewNumber: 3},
						{Kind: diffutils.LineContext, Text: "}", OldNumber: 3, NewNumber: 4},
					},
				},
				{
					OldStart: 20, OldCount: 1, NewStart: 21, NewCount: 1,
					Lines: []diffutils.Line{
						{Kind: diffutils.LineRemoved, Text: "x := 1", OldNumber: 20},
						{Kind: diffutils.LineAdded, Text: "x := 2", NewNumber: 21, NoNewline: true},
					},
				},
			},
		},
		{
			Source:      "image.png",
			Destination: "image.png",
			Change:      diffutils.ChangeModified,
			Binary:      true,
		},
		{
			Source:      "script.sh",
			Destination: "script.sh",
			Change:      diffutils.ChangeModeOnly,
			OldMode:     0o100644,
			NewMode:     0o100755,
		},
	}}
}

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) bubbletea.Model {
	t.Helper()

	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	model, ok := m.(bubbletea.Model)
	require.True(t, ok)
	return model
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Init(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(testDiff())

	assert.Nil(t, m.Init(), "Init should return nil command")
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(&diffutils.Diff{})

	assert.Contains(t, m.View(), "Loading")
}

func TestModel_RendersEveryFile(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(testDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 40})

	view := m.View()

	assert.Contains(t, view, "── main.go ")
	assert.Contains(t, view, "+3 -2 ──")
	assert.Contains(t, view, "@@ -1,3 +1,4 @@ func main()")
	assert.Contains(t, view, "@@ -20,1 +21,1 @@")
	assert.Contains(t, view, "-var old line = 1")
	assert.Contains(t, view, "+var new line = 1")
	assert.Contains(t, view, "── image.png ")
	assert.Contains(t, view, "(binary file)")
	assert.Contains(t, view, "(mode 100644 → 100755)")
	assert.Contains(t, view, "file 1/3")
	assert.Contains(t, view, "unified")
}

func TestModel_RendersGutter(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(testDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 40})

	var removed, added string
	for _, line := range strings.Split(m.View(), "\n") {
		switch {
		case strings.Contains(line, "old line"):
			removed = line
		case strings.Contains(line, "new line"):
			added = line
		}
	}

	// Old and new number columns are four wide, followed by a spacer.
	assert.True(t, strings.HasPrefix(removed, "   2"+strings.Repeat(" ", 7)+"-var old line"), "got %q", removed)
	assert.True(t, strings.HasPrefix(added, strings.Repeat(" ", 8)+"2  +var new line"), "got %q", added)
}

func TestModel_RenameHeader(t *testing.T) {
	t.Parallel()

	diff := &diffutils.Diff{Files: []diffutils.FileData{{
		Source:      "old.go",
		Destination: "new.go",
		Change:      diffutils.ChangeRenamed,
		Similarity:  90,
	}}}

	m := update(t, bubbletea.NewModel(diff, bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 10})

	assert.Contains(t, m.View(), "old.go → new.go (renamed 90%)")
	assert.Contains(t, m.View(), "(no content changes)")
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(testDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 5})
	assert.Contains(t, m.View(), "hunk 0/2")

	m = update(t, m, keys("n"))
	assert.Contains(t, m.View(), "hunk 1/2")
	assert.Contains(t, m.View(), "@@ -1,3 +1,4 @@")

	m = update(t, m, keys("n"))
	assert.Contains(t, m.View(), "hunk 2/2")
	assert.Contains(t, m.View(), "@@ -20,1 +21,1 @@")

	m = update(t, m, keys("N"))
	assert.Contains(t, m.View(), "hunk 1/2")

	m = update(t, m, keys("]"))
	assert.Contains(t, m.View(), "file 2/3")
	assert.Contains(t, m.View(), "(binary file)")

	m = update(t, m, keys("["))
	assert.Contains(t, m.View(), "file 1/3")

	m = update(t, m, keys("G"))
	assert.Contains(t, m.View(), "Bot")

	m = update(t, m, keys("g"), keys("g"))
	assert.Contains(t, m.View(), "Top")
}

func TestModel_CopyHunk(t *testing.T) {
	t.Parallel()

	var copied []string
	clip := &mock.Clipboard{CopyFn: func(content string) error {
		copied = append(copied, content)
		return nil
	}}

	m := update(t, bubbletea.NewModel(testDiff(),
		bubbletea.WithRenderer(plainRenderer()),
		bubbletea.WithClipboard(clip),
	), tea.WindowSizeMsg{Width: 80, Height: 5})

	m = update(t, m, keys("y"))
	assert.Contains(t, m.View(), "no hunk to copy")
	assert.Empty(t, copied)

	m = update(t, m, keys("n"), keys("n"), keys("y"))
	assert.Contains(t, m.View(), "copied hunk 2/2")
	require.Len(t, copied, 1)
	assert.Contains(t, copied[0], "diff --git a/main.go b/main.go\n")
	assert.Contains(t, copied[0], "@@ -20,1 +21,1 @@\n-x := 1\n+x := 2\n")
	assert.NotContains(t, copied[0], "package main")

	m = update(t, m, keys("j"))
	assert.NotContains(t, m.View(), "copied hunk", "message clears on the next key")
}

func TestModel_CopyHunkError(t *testing.T) {
	t.Parallel()

	clip := &mock.Clipboard{CopyFn: func(string) error {
		return errors.New("no clipboard utility found")
	}}

	m := update(t, bubbletea.NewModel(testDiff(),
		bubbletea.WithRenderer(plainRenderer()),
		bubbletea.WithClipboard(clip),
	), tea.WindowSizeMsg{Width: 80, Height: 5}, keys("n"), keys("y"))

	assert.Contains(t, m.View(), "copy failed: no clipboard utility found")
}

func TestModel_ToggleSideBySide(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(testDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 40}, keys("s"))

	view := m.View()
	assert.Contains(t, view, "side-by-side")

	var paired bool
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "-var old line") && strings.Contains(line, "│") && strings.Contains(line, "+var new line") {
			paired = true
		}
	}
	assert.True(t, paired, "removed and added lines share a row")

	m = update(t, m, keys("s"))
	assert.Contains(t, m.View(), "unified")
}

func TestModel_SideBySideOption(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(testDiff(),
		bubbletea.WithRenderer(plainRenderer()),
		bubbletea.WithSideBySide(true),
	), tea.WindowSizeMsg{Width: 80, Height: 40})

	assert.Contains(t, m.View(), "side-by-side")
}

func TestModel_WordDiffHighlight(t *testing.T) {
	t.Parallel()

	theme := themes.DarkTheme()
	// Background of the word highlight for added lines, as an SGR parameter.
	highlight := "48;2;158;206;106"
	require.Equal(t, "#9ece6a", theme.Styles().AddedHighlight.Background)

	plain := update(t, bubbletea.NewModel(testDiff(),
		bubbletea.WithRenderer(trueColorRenderer()),
		bubbletea.WithTheme(theme),
	), tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.NotContains(t, plain.View(), highlight)

	words := update(t, bubbletea.NewModel(testDiff(),
		bubbletea.WithRenderer(trueColorRenderer()),
		bubbletea.WithTheme(theme),
		bubbletea.WithWordDiffer(worddiff.NewDiffer()),
	), tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Contains(t, words.View(), highlight)
}

func TestModel_SyntaxHighlight(t *testing.T) {
	t.Parallel()

	theme := themes.DarkTheme()
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	require.NoError(t, err)

	m := update(t, bubbletea.NewModel(testDiff(),
		bubbletea.WithRenderer(trueColorRenderer()),
		bubbletea.WithTheme(theme),
		bubbletea.WithLanguageDetector(chroma.NewDetector()),
		bubbletea.WithTokenizer(tokenizer),
	), tea.WindowSizeMsg{Width: 80, Height: 40})

	// Keyword color #bb9af7 on "package".
	assert.Contains(t, m.View(), "38;2;187;154;247")
}

func TestModel_ViewAfterReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(testDiff())
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("package main"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keys("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_QuitOnCtrlC(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, bubbletea.NewModel(&diffutils.Diff{}),
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}
