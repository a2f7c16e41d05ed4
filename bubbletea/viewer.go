// Package bubbletea provides a terminal UI viewer for diffs using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffutils"
	themes "github.com/fwojciec/diffutils/lipgloss"
)

// Compile-time interface verification.
var _ diffutils.Viewer = (*Viewer)(nil)

// statusBarHeight is the number of rows below the viewport.
const statusBarHeight = 1

// Model is the Bubble Tea model for viewing diffs.
type Model struct {
	diff   *diffutils.Diff
	cfg    renderConfig
	keymap KeyMap
	help   help.Model

	viewport   viewport.Model
	ready      bool
	width      int
	layout     layout
	pendingKey string
	clipboard  diffutils.Clipboard
	message    string // shown in the status bar until the next key
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer sets the lipgloss renderer, e.g. one with a fixed color
// profile in tests.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.cfg.renderer = r
	}
}

// WithTheme sets the color theme.
func WithTheme(t diffutils.Theme) ModelOption {
	return func(m *Model) {
		m.cfg.styles = t.Styles()
	}
}

// WithLanguageDetector enables language detection for syntax highlighting.
func WithLanguageDetector(d diffutils.LanguageDetector) ModelOption {
	return func(m *Model) {
		m.cfg.languageDetector = d
	}
}

// WithTokenizer enables syntax highlighting.
func WithTokenizer(t diffutils.Tokenizer) ModelOption {
	return func(m *Model) {
		m.cfg.tokenizer = t
	}
}

// WithWordDiffer enables word-level highlighting of changed line pairs.
func WithWordDiffer(d diffutils.WordDiffer) ModelOption {
	return func(m *Model) {
		m.cfg.wordDiffer = d
	}
}

// WithSideBySide starts the viewer in the side-by-side layout.
func WithSideBySide(on bool) ModelOption {
	return func(m *Model) {
		m.cfg.sideBySide = on
	}
}

// WithClipboard enables copying the current hunk as patch text.
func WithClipboard(c diffutils.Clipboard) ModelOption {
	return func(m *Model) {
		m.clipboard = c
	}
}

// NewModel creates a new Model with the given diff.
func NewModel(diff *diffutils.Diff, opts ...ModelOption) Model {
	m := Model{
		diff:   diff,
		keymap: DefaultKeyMap(),
		help:   help.New(),
	}
	m.cfg.diff = diff
	m.cfg.styles = themes.DefaultTheme().Styles()
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		// "gg" goes to the top.
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.viewport.GotoTop()
			m.pendingKey = ""
			return m, nil
		}
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}
		m.pendingKey = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keymap.NextHunk):
			m.gotoNext(m.layout.hunks)
			return m, nil
		case key.Matches(msg, m.keymap.PrevHunk):
			m.gotoPrev(m.layout.hunks)
			return m, nil
		case key.Matches(msg, m.keymap.NextFile):
			m.gotoNext(m.layout.files)
			return m, nil
		case key.Matches(msg, m.keymap.PrevFile):
			m.gotoPrev(m.layout.files)
			return m, nil
		case key.Matches(msg, m.keymap.ToggleLayout):
			m.cfg.sideBySide = !m.cfg.sideBySide
			m.rerender()
			return m, nil
		case key.Matches(msg, m.keymap.CopyHunk):
			m.copyHunk()
			return m, nil
		}
	case tea.WindowSizeMsg:
		widthChanged := m.width != msg.Width
		m.width = msg.Width
		height := max(msg.Height-statusBarHeight, 1)

		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
			m.rerender()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
			if widthChanged {
				m.rerender()
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// rerender lays the diff out for the current width, keeping the scroll
// position on the same file where possible.
func (m *Model) rerender() {
	file, _ := m.currentPosition(m.layout.files)

	m.cfg.width = m.width
	m.layout = renderDiff(m.cfg)
	m.viewport.SetContent(m.layout.content)

	if file > 0 && file <= len(m.layout.files) {
		m.viewport.SetYOffset(m.layout.files[file-1])
	}
}

// copyHunk puts the hunk at the top of the viewport on the clipboard as a
// single-file git patch.
func (m *Model) copyHunk() {
	if m.clipboard == nil || m.diff == nil {
		return
	}
	current, _ := m.currentPosition(m.layout.hunks)
	if current == 0 {
		m.message = "no hunk to copy"
		return
	}
	id := m.layout.hunkIDs[current-1]
	file := m.diff.Files[id.file]
	file.Hunks = []diffutils.Hunk{file.Hunks[id.hunk]}

	if err := m.clipboard.Copy(diffutils.FormatGit(&diffutils.Diff{Files: []diffutils.FileData{file}})); err != nil {
		m.message = "copy failed: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("copied hunk %d/%d", current, len(m.layout.hunks))
}

// gotoNext scrolls to the first position below the top of the viewport.
func (m *Model) gotoNext(positions []int) {
	for _, pos := range positions {
		if pos > m.viewport.YOffset {
			m.viewport.SetYOffset(pos)
			return
		}
	}
}

// gotoPrev scrolls to the last position above the top of the viewport.
func (m *Model) gotoPrev(positions []int) {
	for i := len(positions) - 1; i >= 0; i-- {
		if positions[i] < m.viewport.YOffset {
			m.viewport.SetYOffset(positions[i])
			return
		}
	}
}

// currentPosition returns the 1-based index of the last position at or
// above the top of the viewport, and the number of positions.
func (m Model) currentPosition(positions []int) (current, total int) {
	total = len(positions)
	for i, pos := range positions {
		if pos > m.viewport.YOffset {
			break
		}
		current = i + 1
	}
	return current, total
}

func (m Model) newStyle() lipgloss.Style {
	if m.cfg.renderer != nil {
		return m.cfg.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// statusBarView renders the position and help line.
func (m Model) statusBarView() string {
	bar := m.newStyle().
		Foreground(lipgloss.Color(m.cfg.styles.FileHeader.Foreground)).
		Background(lipgloss.Color(m.cfg.styles.FileHeader.Background))
	sep := bar.Foreground(lipgloss.Color(m.cfg.styles.LineNumber.Foreground)).Render(" │ ")

	file, files := m.currentPosition(m.layout.files)
	hunk, hunks := m.currentPosition(m.layout.hunks)

	mode := "unified"
	if m.cfg.sideBySide {
		mode = "side-by-side"
	}

	added, removed := 0, 0
	if m.diff != nil {
		added, removed = m.diff.Stats()
	}

	content := bar.Render(fmt.Sprintf("file %d/%d", file, files)) + sep +
		bar.Render(fmt.Sprintf("hunk %d/%d", hunk, hunks)) + sep +
		bar.Render(fmt.Sprintf("+%d -%d", added, removed)) + sep +
		bar.Render(mode) + sep +
		bar.Render(m.scrollPosition()) + sep
	if m.message != "" {
		content += bar.Render(m.message)
	} else {
		content += m.help.ShortHelpView(m.keymap.ShortHelp())
	}

	if w := lipgloss.Width(content); m.width > w {
		content += bar.Render(strings.Repeat(" ", m.width-w))
	}
	return content
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	switch {
	case m.viewport.AtTop():
		return "Top"
	case m.viewport.AtBottom():
		return "Bot"
	default:
		return fmt.Sprintf("%2d%%", int(m.viewport.ScrollPercent()*100))
	}
}

// Viewer implements diffutils.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []ModelOption
}

// NewViewer creates a new Viewer whose models are built with opts.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the diff and blocks until the user exits or ctx is done.
func (v *Viewer) View(ctx context.Context, diff *diffutils.Diff) error {
	m := NewModel(diff, v.opts...)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
