package bubbletea

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/diffutils"
)

// renderConfig holds all rendering parameters for renderDiff.
type renderConfig struct {
	diff             *diffutils.Diff
	styles           diffutils.Styles
	renderer         *lipgloss.Renderer
	width            int
	sideBySide       bool
	languageDetector diffutils.LanguageDetector
	tokenizer        diffutils.Tokenizer
	wordDiffer       diffutils.WordDiffer
}

// hunkHighlighter is implemented by tokenizers that can style a whole hunk
// with cross-line context.
type hunkHighlighter interface {
	HighlightHunk(language string, h diffutils.Hunk) [][]diffutils.Token
}

// layout is a rendered diff together with the content line on which each
// file header and each hunk header starts.
type layout struct {
	content string
	files   []int
	hunks   []int
	hunkIDs []hunkID // parallel to hunks
}

// hunkID locates a hunk within the diff.
type hunkID struct {
	file, hunk int
}

// minGutterWidth is the minimum width of each line number column in the gutter.
const minGutterWidth = 4

// minUnchangedRatio is the share of a paired line that must be unchanged
// for word-level highlighting to be shown.
const minUnchangedRatio = 0.30

// painter turns color pairs into lipgloss styles bound to one renderer.
type painter struct {
	renderer *lipgloss.Renderer
	styles   diffutils.Styles

	fileHeader, hunkHeader, separator lipgloss.Style
	added, removed, context, lineNum  lipgloss.Style
	addedHi, removedHi                lipgloss.Style
}

func newPainter(styles diffutils.Styles, renderer *lipgloss.Renderer) *painter {
	p := &painter{renderer: renderer, styles: styles}
	p.fileHeader = p.style(styles.FileHeader)
	p.hunkHeader = p.style(styles.HunkHeader)
	p.separator = p.style(styles.FileSeparator)
	p.added = p.style(styles.Added)
	p.removed = p.style(styles.Removed)
	p.context = p.style(styles.Context)
	p.lineNum = p.style(styles.LineNumber)
	p.addedHi = p.style(styles.AddedHighlight)
	p.removedHi = p.style(styles.RemovedHighlight)
	return p
}

func (p *painter) newStyle() lipgloss.Style {
	if p.renderer != nil {
		return p.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (p *painter) style(cp diffutils.ColorPair) lipgloss.Style {
	style := p.newStyle()
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// line returns the base and word-highlight styles and the color pair for a
// line kind.
func (p *painter) line(kind diffutils.LineKind) (base, highlight lipgloss.Style, colors diffutils.ColorPair) {
	switch kind {
	case diffutils.LineAdded:
		return p.added, p.addedHi, p.styles.Added
	case diffutils.LineRemoved:
		return p.removed, p.removedHi, p.styles.Removed
	default:
		return p.context, p.context, p.styles.Context
	}
}

// lineWriter accumulates rendered lines and counts them.
type lineWriter struct {
	sb    strings.Builder
	lines int
}

func (w *lineWriter) writeLine(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
	w.lines++
}

// renderDiff converts a Diff to a styled string. Every file is shown;
// files without hunks get a one-line note describing the change.
func renderDiff(cfg renderConfig) layout {
	diff := cfg.diff
	if diff == nil {
		return layout{}
	}

	p := newPainter(cfg.styles, cfg.renderer)
	gutterWidth := calculateGutterWidth(diff)

	var out layout
	var w lineWriter
	for fi, file := range diff.Files {
		out.files = append(out.files, w.lines)
		w.writeLine(p.fileHeader.Render(fileHeader(file, cfg.width)))

		if len(file.Hunks) == 0 {
			w.writeLine(p.context.Render(fileNote(file)))
			continue
		}

		var language string
		if cfg.languageDetector != nil {
			language = cfg.languageDetector.DetectFromPath(file.Path())
		}

		for hi, hunk := range file.Hunks {
			out.hunks = append(out.hunks, w.lines)
			out.hunkIDs = append(out.hunkIDs, hunkID{fi, hi})
			w.writeLine(p.hunkHeader.Render(formatHunkHeader(hunk)))

			segments := pairSegments(hunk, cfg.wordDiffer)
			if cfg.sideBySide {
				renderSideBySide(&w, p, hunk, segments, gutterWidth, cfg.width)
				continue
			}
			tokens := highlight(cfg.tokenizer, language, hunk)
			renderUnified(&w, p, hunk, segments, tokens, gutterWidth, cfg.width)
		}
	}

	out.content = w.sb.String()
	return out
}

func renderUnified(w *lineWriter, p *painter, hunk diffutils.Hunk, segments map[*diffutils.Line][]diffutils.Segment, tokens [][]diffutils.Token, gutterWidth, width int) {
	for i := range hunk.Lines {
		line := &hunk.Lines[i]
		base, hi, colors := p.line(line.Kind)

		gutterStyle := p.lineNum
		if line.Kind != diffutils.LineContext {
			gutterStyle = base
		}

		var sb strings.Builder
		sb.WriteString(formatGutter(line.OldNumber, line.NewNumber, gutterWidth, gutterStyle))
		sb.WriteString(base.Render(" "))

		prefix := string(line.Kind.Marker())
		bodyWidth := width - (2*gutterWidth + 3)
		switch {
		case segments[line] != nil:
			sb.WriteString(renderSegments(prefix, segments[line], base, hi, bodyWidth))
		case i < len(tokens) && tokens[i] != nil:
			sb.WriteString(renderTokens(p, prefix, tokens[i], colors, bodyWidth))
		case line.Kind == diffutils.LineContext:
			sb.WriteString(base.Render(prefix + ExpandTabs(line.Text, 1)))
		default:
			sb.WriteString(base.Render(padLine(prefix+ExpandTabs(line.Text, 1), bodyWidth)))
		}
		if line.NoNewline {
			sb.WriteString(p.lineNum.Render(" ⏎"))
		}
		w.writeLine(sb.String())
	}
}

func renderSideBySide(w *lineWriter, p *painter, hunk diffutils.Hunk, segments map[*diffutils.Line][]diffutils.Segment, gutterWidth, width int) {
	// Each half: number, space, marker, text.
	half := max((width-1)/2, gutterWidth+3)
	textWidth := half - gutterWidth - 2

	side := func(line *diffutils.Line, number int) string {
		if line == nil {
			return strings.Repeat(" ", half)
		}
		base, hi, _ := p.line(line.Kind)
		gutterStyle := p.lineNum
		if line.Kind != diffutils.LineContext {
			gutterStyle = base
		}

		var sb strings.Builder
		sb.WriteString(gutterStyle.Render(formatLineNum(number, gutterWidth) + " "))
		prefix := string(line.Kind.Marker())
		if segs := segments[line]; segs != nil {
			sb.WriteString(renderSegments(prefix, clipSegments(segs, textWidth), base, hi, textWidth+1))
		} else {
			text := ansi.Truncate(ExpandTabs(line.Text, 1), textWidth, "…")
			sb.WriteString(base.Render(padLine(prefix+text, textWidth+1)))
		}
		return sb.String()
	}

	for _, row := range diffutils.SideBySide(hunk) {
		var oldNum, newNum int
		if row.Left != nil {
			oldNum = row.Left.OldNumber
		}
		if row.Right != nil {
			newNum = row.Right.NewNumber
		}
		w.writeLine(side(row.Left, oldNum) + p.separator.Render("│") + side(row.Right, newNum))
	}
}

// clipSegments truncates segments to a total display width of n.
func clipSegments(segs []diffutils.Segment, n int) []diffutils.Segment {
	var out []diffutils.Segment
	used := 0
	for _, seg := range segs {
		text := ExpandTabs(seg.Text, used+1)
		if used+lipgloss.Width(text) > n {
			out = append(out, diffutils.Segment{Text: ansi.Truncate(text, n-used, "…"), Changed: seg.Changed})
			break
		}
		out = append(out, diffutils.Segment{Text: text, Changed: seg.Changed})
		used += lipgloss.Width(text)
	}
	return out
}

// highlight returns syntax tokens per hunk line, or nil when highlighting
// is unavailable for the language.
func highlight(tokenizer diffutils.Tokenizer, language string, hunk diffutils.Hunk) [][]diffutils.Token {
	if tokenizer == nil || language == "" {
		return nil
	}
	if h, ok := tokenizer.(hunkHighlighter); ok {
		return h.HighlightHunk(language, hunk)
	}
	tokens := make([][]diffutils.Token, len(hunk.Lines))
	for i, line := range hunk.Lines {
		tokens[i] = tokenizer.Tokenize(language, line.Text)
		if tokens[i] == nil {
			return nil
		}
	}
	return tokens
}

// pairSegments computes word-level segments for each removed line paired
// with an added line. Pairs with too little in common are left out and
// render as whole-line changes.
func pairSegments(hunk diffutils.Hunk, wordDiffer diffutils.WordDiffer) map[*diffutils.Line][]diffutils.Segment {
	if wordDiffer == nil {
		return nil
	}

	result := make(map[*diffutils.Line][]diffutils.Segment)
	for _, row := range diffutils.SideBySide(hunk) {
		if row.Kind != diffutils.RowChanged {
			continue
		}
		oldSegs, newSegs := wordDiffer.Diff(row.Left.Text, row.Right.Text)
		if mostlyUnchanged(oldSegs) && mostlyUnchanged(newSegs) {
			result[row.Left] = oldSegs
			result[row.Right] = newSegs
		}
	}
	return result
}

func mostlyUnchanged(segments []diffutils.Segment) bool {
	var unchanged, total int
	for _, seg := range segments {
		total += len(seg.Text)
		if !seg.Changed {
			unchanged += len(seg.Text)
		}
	}
	return total > 0 && float64(unchanged)/float64(total) >= minUnchangedRatio
}

// renderSegments renders a line with changed segments in the highlight style,
// padded to width with the base style.
func renderSegments(prefix string, segments []diffutils.Segment, base, highlight lipgloss.Style, width int) string {
	var sb strings.Builder
	sb.WriteString(base.Render(prefix))
	col := lipgloss.Width(prefix)
	for _, seg := range segments {
		text := ExpandTabs(seg.Text, col)
		col += lipgloss.Width(text)
		if seg.Changed {
			sb.WriteString(highlight.Render(text))
		} else {
			sb.WriteString(base.Render(text))
		}
	}
	if col < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-col)))
	}
	return sb.String()
}

// renderTokens renders a line with syntax foregrounds over the diff
// background of the line kind.
func renderTokens(p *painter, prefix string, tokens []diffutils.Token, colors diffutils.ColorPair, width int) string {
	base := p.style(colors)

	var sb strings.Builder
	sb.WriteString(base.Render(prefix))
	col := lipgloss.Width(prefix)
	for _, tok := range tokens {
		fg := tok.Style.Foreground
		if fg == "" {
			fg = colors.Foreground
		}
		style := p.style(diffutils.ColorPair{Foreground: fg, Background: colors.Background}).Bold(tok.Style.Bold)

		text := ExpandTabs(tok.Text, col)
		col += lipgloss.Width(text)
		sb.WriteString(style.Render(text))
	}
	if colors.Background != "" && col < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-col)))
	}
	return sb.String()
}

// fileHeader formats the rule shown above a file:
// "── path ───────── +N -M ──", with the old path for renames and copies.
func fileHeader(file diffutils.FileData, width int) string {
	title := file.Path()
	switch file.Change {
	case diffutils.ChangeRenamed, diffutils.ChangeCopied:
		title = fmt.Sprintf("%s → %s (%s", file.Source, file.Destination, file.Change)
		if file.Similarity > 0 {
			title += fmt.Sprintf(" %d%%", file.Similarity)
		}
		title += ")"
	case diffutils.ChangeAdded, diffutils.ChangeRemoved:
		title += " (" + file.Change.String() + ")"
	}

	added, removed := file.Stats()
	middle := "── " + title + " "
	end := fmt.Sprintf(" +%d -%d ──", added, removed)

	fill := max(width-lipgloss.Width(middle)-lipgloss.Width(end), 3)
	return middle + strings.Repeat("─", fill) + end
}

// fileNote describes a file that has no hunks.
func fileNote(file diffutils.FileData) string {
	switch {
	case file.Binary:
		return "(binary file)"
	case file.Change == diffutils.ChangeModeOnly:
		return fmt.Sprintf("(mode %s → %s)", formatMode(file.OldMode), formatMode(file.NewMode))
	case file.Change == diffutils.ChangeAdded, file.Change == diffutils.ChangeRemoved:
		return "(empty)"
	default:
		return "(no content changes)"
	}
}

func formatMode(m fs.FileMode) string {
	return fmt.Sprintf("%06o", uint32(m))
}

// calculateGutterWidth determines the gutter width from the largest line
// number in the diff.
func calculateGutterWidth(diff *diffutils.Diff) int {
	maxLineNum := 0
	for _, file := range diff.Files {
		for _, hunk := range file.Hunks {
			maxLineNum = max(maxLineNum, hunk.OldStart+hunk.OldCount, hunk.NewStart+hunk.NewCount)
		}
	}
	return max(len(fmt.Sprint(maxLineNum)), minGutterWidth)
}

// formatGutter formats the old and new line numbers. A missing number
// (0) leaves its column blank.
func formatGutter(oldLineNum, newLineNum, width int, style lipgloss.Style) string {
	return style.Render(formatLineNum(oldLineNum, width) + " " + formatLineNum(newLineNum, width) + " ")
}

func formatLineNum(num, width int) string {
	if num == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, num)
}

// formatHunkHeader formats a hunk header in standard diff format.
func formatHunkHeader(hunk diffutils.Hunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
	if hunk.Section != "" {
		header += " " + hunk.Section
	}
	return header
}

// padLine pads a line with spaces to the specified display width.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}
