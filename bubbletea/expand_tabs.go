package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the distance between tab stops.
const tabWidth = 8

// ExpandTabs replaces tabs with spaces up to the next tab stop. startCol is
// the display column s begins at, so text following a gutter or a diff
// marker lines up with the same text in an editor.
func ExpandTabs(s string, startCol int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var sb strings.Builder
	col := startCol
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
			continue
		}
		n := tabWidth - col%tabWidth
		sb.WriteString(strings.Repeat(" ", n))
		col += n
	}
	return sb.String()
}
