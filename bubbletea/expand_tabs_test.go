package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffutils/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestExpandTabs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		col  int
		want string
	}{
		{name: "blank context line", text: "", col: 1, want: ""},
		{name: "line without tabs is unchanged", text: "package main", col: 1, want: "package main"},
		{
			name: "go indentation after the marker column",
			text: "\treturn err",
			col:  1,
			want: "       return err",
		},
		{
			name: "two levels of indentation",
			text: "\t\tx++",
			col:  1,
			want: strings.Repeat(" ", 15) + "x++",
		},
		{
			name: "struct field alignment",
			text: "\tName\tstring",
			col:  1,
			want: "       Name    string",
		},
		{
			name: "makefile recipe",
			text: "\tgo test ./...",
			col:  1,
			want: "       go test ./...",
		},
		{
			name: "tab separated values",
			text: "id\tpath\tsize",
			col:  0,
			want: "id      path    size",
		},
		{
			name: "word diff segment starting mid-line",
			text: "\t// done",
			col:  13,
			want: "   // done",
		},
		{
			name: "segment starting on a tab stop",
			text: "\tnil",
			col:  16,
			want: "        nil",
		},
		{
			name: "wide characters count as two columns",
			text: "名前\t:=",
			col:  1,
			want: "名前   :=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bubbletea.ExpandTabs(tt.text, tt.col))
		})
	}
}

func TestExpandTabs_ChangedLinesStayAligned(t *testing.T) {
	t.Parallel()

	// A removed and an added line that differ only in the value column
	// must put that column at the same display offset.
	removed := "-" + bubbletea.ExpandTabs("\tTimeout\t= 10", 1)
	added := "+" + bubbletea.ExpandTabs("\tTimeout\t= 30", 1)

	assert.Equal(t, lipgloss.Width(removed), lipgloss.Width(added))
	assert.Equal(t, strings.Index(removed, "="), strings.Index(added, "="))
	assert.Equal(t, 16, strings.Index(added, "="))
}
