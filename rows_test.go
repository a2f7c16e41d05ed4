package diffutils_test

import (
	"testing"

	"github.com/fwojciec/diffutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rowText struct {
	kind        diffutils.RowKind
	left, right string
}

func rowTexts(rows []diffutils.Row) []rowText {
	out := make([]rowText, len(rows))
	for i, r := range rows {
		out[i].kind = r.Kind
		if r.Left != nil {
			out[i].left = r.Left.Text
		}
		if r.Right != nil {
			out[i].right = r.Right.Text
		}
	}
	return out
}

func TestSideBySide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []diffutils.Line
		want  []rowText
	}{
		{
			name: "pairs removed with following added",
			lines: []diffutils.Line{
				line(diffutils.LineContext, "a"),
				line(diffutils.LineRemoved, "b"),
				line(diffutils.LineAdded, "B"),
				line(diffutils.LineContext, "c"),
			},
			want: []rowText{
				{diffutils.RowContext, "a", "a"},
				{diffutils.RowChanged, "b", "B"},
				{diffutils.RowContext, "c", "c"},
			},
		},
		{
			name: "longer removed run spills left",
			lines: []diffutils.Line{
				line(diffutils.LineRemoved, "x"),
				line(diffutils.LineRemoved, "y"),
				line(diffutils.LineAdded, "X"),
			},
			want: []rowText{
				{diffutils.RowChanged, "x", "X"},
				{diffutils.RowRemoved, "y", ""},
			},
		},
		{
			name: "longer added run spills right",
			lines: []diffutils.Line{
				line(diffutils.LineRemoved, "x"),
				line(diffutils.LineAdded, "X"),
				line(diffutils.LineAdded, "Y"),
			},
			want: []rowText{
				{diffutils.RowChanged, "x", "X"},
				{diffutils.RowAdded, "", "Y"},
			},
		},
		{
			name: "added before removed is not paired",
			lines: []diffutils.Line{
				line(diffutils.LineAdded, "new"),
				line(diffutils.LineRemoved, "old"),
			},
			want: []rowText{
				{diffutils.RowAdded, "", "new"},
				{diffutils.RowRemoved, "old", ""},
			},
		},
		{
			name:  "empty hunk",
			lines: nil,
			want:  []rowText{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := diffutils.SideBySide(diffutils.Hunk{Lines: tt.lines})

			assert.Equal(t, tt.want, rowTexts(rows))
		})
	}
}

func TestSideBySide_PointsIntoHunk(t *testing.T) {
	t.Parallel()

	h := diffutils.Hunk{Lines: []diffutils.Line{line(diffutils.LineContext, "a")}}

	rows := diffutils.SideBySide(h)

	require.Len(t, rows, 1)
	assert.Same(t, &h.Lines[0], rows[0].Left)
	assert.Same(t, rows[0].Left, rows[0].Right)
}
