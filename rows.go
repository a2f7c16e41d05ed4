package diffutils

// RowKind classifies a side-by-side row.
type RowKind int

// Row kinds.
const (
	RowContext RowKind = iota
	RowRemoved         // Left only
	RowAdded           // Right only
	RowChanged         // Removed line paired with an added line
)

// Row is one line of a side-by-side rendering of a hunk.
// Left is nil for RowAdded, Right is nil for RowRemoved.
type Row struct {
	Kind  RowKind
	Left  *Line
	Right *Line
}

// SideBySide pairs the lines of a hunk into rows. Each run of removed lines
// is paired line by line with the run of added lines that directly follows
// it; the longer run spills into one-sided rows.
func SideBySide(h Hunk) []Row {
	rows := make([]Row, 0, len(h.Lines))
	lines := h.Lines

	for i := 0; i < len(lines); {
		if lines[i].Kind == LineContext {
			rows = append(rows, Row{Kind: RowContext, Left: &lines[i], Right: &lines[i]})
			i++
			continue
		}

		removedStart := i
		for i < len(lines) && lines[i].Kind == LineRemoved {
			i++
		}
		addedStart := i
		for i < len(lines) && lines[i].Kind == LineAdded {
			i++
		}
		removed := lines[removedStart:addedStart]
		added := lines[addedStart:i]

		n := max(len(removed), len(added))
		for j := 0; j < n; j++ {
			var row Row
			switch {
			case j < len(removed) && j < len(added):
				row = Row{Kind: RowChanged, Left: &removed[j], Right: &added[j]}
			case j < len(removed):
				row = Row{Kind: RowRemoved, Left: &removed[j]}
			default:
				row = Row{Kind: RowAdded, Right: &added[j]}
			}
			rows = append(rows, row)
		}
	}

	return rows
}
