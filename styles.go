package diffutils

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements in a diff.
type Styles struct {
	Added            ColorPair // Style for added lines (+)
	Removed          ColorPair // Style for removed lines (-)
	Context          ColorPair // Style for context lines (unchanged)
	HunkHeader       ColorPair // Style for hunk headers (@@ ... @@)
	FileHeader       ColorPair // Style for file headers
	FileSeparator    ColorPair // Style for the rule between files
	LineNumber       ColorPair // Style for line numbers in the gutter
	AddedHighlight   ColorPair // Style for changed text within added lines (word-level diff)
	RemovedHighlight ColorPair // Style for changed text within removed lines (word-level diff)
}

// Color is a hex color string such as "#89b4fa".
type Color string

// Palette holds the semantic colors syntax highlighting draws from.
type Palette struct {
	Background Color
	Foreground Color

	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color
}

// Theme provides styles for rendering diffs.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
