package patch

import (
	"regexp"
	"strings"

	"github.com/fwojciec/diffutils"
)

// Format identifies the diff syntax a segment was found in.
type Format int

// Patch formats.
const (
	FormatUnified Format = iota
	FormatGit
)

func (f Format) String() string {
	if f == FormatGit {
		return "git"
	}
	return "unified"
}

// Segment is the span of a patch belonging to one file.
type Segment struct {
	Format Format
	Start  int      // Index of the segment's first line within the patch
	Lines  []string // The boundary line first, then everything up to the next boundary
}

// Segmentation is the result of splitting a patch into per-file segments.
// Failures holds boundary lines that looked like a file header but could not
// be matched to one; their content is not part of any segment.
type Segmentation struct {
	Format   Format
	Segments []Segment
	Failures []*diffutils.FileError
}

const (
	gitHeaderPrefix    = "diff --git "
	signatureSeparator = "-- "
)

var (
	hunkMarkerRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

	// A damaged marker such as "@ -1 +1 @" or "@@-1,2 +1,2".
	looseMarkerRe = regexp.MustCompile(`^@+ ?-\d+(?:,\d+)? +\+\d+`)

	// git format-patch appends "-- \n<version>\n\n" after the last file.
	signatureRe = regexp.MustCompile(`\n-- \n\S*\n\n$`)
)

// SegmentGit splits lines at "diff --git " headers found outside hunks.
func SegmentGit(lines []string) Segmentation {
	return segment(lines, FormatGit, func(lines []string, i int) bool {
		return strings.HasPrefix(lines[i], gitHeaderPrefix)
	})
}

// SegmentUnified splits lines at "--- " lines that are directly followed by
// a "+++ " line, outside hunks.
func SegmentUnified(lines []string) Segmentation {
	return segment(lines, FormatUnified, func(lines []string, i int) bool {
		return strings.HasPrefix(lines[i], "--- ") &&
			i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ")
	})
}

func segment(lines []string, format Format, isBoundary func(lines []string, i int) bool) Segmentation {
	result := Segmentation{Format: format}
	var tracker hunkTracker
	var cur *Segment

	flush := func() {
		if cur != nil {
			result.Segments = append(result.Segments, *cur)
			cur = nil
		}
	}

	for i, line := range lines {
		if tracker.feed(line) || !isBoundary(lines, i) {
			if cur != nil {
				cur.Lines = append(cur.Lines, line)
			}
			continue
		}

		flush()
		if format == FormatGit {
			if _, _, ok := splitGitPaths(line[len(gitHeaderPrefix):]); !ok {
				result.Failures = append(result.Failures, &diffutils.FileError{
					Line:   i + 1,
					Reason: "malformed git header",
				})
				continue
			}
		}
		cur = &Segment{Format: format, Start: i, Lines: []string{line}}
	}
	flush()

	return result
}

// hunkTracker follows hunk bodies while scanning so that body lines which
// happen to look like headers are not mistaken for boundaries.
type hunkTracker struct {
	old, new int // Lines still expected on each side of the open hunk
}

func (t *hunkTracker) open() bool {
	return t.old > 0 || t.new > 0
}

// feed advances the tracker by one line and reports whether the line was
// consumed as part of an open hunk's body.
func (t *hunkTracker) feed(line string) bool {
	if t.open() {
		switch {
		case line == "" || line[0] == ' ':
			t.old--
			t.new--
		case line[0] == '-':
			t.old--
		case line[0] == '+':
			t.new--
		case line[0] == '\\':
		default:
			// Truncated hunk: the line belongs to whatever follows.
			t.old, t.new = 0, 0
			return t.start(line)
		}
		if !t.open() {
			t.old, t.new = 0, 0
		}
		return true
	}
	return t.start(line)
}

// start opens a hunk if line is a valid marker. The marker line itself is
// not body, so start always reports false.
func (t *hunkTracker) start(line string) bool {
	m, ok := parseMarker(line)
	if ok {
		t.old, t.new = m.OldCount, m.NewCount
	}
	return false
}

// splitLines splits patch text into lines, dropping the empty element after
// a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// cropSignature removes a trailing git format-patch signature.
func cropSignature(text string) string {
	if loc := signatureRe.FindStringIndex(text); loc != nil {
		return text[:loc[0]+1]
	}
	return text
}
