package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/diffutils"
)

// ParseSegment converts one segment into a FileData. A failure is reported
// as a *diffutils.FileError and leaves sibling segments unaffected; whether
// it invalidates the whole patch is up to the caller.
func ParseSegment(seg Segment) (diffutils.FileData, error) {
	var (
		st   headerState
		next int
		err  error
	)
	if seg.Format == FormatGit {
		st, next, err = parseGitHeader(seg.Lines)
	} else {
		st, next, err = parseUnifiedHeader(seg.Lines)
	}
	if err != nil {
		return diffutils.FileData{}, segmentError(seg, st.file, err)
	}

	if !st.file.Binary {
		hunks, err := parseHunks(seg.Lines[next:])
		if err != nil {
			return diffutils.FileData{}, segmentError(seg, st.file, err)
		}
		st.file.Hunks = hunks
	}

	if seg.Format == FormatUnified && len(st.file.Hunks) == 0 {
		return diffutils.FileData{}, segmentError(seg, st.file, fmt.Errorf("no hunks"))
	}

	return st.finish(), nil
}

func segmentError(seg Segment, f diffutils.FileData, err error) *diffutils.FileError {
	return &diffutils.FileError{
		Line:   seg.Start + 1,
		Path:   f.Path(),
		Reason: err.Error(),
	}
}

// parseHunks reads every hunk in lines. Diff content outside a hunk fails,
// and so does a line that starts like a marker but does not parse as one.
// The first line that is not diff content starts trailing text (the next
// commit in "git log -p", a mail signature). Trailing text is ignored up to
// the end of the segment, but it may not contain another hunk.
func parseHunks(lines []string) ([]diffutils.Hunk, error) {
	var hunks []diffutils.Hunk
	trailing := false

	for i := 0; i < len(lines); {
		line := strings.TrimSuffix(lines[i], "\r")

		if trailing {
			if looksLikeMarker(line) {
				return nil, fmt.Errorf("hunk header %q after trailing text", line)
			}
			i++
			continue
		}

		switch {
		case line == "":
			i++
			continue
		case line == signatureSeparator:
			trailing = true
			i++
			continue
		case line[0] == '@':
			// Handled below.
		case line[0] == '+' || line[0] == '-' || line[0] == ' ' || line[0] == '\\':
			if len(hunks) == 0 {
				return nil, fmt.Errorf("diff content before the first hunk: %q", line)
			}
			return nil, fmt.Errorf("hunk %d: diff content after the declared line counts: %q", len(hunks), line)
		default:
			trailing = true
			i++
			continue
		}

		h, ok := parseMarker(line)
		if !ok {
			return nil, fmt.Errorf("malformed hunk header %q", line)
		}

		n, err := readHunkBody(&h, lines[i+1:])
		if err != nil {
			return nil, fmt.Errorf("hunk %d (%s): %w", len(hunks)+1, strings.TrimSpace(line), err)
		}
		hunks = append(hunks, h)
		i += 1 + n
	}

	return hunks, nil
}

// looksLikeMarker reports whether line is shaped like a hunk header, even a
// damaged one.
func looksLikeMarker(line string) bool {
	return strings.HasPrefix(line, "@@") || looseMarkerRe.MatchString(line)
}

// readHunkBody consumes the lines belonging to h and returns how many lines
// were used.
func readHunkBody(h *diffutils.Hunk, lines []string) (int, error) {
	oldLeft, newLeft := h.OldCount, h.NewCount
	oldNum, newNum := h.OldStart, h.NewStart

	i := 0
	for ; i < len(lines) && (oldLeft > 0 || newLeft > 0); i++ {
		line := lines[i]

		var kind diffutils.LineKind
		text := ""
		switch {
		case line == "":
			kind = diffutils.LineContext
		case line[0] == ' ':
			kind, text = diffutils.LineContext, line[1:]
		case line[0] == '-':
			kind, text = diffutils.LineRemoved, line[1:]
		case line[0] == '+':
			kind, text = diffutils.LineAdded, line[1:]
		case line[0] == '\\':
			if err := markNoNewline(h); err != nil {
				return 0, err
			}
			continue
		default:
			return 0, countError(h, oldLeft, newLeft)
		}

		l := diffutils.Line{Kind: kind, Text: text}
		switch kind {
		case diffutils.LineContext:
			oldLeft--
			newLeft--
			l.OldNumber, l.NewNumber = oldNum, newNum
			oldNum++
			newNum++
		case diffutils.LineRemoved:
			oldLeft--
			l.OldNumber = oldNum
			oldNum++
		case diffutils.LineAdded:
			newLeft--
			l.NewNumber = newNum
			newNum++
		}
		if oldLeft < 0 || newLeft < 0 {
			return 0, countError(h, oldLeft, newLeft)
		}
		h.Lines = append(h.Lines, l)
	}

	if oldLeft > 0 || newLeft > 0 {
		return 0, countError(h, oldLeft, newLeft)
	}

	// Metadata that follows the last line of the hunk.
	for i < len(lines) && strings.HasPrefix(lines[i], `\`) {
		if err := markNoNewline(h); err != nil {
			return 0, err
		}
		i++
	}

	if errs := diffutils.ValidateHunk(0, *h); len(errs) > 0 {
		return 0, errs[0]
	}

	return i, nil
}

func markNoNewline(h *diffutils.Hunk) error {
	if len(h.Lines) == 0 {
		return fmt.Errorf("no-newline marker before any line")
	}
	h.Lines[len(h.Lines)-1].NoNewline = true
	return nil
}

func countError(h *diffutils.Hunk, oldLeft, newLeft int) error {
	return fmt.Errorf("line counts do not match header: old %d/%d, new %d/%d",
		h.OldCount-oldLeft, h.OldCount, h.NewCount-newLeft, h.NewCount)
}

// parseMarker parses "@@ -a,b +c,d @@ section". Omitted counts default to 1.
func parseMarker(line string) (diffutils.Hunk, bool) {
	m := hunkMarkerRe.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return diffutils.Hunk{}, false
	}

	var h diffutils.Hunk
	var err error
	if h.OldStart, err = strconv.Atoi(m[1]); err != nil {
		return h, false
	}
	if h.OldCount, err = atoiDefault(m[2], 1); err != nil {
		return h, false
	}
	if h.NewStart, err = strconv.Atoi(m[3]); err != nil {
		return h, false
	}
	if h.NewCount, err = atoiDefault(m[4], 1); err != nil {
		return h, false
	}
	h.Section = strings.TrimSpace(m[5])
	return h, true
}

func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
