package patch

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/fwojciec/diffutils"
)

const devNull = "/dev/null"

// headerState accumulates what a git extended header says about a file.
type headerState struct {
	file    diffutils.FileData
	added   bool
	removed bool
	renamed bool
	copied  bool
}

// parseGitHeader reads the header block of a git segment. It returns the
// partially filled FileData and the index of the first line after the header.
func parseGitHeader(lines []string) (headerState, int, error) {
	var st headerState

	src, dst, ok := splitGitPaths(lines[0][len(gitHeaderPrefix):])
	if !ok {
		return st, 0, fmt.Errorf("malformed git header")
	}
	st.file.Source, st.file.Destination = src, dst

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")

		switch {
		case strings.HasPrefix(line, "old mode "):
			m, err := parseMode(line[len("old mode "):])
			if err != nil {
				return st, 0, err
			}
			st.file.OldMode = m

		case strings.HasPrefix(line, "new mode "):
			m, err := parseMode(line[len("new mode "):])
			if err != nil {
				return st, 0, err
			}
			st.file.NewMode = m

		case strings.HasPrefix(line, "deleted file mode "):
			m, err := parseMode(line[len("deleted file mode "):])
			if err != nil {
				return st, 0, err
			}
			st.file.OldMode = m
			st.removed = true

		case strings.HasPrefix(line, "new file mode "):
			m, err := parseMode(line[len("new file mode "):])
			if err != nil {
				return st, 0, err
			}
			st.file.NewMode = m
			st.added = true

		case strings.HasPrefix(line, "similarity index "):
			n, err := parsePercent(line[len("similarity index "):])
			if err != nil {
				return st, 0, err
			}
			st.file.Similarity = n

		case strings.HasPrefix(line, "dissimilarity index "):
			n, err := parsePercent(line[len("dissimilarity index "):])
			if err != nil {
				return st, 0, err
			}
			st.file.Similarity = 100 - n

		case strings.HasPrefix(line, "rename from "):
			st.file.Source = unquote(line[len("rename from "):])
			st.renamed = true

		case strings.HasPrefix(line, "rename to "):
			st.file.Destination = unquote(line[len("rename to "):])
			st.renamed = true

		case strings.HasPrefix(line, "copy from "):
			st.file.Source = unquote(line[len("copy from "):])
			st.copied = true

		case strings.HasPrefix(line, "copy to "):
			st.file.Destination = unquote(line[len("copy to "):])
			st.copied = true

		case strings.HasPrefix(line, "index "):
			if err := parseIndex(&st.file, line[len("index "):]); err != nil {
				return st, 0, err
			}

		case strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"):
			st.file.Binary = true
			if strings.HasPrefix(line, "Binary files /dev/null and ") {
				st.added = true
			}
			if strings.HasSuffix(line, " and /dev/null differ") {
				st.removed = true
			}
			return st, i + 1, nil

		case line == "GIT binary patch":
			st.file.Binary = true
			return st, len(lines), nil

		case strings.HasPrefix(line, "--- "):
			if i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], "+++ ") {
				return st, 0, fmt.Errorf("%q not followed by a +++ line", line)
			}
			oldName := parseName(line[len("--- "):])
			newName := parseName(strings.TrimSuffix(lines[i+1], "\r")[len("+++ "):])
			if oldName == "" {
				st.added = true
			} else {
				st.file.Source = stripPrefix(oldName)
			}
			if newName == "" {
				st.removed = true
			} else {
				st.file.Destination = stripPrefix(newName)
			}
			return st, i + 2, nil

		default:
			// Hunks or trailing text. parseHunks rejects anything else.
			return st, i, nil
		}
	}

	return st, len(lines), nil
}

// finish derives the change kind once the hunks are known.
func (st headerState) finish() diffutils.FileData {
	f := st.file
	switch {
	case st.added:
		f.Change = diffutils.ChangeAdded
		f.Source = ""
	case st.removed:
		f.Change = diffutils.ChangeRemoved
		f.Destination = ""
	case st.renamed:
		f.Change = diffutils.ChangeRenamed
	case st.copied:
		f.Change = diffutils.ChangeCopied
	case !f.Binary && len(f.Hunks) == 0 && f.OldMode != f.NewMode:
		f.Change = diffutils.ChangeModeOnly
	default:
		f.Change = diffutils.ChangeModified
	}
	return f
}

// parseUnifiedHeader reads the "--- "/"+++ " pair that starts a unified
// segment.
func parseUnifiedHeader(lines []string) (headerState, int, error) {
	var st headerState
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "--- ") || !strings.HasPrefix(lines[1], "+++ ") {
		return st, 0, fmt.Errorf("missing ---/+++ header")
	}

	st.file.Source = parseName(strings.TrimSuffix(lines[0], "\r")[len("--- "):])
	st.file.Destination = parseName(strings.TrimSuffix(lines[1], "\r")[len("+++ "):])
	if st.file.Source == "" && st.file.Destination == "" {
		return st, 0, fmt.Errorf("both sides are %s", devNull)
	}
	st.added = st.file.Source == ""
	st.removed = st.file.Destination == ""

	return st, 2, nil
}

// splitGitPaths splits the "a/X b/Y" part of a "diff --git" line into its
// two paths with the prefixes removed.
func splitGitPaths(s string) (src, dst string, ok bool) {
	s = strings.TrimSuffix(s, "\r")

	if strings.HasPrefix(s, `"`) {
		end := closingQuote(s)
		if end < 0 || end+2 > len(s) || s[end+1] != ' ' {
			return "", "", false
		}
		src = unquote(s[:end+1])
		dst = unquote(s[end+2:])
		return stripPrefix(src), stripPrefix(dst), src != "" && dst != ""
	}

	if i := strings.Index(s, ` "`); i >= 0 && strings.HasSuffix(s, `"`) {
		return stripPrefix(s[:i]), stripPrefix(unquote(s[i+1:])), i > 0
	}

	// Unchanged paths are the common case: "a/X b/X" splits down the middle.
	if n := len(s) / 2; len(s)%2 == 1 && s[n] == ' ' && stripPrefix(s[:n]) == stripPrefix(s[n+1:]) {
		return stripPrefix(s[:n]), stripPrefix(s[n+1:]), n > 0
	}

	i := strings.Index(s, " b/")
	if i < 0 {
		i = strings.IndexByte(s, ' ')
	}
	if i <= 0 || i+1 >= len(s) {
		return "", "", false
	}
	return stripPrefix(s[:i]), stripPrefix(s[i+1:]), true
}

// closingQuote returns the index of the quote ending the quoted string at
// the start of s, or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// parseName extracts a file name from the value of a ---/+++ line, dropping
// any tab-separated timestamp. /dev/null becomes the empty string.
func parseName(s string) string {
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	s = unquote(strings.TrimRight(s, " "))
	if s == devNull {
		return ""
	}
	return s
}

// stripPrefix removes a one-letter git path prefix such as "a/" or "b/".
func stripPrefix(s string) string {
	if len(s) > 2 && s[1] == '/' && s[0] >= 'a' && s[0] <= 'z' {
		return s[2:]
	}
	return s
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

func parseMode(s string) (fs.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q", s)
	}
	return fs.FileMode(v), nil
}

func parsePercent(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("invalid similarity %q", s)
	}
	return n, nil
}

// parseIndex reads "abc123..def456 [mode]".
func parseIndex(f *diffutils.FileData, s string) error {
	ids, mode, hasMode := strings.Cut(s, " ")
	oldID, newID, ok := strings.Cut(ids, "..")
	if !ok {
		return fmt.Errorf("invalid index line %q", s)
	}
	f.SourceIndex, f.DestinationIndex = oldID, newID
	if hasMode {
		m, err := parseMode(mode)
		if err != nil {
			return err
		}
		f.OldMode, f.NewMode = m, m
	}
	return nil
}
