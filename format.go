package diffutils

import (
	"fmt"
	"io/fs"
	"strings"
)

const devNull = "/dev/null"

// FormatGit renders diff back into git-style patch text. Paths are expected
// without the "a/" and "b/" prefixes, as git patches are read.
func FormatGit(diff *Diff) string {
	var sb strings.Builder
	for _, file := range diff.Files {
		formatGitFile(&sb, file)
	}
	return sb.String()
}

// FormatUnified renders diff back into plain unified-diff text. Paths are
// written verbatim. Files without hunks cannot be expressed in this format
// and are skipped.
func FormatUnified(diff *Diff) string {
	var sb strings.Builder
	for _, file := range diff.Files {
		if len(file.Hunks) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "--- %s\n", orDevNull(file.Source))
		fmt.Fprintf(&sb, "+++ %s\n", orDevNull(file.Destination))
		for _, hunk := range file.Hunks {
			formatHunk(&sb, hunk)
		}
	}
	return sb.String()
}

func formatGitFile(sb *strings.Builder, file FileData) {
	src, dst := file.Source, file.Destination
	if src == "" {
		src = dst
	}
	if dst == "" {
		dst = src
	}
	fmt.Fprintf(sb, "diff --git a/%s b/%s\n", src, dst)

	switch file.Change {
	case ChangeAdded:
		fmt.Fprintf(sb, "new file mode %s\n", formatMode(file.NewMode))
	case ChangeRemoved:
		fmt.Fprintf(sb, "deleted file mode %s\n", formatMode(file.OldMode))
	default:
		if file.OldMode != 0 && file.NewMode != 0 && file.OldMode != file.NewMode {
			fmt.Fprintf(sb, "old mode %s\n", formatMode(file.OldMode))
			fmt.Fprintf(sb, "new mode %s\n", formatMode(file.NewMode))
		}
	}

	switch file.Change {
	case ChangeRenamed:
		fmt.Fprintf(sb, "similarity index %d%%\n", file.Similarity)
		fmt.Fprintf(sb, "rename from %s\n", src)
		fmt.Fprintf(sb, "rename to %s\n", dst)
	case ChangeCopied:
		fmt.Fprintf(sb, "similarity index %d%%\n", file.Similarity)
		fmt.Fprintf(sb, "copy from %s\n", src)
		fmt.Fprintf(sb, "copy to %s\n", dst)
	}

	if file.SourceIndex != "" || file.DestinationIndex != "" {
		fmt.Fprintf(sb, "index %s..%s", file.SourceIndex, file.DestinationIndex)
		if file.Change != ChangeAdded && file.Change != ChangeRemoved &&
			file.OldMode != 0 && file.OldMode == file.NewMode {
			fmt.Fprintf(sb, " %s", formatMode(file.OldMode))
		}
		sb.WriteString("\n")
	}

	oldName, newName := "a/"+src, "b/"+dst
	if file.Change == ChangeAdded {
		oldName = devNull
	}
	if file.Change == ChangeRemoved {
		newName = devNull
	}

	if file.Binary {
		fmt.Fprintf(sb, "Binary files %s and %s differ\n", oldName, newName)
		return
	}
	if len(file.Hunks) == 0 {
		return
	}

	fmt.Fprintf(sb, "--- %s\n", oldName)
	fmt.Fprintf(sb, "+++ %s\n", newName)
	for _, hunk := range file.Hunks {
		formatHunk(sb, hunk)
	}
}

func formatHunk(sb *strings.Builder, hunk Hunk) {
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
	if hunk.Section != "" {
		sb.WriteString(" ")
		sb.WriteString(hunk.Section)
	}
	sb.WriteString("\n")
	for _, line := range hunk.Lines {
		sb.WriteByte(line.Kind.Marker())
		sb.WriteString(line.Text)
		sb.WriteString("\n")
		if line.NoNewline {
			sb.WriteString("\\ No newline at end of file\n")
		}
	}
}

// formatMode renders a mode the way git writes it, e.g. "100644".
func formatMode(m fs.FileMode) string {
	return fmt.Sprintf("%06o", uint32(m))
}

func orDevNull(path string) string {
	if path == "" {
		return devNull
	}
	return path
}
