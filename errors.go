package diffutils

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by PatchReader implementations.
var (
	// ErrUnparsable means the patch could not be read. No partial result is
	// returned alongside it.
	ErrUnparsable = errors.New("patch could not be parsed")

	// ErrCanceled means cancellation was observed before the read finished.
	ErrCanceled = errors.New("patch reading canceled")

	// ErrNoChanges means the patch was read but describes no files.
	ErrNoChanges = errors.New("no changes to display")
)

// FileError describes why one file of a patch could not be read.
type FileError struct {
	Line   int    // 1-based line in the patch where the file's segment starts
	Path   string // Best known path, may be empty
	Reason string
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Path, e.Reason)
}

// PatchError collects the per-file failures that made a patch unparsable.
type PatchError struct {
	Format   string // "git" or "unified"
	Failures []*FileError
}

// Error implements the error interface.
func (e *PatchError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrUnparsable.Error())
	if e.Format != "" {
		sb.WriteString(" as ")
		sb.WriteString(e.Format)
		sb.WriteString(" diff")
	}
	for i, f := range e.Failures {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(f.Error())
	}
	return sb.String()
}

// Is reports whether target is ErrUnparsable.
func (e *PatchError) Is(target error) bool {
	return target == ErrUnparsable
}
