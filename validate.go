package diffutils

import "fmt"

// ValidationReason identifies why a hunk is invalid.
type ValidationReason string

// Validation error reasons.
const (
	ErrOldCountMismatch ValidationReason = "old_count_mismatch"
	ErrNewCountMismatch ValidationReason = "new_count_mismatch"
	ErrBinaryWithHunks  ValidationReason = "binary_with_hunks"
	ErrMissingPath      ValidationReason = "missing_path"
)

// ValidationError describes a single invariant violation in a Diff.
type ValidationError struct {
	File     int              // Index of the file in Diff.Files
	Hunk     int              // Index of the hunk, -1 for file-level errors
	Reason   ValidationReason // Which invariant is broken
	Declared int              // Count from the @@ marker (count mismatches only)
	Actual   int              // Count of lines found (count mismatches only)
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch e.Reason {
	case ErrOldCountMismatch:
		return fmt.Sprintf("file %d hunk %d: declares %d old lines, has %d context+removed",
			e.File, e.Hunk, e.Declared, e.Actual)
	case ErrNewCountMismatch:
		return fmt.Sprintf("file %d hunk %d: declares %d new lines, has %d context+added",
			e.File, e.Hunk, e.Declared, e.Actual)
	case ErrBinaryWithHunks:
		return fmt.Sprintf("file %d: binary file has %d hunks", e.File, e.Actual)
	case ErrMissingPath:
		return fmt.Sprintf("file %d: source and destination are both empty", e.File)
	default:
		return fmt.Sprintf("file %d hunk %d: unknown error", e.File, e.Hunk)
	}
}

// CountLines returns the number of lines on the old side (context+removed)
// and the new side (context+added) of a hunk.
func CountLines(lines []Line) (old, new int) {
	for _, l := range lines {
		switch l.Kind {
		case LineContext:
			old++
			new++
		case LineRemoved:
			old++
		case LineAdded:
			new++
		}
	}
	return old, new
}

// ValidateHunk checks the line count invariant of a single hunk.
// The returned errors have File set to 0; Validate fills it in.
func ValidateHunk(index int, h Hunk) []ValidationError {
	old, new := CountLines(h.Lines)
	var errs []ValidationError
	if old != h.OldCount {
		errs = append(errs, ValidationError{
			Hunk: index, Reason: ErrOldCountMismatch, Declared: h.OldCount, Actual: old,
		})
	}
	if new != h.NewCount {
		errs = append(errs, ValidationError{
			Hunk: index, Reason: ErrNewCountMismatch, Declared: h.NewCount, Actual: new,
		})
	}
	return errs
}

// Validate checks that every file and hunk of diff satisfies the structural
// invariants. Returns nil if the diff is valid.
func Validate(diff *Diff) []ValidationError {
	var errs []ValidationError

	for fileIdx, file := range diff.Files {
		if file.Source == "" && file.Destination == "" {
			errs = append(errs, ValidationError{File: fileIdx, Hunk: -1, Reason: ErrMissingPath})
		}
		if file.Binary && len(file.Hunks) > 0 {
			errs = append(errs, ValidationError{
				File: fileIdx, Hunk: -1, Reason: ErrBinaryWithHunks, Actual: len(file.Hunks),
			})
		}
		for hunkIdx, hunk := range file.Hunks {
			for _, e := range ValidateHunk(hunkIdx, hunk) {
				e.File = fileIdx
				errs = append(errs, e)
			}
		}
	}

	return errs
}
