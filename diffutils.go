// Package diffutils provides domain types for reading unified and git patches
// into structured per-file change records.
package diffutils

import (
	"context"
	"fmt"
	"io/fs"
)

// Diff is the ordered result of reading a patch: one FileData per file, in
// the order the files appear in the patch text.
type Diff struct {
	Files []FileData
}

// Stats returns the number of added and removed lines across all files.
func (d Diff) Stats() (added, removed int) {
	for _, f := range d.Files {
		a, r := f.Stats()
		added += a
		removed += r
	}
	return added, removed
}

// FileData represents the changes made to a single file.
type FileData struct {
	// Git paths have their "a/" and "b/" prefixes removed ("file.go").
	// Unified names are kept as written ("a/file.go"). Empty for the
	// missing side of an added or removed file.
	Source      string     `json:"source,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Change      ChangeKind `json:"change"`                // Modified, Added, Removed, Renamed, Copied, ModeOnly
	Binary      bool       `json:"binary,omitempty"`      // Binary files have no hunks

	OldMode          fs.FileMode `json:"old_mode,omitempty"` // 0 if not present in the header
	NewMode          fs.FileMode `json:"new_mode,omitempty"`
	Similarity       int         `json:"similarity,omitempty"`   // Percent, set for renames and copies
	SourceIndex      string      `json:"source_index,omitempty"` // Abbreviated blob id from the "index" line
	DestinationIndex string      `json:"destination_index,omitempty"`

	Hunks []Hunk `json:"hunks,omitempty"`
}

// Path returns the path the file is best known by: the destination, or the
// source for removed files.
func (f FileData) Path() string {
	if f.Destination != "" {
		return f.Destination
	}
	return f.Source
}

// Stats returns the number of added and removed lines in the file.
func (f FileData) Stats() (added, removed int) {
	for _, hunk := range f.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdded:
				added++
			case LineRemoved:
				removed++
			}
		}
	}
	return added, removed
}

// ChangeKind represents what happened to a file.
type ChangeKind int

// Change kinds.
const (
	ChangeModified ChangeKind = iota
	ChangeAdded
	ChangeRemoved
	ChangeRenamed
	ChangeCopied
	ChangeModeOnly
)

var changeNames = [...]string{
	ChangeModified: "modified",
	ChangeAdded:    "added",
	ChangeRemoved:  "removed",
	ChangeRenamed:  "renamed",
	ChangeCopied:   "copied",
	ChangeModeOnly: "mode",
}

func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeNames) {
		return changeNames[ChangeModified]
	}
	return changeNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ChangeKind) UnmarshalText(text []byte) error {
	for i, name := range changeNames {
		if name == string(text) {
			*k = ChangeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown change kind %q", text)
}

// Hunk represents one "@@ -a,b +c,d @@" block of changes within a file.
type Hunk struct {
	OldStart int    `json:"old_start"`         // From @@ -X,...
	OldCount int    `json:"old_count"`         // From @@ -X,Y ...
	NewStart int    `json:"new_start"`         // From @@ ...,+X
	NewCount int    `json:"new_count"`         // From @@ ...,+X,Y
	Section  string `json:"section,omitempty"` // Optional function name after @@ ... @@
	Lines    []Line `json:"lines"`
}

// Line represents a single line within a hunk.
type Line struct {
	Kind      LineKind `json:"kind"`
	Text      string   `json:"text"`                 // Without the leading marker character
	OldNumber int      `json:"old,omitempty"`        // 0 if line is Added
	NewNumber int      `json:"new,omitempty"`        // 0 if line is Removed
	NoNewline bool     `json:"no_newline,omitempty"` // "\ No newline at end of file" follows this line
}

// LineKind represents the role of a diff line.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

var lineNames = [...]string{
	LineContext: "context",
	LineAdded:   "added",
	LineRemoved: "removed",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineNames) {
		return lineNames[LineContext]
	}
	return lineNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LineKind) UnmarshalText(text []byte) error {
	for i, name := range lineNames {
		if name == string(text) {
			*k = LineKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown line kind %q", text)
}

// Marker returns the leading character used for the kind in patch text.
func (k LineKind) Marker() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// Result carries the outcome of an asynchronous patch read.
type Result struct {
	Diff *Diff
	Err  error
}

// PatchReader reads raw patch text into a Diff.
type PatchReader interface {
	// ReadPatchWithProgress parses patch, polling progress for cancellation
	// and reporting progress once per file. It returns ErrUnparsable when the
	// patch cannot be read and ErrCanceled when cancellation was observed.
	ReadPatchWithProgress(patch string, progress Progress) (*Diff, error)
}

// Viewer displays a diff to the user.
type Viewer interface {
	// View blocks until the user exits.
	View(ctx context.Context, diff *Diff) error
}

// GitRunner provides access to git operations that produce patch text.
type GitRunner interface {
	// Diff returns the output of "git diff" with the given extra arguments.
	Diff(ctx context.Context, repoPath string, args ...string) (string, error)
	// Show returns the patch for a specific revision.
	Show(ctx context.Context, repoPath string, rev string) (string, error)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Copy(content string) error
}

// DiffSaver persists a parsed Diff.
type DiffSaver interface {
	Save(path string, diff *Diff) error
}

// DiffLoader reads back a Diff written by a DiffSaver.
type DiffLoader interface {
	Load(path string) (*Diff, error)
}
