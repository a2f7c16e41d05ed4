// Package gitdiff implements patch reading using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.PatchReader = (*Parser)(nil)

// Parser reads git and unified patches using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ReadPatchWithProgress parses patch and converts each file, checking for
// cancellation before and reporting progress after every file.
func (p *Parser) ReadPatchWithProgress(patch string, progress diffutils.Progress) (*diffutils.Diff, error) {
	if strings.TrimSpace(patch) == "" {
		return &diffutils.Diff{}, nil
	}

	files, _, err := gitdiff.Parse(strings.NewReader(patch))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", diffutils.ErrUnparsable, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no file headers found", diffutils.ErrUnparsable)
	}

	result := &diffutils.Diff{
		Files: make([]diffutils.FileData, 0, len(files)),
	}

	for i, f := range files {
		if progress.Canceled() {
			return nil, diffutils.ErrCanceled
		}
		result.Files = append(result.Files, convertFile(f))
		progress.Report(i+1, len(files))
	}

	return result, nil
}

func convertFile(f *gitdiff.File) diffutils.FileData {
	fd := diffutils.FileData{
		Source:           f.OldName,
		Destination:      f.NewName,
		Binary:           f.IsBinary,
		OldMode:          f.OldMode,
		NewMode:          f.NewMode,
		Similarity:       f.Score,
		SourceIndex:      f.OldOIDPrefix,
		DestinationIndex: f.NewOIDPrefix,
	}

	// Determine change kind
	switch {
	case f.IsNew:
		fd.Change = diffutils.ChangeAdded
	case f.IsDelete:
		fd.Change = diffutils.ChangeRemoved
	case f.IsRename:
		fd.Change = diffutils.ChangeRenamed
	case f.IsCopy:
		fd.Change = diffutils.ChangeCopied
	case !f.IsBinary && len(f.TextFragments) == 0 && f.OldMode != f.NewMode:
		fd.Change = diffutils.ChangeModeOnly
	default:
		fd.Change = diffutils.ChangeModified
	}

	if f.IsBinary {
		return fd
	}

	// Convert text fragments to hunks
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}

	return fd
}

func convertFragment(frag *gitdiff.TextFragment) diffutils.Hunk {
	hunk := diffutils.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
	}

	// Track line numbers for old and new files
	oldNum := int(frag.OldPosition)
	newNum := int(frag.NewPosition)

	for _, l := range frag.Lines {
		// go-gitdiff keeps the trailing newline; diffutils lines do not.
		line := diffutils.Line{
			Text:      strings.TrimSuffix(l.Line, "\n"),
			NoNewline: l.NoEOL(),
		}

		switch l.Op {
		case gitdiff.OpContext:
			line.Kind = diffutils.LineContext
			line.OldNumber = oldNum
			line.NewNumber = newNum
			oldNum++
			newNum++
		case gitdiff.OpAdd:
			line.Kind = diffutils.LineAdded
			line.NewNumber = newNum
			newNum++
		case gitdiff.OpDelete:
			line.Kind = diffutils.LineRemoved
			line.OldNumber = oldNum
			oldNum++
		}

		hunk.Lines = append(hunk.Lines, line)
	}

	return hunk
}
