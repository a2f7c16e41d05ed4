// Package patch reads unified and git patches into diffutils structures.
package patch

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/diffutils"
	"go.uber.org/zap"
)

// Compile-time interface verification.
var _ diffutils.PatchReader = (*Reader)(nil)

// Reader reads patch text. A Reader holds no per-call state and may be used
// from multiple goroutines at once.
type Reader struct {
	logger *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		r.logger = l
	}
}

// NewReader creates a new Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadPatch parses patch to completion.
//
// A blank patch yields an empty Diff. A patch that is not blank but has no
// recognizable file header, or has any file that fails to parse, yields
// ErrUnparsable and no Diff.
func (r *Reader) ReadPatch(patch string) (*diffutils.Diff, error) {
	return r.ReadPatchWithProgress(patch, diffutils.NopProgress)
}

// ReadPatchAsync parses patch on a new goroutine. The returned channel
// receives exactly one Result and is then closed. The read stops at the next
// file boundary once ctx is done or progress reports cancellation.
func (r *Reader) ReadPatchAsync(ctx context.Context, patch string, progress diffutils.Progress) <-chan diffutils.Result {
	if progress == nil {
		progress = diffutils.NopProgress
	}
	p := diffutils.Join(diffutils.ContextProgress(ctx, nil), progress)

	ch := make(chan diffutils.Result, 1)
	go func() {
		defer close(ch)
		diff, err := r.ReadPatchWithProgress(patch, p)
		ch <- diffutils.Result{Diff: diff, Err: err}
	}()
	return ch
}

// ReadPatchWithProgress parses patch, checking progress for cancellation
// before each file and reporting after each file.
//
// Git-style headers are tried first; plain unified headers only when the
// patch has no "diff --git" line at all. Under either format one bad file
// makes the whole patch unparsable.
func (r *Reader) ReadPatchWithProgress(patch string, progress diffutils.Progress) (*diffutils.Diff, error) {
	if strings.TrimSpace(patch) == "" {
		return &diffutils.Diff{}, nil
	}

	lines := splitLines(cropSignature(patch))

	seg := SegmentGit(lines)
	if len(seg.Segments) == 0 && len(seg.Failures) == 0 {
		seg = SegmentUnified(lines)
	}
	log := r.logger.With(zap.Stringer("format", seg.Format))

	if len(seg.Failures) > 0 {
		log.Warn("malformed file headers", zap.Int("failures", len(seg.Failures)))
		return nil, &diffutils.PatchError{Format: seg.Format.String(), Failures: seg.Failures}
	}
	if len(seg.Segments) == 0 {
		log.Warn("no file headers found", zap.Int("lines", len(lines)))
		return nil, &diffutils.PatchError{Failures: []*diffutils.FileError{
			{Line: 1, Reason: "no file headers found"},
		}}
	}

	total := len(seg.Segments)
	log.Debug("reading patch", zap.Int("segments", total))

	files := make([]diffutils.FileData, 0, total)
	for i, s := range seg.Segments {
		if progress.Canceled() {
			log.Debug("canceled", zap.Int("done", i), zap.Int("total", total))
			return nil, diffutils.ErrCanceled
		}

		fd, err := ParseSegment(s)
		if err != nil {
			log.Warn("file failed to parse", zap.Int("line", s.Start+1), zap.Error(err))
			var fe *diffutils.FileError
			if !errors.As(err, &fe) {
				fe = &diffutils.FileError{Line: s.Start + 1, Reason: err.Error()}
			}
			return nil, &diffutils.PatchError{Format: seg.Format.String(), Failures: []*diffutils.FileError{fe}}
		}
		files = append(files, fd)
		progress.Report(i+1, total)
	}

	log.Debug("patch read", zap.Int("files", len(files)))
	return &diffutils.Diff{Files: files}, nil
}
