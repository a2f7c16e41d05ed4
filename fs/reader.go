package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.PatchReader = (*CachingReader)(nil)

// CachingReader wraps a PatchReader with a file cache keyed by the patch
// text. Only successful reads are cached.
type CachingReader struct {
	inner    diffutils.PatchReader
	cacheDir string
	saver    diffutils.DiffSaver
	loader   diffutils.DiffLoader
}

// NewCachingReader creates a reader that stores results in cacheDir using
// saver and reads them back with loader.
func NewCachingReader(inner diffutils.PatchReader, cacheDir string, saver diffutils.DiffSaver, loader diffutils.DiffLoader) *CachingReader {
	return &CachingReader{
		inner:    inner,
		cacheDir: cacheDir,
		saver:    saver,
		loader:   loader,
	}
}

// ReadPatchWithProgress returns the cached Diff for patch or delegates to
// the inner reader. A cache hit still polls progress and reports once per
// file.
func (r *CachingReader) ReadPatchWithProgress(patch string, progress diffutils.Progress) (*diffutils.Diff, error) {
	path := r.cachePath(patch)

	if cached, err := r.loader.Load(path); err == nil && len(cached.Files) > 0 {
		for i := range cached.Files {
			if progress.Canceled() {
				return nil, diffutils.ErrCanceled
			}
			progress.Report(i+1, len(cached.Files))
		}
		return cached, nil
	}

	diff, err := r.inner.ReadPatchWithProgress(patch, progress)
	if err != nil {
		return nil, err
	}

	// Best-effort; empty diffs are cheap to recompute.
	if len(diff.Files) > 0 {
		_ = r.saver.Save(path, diff)
	}

	return diff, nil
}

func (r *CachingReader) cachePath(patch string) string {
	sum := sha256.Sum256([]byte(patch))
	return filepath.Join(r.cacheDir, hex.EncodeToString(sum[:])+".jsonl")
}
