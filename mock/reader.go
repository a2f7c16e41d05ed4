// Package mock provides test doubles for diffutils interfaces.
package mock

import "github.com/fwojciec/diffutils"

// Compile-time interface verification.
var _ diffutils.PatchReader = (*PatchReader)(nil)

// PatchReader is a mock implementation of diffutils.PatchReader.
type PatchReader struct {
	ReadPatchWithProgressFn func(patch string, progress diffutils.Progress) (*diffutils.Diff, error)
}

func (r *PatchReader) ReadPatchWithProgress(patch string, progress diffutils.Progress) (*diffutils.Diff, error) {
	return r.ReadPatchWithProgressFn(patch, progress)
}
