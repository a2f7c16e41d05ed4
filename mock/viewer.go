package mock

import (
	"context"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of diffutils.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, diff *diffutils.Diff) error
}

func (v *Viewer) View(ctx context.Context, diff *diffutils.Diff) error {
	return v.ViewFn(ctx, diff)
}
