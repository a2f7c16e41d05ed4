package mock

import (
	"context"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of diffutils.GitRunner.
type GitRunner struct {
	DiffFn func(ctx context.Context, repoPath string, args ...string) (string, error)
	ShowFn func(ctx context.Context, repoPath string, rev string) (string, error)
}

func (g *GitRunner) Diff(ctx context.Context, repoPath string, args ...string) (string, error) {
	return g.DiffFn(ctx, repoPath, args...)
}

func (g *GitRunner) Show(ctx context.Context, repoPath string, rev string) (string, error) {
	return g.ShowFn(ctx, repoPath, rev)
}
