// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/diffutils"
)

// Compile-time interface verification.
var _ diffutils.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Diff returns the output of "git diff" in the repository at repoPath. Extra
// args are passed through, e.g. "--cached" or a revision range.
func (r *Runner) Diff(ctx context.Context, repoPath string, args ...string) (string, error) {
	gitArgs := append([]string{"-C", repoPath, "diff", "--no-color", "--no-ext-diff"}, args...)
	return r.run(ctx, "diff", gitArgs)
}

// Show returns the patch for a specific revision, without the commit message.
func (r *Runner) Show(ctx context.Context, repoPath string, rev string) (string, error) {
	if strings.HasPrefix(rev, "-") {
		return "", fmt.Errorf("git show failed: invalid revision %q", rev)
	}
	args := []string{"-C", repoPath, "show", "--no-color", "--format=", rev}
	return r.run(ctx, "show", args)
}

func (r *Runner) run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", name, err)
	}
	return string(output), nil
}
